package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y reset de password.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// CreateUser valida, hashea y persiste un usuario cliente. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	email, err := ValidateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register crea el usuario y devuelve usuario + token firmado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := uc.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.authResponse(user, "Usuario registrado")
}

// Login verifica credenciales de un cliente. Los admin deben usar AdminLogin (ErrAdminPortal).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.verifyCredentials(ctx, in)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, domain.ErrAdminPortal
	}
	return uc.authResponse(user, "Login exitoso")
}

// AdminLogin verifica credenciales y exige la variante admin.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.verifyCredentials(ctx, in)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, fmt.Errorf("%w: se requiere una cuenta de administrador", domain.ErrUnauthorized)
	}
	return uc.authResponse(user, "Login de administrador exitoso")
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ResolveIdentity carga el usuario del token; (nil, nil) si ya no existe.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ResetPassword cambia el password verificando el actual. El hash no cambia si la verificación falla.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	email, err := ValidateEmail(in.Email)
	if err != nil {
		return err
	}
	if len(in.Password) < entity.MinPasswordLength {
		return fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, entity.MinPasswordLength)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := ComparePassword(user.PasswordHash, in.CurrentPassword); err != nil {
		return err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) verifyCredentials(ctx context.Context, in dto.LoginRequest) (*entity.User, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := ComparePassword(user.PasswordHash, in.Password); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) authResponse(user *entity.User, msg string) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role()), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Message: msg, User: *ToUserResponse(user), Token: token}, nil
}

// ToUserResponse mapea la entidad a la salida pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
