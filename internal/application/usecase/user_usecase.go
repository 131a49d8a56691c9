package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase administración de cuentas: alta pública, listado admin, edición y baja.
type UserUseCase struct {
	repo   repository.UserRepository
	authUC *auth.AuthUseCase
	now    func() time.Time
}

// NewUserUseCase construye el caso de uso. El alta reutiliza las reglas de registro de auth.
func NewUserUseCase(repo repository.UserRepository, authUC *auth.AuthUseCase) *UserUseCase {
	return &UserUseCase{repo: repo, authUC: authUC, now: time.Now}
}

// Create alta pública sin emitir token.
func (uc *UserUseCase) Create(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := uc.authUC.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios paginados (solo admin).
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	limit, offset = dto.NormalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// GetByID devuelve un usuario; solo el propio usuario o un admin.
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.Identity, id string) (*dto.UserResponse, error) {
	if !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update cambia name/email (propio usuario o admin) e isAdmin (solo admin).
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}
	if in.IsAdmin != nil && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede cambiar isAdmin", domain.ErrForbidden)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Email != nil {
		email, err := auth.ValidateEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina una cuenta. ErrUserNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, id)
}
