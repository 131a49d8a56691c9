package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Count(context.Context) (int, error)                     { return len(r.users), nil }
func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func newUseCase() (*auth.AuthUseCase, *memUserRepo) {
	repo := newMemUserRepo()
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}), repo
}

func TestRegister_OK(t *testing.T) {
	uc, repo := newUseCase()

	res, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "  Ana@Mail.COM ", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", res.User.Email)
	assert.False(t, res.User.IsAdmin)

	claims, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	stored, _ := repo.GetByEmail(context.Background(), "ana@mail.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "secreto"))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	first, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@mail.com", Password: "secreto"})
	require.NoError(t, err)
	before, _ := repo.GetByID(ctx, first.User.ID)

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Otra", Email: "ANA@mail.com", Password: "otro-pass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	after, _ := repo.GetByID(ctx, first.User.ID)
	assert.Equal(t, before, after, "el registro existente no cambia")
	assert.Len(t, repo.users, 1)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cases := []dto.RegisterRequest{
		{Name: "", Email: "a@b.com", Password: "secreto"},
		{Name: "Ana", Email: "no-es-email", Password: "secreto"},
		{Name: "Ana", Email: "a@b.com", Password: "123"},
	}
	for _, in := range cases {
		_, err := uc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string, admin bool) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{ID: email, Name: email, Email: email, PasswordHash: hash, IsAdmin: admin}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	seedUser(t, repo, "cliente@mail.com", "secreto", false)
	seedUser(t, repo, "admin@mail.com", "secreto", true)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "Cliente@mail.com", Password: "secreto"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "cliente@mail.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mail.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@mail.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrAdminPortal)
}

func TestAdminLogin(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	seedUser(t, repo, "cliente@mail.com", "secreto", false)
	seedUser(t, repo, "admin@mail.com", "secreto", true)

	res, err := uc.AdminLogin(ctx, dto.LoginRequest{Email: "admin@mail.com", Password: "secreto"})
	require.NoError(t, err)
	assert.True(t, res.User.IsAdmin)
	claims, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = uc.AdminLogin(ctx, dto.LoginRequest{Email: "cliente@mail.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	u := seedUser(t, repo, "ana@mail.com", "secreto", false)

	err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@mail.com", CurrentPassword: "equivocado", Password: "nuevo-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	stored, _ := repo.GetByID(ctx, u.ID)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash, "el hash no cambia")

	err = uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "nadie@mail.com", CurrentPassword: "secreto", Password: "nuevo-pass"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "ana@mail.com", CurrentPassword: "secreto", Password: "nuevo-pass"}))
	stored, _ = repo.GetByID(ctx, u.ID)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "nuevo-pass"))
	assert.ErrorIs(t, auth.ComparePassword(stored.PasswordHash, "secreto"), domain.ErrUnauthorized)
}

func TestProfileYResolveIdentity(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	u := seedUser(t, repo, "ana@mail.com", "secreto", false)

	p, err := uc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", p.Email)

	_, err = uc.Profile(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	missing, err := uc.ResolveIdentity(ctx, "no-existe")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
