package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/upload"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/feed"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
)

// ── repos en memoria ─────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email {
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

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[:offset+limit]
	}
	return out[offset:], nil
}

func (r *memUserRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r *memProductRepo) filtered(f repository.ProductFilter) []*entity.Product {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.OnlyApproved && !p.IsApproved {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filtered(f)
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[:offset+limit]
	}
	return out[offset:], nil
}

func (r *memProductRepo) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filtered(f)), nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrderRepo) sorted() []*entity.Order {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted()
	if offset >= len(out) {
		return nil, nil
	}
	if offset+limit < len(out) {
		out = out[:offset+limit]
	}
	return out[offset:], nil
}

func (r *memOrderRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders), nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.sorted() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	return r.Create(ctx, o)
}

func (r *memOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

// directTx ejecuta fn sobre el repo compartido.
type directTx struct{ orders *memOrderRepo }

func (tx directTx) RunInTx(_ context.Context, fn func(repository.OrderRepository) error) error {
	return fn(tx.orders)
}

type fakeReceipt struct{}

func (fakeReceipt) Generate(order *entity.Order, _ *entity.User) ([]byte, error) {
	return []byte("%PDF-1.3 pedido " + order.ID), nil
}

// ── app de prueba ────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	products *memProductRepo
	orders   *memOrderRepo
	authUC   *auth.AuthUseCase
	customer *entity.User
	admin    *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    &memUserRepo{users: map[string]*entity.User{}},
		products: &memProductRepo{products: map[string]*entity.Product{}},
		orders:   &memOrderRepo{orders: map[string]*entity.Order{}},
	}

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(env.users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer})
	env.authUC = authUC
	orderUC := ordering.NewOrderUseCase(directTx{env.orders}, env.orders, env.products)
	deps := apphttp.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(env.users, authUC),
		ProductUC:   usecase.NewProductUseCase(env.products),
		FeedUC:      usecase.NewFeedUseCase(env.products, feed.NewRSSBuilder("Tienda", "https://tienda.test")),
		OrderUC:     orderUC,
		ReceiptUC:   ordering.NewReceiptUseCase(orderUC, env.users, fakeReceipt{}),
		UploadUC:    upload.NewUseCase(store, 10*1024*1024),
		JWTSecret:   testJWTSecret,
		ServiceName: "tienda-api",
		Driver:      "memory",
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(env.app, deps)

	env.customer = env.seedUser(t, "Juan", "juan@example.com", false)
	env.admin = env.seedUser(t, "Admin", "admin@example.com", true)
	env.seedProduct("P1", "Audífonos", 100)
	env.seedProduct("P2", "Camiseta", 50)
	return env
}

func (env *testEnv) seedUser(t *testing.T, name, email string, isAdmin bool) *entity.User {
	t.Helper()
	u, err := env.authUC.CreateUser(context.Background(), dto.RegisterRequest{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	if isAdmin {
		u.IsAdmin = true
		require.NoError(t, env.users.Update(context.Background(), u))
	}
	return u
}

func (env *testEnv) seedProduct(id, name string, price int64) {
	now := time.Now()
	env.products.products[id] = &entity.Product{
		ID: id, Name: name, Price: decimal.NewFromInt(price), Category: entity.CategoryOther,
		Currency: entity.CurrencyPHP, Stock: 10, InStock: true, IsApproved: true,
		Image: entity.DefaultProductImage, CreatedAt: now, UpdatedAt: now,
	}
}

// bearer genera un Authorization header válido para el usuario.
func bearer(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, string(u.Role()), testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do lanza una petición JSON contra la app y devuelve la respuesta.
func (env *testEnv) do(t *testing.T, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
