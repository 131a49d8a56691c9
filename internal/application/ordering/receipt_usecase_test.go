package ordering_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type stubUsers struct{ users map[string]*entity.User }

func (s stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.users[id], nil
}
func (s stubUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s stubUsers) Update(context.Context, *entity.User) error               { return nil }
func (s stubUsers) List(context.Context, int, int) ([]*entity.User, error)   { return nil, nil }
func (s stubUsers) Count(context.Context) (int, error)                       { return 0, nil }
func (s stubUsers) Delete(context.Context, string) error                     { return nil }

type stubReceipt struct {
	order    *entity.Order
	customer *entity.User
}

func (s *stubReceipt) Generate(o *entity.Order, c *entity.User) ([]byte, error) {
	s.order, s.customer = o, c
	return []byte("%PDF-1.3"), nil
}

func TestReceipt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.uc.Create(ctx, "u1", validOrder(item("P1", 100, 2)))
	require.NoError(t, err)

	gen := &stubReceipt{}
	users := stubUsers{users: map[string]*entity.User{"u1": {ID: "u1", Name: "Ana"}}}
	uc := ordering.NewReceiptUseCase(f.uc, users, gen)

	pdf, err := uc.Receipt(ctx, entity.Identity{UserID: "u1", Role: entity.RoleCustomer}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))
	assert.Equal(t, "Ana", gen.customer.Name)
	assert.Equal(t, created.ID, gen.order.ID)

	_, err = uc.Receipt(ctx, entity.Identity{UserID: "u2", Role: entity.RoleCustomer}, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
