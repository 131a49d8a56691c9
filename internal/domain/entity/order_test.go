package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestTotalOf_SumaPrecioPorCantidad(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "p1", Price: decimal.NewFromInt(100), Quantity: 2},
		{ProductID: "p2", Price: decimal.NewFromInt(50), Quantity: 1},
	}
	assert.True(t, entity.TotalOf(items).Equal(decimal.NewFromInt(250)))
	assert.True(t, entity.TotalOf(nil).IsZero())
}

func TestTotalOf_SinErrorDeRedondeo(t *testing.T) {
	items := []entity.OrderItem{
		{Price: decimal.RequireFromString("0.10"), Quantity: 3},
		{Price: decimal.RequireFromString("19.99"), Quantity: 7},
	}
	assert.Equal(t, "140.23", entity.TotalOf(items).StringFixed(2))
}

func TestIdentity_CanAccess(t *testing.T) {
	customer := entity.Identity{UserID: "u1", Role: entity.RoleCustomer}
	admin := entity.Identity{UserID: "a1", Role: entity.RoleAdmin}

	assert.True(t, customer.CanAccess("u1"))
	assert.False(t, customer.CanAccess("u2"))
	assert.True(t, admin.CanAccess("u2"))
	assert.False(t, entity.Identity{}.CanAccess(""))
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, entity.RoleAdmin, (&entity.User{IsAdmin: true}).Role())
	assert.Equal(t, entity.RoleCustomer, (&entity.User{}).Role())
	assert.Equal(t, "ana@example.com", entity.NormalizeEmail("  Ana@Example.COM "))
}

func TestEnums(t *testing.T) {
	assert.True(t, entity.ValidCategory("Home & Garden"))
	assert.False(t, entity.ValidCategory("Garden"))
	assert.True(t, entity.ValidCurrency("JPY"))
	assert.False(t, entity.ValidCurrency("COP"))
	assert.True(t, entity.ValidOrderStatus("Delivered"))
	assert.False(t, entity.ValidOrderStatus("delivered"))
	assert.True(t, entity.ValidPaymentStatus("Failed"))
	assert.True(t, entity.ValidPaymentMethod("GCash"))
	assert.False(t, entity.ValidPaymentMethod("Bitcoin"))
}
