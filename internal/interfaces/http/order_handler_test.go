package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func orderPayload(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		OrderItems: items,
		ShippingAddress: dto.ShippingAddressRequest{
			Address: "Calle 1", City: "Manila", PostalCode: "1000",
		},
		PaymentMethod: entity.PaymentCashOnDelivery,
	}
}

func (env *testEnv) createOrder(t *testing.T, header string) dto.OrderResponse {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/orders", header, orderPayload(
		dto.OrderItemRequest{ProductID: "P1", Quantity: 2},
		dto.OrderItemRequest{ProductID: "P2", Quantity: 1},
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.OrderResponse
	decode(t, resp, &out)
	return out
}

// [{P1,100,2},{P2,50,1}] → 250, Processing, Pending, dueño = usuario del token.
func TestCreateOrder_Ejemplo(t *testing.T) {
	env := newTestEnv(t)

	out := env.createOrder(t, bearer(t, env.customer))

	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(250)), out.TotalPrice.String())
	assert.Equal(t, entity.OrderStatusProcessing, out.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)
	assert.Equal(t, env.customer.ID, out.UserID)
	assert.Equal(t, entity.DefaultCountry, out.ShippingAddress.Country)
	require.Len(t, out.OrderItems, 2)
	assert.Equal(t, "Audífonos", out.OrderItems[0].Name)
}

func TestCreateOrder_SinToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/orders", "", orderPayload(dto.OrderItemRequest{ProductID: "P1", Quantity: 1}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.orders.orders)
}

func TestCreateOrder_Vacio(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/orders", bearer(t, env.customer), orderPayload())
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Empty(t, env.orders.orders)
}

func TestCreateOrder_PrecioExplicito(t *testing.T) {
	env := newTestEnv(t)
	gratis := decimal.Zero
	fino := decimal.RequireFromString("0.005")

	resp := env.do(t, http.MethodPost, "/api/orders", bearer(t, env.customer), orderPayload(
		dto.OrderItemRequest{ProductID: "P1", Quantity: 2, Price: &gratis},
		dto.OrderItemRequest{ProductID: "P2", Quantity: 1},
	))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.OrderResponse
	decode(t, resp, &out)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(50)), out.TotalPrice.String())

	resp = env.do(t, http.MethodPost, "/api/orders", bearer(t, env.customer), orderPayload(
		dto.OrderItemRequest{ProductID: "P1", Quantity: 1, Price: &fino},
	))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, env.orders.orders, 1)
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/orders", bearer(t, env.customer), orderPayload(
		dto.OrderItemRequest{ProductID: "P1", Quantity: 1},
		dto.OrderItemRequest{ProductID: "NOPE", Quantity: 1},
	))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, env.orders.orders, "no se persiste nada")
}

func TestGetOrder_DuenoOAdmin(t *testing.T) {
	env := newTestEnv(t)
	created := env.createOrder(t, bearer(t, env.customer))
	intruder := env.seedUser(t, "Otro", "otro@example.com", false)

	resp := env.do(t, http.MethodGet, "/api/orders/"+created.ID, bearer(t, env.customer), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/orders/"+created.ID, bearer(t, intruder), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/orders/"+created.ID, bearer(t, env.admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/orders/no-existe", bearer(t, env.admin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	env.createOrder(t, bearer(t, env.customer))
	env.createOrder(t, bearer(t, env.customer))

	resp := env.do(t, http.MethodGet, "/api/orders/user/"+env.customer.ID, bearer(t, env.customer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine dto.OrderListResponse
	decode(t, resp, &mine)
	assert.Equal(t, 2, mine.Count)

	resp = env.do(t, http.MethodGet, "/api/orders/user/"+env.admin.ID, bearer(t, env.customer), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/orders?limit=1", bearer(t, env.admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all dto.OrderListResponse
	decode(t, resp, &all)
	assert.Len(t, all.Items, 1)
	require.NotNil(t, all.Page)
	assert.Equal(t, 2, all.Page.Total)
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	created := env.createOrder(t, bearer(t, env.customer))
	delivered, paid := entity.OrderStatusDelivered, entity.PaymentStatusPaid
	body := dto.UpdateOrderStatusRequest{OrderStatus: &delivered, PaymentStatus: &paid}

	resp := env.do(t, http.MethodPut, "/api/orders/"+created.ID, bearer(t, env.customer), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/orders/"+created.ID, bearer(t, env.admin), body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.OrderResponse
	decode(t, resp, &out)
	assert.Equal(t, entity.OrderStatusDelivered, out.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus)
	assert.NotNil(t, out.DeliveredAt)

	bogus := "Lost"
	resp = env.do(t, http.MethodPut, "/api/orders/"+created.ID, bearer(t, env.admin), dto.UpdateOrderStatusRequest{OrderStatus: &bogus})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	created := env.createOrder(t, bearer(t, env.customer))

	resp := env.do(t, http.MethodDelete, "/api/orders/"+created.ID, bearer(t, env.admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.orders.orders)

	resp = env.do(t, http.MethodDelete, "/api/orders/"+created.ID, bearer(t, env.admin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderReceipt(t *testing.T) {
	env := newTestEnv(t)
	created := env.createOrder(t, bearer(t, env.customer))

	resp := env.do(t, http.MethodGet, "/api/orders/"+created.ID+"/receipt", bearer(t, env.customer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), created.ID)
}
