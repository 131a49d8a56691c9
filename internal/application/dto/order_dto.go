package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. El dueño es siempre el usuario autenticado.
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// OrderItemRequest línea del carrito. Sin price se toma el precio vigente del producto; 0 es una línea gratuita.
type OrderItemRequest struct {
	ProductID string           `json:"product"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Currency  string           `json:"currency,omitempty"`
}

// ShippingAddressRequest dirección de envío.
type ShippingAddressRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// UpdateOrderStatusRequest body para PUT /api/orders/:id (admin). Al menos un campo.
type UpdateOrderStatusRequest struct {
	OrderStatus   *string `json:"orderStatus"`
	PaymentStatus *string `json:"paymentStatus"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user"`
	OrderItems      []OrderItemResponse    `json:"orderItems"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentStatus   string                 `json:"paymentStatus"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
	OrderStatus     string                 `json:"orderStatus"`
	DeliveredAt     *time.Time             `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// OrderItemResponse línea del pedido (foto del producto al comprar).
type OrderItemResponse struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderListResponse lista de pedidos; Page solo en el listado de admin.
type OrderListResponse struct {
	Count int             `json:"count"`
	Items []OrderResponse `json:"items"`
	Page  *PageResponse   `json:"page,omitempty"`
}
