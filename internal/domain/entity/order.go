package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. No hay máquina de estados: cualquier estado puede pasar a cualquier otro.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Estados de pago.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Métodos de pago.
const (
	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentCreditCard     = "Credit Card"
	PaymentPayPal         = "PayPal"
	PaymentGCash          = "GCash"
)

// DefaultCountry país de envío por defecto.
const DefaultCountry = "Philippines"

// ValidOrderStatus indica si s es un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// ValidPaymentMethod indica si m es un método de pago aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCreditCard, PaymentPayPal, PaymentGCash:
		return true
	}
	return false
}

// ShippingAddress dirección de envío del pedido.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Complete indica si todos los campos obligatorios están presentes.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// OrderItem línea del pedido. Name y Price son una foto del producto al momento de la compra.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	Currency  string
}

// Subtotal precio × cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order cabecera del pedido con sus líneas.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	PaymentStatus   string
	TotalPrice      decimal.Decimal
	OrderStatus     string
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalOf suma los subtotales de las líneas.
func TotalOf(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
