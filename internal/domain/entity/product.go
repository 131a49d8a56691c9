package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías del catálogo (enum cerrado).
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHomeGarden  = "Home & Garden"
	CategorySports      = "Sports"
	CategoryToys        = "Toys"
	CategoryFood        = "Food"
	CategoryOther       = "Other"
)

// Monedas soportadas.
const (
	CurrencyPHP = "PHP"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyJPY = "JPY"

	DefaultCurrency = CurrencyPHP
)

// DefaultProductImage imagen de portada cuando no se envía ninguna.
const DefaultProductImage = "https://via.placeholder.com/300"

var categories = map[string]struct{}{
	CategoryElectronics: {}, CategoryClothing: {}, CategoryBooks: {}, CategoryHomeGarden: {},
	CategorySports: {}, CategoryToys: {}, CategoryFood: {}, CategoryOther: {},
}

var currencies = map[string]struct{}{
	CurrencyPHP: {}, CurrencyUSD: {}, CurrencyEUR: {}, CurrencyJPY: {},
}

// ValidCategory indica si la categoría pertenece al enum.
func ValidCategory(c string) bool {
	_, ok := categories[c]
	return ok
}

// ValidCurrency indica si la moneda está soportada.
func ValidCurrency(c string) bool {
	_, ok := currencies[c]
	return ok
}

// Product representa un producto del catálogo.
// Image es la portada; Images la galería.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Currency    string
	Stock       int
	Image       string
	Images      []string
	InStock     bool
	IsApproved  bool
	CreatedBy   string // admin que lo creó
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MoneyScale decimales que admite un importe (NUMERIC(14,2) en Postgres).
const MoneyScale = 2

// ValidPrice exige un importe no negativo con a lo sumo MoneyScale decimales.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Truncate(MoneyScale))
}
