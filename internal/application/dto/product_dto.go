package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo admin).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    string          `json:"category" validate:"required"`
	Currency    string          `json:"currency"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	InStock     *bool           `json:"inStock"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Currency    *string          `json:"currency"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Images      []string         `json:"images"`
	InStock     *bool            `json:"inStock"`
	IsApproved  *bool            `json:"isApproved"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	InStock     bool            `json:"inStock"`
	IsApproved  bool            `json:"isApproved"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
