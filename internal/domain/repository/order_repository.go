package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	// Create persiste la cabecera y todas las líneas del pedido.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context) (int, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	// UpdateStatus persiste order_status, payment_status, delivered_at y updated_at.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
