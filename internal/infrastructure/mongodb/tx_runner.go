package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ ordering.TxRunner = (*TxRunner)(nil)

// TxRunner el pedido y sus líneas son un solo documento, cuya escritura ya es atómica;
// no se abre sesión ni transacción.
type TxRunner struct {
	orders *OrderRepo
}

// NewTxRunner construye el runner sobre la base dada.
func NewTxRunner(db *mongo.Database) *TxRunner {
	return &TxRunner{orders: NewOrderRepository(db)}
}

// RunInTx ejecuta fn con el repositorio de pedidos.
func (r *TxRunner) RunInTx(_ context.Context, fn func(orders repository.OrderRepository) error) error {
	return fn(r.orders)
}
