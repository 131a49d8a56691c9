package ordering

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un OrderRepository atado a una transacción.
// Si fn retorna error, nada de lo escrito dentro de fn queda persistido.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(orders repository.OrderRepository) error) error
}

// ReceiptGenerator renderiza el comprobante de un pedido (implementado en infrastructure/pdf).
type ReceiptGenerator interface {
	Generate(order *entity.Order, customer *entity.User) ([]byte, error)
}
