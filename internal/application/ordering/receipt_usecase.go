package ordering

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pedido.
type ReceiptUseCase struct {
	orders    *OrderUseCase
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders *OrderUseCase, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, userRepo: userRepo, generator: generator}
}

// Receipt devuelve el PDF del pedido al dueño o a un admin.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, actor entity.Identity, orderID string) ([]byte, error) {
	order, err := uc.orders.load(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		// el cliente pudo haber sido eliminado; el comprobante sigue siendo válido
		customer = &entity.User{ID: order.UserID}
	}
	return uc.generator.Generate(order, customer)
}
