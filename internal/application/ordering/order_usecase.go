package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// OrderUseCase creación, consulta y cambio de estado de pedidos.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo, now: time.Now}
}

// Create valida el carrito, toma la foto de cada producto y persiste cabecera y líneas en una sola transacción.
// El dueño del pedido es siempre el usuario autenticado.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.OrderItems) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	address := entity.ShippingAddress{
		Address:    strings.TrimSpace(in.ShippingAddress.Address),
		City:       strings.TrimSpace(in.ShippingAddress.City),
		PostalCode: strings.TrimSpace(in.ShippingAddress.PostalCode),
		Country:    strings.TrimSpace(in.ShippingAddress.Country),
	}
	if address.Country == "" {
		address.Country = entity.DefaultCountry
	}
	if !address.Complete() {
		return nil, fmt.Errorf("%w: dirección de envío incompleta", domain.ErrInvalidInput)
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCashOnDelivery
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago %q no soportado", domain.ErrInvalidInput, in.PaymentMethod)
	}

	// Validar líneas y resolver productos (fuera de la tx, solo lectura)
	orderID := uuid.New().String()
	items := make([]entity.OrderItem, 0, len(in.OrderItems))
	for i, line := range in.OrderItems {
		if strings.TrimSpace(line.ProductID) == "" {
			return nil, fmt.Errorf("%w: ítem %d sin producto", domain.ErrInvalidInput, i)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: ítem %d con cantidad menor a 1", domain.ErrInvalidInput, i)
		}
		if line.Price != nil && line.Price.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %d con precio negativo", domain.ErrInvalidInput, i)
		}
		if line.Price != nil && !entity.ValidPrice(*line.Price) {
			return nil, fmt.Errorf("%w: ítem %d con precio de más de %d decimales", domain.ErrInvalidInput, i, entity.MoneyScale)
		}
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.ProductID)
		}
		price := product.Price
		if line.Price != nil {
			price = *line.Price
		}
		currency := line.Currency
		if currency == "" {
			currency = product.Currency
		}
		if currency == "" {
			currency = entity.DefaultCurrency
		}
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			Price:     price,
			Currency:  currency,
		})
	}

	now := uc.now()
	order := &entity.Order{
		ID:              orderID,
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   entity.PaymentStatusPending,
		TotalPrice:      entity.TotalOf(items),
		OrderStatus:     entity.OrderStatusProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.txRunner.RunInTx(ctx, func(orders repository.OrderRepository) error {
		return orders.Create(ctx, order)
	}); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Get devuelve un pedido al dueño o a un admin.
func (uc *OrderUseCase) Get(ctx context.Context, actor entity.Identity, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListAll lista todos los pedidos paginados (solo admin).
func (uc *OrderUseCase) ListAll(ctx context.Context, limit, offset int) (*dto.OrderListResponse, error) {
	limit, offset = dto.NormalizePage(limit, offset)
	list, err := uc.orderRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	res := toOrderList(list)
	res.Page = &dto.PageResponse{Limit: limit, Offset: offset, Total: total}
	return res, nil
}

// ListByUser lista los pedidos de un usuario; solo el propio usuario o un admin.
func (uc *OrderUseCase) ListByUser(ctx context.Context, actor entity.Identity, userID string) (*dto.OrderListResponse, error) {
	if !actor.CanAccess(userID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// UpdateStatus cambia orderStatus y/o paymentStatus. Delivered registra deliveredAt.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if in.OrderStatus == nil && in.PaymentStatus == nil {
		return nil, fmt.Errorf("%w: se requiere orderStatus o paymentStatus", domain.ErrInvalidStatus)
	}
	if in.OrderStatus != nil && !entity.ValidOrderStatus(*in.OrderStatus) {
		return nil, fmt.Errorf("%w: orderStatus %q", domain.ErrInvalidStatus, *in.OrderStatus)
	}
	if in.PaymentStatus != nil && !entity.ValidPaymentStatus(*in.PaymentStatus) {
		return nil, fmt.Errorf("%w: paymentStatus %q", domain.ErrInvalidStatus, *in.PaymentStatus)
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	now := uc.now()
	if in.OrderStatus != nil {
		order.OrderStatus = *in.OrderStatus
		if order.OrderStatus == entity.OrderStatusDelivered {
			order.DeliveredAt = &now
		}
	}
	if in.PaymentStatus != nil {
		order.PaymentStatus = *in.PaymentStatus
	}
	order.UpdatedAt = now
	if err := uc.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Delete elimina un pedido (solo admin).
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}

func (uc *OrderUseCase) load(ctx context.Context, actor entity.Identity, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !actor.CanAccess(order.UserID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func toOrderList(list []*entity.Order) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Count: len(items), Items: items}
}

// ToOrderResponse mapea la entidad a la salida HTTP.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Currency:  it.Currency,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		OrderItems: items,
		ShippingAddress: dto.ShippingAddressRequest{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TotalPrice:    o.TotalPrice,
		OrderStatus:   o.OrderStatus,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
