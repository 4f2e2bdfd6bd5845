package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
)

var orderStatuses = map[string]bool{
	entity.OrderStatusPending:    true,
	entity.OrderStatusProcessing: true,
	entity.OrderStatusShipped:    true,
	entity.OrderStatusDelivered:  true,
	entity.OrderStatusCancelled:  true,
}

var paymentStatuses = map[string]bool{
	entity.PaymentStatusPending: true,
	entity.PaymentStatusPaid:    true,
	entity.PaymentStatusFailed:  true,
}

// OrderUseCase casos de uso de órdenes: creación desde el checkout y gestión.
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// Create crea una orden. El total siempre se recalcula de las líneas; si el
// cliente envía un total que no coincide, la orden se rechaza (el total
// almacenado nunca puede divergir de sus líneas).
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.UserID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 || !it.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if in.Total != nil && !in.Total.Equal(total) {
		return nil, domain.ErrInvalidInput
	}
	status := entity.OrderStatusPending
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PaymentStatusPending
	}
	if !paymentStatuses[paymentStatus] {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	order := &entity.Order{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		Items:           in.Items,
		Total:           total,
		Status:          status,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatus,
		PaymentIntentID: in.PaymentIntentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID obtiene una orden. Devuelve (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista órdenes por usuario y/o estado, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	return uc.repo.List(ctx, filter)
}

// Update aplica un parche de estado (status / paymentStatus) y estampa updatedAt.
// Devuelve el conteo modificado: 0 si la orden no existe.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (int64, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, nil
	}
	if in.Status != nil {
		if !orderStatuses[*in.Status] {
			return 0, domain.ErrInvalidInput
		}
		order.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		if !paymentStatuses[*in.PaymentStatus] {
			return 0, domain.ErrInvalidInput
		}
		order.PaymentStatus = *in.PaymentStatus
	}
	order.UpdatedAt = time.Now().UTC()
	return uc.repo.Update(ctx, order)
}
