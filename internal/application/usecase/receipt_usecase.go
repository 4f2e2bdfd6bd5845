package usecase

import (
	"context"

	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
)

// ReceiptGenerator puerto de generación del comprobante PDF de una orden.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error)
}

// ReceiptUseCase arma el comprobante de una orden para el dashboard.
type ReceiptUseCase struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders repository.OrderRepository, users repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, users: users, generator: generator}
}

// Generate devuelve los bytes del PDF del comprobante de la orden.
// Si el usuario de la orden ya no existe, el comprobante sale sin datos de cliente.
func (uc *ReceiptUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceipt(ctx, order, customer)
}
