package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// CreateOrderRequest creación de orden desde el checkout.
// Total es opcional: el servidor siempre recalcula la suma de las líneas y,
// si el cliente envía un total distinto, la orden se rechaza.
type CreateOrderRequest struct {
	UserID          string                 `json:"userId"`
	Items           []entity.OrderItem     `json:"items"`
	Total           *decimal.Decimal       `json:"total"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentStatus   string                 `json:"paymentStatus,omitempty"`
	PaymentIntentID string                 `json:"paymentIntentId,omitempty"`
}

// UpdateOrderRequest parche parcial de orden (gestión desde el dashboard).
type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}
