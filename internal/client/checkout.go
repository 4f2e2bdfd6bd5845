package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/cart"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Checkout ejecuta el flujo de compra completo: crea el intento de pago por
// el total del carrito, lo confirma, registra el pedido y vacía el carrito.
// El carrito solo se vacía una vez y únicamente si el pedido quedó creado;
// cualquier fallo anterior lo deja intacto para reintentar.
func (c *Client) Checkout(ctx context.Context, store *cart.Store, userID string, address entity.ShippingAddress) (*entity.Order, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, domain.ErrCartEmpty
	}
	total := store.Total()

	// El procesador trabaja en centavos.
	cents := total.Mul(hundred).IntPart()
	intent, err := c.CreatePaymentIntent(ctx, cents, "usd")
	if err != nil {
		return nil, fmt.Errorf("creando intento de pago: %w", err)
	}

	confirmation, err := c.ConfirmPayment(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("confirmando pago %s: %w", intent.ID, err)
	}
	if confirmation.Status != entity.IntentStatusSucceeded {
		return nil, fmt.Errorf("el pago %s terminó en estado %q", intent.ID, confirmation.Status)
	}

	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			Price:     it.Price,
			Name:      it.Name,
			Image:     it.Image,
		})
	}
	order, err := c.Orders.InsertOne(ctx, dto.CreateOrderRequest{
		UserID:          userID,
		Items:           orderItems,
		Total:           &total,
		ShippingAddress: address,
		PaymentMethod:   "card",
		PaymentStatus:   entity.PaymentStatusPaid,
		PaymentIntentID: intent.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("registrando pedido: %w", err)
	}

	if err := store.Clear(); err != nil {
		c.log.Error().Err(err).Str("order", order.ID).
			Msg("el pedido quedó creado pero no se pudo vaciar el carrito")
	}
	return order, nil
}
