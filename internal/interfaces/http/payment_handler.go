package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/application/payment"
	"github.com/jhoicas/likeus-api/internal/domain"
)

// PaymentHandler expone el procesador de pagos simulado.
type PaymentHandler struct {
	uc *payment.UseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payment.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateIntent godoc
// @Summary      Crear un intento de pago
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIntentRequest  true  "Monto en centavos y moneda"
// @Success      200   {object}  entity.PaymentIntent
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment/create-intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var in dto.CreateIntentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.CreateIntent(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "amount debe ser mayor que cero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(out)
}

// Success godoc
// @Summary      Confirmar un intento de pago
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentSuccessRequest  true  "ID del intento"
// @Success      200   {object}  dto.PaymentSuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment/success [post]
func (h *PaymentHandler) Success(c *fiber.Ctx) error {
	var in dto.PaymentSuccessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.ConfirmSuccess(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "paymentIntentId es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(out)
}
