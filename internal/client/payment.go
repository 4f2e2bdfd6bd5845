package client

import (
	"context"
	"net/http"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// CreatePaymentIntent pide al procesador simulado un intento de pago por
// amount centavos en la moneda dada.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*entity.PaymentIntent, error) {
	var out entity.PaymentIntent
	in := dto.CreateIntentRequest{Amount: amount, Currency: currency}
	if err := c.apiRequest(ctx, http.MethodPost, "/api/payment/create-intent", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment confirma un intento de pago y devuelve su estado final.
func (c *Client) ConfirmPayment(ctx context.Context, intentID string) (*dto.PaymentSuccessResponse, error) {
	var out dto.PaymentSuccessResponse
	in := dto.PaymentSuccessRequest{PaymentIntentID: intentID}
	if err := c.apiRequest(ctx, http.MethodPost, "/api/payment/success", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login autentica contra la API y fija el token del cliente para las
// peticiones posteriores.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	in := dto.LoginRequest{Email: email, Password: password}
	if err := c.apiRequest(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}
