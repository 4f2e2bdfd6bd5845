package dto

// CreateIntentRequest solicitud de intento de pago. Amount en centavos.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentSuccessRequest confirmación de pago del cliente.
type PaymentSuccessRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// PaymentSuccessResponse resultado de la confirmación.
type PaymentSuccessResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
