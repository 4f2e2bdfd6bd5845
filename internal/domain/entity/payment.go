package entity

// Estados de un intento de pago (vocabulario del proveedor simulado).
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusSucceeded             = "succeeded"
)

// PaymentIntent intento de pago del proveedor simulado.
// Amount está en centavos, como en la pasarela real que imita.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}
