package payment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// UseCase pasarela de pagos simulada. No hay liquidación real: los intentos
// no se persisten y la confirmación siempre responde "succeeded", igual que
// el proveedor de desarrollo al que reemplazará una integración real.
type UseCase struct{}

// NewUseCase construye la pasarela simulada.
func NewUseCase() *UseCase {
	return &UseCase{}
}

// CreateIntent crea un intento de pago con id y client_secret opacos.
// Amount llega en centavos; currency vacío se normaliza a "usd".
func (uc *UseCase) CreateIntent(in dto.CreateIntentRequest) (*entity.PaymentIntent, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToLower(in.Currency)
	if currency == "" {
		currency = "usd"
	}
	id := "pi_" + opaqueToken()
	return &entity.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + opaqueToken(),
		Amount:       in.Amount,
		Currency:     currency,
		Status:       entity.IntentStatusRequiresPaymentMethod,
	}, nil
}

// ConfirmSuccess marca el intento como exitoso.
func (uc *UseCase) ConfirmSuccess(in dto.PaymentSuccessRequest) (*dto.PaymentSuccessResponse, error) {
	if in.PaymentIntentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return &dto.PaymentSuccessResponse{
		ID:     in.PaymentIntentID,
		Status: entity.IntentStatusSucceeded,
	}, nil
}

func opaqueToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:13]
}
