package usecase_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/application/usecase"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
)

type stubOrderRepo struct {
	orders map[string]*entity.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *entity.Order) (int64, error) {
	if _, ok := r.orders[o.ID]; !ok {
		return 0, nil
	}
	r.orders[o.ID] = o
	return 1, nil
}

func orderLines() []entity.OrderItem {
	return []entity.OrderItem{
		{ProductID: "p1", Quantity: 2, Color: "black", Size: "M",
			Price: decimal.RequireFromString("19.99"), Name: "Camiseta negra"},
		{ProductID: "p2", Quantity: 1, Color: "white", Size: "L",
			Price: decimal.RequireFromString("24.99"), Name: "Camiseta blanca"},
	}
}

// El total almacenado es siempre la suma de price×quantity de las líneas.
func TestOrderCreate_RecalculaTotal(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStubOrderRepo())

	o, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		UserID: "u1",
		Items:  orderLines(),
	})
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(decimal.RequireFromString("64.97")),
		"total esperado 64.97, obtenido %s", o.Total)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, entity.PaymentStatusPending, o.PaymentStatus)
	assert.NotEmpty(t, o.ID)
}

// Un total enviado por el cliente que no coincide con las líneas se rechaza.
func TestOrderCreate_TotalDivergente_Rechazado(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStubOrderRepo())

	malTotal := decimal.RequireFromString("1.00")
	_, err := uc.Create(context.Background(), dto.CreateOrderRequest{
		UserID: "u1",
		Items:  orderLines(),
		Total:  &malTotal,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_Validaciones(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStubOrderRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateOrderRequest{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas debe rechazarse")

	_, err = uc.Create(ctx, dto.CreateOrderRequest{Items: orderLines()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin userId debe rechazarse")

	conCantidadCero := orderLines()
	conCantidadCero[0].Quantity = 0
	_, err = uc.Create(ctx, dto.CreateOrderRequest{UserID: "u1", Items: conCantidadCero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")

	_, err = uc.Create(ctx, dto.CreateOrderRequest{
		UserID: "u1", Items: orderLines(), PaymentStatus: "inventado",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "paymentStatus desconocido debe rechazarse")
}

func TestOrderUpdate_EstadosValidos(t *testing.T) {
	repo := newStubOrderRepo()
	uc := usecase.NewOrderUseCase(repo)
	o, err := uc.Create(context.Background(), dto.CreateOrderRequest{UserID: "u1", Items: orderLines()})
	require.NoError(t, err)

	shipped := entity.OrderStatusShipped
	paid := entity.PaymentStatusPaid
	count, err := uc.Update(context.Background(), o.ID, dto.UpdateOrderRequest{
		Status:        &shipped,
		PaymentStatus: &paid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := uc.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, got.Status)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus)
	assert.True(t, got.UpdatedAt.After(o.UpdatedAt) || got.UpdatedAt.Equal(o.UpdatedAt))
}

func TestOrderUpdate_EstadoInvalido_Rechazado(t *testing.T) {
	repo := newStubOrderRepo()
	uc := usecase.NewOrderUseCase(repo)
	o, err := uc.Create(context.Background(), dto.CreateOrderRequest{UserID: "u1", Items: orderLines()})
	require.NoError(t, err)

	invalido := "volando"
	_, err = uc.Update(context.Background(), o.ID, dto.UpdateOrderRequest{Status: &invalido})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderUpdate_Inexistente_CeroModificados(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStubOrderRepo())

	shipped := entity.OrderStatusShipped
	count, err := uc.Update(context.Background(), "no-existe", dto.UpdateOrderRequest{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOrderList_FiltraPorUsuario(t *testing.T) {
	repo := newStubOrderRepo()
	uc := usecase.NewOrderUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateOrderRequest{UserID: "u1", Items: orderLines()})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateOrderRequest{UserID: "u2", Items: orderLines()})
	require.NoError(t, err)

	out, err := uc.List(ctx, repository.OrderFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].UserID)
}
