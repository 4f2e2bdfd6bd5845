package usecase_test

import (
	"context"
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

// ──────────────────────────────────────────────────────────────────────────────
// Stub de repositorio en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[string]*entity.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*entity.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		if filter.UpdatedAfter != nil && !p.UpdatedAt.After(*filter.UpdatedAfter) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *entity.Product) (int64, error) {
	if _, ok := r.products[p.ID]; !ok {
		return 0, nil
	}
	r.products[p.ID] = p
	return 1, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func validProduct() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:     "Camiseta logo",
		Price:    decimal.RequireFromString("19.99"),
		Category: "basics",
		Colors:   []string{"black", "white"},
		Sizes:    []string{"S", "M", "L"},
		Stock:    25,
	}
}

func TestProductCreate_AsignaIDYTimestamps(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	p, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID, "debe asignarse un ID")
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt, "al crear, createdAt y updatedAt coinciden")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	sinNombre := validProduct()
	sinNombre.Name = ""
	_, err := uc.Create(context.Background(), sinNombre)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	precioCero := validProduct()
	precioCero.Price = decimal.Zero
	_, err = uc.Create(context.Background(), precioCero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stockNegativo := validProduct()
	stockNegativo.Stock = -1
	_, err = uc.Create(context.Background(), stockNegativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// El parche solo toca los campos presentes y avanza updatedAt.
func TestProductUpdate_ParcheParcial(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)
	created, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	featured := true
	newPrice := decimal.RequireFromString("24.99")
	count, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Featured: &featured,
		Price:    &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.Featured)
	assert.True(t, got.Price.Equal(newPrice))
	assert.Equal(t, "Camiseta logo", got.Name, "los campos ausentes no se tocan")
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt) || got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestProductUpdate_Inexistente_CeroModificados(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	name := "x"
	count, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestProductDelete(t *testing.T) {
	repo := newStubProductRepo()
	uc := usecase.NewProductUseCase(repo)
	created, err := uc.Create(context.Background(), validProduct())
	require.NoError(t, err)

	count, err := uc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = uc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "borrar dos veces devuelve cero")
}

func TestProductGetByID_Ausente_NilNil(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	p, err := uc.GetByID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, p)
}
