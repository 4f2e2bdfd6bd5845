package repository

import (
	"context"
	"time"

	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// ProductFilter criterios opcionales de búsqueda de productos (semántica AND).
// Los punteros distinguen "no filtrar" de "filtrar por false".
type ProductFilter struct {
	Category     string
	Featured     *bool
	BestSeller   *bool
	IsNew        *bool
	UpdatedAfter *time.Time
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
