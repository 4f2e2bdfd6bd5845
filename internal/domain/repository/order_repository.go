package repository

import (
	"context"
	"time"

	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// OrderFilter criterios opcionales de búsqueda de órdenes (semántica AND).
type OrderFilter struct {
	UserID       string
	Status       string
	UpdatedAfter *time.Time
}

// OrderRepository define el puerto de persistencia para Order (DIP).
// List devuelve las órdenes ordenadas por createdAt descendente.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) (int64, error)
}
