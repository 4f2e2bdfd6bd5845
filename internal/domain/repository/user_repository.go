package repository

import (
	"context"
	"time"

	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// UserFilter criterios opcionales de búsqueda de usuarios (semántica AND).
type UserFilter struct {
	Role         string
	UpdatedAfter *time.Time
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los "no encontrado" se devuelven como (nil, nil), no como error.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) (int64, error)
}
