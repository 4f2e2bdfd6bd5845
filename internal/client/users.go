package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// UserQuery filtra el listado de usuarios.
type UserQuery struct {
	Role         string
	UpdatedAfter *time.Time
}

func (q UserQuery) encode() string {
	v := url.Values{}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.UpdatedAfter != nil {
		v.Set("updatedAfter", q.UpdatedAfter.UTC().Format(time.RFC3339Nano))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// UserCollection es la fachada de la colección de usuarios.
type UserCollection struct {
	c *Client
}

// Find devuelve los usuarios que cumplen el filtro.
func (u *UserCollection) Find(ctx context.Context, q UserQuery) ([]entity.User, error) {
	var out []entity.User
	if err := u.c.apiRequest(ctx, http.MethodGet, "/api/users"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne devuelve el usuario o (nil, nil) si no existe.
func (u *UserCollection) FindOne(ctx context.Context, id string) (*entity.User, error) {
	var out entity.User
	err := u.c.apiRequest(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &out)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByEmail devuelve el usuario con ese email o (nil, nil) si no existe.
func (u *UserCollection) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out entity.User
	err := u.c.apiRequest(ctx, http.MethodGet, "/api/users/email/"+url.PathEscape(email), nil, &out)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InsertOne crea un usuario y emite userCreated con el documento creado.
func (u *UserCollection) InsertOne(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	var out entity.User
	if err := u.c.apiRequest(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return nil, err
	}
	u.c.events.Emit(EventUserCreated, &out)
	return &out, nil
}

// UpdateOne aplica un parche y, si hubo modificación, relee el documento y
// emite userUpdated con el estado posterior.
func (u *UserCollection) UpdateOne(ctx context.Context, id string, in dto.UpdateUserRequest) (int64, error) {
	var res dto.UpdateResult
	if err := u.c.apiRequest(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id), in, &res); err != nil {
		if err == errNotFound {
			return 0, nil
		}
		return 0, err
	}
	if res.ModifiedCount > 0 {
		if updated, err := u.FindOne(ctx, id); err == nil && updated != nil {
			u.c.events.Emit(EventUserUpdated, updated)
		}
	}
	return res.ModifiedCount, nil
}
