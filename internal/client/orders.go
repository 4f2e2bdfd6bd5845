package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// OrderQuery filtra el listado de pedidos.
type OrderQuery struct {
	UserID       string
	Status       string
	UpdatedAfter *time.Time
}

func (q OrderQuery) encode() string {
	v := url.Values{}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.UpdatedAfter != nil {
		v.Set("updatedAfter", q.UpdatedAfter.UTC().Format(time.RFC3339Nano))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// OrderCollection es la fachada de la colección de pedidos.
type OrderCollection struct {
	c *Client
}

// Find devuelve los pedidos que cumplen el filtro, más recientes primero.
func (o *OrderCollection) Find(ctx context.Context, q OrderQuery) ([]entity.Order, error) {
	var out []entity.Order
	if err := o.c.apiRequest(ctx, http.MethodGet, "/api/orders"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne devuelve el pedido o (nil, nil) si no existe.
func (o *OrderCollection) FindOne(ctx context.Context, id string) (*entity.Order, error) {
	var out entity.Order
	err := o.c.apiRequest(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InsertOne crea un pedido y emite orderCreated con el documento creado.
func (o *OrderCollection) InsertOne(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	var out entity.Order
	if err := o.c.apiRequest(ctx, http.MethodPost, "/api/orders", in, &out); err != nil {
		return nil, err
	}
	o.c.events.Emit(EventOrderCreated, &out)
	return &out, nil
}

// UpdateOne aplica un parche y, si hubo modificación, relee el documento y
// emite orderUpdated con el estado posterior.
func (o *OrderCollection) UpdateOne(ctx context.Context, id string, in dto.UpdateOrderRequest) (int64, error) {
	var res dto.UpdateResult
	if err := o.c.apiRequest(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id), in, &res); err != nil {
		if err == errNotFound {
			return 0, nil
		}
		return 0, err
	}
	if res.ModifiedCount > 0 {
		if updated, err := o.FindOne(ctx, id); err == nil && updated != nil {
			o.c.events.Emit(EventOrderUpdated, updated)
		}
	}
	return res.ModifiedCount, nil
}
