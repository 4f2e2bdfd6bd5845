package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
)

// ProductQuery filtra el listado de productos. Los punteros nil omiten el
// criterio.
type ProductQuery struct {
	Category     string
	Featured     *bool
	BestSeller   *bool
	IsNew        *bool
	UpdatedAfter *time.Time
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.BestSeller != nil {
		v.Set("bestSeller", strconv.FormatBool(*q.BestSeller))
	}
	if q.IsNew != nil {
		v.Set("new", strconv.FormatBool(*q.IsNew))
	}
	if q.UpdatedAfter != nil {
		v.Set("updatedAfter", q.UpdatedAfter.UTC().Format(time.RFC3339Nano))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ProductCollection es la fachada de la colección de productos.
type ProductCollection struct {
	c *Client
}

// Find devuelve los productos que cumplen el filtro.
func (p *ProductCollection) Find(ctx context.Context, q ProductQuery) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.c.apiRequest(ctx, http.MethodGet, "/api/products"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne devuelve el producto o (nil, nil) si no existe.
func (p *ProductCollection) FindOne(ctx context.Context, id string) (*entity.Product, error) {
	var out entity.Product
	err := p.c.apiRequest(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InsertOne crea un producto y emite productCreated con el documento creado.
func (p *ProductCollection) InsertOne(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	var out entity.Product
	if err := p.c.apiRequest(ctx, http.MethodPost, "/api/products", in, &out); err != nil {
		return nil, err
	}
	p.c.events.Emit(EventProductCreated, &out)
	return &out, nil
}

// UpdateOne aplica un parche y devuelve el número de documentos modificados.
// Si hubo modificación relee el documento y emite productUpdated con el
// estado posterior.
func (p *ProductCollection) UpdateOne(ctx context.Context, id string, in dto.UpdateProductRequest) (int64, error) {
	var res dto.UpdateResult
	if err := p.c.apiRequest(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(id), in, &res); err != nil {
		if err == errNotFound {
			return 0, nil
		}
		return 0, err
	}
	if res.ModifiedCount > 0 {
		if updated, err := p.FindOne(ctx, id); err == nil && updated != nil {
			p.c.events.Emit(EventProductUpdated, updated)
		}
	}
	return res.ModifiedCount, nil
}

// DeleteOne borra un producto. Toma una instantánea previa para que el
// evento productDeleted lleve el documento borrado; si el borrado no
// elimina nada, no se emite.
func (p *ProductCollection) DeleteOne(ctx context.Context, id string) (int64, error) {
	snapshot, err := p.FindOne(ctx, id)
	if err != nil {
		return 0, err
	}
	var res dto.DeleteResult
	if err := p.c.apiRequest(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, &res); err != nil {
		if err == errNotFound {
			return 0, nil
		}
		return 0, err
	}
	if res.DeletedCount > 0 && snapshot != nil {
		p.c.events.Emit(EventProductDeleted, snapshot)
	}
	return res.DeletedCount, nil
}
