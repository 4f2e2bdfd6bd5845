package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/client"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API falsa en memoria para ejercitar la fachada
// ──────────────────────────────────────────────────────────────────────────────

type fakeAPI struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	nextID   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{products: make(map[string]*entity.Product)}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			out := []entity.Product{}
			for _, p := range f.products {
				out = append(out, *p)
			}
			json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var in dto.CreateProductRequest
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "nombre requerido"})
				return
			}
			f.nextID++
			now := time.Now().UTC()
			p := &entity.Product{
				ID: "p" + strconv.Itoa(f.nextID), Name: in.Name, Price: in.Price,
				Category: in.Category, Stock: in.Stock, CreatedAt: now, UpdatedAt: now,
			}
			f.products[p.ID] = p
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(p)
		}
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		p, ok := f.products[id]
		switch r.Method {
		case http.MethodGet:
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "Product not found"})
				return
			}
			json.NewEncoder(w).Encode(p)
		case http.MethodPatch:
			var in dto.UpdateProductRequest
			json.NewDecoder(r.Body).Decode(&in)
			var count int64
			if ok {
				if in.Name != nil {
					p.Name = *in.Name
				}
				if in.Price != nil {
					p.Price = *in.Price
				}
				p.UpdatedAt = time.Now().UTC()
				count = 1
			}
			json.NewEncoder(w).Encode(dto.UpdateResult{ModifiedCount: count})
		case http.MethodDelete:
			var count int64
			if ok {
				delete(f.products, id)
				count = 1
			}
			json.NewEncoder(w).Encode(dto.DeleteResult{DeletedCount: count})
		}
	})
	return mux
}

func newTestClient(t *testing.T) (*client.Client, *fakeAPI, func()) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	c := client.New(srv.URL, logger.Nop())
	return c, api, srv.Close
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

// Un documento ausente no es un error: FindOne devuelve (nil, nil).
func TestFindOne_Ausente_DevuelveNilNil(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	p, err := c.Products.FindOne(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, p)
}

// Un fallo de transporte sí escala como error.
func TestFindOne_ServidorCaido_DevuelveError(t *testing.T) {
	c, _, done := newTestClient(t)
	done() // servidor cerrado antes de la llamada

	_, err := c.Products.FindOne(context.Background(), "p1")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras y eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestInsertOne_EmiteProductCreated(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	var got *entity.Product
	c.Events().On(client.EventProductCreated, func(p any) {
		got = p.(*entity.Product)
	})

	created, err := c.Products.InsertOne(context.Background(), dto.CreateProductRequest{
		Name: "Camiseta básica", Price: decimal.RequireFromString("19.99"), Stock: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, got, "InsertOne debe emitir productCreated")
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Camiseta básica", got.Name)
}

// Un alta rechazada por el servidor propaga el error y no emite nada.
func TestInsertOne_Rechazado_PropagaErrorSinEvento(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	emitted := false
	c.Events().On(client.EventProductCreated, func(any) { emitted = true })

	_, err := c.Products.InsertOne(context.Background(), dto.CreateProductRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nombre requerido",
		"el error debe llevar el mensaje del servidor")
	assert.False(t, emitted)
}

// UpdateOne con modificación debe releer y emitir el estado POSTERIOR.
func TestUpdateOne_EmiteEstadoPosterior(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	created, err := c.Products.InsertOne(context.Background(), dto.CreateProductRequest{
		Name: "Original", Price: decimal.RequireFromString("10"), Stock: 1,
	})
	require.NoError(t, err)

	var got *entity.Product
	c.Events().On(client.EventProductUpdated, func(p any) {
		got = p.(*entity.Product)
	})

	newName := "Renombrado"
	count, err := c.Products.UpdateOne(context.Background(), created.ID, dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.NotNil(t, got)
	assert.Equal(t, "Renombrado", got.Name, "el evento debe llevar el documento ya actualizado")
}

// Sin modificación (documento inexistente) no hay evento.
func TestUpdateOne_SinModificacion_NoEmite(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	emitted := false
	c.Events().On(client.EventProductUpdated, func(any) { emitted = true })

	name := "x"
	count, err := c.Products.UpdateOne(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.False(t, emitted)
}

// DeleteOne emite productDeleted con la instantánea previa al borrado.
func TestDeleteOne_EmiteInstantaneaPrevia(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	created, err := c.Products.InsertOne(context.Background(), dto.CreateProductRequest{
		Name: "Efímero", Price: decimal.RequireFromString("5"), Stock: 1,
	})
	require.NoError(t, err)

	var got *entity.Product
	c.Events().On(client.EventProductDeleted, func(p any) {
		got = p.(*entity.Product)
	})

	count, err := c.Products.DeleteOne(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.NotNil(t, got)
	assert.Equal(t, "Efímero", got.Name, "el payload debe ser el documento borrado")

	// Y el documento ya no está.
	p, err := c.Products.FindOne(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDeleteOne_Inexistente_SinEvento(t *testing.T) {
	c, _, done := newTestClient(t)
	defer done()

	emitted := false
	c.Events().On(client.EventProductDeleted, func(any) { emitted = true })

	count, err := c.Products.DeleteOne(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.False(t, emitted)
}
