package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/likeus-api/internal/client"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

// pollAPI simula la API para el sondeador: responde a los tres listados y
// filtra productos por updatedAfter. Puede forzarse a fallar.
type pollAPI struct {
	mu       sync.Mutex
	products []entity.Product
	failing  bool
}

func (f *pollAPI) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *pollAPI) upsert(p entity.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = p
			return
		}
	}
	f.products = append(f.products, p)
}

func (f *pollAPI) handler() http.Handler {
	mux := http.NewServeMux()
	empty := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]any{})
	}
	mux.HandleFunc("/api/users", empty)
	mux.HandleFunc("/api/orders", empty)
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failing {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "db down"})
			return
		}
		out := []entity.Product{}
		since, _ := time.Parse(time.RFC3339Nano, r.URL.Query().Get("updatedAfter"))
		for _, p := range f.products {
			if p.UpdatedAt.After(since) {
				out = append(out, p)
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	return mux
}

func startPoller(t *testing.T, api *pollAPI) (*client.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	c := client.New(srv.URL, logger.Nop())
	p := client.NewPoller(c, 10*time.Millisecond)
	stop := p.Start(context.Background())
	return c, func() {
		stop()
		srv.Close()
	}
}

func tshirt(id string, created, updated time.Time) entity.Product {
	return entity.Product{
		ID: id, Name: "Camiseta " + id,
		Price: decimal.RequireFromString("19.99"),
		CreatedAt: created, UpdatedAt: updated,
	}
}

// Un documento modificado tras el arranque debe notificarse como update.
func TestPoller_DetectaModificacionRemota(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	var got *entity.Product
	c.Events().On(client.EventProductUpdated, func(p any) {
		mu.Lock()
		got = p.(*entity.Product)
		mu.Unlock()
	})

	past := time.Now().UTC().Add(-time.Hour)
	api.upsert(tshirt("p1", past, time.Now().UTC().Add(50*time.Millisecond)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.ID == "p1"
	}, 2*time.Second, 10*time.Millisecond, "el sondeador debe emitir productUpdated")
}

// Un documento creado tras el arranque se notifica como creación.
func TestPoller_DetectaAltaRemota(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	var created, updated bool
	c.Events().On(client.EventProductCreated, func(any) {
		mu.Lock()
		created = true
		mu.Unlock()
	})
	c.Events().On(client.EventProductUpdated, func(any) {
		mu.Lock()
		updated = true
		mu.Unlock()
	})

	now := time.Now().UTC().Add(50 * time.Millisecond)
	api.upsert(tshirt("p1", now, now))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return created
	}, 2*time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.False(t, updated, "un alta no debe notificarse además como modificación")
	mu.Unlock()
}

// Un documento con updatedAt anterior al arranque nunca se notifica.
func TestPoller_IgnoraCambiosAnterioresAlArranque(t *testing.T) {
	api := &pollAPI{}
	past := time.Now().UTC().Add(-time.Hour)
	api.upsert(tshirt("viejo", past, past))

	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	var emitted bool
	c.Events().On(client.EventProductUpdated, func(any) {
		mu.Lock()
		emitted = true
		mu.Unlock()
	})
	c.Events().On(client.EventProductCreated, func(any) {
		mu.Lock()
		emitted = true
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	assert.False(t, emitted, "los cambios previos al arranque no deben notificarse")
	mu.Unlock()
}

// Una pasada fallida conserva la marca de agua: un cambio ocurrido durante
// la caída se notifica cuando el servidor se recupera.
func TestPoller_FalloConservaMarcaDeAgua(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	var got *entity.Product
	c.Events().On(client.EventProductUpdated, func(p any) {
		mu.Lock()
		got = p.(*entity.Product)
		mu.Unlock()
	})

	api.setFailing(true)
	time.Sleep(50 * time.Millisecond)

	// El cambio ocurre mientras el servidor está caído.
	past := time.Now().UTC().Add(-time.Hour)
	api.upsert(tshirt("p1", past, time.Now().UTC()))
	time.Sleep(50 * time.Millisecond)

	api.setFailing(false)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.ID == "p1"
	}, 2*time.Second, 10*time.Millisecond,
		"el cambio ocurrido durante la caída debe notificarse al recuperarse")
}

// Dos documentos pueden compartir updatedAt aunque se confirmen en pasadas
// distintas: el que llega tarde también debe notificarse, y el primero una
// sola vez pese a las reentregas del solapamiento.
func TestPoller_ConfirmacionTardiaConMismoTimestamp(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	counts := map[string]int{}
	c.Events().On(client.EventProductUpdated, func(p any) {
		mu.Lock()
		counts[p.(*entity.Product).ID]++
		mu.Unlock()
	})

	past := time.Now().UTC().Add(-time.Hour)
	stamp := time.Now().UTC().Add(50 * time.Millisecond)

	api.upsert(tshirt("a", past, stamp))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return counts["a"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	// B se confirma cuando el sondeador ya observó ese timestamp.
	api.upsert(tshirt("b", past, stamp))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return counts["b"] == 1
	}, 2*time.Second, 10*time.Millisecond,
		"un documento confirmado tarde con el mismo updatedAt debe notificarse")

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, counts["a"], "las reentregas del solapamiento no deben reemitirse")
	mu.Unlock()
}

// Un updatedAt remoto por delante del reloj local se entrega una sola vez:
// la marca de agua nunca retrocede y la deduplicación absorbe las
// relecturas.
func TestPoller_TimestampFuturoSeEntregaUnaVez(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	n := 0
	c.Events().On(client.EventProductUpdated, func(any) {
		mu.Lock()
		n++
		mu.Unlock()
	})

	past := time.Now().UTC().Add(-time.Hour)
	api.upsert(tshirt("p1", past, time.Now().UTC().Add(time.Minute)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return n >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, n, "un timestamp futuro no debe provocar reentregas")
	mu.Unlock()
}

// Una pasada vacía con éxito avanza la marca de agua: un timestamp que
// queda por detrás de la ventana vigente ya no se notifica.
func TestPoller_PasadaVaciaAvanzaMarcaDeAgua(t *testing.T) {
	api := &pollAPI{}
	c, done := startPoller(t, api)
	defer done()

	var mu sync.Mutex
	var emitted bool
	mark := func(any) {
		mu.Lock()
		emitted = true
		mu.Unlock()
	}
	c.Events().On(client.EventProductCreated, mark)
	c.Events().On(client.EventProductUpdated, mark)

	stale := time.Now().UTC().Add(100 * time.Millisecond)

	// Varias pasadas vacías dejan la marca de agua por delante de stale.
	time.Sleep(700 * time.Millisecond)

	api.upsert(tshirt("p1", stale.Add(-time.Hour), stale))
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	assert.False(t, emitted, "la marca de agua avanzada debe excluir timestamps antiguos")
	mu.Unlock()
}

// SetToken puede llamarse con el sondeador en marcha: las peticiones
// siguientes llevan el token nuevo.
func TestPoller_SetTokenConSondeoActivo(t *testing.T) {
	var mu sync.Mutex
	var lastAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()
		json.NewEncoder(w).Encode([]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL, logger.Nop())
	p := client.NewPoller(c, 5*time.Millisecond)
	stop := p.Start(context.Background())
	defer stop()

	for i := 0; i < 50; i++ {
		c.SetToken(fmt.Sprintf("tok-%d", i))
		time.Sleep(time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return lastAuth == "Bearer tok-49"
	}, 2*time.Second, 10*time.Millisecond,
		"las peticiones deben llevar el último token establecido")
}

// Stop detiene las goroutines: tras parar no llegan más notificaciones.
func TestPoller_StopDetieneElSondeo(t *testing.T) {
	api := &pollAPI{}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	c := client.New(srv.URL, logger.Nop())
	p := client.NewPoller(c, 10*time.Millisecond)
	stop := p.Start(context.Background())

	var mu sync.Mutex
	var emitted bool
	c.Events().On(client.EventProductUpdated, func(any) {
		mu.Lock()
		emitted = true
		mu.Unlock()
	})

	stop()
	api.upsert(tshirt("p1", time.Now().UTC().Add(-time.Hour), time.Now().UTC().Add(time.Minute)))
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.False(t, emitted, "tras stop no debe haber más notificaciones")
	mu.Unlock()
}
