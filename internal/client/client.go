package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/pkg/logger"
)

// Client es la fachada HTTP del storefront. Expone colecciones tipadas
// (Users, Products, Orders), el procesador de pagos y el bus de eventos que
// refleja las escrituras locales y los cambios remotos detectados por el
// sondeador.
type Client struct {
	baseURL string
	http    *http.Client
	events  *Events
	log     *logger.Logger

	// tokenMu protege token: el sondeador lo lee desde sus goroutines
	// mientras Login/SetToken pueden escribirlo en caliente.
	tokenMu sync.RWMutex
	token   string

	Users    *UserCollection
	Products *ProductCollection
	Orders   *OrderCollection
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient sustituye el transporte por defecto.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken fija el Bearer token para las rutas protegidas.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New construye la fachada apuntando a baseURL (ej. "http://localhost:8080").
func New(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		events:  NewEvents(log),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Users = &UserCollection{c: c}
	c.Products = &ProductCollection{c: c}
	c.Orders = &OrderCollection{c: c}
	return c
}

// Events devuelve el bus de eventos del cliente.
func (c *Client) Events() *Events { return c.events }

// SetToken cambia el Bearer token en caliente (tras login). Es seguro
// llamarlo con el sondeador en marcha.
func (c *Client) SetToken(token string) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

func (c *Client) bearer() string {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()
	return c.token
}

// apiRequest ejecuta una petición JSON contra la API y decodifica la
// respuesta en out (puede ser nil para descartar el cuerpo). Un 404 devuelve
// errNotFound para que las lecturas lo traduzcan a (nil, nil); cualquier
// otro fallo se devuelve envuelto con el cuerpo de error del servidor.
func (c *Client) apiRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializando cuerpo de %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("construyendo petición %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("llamando a %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return errNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificando respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// errNotFound marca internamente un 404; las lecturas lo convierten en
// (nil, nil) y nunca lo dejan escapar al llamador.
var errNotFound = fmt.Errorf("document not found")
