// Package cart implementa el carrito persistente del storefront. El estado
// vive en memoria protegido por mutex y se vuelca a un archivo JSON con una
// clave de almacenamiento fija, de modo que sobrevive reinicios.
package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/likeus-api/internal/domain"
)

// StorageKey es el nombre fijo del archivo de persistencia del carrito.
const StorageKey = "like-us-cart.json"

// Item es una línea del carrito. La identidad de línea es la tripleta
// producto+color+talla: añadir la misma tripleta fusiona cantidades.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Image     string          `json:"image,omitempty"`
}

type state struct {
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store es el carrito. Todas las operaciones son seguras para uso
// concurrente y persisten el estado tras cada mutación.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Item
}

// NewStore abre (o crea) el carrito persistido en dir. Un archivo corrupto
// o ausente arranca un carrito vacío; el total almacenado se descarta y se
// recalcula siempre a partir de las líneas.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando directorio del carrito: %w", err)
	}
	s := &Store{path: filepath.Join(dir, StorageKey)}
	s.load()
	return s, nil
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return
	}
	s.items = st.Items
}

// persist escribe el estado actual. Se llama con el mutex tomado.
func (s *Store) persist() error {
	st := state{
		Items:     s.items,
		Total:     s.totalLocked(),
		UpdatedAt: time.Now().UTC(),
	}
	if st.Items == nil {
		st.Items = []Item{}
	}
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("serializando carrito: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("persistiendo carrito: %w", err)
	}
	return nil
}

func (s *Store) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (s *Store) findLocked(productID, color, size string) int {
	for i, it := range s.items {
		if it.ProductID == productID && it.Color == color && it.Size == size {
			return i
		}
	}
	return -1
}

// AddItem añade una línea al carrito. Si ya existe una línea con el mismo
// producto, color y talla, se suman las cantidades en lugar de duplicarla.
func (s *Store) AddItem(item Item) error {
	if item.ProductID == "" {
		return fmt.Errorf("%w: productId es requerido", domain.ErrInvalidInput)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.findLocked(item.ProductID, item.Color, item.Size); i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	return s.persist()
}

// UpdateQuantity fija la cantidad de una línea existente. Cantidades
// menores que 1 se rechazan; para quitar una línea se usa RemoveItem.
func (s *Store) UpdateQuantity(productID, color, size string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLocked(productID, color, size)
	if i < 0 {
		return fmt.Errorf("%w: la línea no existe en el carrito", domain.ErrNotFound)
	}
	s.items[i].Quantity = quantity
	return s.persist()
}

// RemoveItem quita una línea del carrito. Quitar una línea inexistente no
// tiene efecto.
func (s *Store) RemoveItem(productID, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLocked(productID, color, size)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

// Clear vacía el carrito.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist()
}

// Items devuelve una copia de las líneas actuales.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total devuelve el importe total, siempre derivado de las líneas.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Count devuelve el número de unidades en el carrito.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}
