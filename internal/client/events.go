// Package client implementa el acceso de datos del storefront: una fachada
// HTTP sobre la API, un bus de eventos de cambio y un sincronizador por
// sondeo que alimenta dicho bus.
package client

import (
	"sync"

	"github.com/jhoicas/likeus-api/pkg/logger"
)

// Eventos que emite la fachada cuando una operación de escritura tiene éxito
// y el sondeador cuando detecta cambios remotos.
const (
	EventUserCreated    = "userCreated"
	EventUserUpdated    = "userUpdated"
	EventProductCreated = "productCreated"
	EventProductUpdated = "productUpdated"
	EventProductDeleted = "productDeleted"
	EventOrderCreated   = "orderCreated"
	EventOrderUpdated   = "orderUpdated"
)

// Handler recibe el documento asociado al evento. El payload depende del
// evento: la entidad creada/actualizada, o la instantánea previa al borrado.
type Handler func(payload any)

// Subscription identifica un handler registrado para poder darlo de baja.
type Subscription struct {
	event string
	id    uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// Events es un bus de eventos en memoria. La emisión es síncrona y respeta
// el orden de registro; un pánico en un handler se recupera y registra sin
// interrumpir al resto.
type Events struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscriber
	log    *logger.Logger
}

// NewEvents construye un bus vacío.
func NewEvents(log *logger.Logger) *Events {
	return &Events{
		subs: make(map[string][]subscriber),
		log:  log,
	}
}

// On registra un handler para un evento y devuelve la suscripción que
// permite retirarlo con Off.
func (e *Events) On(event string, fn Handler) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.subs[event] = append(e.subs[event], subscriber{id: e.nextID, fn: fn})
	return Subscription{event: event, id: e.nextID}
}

// Off retira una suscripción. Es idempotente: retirar dos veces o retirar
// una suscripción desconocida no tiene efecto.
func (e *Events) Off(sub Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.subs[sub.event]
	for i, s := range list {
		if s.id == sub.id {
			e.subs[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit invoca en orden de registro todos los handlers del evento. Los
// handlers se ejecutan en la goroutine del emisor.
func (e *Events) Emit(event string, payload any) {
	e.mu.Lock()
	list := make([]subscriber, len(e.subs[event]))
	copy(list, e.subs[event])
	e.mu.Unlock()

	for _, s := range list {
		e.dispatch(event, s, payload)
	}
}

func (e *Events) dispatch(event string, s subscriber, payload any) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Str("event", event).
				Interface("panic", r).
				Msg("handler de evento falló; se continúa con el resto")
		}
	}()
	s.fn(payload)
}
