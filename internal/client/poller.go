package client

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval es el intervalo de sondeo si no se configura otro.
const DefaultPollInterval = 5 * time.Second

// watermarkOverlap es la ventana de solapamiento que se resta a la marca de
// agua. El filtro remoto es estrictamente "updatedAt > marca": sin
// solapamiento, un documento confirmado después de una pasada pero con el
// mismo updatedAt que el máximo observado quedaría fuera de todas las
// ventanas siguientes. Las reentregas que provoca el solapamiento se
// deduplican por id + updatedAt.
const watermarkOverlap = 250 * time.Millisecond

// Poller sondea periódicamente las colecciones remotas con updatedAfter y
// publica en el bus los documentos que cambiaron desde la última pasada.
// Cada colección lleva su propia marca de agua: el mayor updatedAt
// observado (el instante actual en una pasada vacía), retrocedido por la
// ventana de solapamiento y nunca por detrás de la marca anterior. Una
// pasada fallida la deja intacta para no perder cambios.
type Poller struct {
	client   *Client
	interval time.Duration

	mu         sync.Mutex
	watermarks map[string]time.Time
	// delivered registra, por colección, el updatedAt con el que se entregó
	// cada documento, para no reemitir lo que el solapamiento vuelve a traer.
	delivered map[string]map[string]time.Time
}

// NewPoller construye un sondeador sobre el cliente. interval <= 0 usa
// DefaultPollInterval.
func NewPoller(c *Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:     c,
		interval:   interval,
		watermarks: make(map[string]time.Time),
		delivered:  make(map[string]map[string]time.Time),
	}
}

// Start lanza una goroutine de sondeo por colección y devuelve la función
// que las detiene. Las marcas de agua parten del instante de arranque: solo
// se notifican cambios posteriores.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	now := time.Now().UTC()

	p.mu.Lock()
	for _, col := range []string{"users", "products", "orders"} {
		p.watermarks[col] = now
		p.delivered[col] = make(map[string]time.Time)
	}
	p.mu.Unlock()

	var wg sync.WaitGroup
	polls := map[string]func(context.Context, time.Time) (time.Time, bool){
		"users":    p.pollUsers,
		"products": p.pollProducts,
		"orders":   p.pollOrders,
	}
	for col, poll := range polls {
		wg.Add(1)
		go p.loop(ctx, &wg, col, poll)
	}

	return func() {
		cancel()
		wg.Wait()
	}
}

func (p *Poller) loop(ctx context.Context, wg *sync.WaitGroup, col string, poll func(context.Context, time.Time) (time.Time, bool)) {
	defer wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			since := p.watermarks[col]
			p.mu.Unlock()

			next, ok := poll(ctx, since)
			if !ok {
				p.client.log.Warn().
					Str("collection", col).
					Msg("sondeo fallido; se conserva la marca de agua")
				continue
			}
			p.mu.Lock()
			p.watermarks[col] = next
			p.pruneLocked(col, next)
			p.mu.Unlock()
		}
	}
}

// shouldDeliver decide si un documento se emite: reentregas del mismo
// id + updatedAt (traídas por el solapamiento) se suprimen.
func (p *Poller) shouldDeliver(col, id string, updatedAt time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seen, ok := p.delivered[col][id]; ok && seen.Equal(updatedAt) {
		return false
	}
	p.delivered[col][id] = updatedAt
	return true
}

// pruneLocked descarta los registros de entrega que ya no pueden volver a
// aparecer en la ventana (updatedAt <= marca de agua). Se llama con el
// mutex tomado.
func (p *Poller) pruneLocked(col string, watermark time.Time) {
	for id, ts := range p.delivered[col] {
		if !ts.After(watermark) {
			delete(p.delivered[col], id)
		}
	}
}

// advance calcula la nueva marca de agua: el mayor updatedAt observado (el
// instante actual si la pasada no trajo documentos), retrocedido por la
// ventana de solapamiento. Nunca retrocede respecto a la marca anterior,
// aunque el reloj del cliente vaya por detrás de los timestamps remotos.
func advance(since time.Time, stamps []time.Time) time.Time {
	next := time.Now().UTC()
	for _, ts := range stamps {
		if ts.After(next) {
			next = ts
		}
	}
	next = next.Add(-watermarkOverlap)
	if next.Before(since) {
		return since
	}
	return next
}

func (p *Poller) pollUsers(ctx context.Context, since time.Time) (time.Time, bool) {
	users, err := p.client.Users.Find(ctx, UserQuery{UpdatedAfter: &since})
	if err != nil {
		return since, false
	}
	stamps := make([]time.Time, 0, len(users))
	for i := range users {
		u := users[i]
		stamps = append(stamps, u.UpdatedAt)
		if !p.shouldDeliver("users", u.ID, u.UpdatedAt) {
			continue
		}
		if u.CreatedAt.After(since) {
			p.client.events.Emit(EventUserCreated, &u)
		} else {
			p.client.events.Emit(EventUserUpdated, &u)
		}
	}
	return advance(since, stamps), true
}

func (p *Poller) pollProducts(ctx context.Context, since time.Time) (time.Time, bool) {
	products, err := p.client.Products.Find(ctx, ProductQuery{UpdatedAfter: &since})
	if err != nil {
		return since, false
	}
	stamps := make([]time.Time, 0, len(products))
	for i := range products {
		pr := products[i]
		stamps = append(stamps, pr.UpdatedAt)
		if !p.shouldDeliver("products", pr.ID, pr.UpdatedAt) {
			continue
		}
		if pr.CreatedAt.After(since) {
			p.client.events.Emit(EventProductCreated, &pr)
		} else {
			p.client.events.Emit(EventProductUpdated, &pr)
		}
	}
	return advance(since, stamps), true
}

func (p *Poller) pollOrders(ctx context.Context, since time.Time) (time.Time, bool) {
	orders, err := p.client.Orders.Find(ctx, OrderQuery{UpdatedAfter: &since})
	if err != nil {
		return since, false
	}
	stamps := make([]time.Time, 0, len(orders))
	for i := range orders {
		o := orders[i]
		stamps = append(stamps, o.UpdatedAt)
		if !p.shouldDeliver("orders", o.ID, o.UpdatedAt) {
			continue
		}
		if o.CreatedAt.After(since) {
			p.client.events.Emit(EventOrderCreated, &o)
		} else {
			p.client.events.Emit(EventOrderUpdated, &o)
		}
	}
	return advance(since, stamps), true
}
