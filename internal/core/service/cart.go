package service

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// A CartObserver receives a change signal after each cart mutation.
type CartObserver func(domain.CartEvent)

// A CartStore owns the lines of a single cart.
//
// Mutations are atomic for readers. Observers run synchronously on the
// mutating goroutine once the mutation is visible, so derived values
// read from an observer are never stale.
type CartStore struct {
	cartID string
	now    func() time.Time

	mu    sync.RWMutex
	lines []domain.CartLine

	subsMu sync.Mutex
	subs   map[int]CartObserver
	nextID int
}

func NewCartStore(cartID string) *CartStore {
	return &CartStore{
		cartID: cartID,
		now:    time.Now,
		subs:   make(map[int]CartObserver),
	}
}

func (s *CartStore) CartID() string {
	return s.cartID
}

// Subscribe registers o and returns a function that removes it.
func (s *CartStore) Subscribe(o CartObserver) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = o

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

// Add increments the quantity of the (product, variant) line or appends
// a new line with quantity 1. Stock is not validated here.
func (s *CartStore) Add(p domain.Product, variant string) {
	s.mu.Lock()
	key := domain.LineKey{ProductID: p.ID, Variant: variant}
	idx := s.indexOf(key)
	if idx != -1 {
		s.lines[idx].Quantity++
	} else {
		idx = len(s.lines)
		s.lines = append(s.lines, domain.CartLine{
			Product:  p,
			Variant:  variant,
			Quantity: 1,
		})
	}
	line := s.lines[idx]
	total := domain.TotalItems(s.lines)
	s.mu.Unlock()

	s.notify(domain.CartEvent{
		Kind:       domain.CartEventAdded,
		ProductID:  line.Product.ID,
		Variant:    line.Variant,
		Quantity:   line.Quantity,
		UnitPrice:  line.Product.Price,
		TotalItems: total,
	})
}

// Remove deletes the line with the given key. An absent key is a no-op.
func (s *CartStore) Remove(productID domain.ProductID, variant string) {
	s.mu.Lock()
	idx := s.indexOf(domain.LineKey{ProductID: productID, Variant: variant})
	if idx == -1 {
		s.mu.Unlock()
		return
	}
	line := s.lines[idx]
	s.lines = slices.Delete(s.lines, idx, idx+1)
	total := domain.TotalItems(s.lines)
	s.mu.Unlock()

	s.notify(domain.CartEvent{
		Kind:       domain.CartEventRemoved,
		ProductID:  line.Product.ID,
		Variant:    line.Variant,
		Quantity:   line.Quantity,
		UnitPrice:  line.Product.Price,
		TotalItems: total,
	})
}

func (s *CartStore) Clear() {
	s.mu.Lock()
	wasEmpty := len(s.lines) == 0
	s.lines = nil
	s.mu.Unlock()

	if wasEmpty {
		return
	}
	s.notify(domain.CartEvent{Kind: domain.CartEventCleared})
}

// Lines returns a copy of the lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

func (s *CartStore) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalItems(s.lines)
}

func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Subtotal(s.lines)
}

func (s *CartStore) Summary() domain.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summarize(s.lines)
}

func (s *CartStore) Snapshot() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NewCartSnapshot(s.cartID, s.lines)
}

func (s *CartStore) indexOf(key domain.LineKey) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool {
		return l.Key() == key
	})
}

func (s *CartStore) notify(evt domain.CartEvent) {
	evt.ID = uuid.NewString()
	evt.CartID = s.cartID
	evt.OccurredAt = s.now()

	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	observers := make([]CartObserver, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, s.subs[id])
	}
	s.subsMu.Unlock()

	for _, o := range observers {
		o(evt)
	}
}
