package service

import (
	"sync"
)

const DefaultCartID = "default"

// Sessions keeps one cart per cart id for the lifetime of the process.
type Sessions struct {
	mu        sync.Mutex
	carts     map[string]*CartStore
	observers []CartObserver
}

// NewSessions returns an empty registry. Every cart it creates is
// subscribed by the given observers.
func NewSessions(observers ...CartObserver) *Sessions {
	return &Sessions{
		carts:     make(map[string]*CartStore),
		observers: observers,
	}
}

func normalizeCartID(cartID string) string {
	if cartID == "" {
		return DefaultCartID
	}
	return cartID
}

// Lookup returns the cart for cartID without creating it.
func (s *Sessions) Lookup(cartID string) (*CartStore, bool) {
	cartID = normalizeCartID(cartID)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartID]
	return c, ok
}

// Cart returns the cart for cartID, creating an empty one on first use.
// An empty cartID selects DefaultCartID.
func (s *Sessions) Cart(cartID string) *CartStore {
	cartID = normalizeCartID(cartID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[cartID]; ok {
		return c
	}

	c := NewCartStore(cartID)
	for _, o := range s.observers {
		c.Subscribe(o)
	}
	s.carts[cartID] = c
	return c
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
