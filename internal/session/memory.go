package session

import (
	"context"
	"sync"
)

// MemoryCartStore is a process-local CartStore. It backs the handler
// tests and single-node deployments without redis.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]Cart)}
}

func (s *MemoryCartStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := make(Cart, len(s.carts[sessionID]))
	for slug, qty := range s.carts[sessionID] {
		cart[slug] = qty
	}
	return cart, nil
}

func (s *MemoryCartStore) Add(ctx context.Context, sessionID, slug string, quantity uint) error {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = make(Cart)
		s.carts[sessionID] = cart
	}
	cart[slug] += quantity
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
