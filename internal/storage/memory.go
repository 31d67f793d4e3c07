package storage

import (
	"sync"

	"github.com/example/storefront-client/internal/domain/cart"
)

// MemoryCartStore keeps the cart snapshot in memory. Nothing survives a
// restart; useful for tests and for running without a state directory.
type MemoryCartStore struct {
	mu   sync.Mutex
	snap cart.Snapshot
	ok   bool
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{}
}

func (s *MemoryCartStore) Save(snap cart.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap, s.ok = snap, true
	return nil
}

func (s *MemoryCartStore) Load() (cart.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.ok, nil
}

func (s *MemoryCartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap, s.ok = cart.Snapshot{}, false
	return nil
}

// MemoryTokenStore keeps the session token in memory. Satisfies
// session.TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	ok    bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ok = token, true
	return nil
}

func (s *MemoryTokenStore) Load() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.ok, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ok = "", false
	return nil
}
