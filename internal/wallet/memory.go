package wallet

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory Store used in development mode
// and unit tests. It applies the same version check as the Postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	wallets map[string]Wallet
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wallets: make(map[string]Wallet)}
}

// Find fetches a wallet by identifier.
func (s *MemoryStore) Find(_ context.Context, identifier string) (Wallet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[identifier]
	return w, ok, nil
}

// Save commits the wallet when the caller's version matches the stored one.
func (s *MemoryStore) Save(_ context.Context, w Wallet) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.wallets[w.Identifier]
	if !ok || current.Version != w.Version {
		return Wallet{}, ErrVersionConflict
	}

	w.Version++
	s.wallets[w.Identifier] = w
	return w, nil
}

// Seed inserts or replaces a wallet without a version check. Test helper.
func (s *MemoryStore) Seed(w Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.Version == 0 {
		w.Version = 1
	}
	s.wallets[w.Identifier] = w
}
