package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"assetlib/internal/catalog"
	"assetlib/internal/storage"
)

// ErrInjected is returned by FaultyStore for keys configured to fail
var ErrInjected = errors.New("injected storage failure")

// FaultyStore wraps a Store and fails loads or saves for selected keys
type FaultyStore struct {
	storage.Store

	mu        sync.Mutex
	failLoads map[string]bool
	failSaves map[string]bool
	loads     map[string]int
}

// NewFaultyStore wraps a fresh memory store
func NewFaultyStore() *FaultyStore {
	return &FaultyStore{
		Store:     storage.NewMemoryStore(),
		failLoads: make(map[string]bool),
		failSaves: make(map[string]bool),
		loads:     make(map[string]int),
	}
}

// FailLoad makes Load of key fail until cleared
func (s *FaultyStore) FailLoad(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoads[key] = fail
}

// FailSave makes Save of key fail until cleared
func (s *FaultyStore) FailSave(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves[key] = fail
}

// Loads returns how many times key was loaded
func (s *FaultyStore) Loads(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[key]
}

// Load implements storage.Store
func (s *FaultyStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	s.loads[key]++
	fail := s.failLoads[key]
	s.mu.Unlock()
	if fail {
		return false, ErrInjected
	}
	return s.Store.Load(ctx, key, dst)
}

// Save implements storage.Store
func (s *FaultyStore) Save(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	fail := s.failSaves[key]
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.Store.Save(ctx, key, value)
}

// NewCatalog opens a catalog over the default seed and a faulty memory store
func NewCatalog(t *testing.T) (*catalog.Catalog, *FaultyStore) {
	t.Helper()

	store := NewFaultyStore()
	cat, err := catalog.Open(context.Background(), store, catalog.DefaultSeed())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return cat, store
}
