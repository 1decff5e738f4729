// Package catalog owns the library's record collections. Each collection is an
// explicit in-memory repository constructed once per process and backed by a
// storage.Store document, so no state hides in package-level variables.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"assetlib/internal/storage"
)

// ErrDuplicateID is returned when a collection holds two records with one id
var ErrDuplicateID = errors.New("duplicate record id")

// Record is implemented by the KPI, Layout and Storyboard domain types
type Record[T any] interface {
	GetID() string
	Clone() T
}

// Collection is an ordered, id-keyed set of records persisted under one key.
// Reads return copies; every mutation writes the whole collection back.
type Collection[T Record[T]] struct {
	mu      sync.RWMutex
	store   storage.Store
	key     string
	records []T
	index   map[string]int
}

// NewCollection loads the collection stored under key, seeding the store with
// seed when the key is absent.
func NewCollection[T Record[T]](ctx context.Context, store storage.Store, key string, seed []T) (*Collection[T], error) {
	c := &Collection[T]{store: store, key: key}

	var records []T
	found, err := store.Load(ctx, key, &records)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		records = cloneAll(seed)
		if err := store.Save(ctx, key, records); err != nil {
			return nil, fmt.Errorf("seed %s: %w", key, err)
		}
	}

	index, err := buildIndex(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	c.records = records
	c.index = index
	return c, nil
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string { return c.key }

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// All returns every record in insertion order
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll(c.records)
}

// Get returns the record with the given id
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.records[i].Clone(), true
}

// Filter returns the records matching keep, in insertion order
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.records))
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Update applies mutate to a copy of the record with the given id. When
// mutate reports a change the collection is saved; a failed save leaves the
// in-memory record untouched. found is false for an unknown id.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T) bool) (result T, changed, found bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return result, false, false, nil
	}

	updated := c.records[i].Clone()
	if !mutate(&updated) {
		return c.records[i].Clone(), false, true, nil
	}
	if updated.GetID() != id {
		return result, false, true, fmt.Errorf("update of %s must not change its id", id)
	}

	next := make([]T, len(c.records))
	copy(next, c.records)
	next[i] = updated
	if err := c.store.Save(ctx, c.key, next); err != nil {
		return result, false, true, fmt.Errorf("save %s: %w", c.key, err)
	}

	c.records = next
	return updated.Clone(), true, true, nil
}

func buildIndex[T Record[T]](records []T) (map[string]int, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := index[r.GetID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.GetID())
		}
		index[r.GetID()] = i
	}
	return index, nil
}

func cloneAll[T Record[T]](in []T) []T {
	out := make([]T, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
