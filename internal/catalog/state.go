package catalog

import (
	"context"
	"fmt"
	"sync"

	"assetlib/internal/storage"
	"assetlib/pkg/contracts/domain"
)

// StateRepository reads and writes the featured/trending/favorites lists.
// Unlike Collection it keeps no copy: every call goes to the store.
type StateRepository struct {
	mu    sync.Mutex
	store storage.Store
}

// NewStateRepository seeds initial into the store once if no state exists yet
func NewStateRepository(ctx context.Context, store storage.Store, initial domain.AssetState) (*StateRepository, error) {
	var existing domain.AssetState
	found, err := store.Load(ctx, storage.KeyAssetState, &existing)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", storage.KeyAssetState, err)
	}
	if !found {
		if err := store.Save(ctx, storage.KeyAssetState, initial.Clone()); err != nil {
			return nil, fmt.Errorf("seed %s: %w", storage.KeyAssetState, err)
		}
	}
	return &StateRepository{store: store}, nil
}

// Load returns the current state; a missing document reads as empty lists
func (r *StateRepository) Load(ctx context.Context) (domain.AssetState, error) {
	var state domain.AssetState
	found, err := r.store.Load(ctx, storage.KeyAssetState, &state)
	if err != nil {
		return domain.AssetState{}, fmt.Errorf("load %s: %w", storage.KeyAssetState, err)
	}
	if !found {
		return domain.AssetState{Featured: []domain.Asset{}, Trending: []domain.Asset{}, Favorites: []domain.Asset{}}, nil
	}
	return state, nil
}

// Update loads the state, applies mutate and saves the result.
// Writers are serialised so concurrent toggles never lose an update.
func (r *StateRepository) Update(ctx context.Context, mutate func(*domain.AssetState)) (domain.AssetState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.Load(ctx)
	if err != nil {
		return domain.AssetState{}, err
	}
	mutate(&state)
	if err := r.store.Save(ctx, storage.KeyAssetState, state); err != nil {
		return domain.AssetState{}, fmt.Errorf("save %s: %w", storage.KeyAssetState, err)
	}
	return state, nil
}
