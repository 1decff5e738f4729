package catalog

import (
	"context"

	"assetlib/internal/storage"
	"assetlib/pkg/contracts/domain"
)

// Catalog groups the three record collections and the asset state
type Catalog struct {
	KPIs        *Collection[domain.KPI]
	Layouts     *Collection[domain.Layout]
	Storyboards *Collection[domain.Storyboard]
	State       *StateRepository
}

// Seed holds the records a store is seeded with when a key is absent
type Seed struct {
	KPIs        []domain.KPI
	Layouts     []domain.Layout
	Storyboards []domain.Storyboard
	State       domain.AssetState
}

// DefaultSeed returns the shipped dataset
func DefaultSeed() Seed {
	return Seed{
		KPIs:        SeedKPIs(),
		Layouts:     SeedLayouts(),
		Storyboards: SeedStoryboards(),
		State:       SeedAssetState(),
	}
}

// Open loads every collection from store, seeding absent keys from seed
func Open(ctx context.Context, store storage.Store, seed Seed) (*Catalog, error) {
	kpis, err := NewCollection(ctx, store, storage.KeyKPIs, seed.KPIs)
	if err != nil {
		return nil, err
	}
	layouts, err := NewCollection(ctx, store, storage.KeyLayouts, seed.Layouts)
	if err != nil {
		return nil, err
	}
	storyboards, err := NewCollection(ctx, store, storage.KeyStoryboards, seed.Storyboards)
	if err != nil {
		return nil, err
	}
	state, err := NewStateRepository(ctx, store, seed.State)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		KPIs:        kpis,
		Layouts:     layouts,
		Storyboards: storyboards,
		State:       state,
	}, nil
}

// Snapshot copies every collection
func (c *Catalog) Snapshot() domain.CatalogSnapshot {
	return domain.CatalogSnapshot{
		KPIs:        c.KPIs.All(),
		Layouts:     c.Layouts.All(),
		Storyboards: c.Storyboards.All(),
	}
}
