// Package services implements the business logic of the asset library.
// It sits between the HTTP handlers and the catalog repository so that the
// library rules are centralized and testable.
//
// # Available Services
//
//   - KpiService, LayoutService, StoryboardService: uniform read access to
//     one record collection plus the type-specific mutator
//   - AssetService: reference resolution, the featured/trending/favorites
//     lists and cross-type search
//   - LibraryService: tabs, home sections with per-section failure messages
//     and tab contents
//   - HealthService: health, readiness and liveness checks
//
// # Favorites
//
// Two favorite mechanisms exist and are kept apart. AssetService.ToggleFavorite
// changes membership of the favorites list; LayoutService.ToggleFavorite flips
// the favorite field of a Layout record.
//
// # Error Handling
//
// Lookups return (record, found) and never fail for an unknown id. Mutations
// return the sentinel errors in errors.go wrapped with context, and storage
// failures are wrapped with %w so callers can inspect them.
//
// # Testing
//
// Services are tested against a catalog opened over an in-memory store:
//
//	cat, store := testutil.NewCatalog(t)
//	svc := NewKpiService(cat.KPIs, notifier, logger)
//	store.FailLoad(storage.KeyAssetState, true)
package services
