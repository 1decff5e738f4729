package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"assetlib/internal/catalog"
	"assetlib/pkg/contracts/domain"
	"assetlib/pkg/contracts/events"
)

// SearchOptions tunes SearchAcrossAll
type SearchOptions struct {
	// IncludeAreas also matches KPI business areas
	IncludeAreas bool
}

// AssetService resolves asset references across the three record services
// and owns the featured, trending and favorites lists.
type AssetService struct {
	kpis        *KpiService
	layouts     *LayoutService
	storyboards *StoryboardService
	state       *catalog.StateRepository
	notifier    Notifier
	logger      *slog.Logger
}

// NewAssetService creates an asset service
func NewAssetService(kpis *KpiService, layouts *LayoutService, storyboards *StoryboardService, state *catalog.StateRepository, notifier Notifier, logger *slog.Logger) *AssetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetService{
		kpis:        kpis,
		layouts:     layouts,
		storyboards: storyboards,
		state:       state,
		notifier:    notifierOrNop(notifier),
		logger:      logger.With(slog.String("component", "asset_service")),
	}
}

// GetAssetDetails resolves ref through the service owning its type
func (s *AssetService) GetAssetDetails(ctx context.Context, ref domain.Asset) (domain.AssetItem, bool) {
	switch ref.Type {
	case domain.AssetTypeKPI:
		if k, ok := s.kpis.GetByID(ctx, ref.ID); ok {
			return domain.NewKPIItem(k), true
		}
	case domain.AssetTypeLayout:
		if l, ok := s.layouts.GetByID(ctx, ref.ID); ok {
			return domain.NewLayoutItem(l), true
		}
	case domain.AssetTypeStoryboard:
		if sb, ok := s.storyboards.GetByID(ctx, ref.ID); ok {
			return domain.NewStoryboardItem(sb), true
		}
	}
	return domain.AssetItem{}, false
}

// GetFeatured returns the resolved featured list
func (s *AssetService) GetFeatured(ctx context.Context) ([]domain.AssetItem, error) {
	return s.GetSection(ctx, domain.SectionFeatured)
}

// GetTrending returns the resolved trending list
func (s *AssetService) GetTrending(ctx context.Context) ([]domain.AssetItem, error) {
	return s.GetSection(ctx, domain.SectionTrending)
}

// GetFavorites returns the resolved favorites list
func (s *AssetService) GetFavorites(ctx context.Context) ([]domain.AssetItem, error) {
	return s.GetSection(ctx, domain.SectionFavorites)
}

// GetSection resolves the stored reference list behind a home section.
// References that no longer resolve are dropped and the order of the rest
// is kept.
func (s *AssetService) GetSection(ctx context.Context, name domain.SectionName) ([]domain.AssetItem, error) {
	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	var refs []domain.Asset
	switch name {
	case domain.SectionFeatured:
		refs = state.Featured
	case domain.SectionTrending:
		refs = state.Trending
	case domain.SectionFavorites:
		refs = state.Favorites
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSection, name)
	}
	return s.resolve(ctx, refs), nil
}

func (s *AssetService) resolve(ctx context.Context, refs []domain.Asset) []domain.AssetItem {
	items := make([]domain.AssetItem, 0, len(refs))
	for _, ref := range refs {
		item, ok := s.GetAssetDetails(ctx, ref)
		if !ok {
			s.logger.DebugContext(ctx, "Dropping unresolved asset reference",
				slog.String("asset_id", ref.ID),
				slog.String("asset_type", string(ref.Type)))
			continue
		}
		items = append(items, item)
	}
	return items
}

// ToggleFavorite adds ref to the favorites list when absent and removes it
// when present. Other entries keep their order. The Layout record's own
// favorite flag is not touched.
func (s *AssetService) ToggleFavorite(ctx context.Context, ref domain.Asset) ([]domain.Asset, error) {
	if !ref.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAssetType, ref.Type)
	}
	if strings.TrimSpace(ref.ID) == "" {
		return nil, fmt.Errorf("%w: empty asset id", ErrInvalidInput)
	}

	var added bool
	state, err := s.state.Update(ctx, func(st *domain.AssetState) {
		st.Favorites, added = toggle(st.Favorites, ref)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Favorite toggle failed",
			slog.String("asset_id", ref.ID),
			slog.String("asset_type", string(ref.Type)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "Favorite toggled",
		slog.String("asset_id", ref.ID),
		slog.String("asset_type", string(ref.Type)),
		slog.Bool("favorite", added))
	publish(s.notifier, events.MessageTypeFavoritesUpdated, events.FavoritesUpdated{
		Toggled:   ref,
		Favorite:  added,
		Favorites: state.Favorites,
	})
	return state.Favorites, nil
}

// IsFavorite reports whether ref is in the favorites list
func (s *AssetService) IsFavorite(ctx context.Context, ref domain.Asset) (bool, error) {
	state, err := s.state.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load favorites: %w", err)
	}
	for _, fav := range state.Favorites {
		if fav.Equal(ref) {
			return true, nil
		}
	}
	return false, nil
}

// SearchAcrossAll matches query against the name and description of every
// record, ignoring case. Results list KPIs, then layouts, then storyboards.
func (s *AssetService) SearchAcrossAll(ctx context.Context, query string, opts SearchOptions) []domain.AssetItem {
	q := strings.ToLower(query)
	matches := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var items []domain.AssetItem
	for _, k := range s.kpis.GetAll(ctx) {
		if matches(k.Name, k.Description) || (opts.IncludeAreas && matches(k.Areas...)) {
			items = append(items, domain.NewKPIItem(k))
		}
	}
	for _, l := range s.layouts.GetAll(ctx) {
		if matches(l.Name, l.Description) {
			items = append(items, domain.NewLayoutItem(l))
		}
	}
	for _, sb := range s.storyboards.GetAll(ctx) {
		if matches(sb.Name, sb.Description) {
			items = append(items, domain.NewStoryboardItem(sb))
		}
	}
	if items == nil {
		items = []domain.AssetItem{}
	}
	return items
}

// SearchInTab runs SearchAcrossAll scoped to a tab. A blank query or an
// unknown tab yields no results; the featured tab spans every type.
func (s *AssetService) SearchInTab(ctx context.Context, query string, tab domain.Tab, opts SearchOptions) domain.SearchResults {
	query = strings.TrimSpace(query)
	results := domain.SearchResults{Query: query, Tab: tab, Items: []domain.AssetItem{}}
	if query == "" || !tab.Valid() {
		return results
	}

	items := s.SearchAcrossAll(ctx, query, opts)
	if assetType, scoped := tab.AssetType(); scoped {
		filtered := items[:0]
		for _, item := range items {
			if item.Type == assetType {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	results.Items = items
	results.Count = len(items)
	return results
}

func toggle(list []domain.Asset, ref domain.Asset) ([]domain.Asset, bool) {
	out := make([]domain.Asset, 0, len(list)+1)
	removed := false
	for _, a := range list {
		if a.Equal(ref) {
			removed = true
			continue
		}
		out = append(out, a)
	}
	if removed {
		return out, false
	}
	return append(out, ref), true
}
