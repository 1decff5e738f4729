package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetlib/internal/shared/testutil"
	"assetlib/internal/storage"
	"assetlib/pkg/contracts/domain"
	"assetlib/pkg/contracts/events"
)

func itemRefs(items []domain.AssetItem) []domain.Asset {
	refs := make([]domain.Asset, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Asset)
	}
	return refs
}

func TestAssetService_GetAssetDetails(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		ref      domain.Asset
		wantOK   bool
		wantName string
	}{
		{"kpi", domain.Asset{ID: "revenue_growth", Type: domain.AssetTypeKPI}, true, "Revenue Growth Rate"},
		{"layout", domain.Asset{ID: "sales_dashboard", Type: domain.AssetTypeLayout}, true, "Sales Performance Dashboard"},
		{"storyboard", domain.Asset{ID: "market_analysis", Type: domain.AssetTypeStoryboard}, true, "Market Share Analysis"},
		{"wrong type for id", domain.Asset{ID: "revenue_growth", Type: domain.AssetTypeLayout}, false, ""},
		{"unknown id", domain.Asset{ID: "missing", Type: domain.AssetTypeKPI}, false, ""},
		{"unknown type", domain.Asset{ID: "revenue_growth", Type: "chart"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := ts.assets.GetAssetDetails(ctx, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.ref, item.Asset)
			assert.Equal(t, tt.wantName, item.Name)
			switch tt.ref.Type {
			case domain.AssetTypeKPI:
				require.NotNil(t, item.KPI)
				assert.Nil(t, item.Layout)
				assert.Nil(t, item.Storyboard)
			case domain.AssetTypeLayout:
				require.NotNil(t, item.Layout)
				assert.Nil(t, item.KPI)
			case domain.AssetTypeStoryboard:
				require.NotNil(t, item.Storyboard)
				assert.Nil(t, item.KPI)
			}
		})
	}
}

func TestAssetService_Sections(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	featured, err := ts.assets.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Asset{
		{ID: "revenue_growth", Type: domain.AssetTypeKPI},
		{ID: "sales_dashboard", Type: domain.AssetTypeLayout},
	}, itemRefs(featured))

	trending, err := ts.assets.GetTrending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Asset{{ID: "operating_margin", Type: domain.AssetTypeKPI}}, itemRefs(trending))

	favorites, err := ts.assets.GetFavorites(ctx)
	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}

func TestAssetService_DanglingReferencesAreDropped(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.catalog.State.Update(ctx, func(s *domain.AssetState) {
		s.Featured = []domain.Asset{
			{ID: "revenue_growth", Type: domain.AssetTypeKPI},
			{ID: "deleted_kpi", Type: domain.AssetTypeKPI},
			{ID: "quarterly_review", Type: domain.AssetTypeStoryboard},
			{ID: "market_share", Type: domain.AssetTypeStoryboard},
		}
	})
	require.NoError(t, err)

	featured, err := ts.assets.GetFeatured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Asset{
		{ID: "revenue_growth", Type: domain.AssetTypeKPI},
		{ID: "quarterly_review", Type: domain.AssetTypeStoryboard},
	}, itemRefs(featured))
}

func TestAssetService_SectionLoadFailure(t *testing.T) {
	ts := newTestServices(t)
	ts.store.FailLoad(storage.KeyAssetState, true)

	_, err := ts.assets.GetTrending(context.Background())
	assert.ErrorIs(t, err, testutil.ErrInjected)

	_, err = ts.assets.GetSection(context.Background(), "recent")
	assert.Error(t, err)
}

func TestAssetService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	kpi := domain.Asset{ID: "revenue_growth", Type: domain.AssetTypeKPI}
	layout := domain.Asset{ID: "sales_dashboard", Type: domain.AssetTypeLayout}
	storyboard := domain.Asset{ID: "quarterly_review", Type: domain.AssetTypeStoryboard}

	t.Run("adds then removes", func(t *testing.T) {
		ts := newTestServices(t)

		favorites, err := ts.assets.ToggleFavorite(ctx, kpi)
		require.NoError(t, err)
		assert.Equal(t, []domain.Asset{kpi}, favorites)

		isFav, err := ts.assets.IsFavorite(ctx, kpi)
		require.NoError(t, err)
		assert.True(t, isFav)

		favorites, err = ts.assets.ToggleFavorite(ctx, kpi)
		require.NoError(t, err)
		assert.Empty(t, favorites)

		ts.notifier.AssertCalled(t, "Broadcast", string(events.MessageTypeFavoritesUpdated), events.FavoritesUpdated{
			Toggled:   kpi,
			Favorite:  true,
			Favorites: []domain.Asset{kpi},
		})
	})

	t.Run("double toggle keeps other entries in order", func(t *testing.T) {
		ts := newTestServices(t)
		for _, ref := range []domain.Asset{layout, kpi, storyboard} {
			_, err := ts.assets.ToggleFavorite(ctx, ref)
			require.NoError(t, err)
		}

		for _, ref := range []domain.Asset{kpi, layout, storyboard} {
			before, err := ts.catalog.State.Load(ctx)
			require.NoError(t, err)

			_, err = ts.assets.ToggleFavorite(ctx, ref)
			require.NoError(t, err)
			favorites, err := ts.assets.ToggleFavorite(ctx, ref)
			require.NoError(t, err)

			var others, wantOthers []domain.Asset
			for _, f := range favorites {
				if !f.Equal(ref) {
					others = append(others, f)
				}
			}
			for _, f := range before.Favorites {
				if !f.Equal(ref) {
					wantOthers = append(wantOthers, f)
				}
			}
			assert.Equal(t, wantOthers, others)
			assert.Len(t, favorites, len(before.Favorites))
		}
	})

	t.Run("same id with another type is a distinct entry", func(t *testing.T) {
		ts := newTestServices(t)

		_, err := ts.assets.ToggleFavorite(ctx, kpi)
		require.NoError(t, err)
		favorites, err := ts.assets.ToggleFavorite(ctx, domain.Asset{ID: kpi.ID, Type: domain.AssetTypeLayout})
		require.NoError(t, err)
		assert.Len(t, favorites, 2)
	})

	t.Run("does not touch the layout flag", func(t *testing.T) {
		ts := newTestServices(t)
		ops := domain.Asset{ID: "operations_overview", Type: domain.AssetTypeLayout}

		_, err := ts.assets.ToggleFavorite(ctx, ops)
		require.NoError(t, err)
		l, _ := ts.layouts.GetByID(ctx, ops.ID)
		assert.False(t, l.Favorite)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		ts := newTestServices(t)

		_, err := ts.assets.ToggleFavorite(ctx, domain.Asset{ID: "x", Type: "chart"})
		assert.ErrorIs(t, err, ErrInvalidAssetType)
		_, err = ts.assets.ToggleFavorite(ctx, domain.Asset{ID: " ", Type: domain.AssetTypeKPI})
		assert.ErrorIs(t, err, ErrInvalidInput)
		ts.notifier.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		ts := newTestServices(t)
		ts.store.FailSave(storage.KeyAssetState, true)

		_, err := ts.assets.ToggleFavorite(ctx, kpi)
		assert.ErrorIs(t, err, testutil.ErrInjected)
	})
}

func TestAssetService_SearchAcrossAll(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		opts  SearchOptions
		want  []domain.Asset
	}{
		{
			name:  "matches name and description case-insensitively",
			query: "REV",
			want: []domain.Asset{
				{ID: "revenue_growth", Type: domain.AssetTypeKPI},
				{ID: "operating_margin", Type: domain.AssetTypeKPI},
				{ID: "quarterly_review", Type: domain.AssetTypeStoryboard},
			},
		},
		{
			name:  "matches description",
			query: "board presentation",
			want:  []domain.Asset{{ID: "quarterly_review", Type: domain.AssetTypeStoryboard}},
		},
		{
			name:  "orders kpis then layouts then storyboards",
			query: "market",
			want: []domain.Asset{
				{ID: "market_share", Type: domain.AssetTypeKPI},
				{ID: "market_analysis", Type: domain.AssetTypeStoryboard},
			},
		},
		{
			name:  "areas ignored by default",
			query: "strategy",
			want:  nil,
		},
		{
			name:  "areas matched when enabled",
			query: "strategy",
			opts:  SearchOptions{IncludeAreas: true},
			want:  []domain.Asset{{ID: "market_share", Type: domain.AssetTypeKPI}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ts.assets.SearchAcrossAll(ctx, tt.query, tt.opts)
			assert.NotNil(t, got)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, itemRefs(got))
		})
	}
}

func TestAssetService_SearchInTab(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		query     string
		tab       domain.Tab
		wantCount int
		wantType  domain.AssetType
	}{
		{"blank query", "   ", domain.TabFeatured, 0, ""},
		{"featured spans every type", "market", domain.TabFeatured, 2, ""},
		{"kpi tab", "market", domain.TabKPI, 1, domain.AssetTypeKPI},
		{"padded query", " market ", domain.TabKPI, 1, domain.AssetTypeKPI},
		{"layouts tab", "market", domain.TabLayouts, 0, ""},
		{"storyboards tab", "market", domain.TabStoryboards, 1, domain.AssetTypeStoryboard},
		{"unknown tab", "market", domain.Tab("recent"), 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ts.assets.SearchInTab(ctx, tt.query, tt.tab, SearchOptions{})
			assert.Equal(t, tt.wantCount, res.Count)
			assert.Len(t, res.Items, tt.wantCount)
			assert.Equal(t, tt.tab, res.Tab)
			for _, item := range res.Items {
				if tt.wantType != "" {
					assert.Equal(t, tt.wantType, item.Type)
				}
			}
		})
	}
}
