package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "assetlib/internal/errors"
	"assetlib/internal/storage"
	"assetlib/pkg/contracts/domain"
)

func TestLibraryHandler_Tabs(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/library/tabs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tabs := decode[[]domain.TabInfo](t, rec)
	require.Len(t, tabs, 4)
	assert.Equal(t, domain.TabFeatured, tabs[0].ID)
	assert.Equal(t, "Storyboards", tabs[3].Label)
}

func TestLibraryHandler_Home(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/library/home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	home := decode[domain.LibraryHome](t, rec)
	assert.Len(t, home.Featured.Items, 2)
	assert.Len(t, home.Trending.Items, 1)
	assert.Empty(t, home.Favorites.Items)

	env.store.FailLoad(storage.KeyAssetState, true)
	rec = env.do(t, http.MethodGet, "/api/library/home", "")
	require.Equal(t, http.StatusOK, rec.Code)
	home = decode[domain.LibraryHome](t, rec)
	assert.Equal(t, "Failed to load featured items", home.Featured.Error)
	assert.Equal(t, "Failed to load favorite items", home.Favorites.Error)

	env.store.FailLoad(storage.KeyAssetState, false)
	rec = env.do(t, http.MethodGet, "/api/library/sections/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	section := decode[domain.Section](t, rec)
	assert.Empty(t, section.Error)
	assert.Len(t, section.Items, 2)
}

func TestLibraryHandler_Section(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/library/sections/trending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	section := decode[domain.Section](t, rec)
	assert.Equal(t, "Most popular by community", section.Subtitle)
	require.Len(t, section.Items, 1)
	assert.Equal(t, "operating_margin", section.Items[0].ID)

	rec = env.do(t, http.MethodGet, "/api/library/sections/recent", "")
	assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)
}

func TestLibraryHandler_TabContents(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/library/tabs/kpi?q=share", "")
	require.Equal(t, http.StatusOK, rec.Code)
	contents := decode[domain.TabContents](t, rec)
	require.Len(t, contents.KPIs, 1)
	assert.Equal(t, "market_share", contents.KPIs[0].ID)
	assert.Equal(t, []domain.ChartKind{domain.ChartKindPie}, contents.KPIs[0].VisualKinds)

	rec = env.do(t, http.MethodGet, "/api/library/tabs/featured", "")
	require.Equal(t, http.StatusOK, rec.Code)
	contents = decode[domain.TabContents](t, rec)
	require.NotNil(t, contents.Home)

	rec = env.do(t, http.MethodGet, "/api/library/tabs/reports", "")
	assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)
}

func TestLibraryHandler_Search(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name  string
		path  string
		count int
		first string
	}{
		{"across all types", "/api/library/search?q=market", 2, "market_share"},
		{"scoped to layouts", "/api/library/search?q=sales&tab=layouts", 1, "sales_dashboard"},
		{"blank query in a tab", "/api/library/search?q=%20&tab=kpi", 0, ""},
		{"areas excluded by default", "/api/library/search?q=finance", 0, ""},
		{"areas included", "/api/library/search?q=finance&areas=true", 2, "revenue_growth"},
		{"padded query across all types", "/api/library/search?q=market%20", 2, "market_share"},
		{"padded query in a tab", "/api/library/search?q=market%20&tab=featured", 2, "market_share"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			results := decode[domain.SearchResults](t, rec)
			assert.Equal(t, tt.count, results.Count)
			require.Len(t, results.Items, tt.count)
			if tt.first != "" {
				assert.Equal(t, tt.first, results.Items[0].ID)
			}
		})
	}

	rec := env.do(t, http.MethodGet, "/api/library/search?q=x&tab=reports", "")
	assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)

	rec = env.do(t, http.MethodGet, "/api/library/search?q=x&areas=maybe", "")
	assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)
}

func TestLibraryHandler_Export(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/library/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "asset-library.csv")
	assert.Contains(t, rec.Body.String(), "market_share")

	rec = env.do(t, http.MethodGet, "/api/library/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "asset-library.xlsx")
	assert.Equal(t, "PK", rec.Body.String()[:2])

	rec = env.do(t, http.MethodGet, "/api/library/export?format=CSV", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "asset-library.csv")

	rec = env.do(t, http.MethodGet, "/api/library/export?format=pdf", "")
	assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)
	assert.Contains(t, rec.Body.String(), "format must be one of: xlsx, csv")
}
