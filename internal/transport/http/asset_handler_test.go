package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "assetlib/internal/errors"
	"assetlib/pkg/contracts/domain"
)

func TestAssetHandler_Details(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		check      func(t *testing.T, d AssetDetails)
	}{
		{
			name:       "kpi",
			path:       "/api/assets/kpi/market_share",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, d AssetDetails) {
				assert.Equal(t, domain.AssetTypeKPI, d.Type)
				assert.Equal(t, "Market Share", d.Name)
				require.NotNil(t, d.KPI)
				assert.Nil(t, d.Layout)
				assert.False(t, d.IsFavorite)
			},
		},
		{
			name:       "storyboard",
			path:       "/api/assets/storyboard/market_analysis",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, d AssetDetails) {
				require.NotNil(t, d.Storyboard)
				assert.Equal(t, domain.AccessRequestPending, d.Storyboard.AccessRequestStatus)
			},
		},
		{
			name:       "type is case insensitive",
			path:       "/api/assets/LAYOUT/sales_dashboard",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, d AssetDetails) {
				require.NotNil(t, d.Layout)
			},
		},
		{name: "unknown type", path: "/api/assets/report/x", wantStatus: http.StatusBadRequest, wantType: apierrors.TypeValidation},
		{name: "id of another type", path: "/api/assets/layout/market_share", wantStatus: http.StatusNotFound, wantType: apierrors.TypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, "")
			if tt.wantType != "" {
				assertProblem(t, rec, tt.wantStatus, tt.wantType)
				return
			}
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			tt.check(t, decode[AssetDetails](t, rec))
		})
	}
}

func TestAssetHandler_ToggleFavorite(t *testing.T) {
	env := newTestEnv(t, nil)
	body := `{"id":"market_share","type":"kpi"}`

	rec := env.do(t, http.MethodPost, "/api/assets/favorites/toggle", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[ToggleFavoriteResponse](t, rec)
	assert.True(t, resp.Favorite)
	assert.Equal(t, []domain.Asset{{ID: "market_share", Type: domain.AssetTypeKPI}}, resp.Favorites)

	rec = env.do(t, http.MethodGet, "/api/assets/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	favorites := decode[[]domain.AssetItem](t, rec)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Market Share", favorites[0].Name)

	rec = env.do(t, http.MethodGet, "/api/assets/kpi/market_share", "")
	assert.True(t, decode[AssetDetails](t, rec).IsFavorite)

	rec = env.do(t, http.MethodPost, "/api/assets/favorites/toggle", body)
	resp = decode[ToggleFavoriteResponse](t, rec)
	assert.False(t, resp.Favorite)
	assert.Empty(t, resp.Favorites)

	// The layout record's own flag is untouched by the favorites list
	env.do(t, http.MethodPost, "/api/assets/favorites/toggle", `{"id":"sales_dashboard","type":"layout"}`)
	rec = env.do(t, http.MethodGet, "/api/layouts/sales_dashboard", "")
	assert.True(t, decode[domain.Layout](t, rec).Favorite)
}

func TestAssetHandler_ToggleFavoriteValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	for name, body := range map[string]string{
		"missing id":    `{"type":"kpi"}`,
		"blank id":      `{"id":"  ","type":"kpi"}`,
		"unknown type":  `{"id":"x","type":"report"}`,
		"malformed":     `{"id":`,
		"unknown field": `{"id":"x","type":"kpi","pinned":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/assets/favorites/toggle", body)
			assertProblem(t, rec, http.StatusBadRequest, apierrors.TypeValidation)
		})
	}
}
