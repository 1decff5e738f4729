package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/services"
	api "assetlib/pkg/contracts/api/v1"
	"assetlib/pkg/contracts/domain"
)

// AssetDetails is a resolved asset along with its favorites membership
type AssetDetails struct {
	domain.AssetItem
	IsFavorite bool `json:"isFavorite"`
}

// ToggleFavoriteResponse reports the favorites list after a toggle
type ToggleFavoriteResponse struct {
	Asset     domain.Asset   `json:"asset"`
	Favorite  bool           `json:"favorite"`
	Favorites []domain.Asset `json:"favorites"`
}

// AssetHandler serves asset references across the three collections
type AssetHandler struct {
	assets *services.AssetService
	deps   Deps
}

// NewAssetHandler creates an asset handler
func NewAssetHandler(assets *services.AssetService, deps Deps) *AssetHandler {
	return &AssetHandler{assets: assets, deps: deps.named("asset_handler")}
}

// Routes returns the asset routes
func (h *AssetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/favorites", h.Favorites)
	r.Post("/favorites/toggle", h.ToggleFavorite)
	r.Get("/{type}/{id}", h.Details)
	return r
}

// Details handles GET /api/assets/{type}/{id}
func (h *AssetHandler) Details(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawType, id := chi.URLParam(r, "type"), chi.URLParam(r, "id")

	assetType, ok := domain.ParseAssetType(rawType)
	if !ok {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %q", services.ErrInvalidAssetType, rawType))
		return
	}
	ref := domain.Asset{ID: id, Type: assetType}

	item, found := h.assets.GetAssetDetails(ctx, ref)
	if !found {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %s %s", services.ErrAssetNotFound, assetType, id))
		return
	}

	favorite, err := h.assets.IsFavorite(ctx, ref)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, AssetDetails{AssetItem: item, IsFavorite: favorite})
}

// Favorites handles GET /api/assets/favorites
func (h *AssetHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	items, err := h.assets.GetFavorites(r.Context())
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// ToggleFavorite handles POST /api/assets/favorites/toggle
func (h *AssetHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ToggleFavoriteRequest
	if err := h.deps.Validation.DecodeJSON(r, &req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	ref := req.Asset()

	favorites, err := h.assets.ToggleFavorite(ctx, ref)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	added := false
	for _, fav := range favorites {
		if fav.Equal(ref) {
			added = true
			break
		}
	}
	h.deps.Metrics.RecordFavoriteToggle(ctx, string(ref.Type), added)

	render.JSON(w, r, ToggleFavoriteResponse{Asset: ref, Favorite: added, Favorites: favorites})
}
