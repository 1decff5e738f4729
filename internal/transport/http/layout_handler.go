package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/services"
)

// LayoutHandler serves the Layout collection
type LayoutHandler struct {
	layouts *services.LayoutService
	deps    Deps
}

// NewLayoutHandler creates a Layout handler
func NewLayoutHandler(layouts *services.LayoutService, deps Deps) *LayoutHandler {
	return &LayoutHandler{layouts: layouts, deps: deps.named("layout_handler")}
}

// Routes returns the Layout routes
func (h *LayoutHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/favorite", h.ToggleFavorite)
	return r
}

// List handles GET /api/layouts?q=
func (h *LayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		render.JSON(w, r, h.layouts.SearchByName(ctx, q))
		return
	}
	render.JSON(w, r, h.layouts.GetAll(ctx))
}

// Get handles GET /api/layouts/{id}
func (h *LayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	layout, ok := h.layouts.GetByID(r.Context(), id)
	if !ok {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %s", services.ErrLayoutNotFound, id))
		return
	}
	render.JSON(w, r, layout)
}

// ToggleFavorite handles POST /api/layouts/{id}/favorite and returns the
// whole collection
func (h *LayoutHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if _, ok := h.layouts.GetByID(ctx, id); !ok {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %s", services.ErrLayoutNotFound, id))
		return
	}

	layouts, err := h.layouts.ToggleFavorite(ctx, id)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	for _, l := range layouts {
		if l.ID == id {
			h.deps.Metrics.RecordFavoriteToggle(ctx, "layout_flag", l.Favorite)
		}
	}
	render.JSON(w, r, layouts)
}
