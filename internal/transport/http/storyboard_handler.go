package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/services"
	"assetlib/pkg/contracts/domain"
)

// AccessRequestResponse is the storyboard after an access request
type AccessRequestResponse struct {
	Storyboard domain.Storyboard `json:"storyboard"`
	Changed    bool              `json:"changed"`
}

// StoryboardHandler serves the Storyboard collection
type StoryboardHandler struct {
	storyboards *services.StoryboardService
	deps        Deps
}

// NewStoryboardHandler creates a Storyboard handler
func NewStoryboardHandler(storyboards *services.StoryboardService, deps Deps) *StoryboardHandler {
	return &StoryboardHandler{storyboards: storyboards, deps: deps.named("storyboard_handler")}
}

// Routes returns the Storyboard routes
func (h *StoryboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/access", h.RequestAccess)
	return r
}

// List handles GET /api/storyboards?q=
func (h *StoryboardHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		render.JSON(w, r, h.storyboards.SearchByName(ctx, q))
		return
	}
	render.JSON(w, r, h.storyboards.GetAll(ctx))
}

// Get handles GET /api/storyboards/{id}
func (h *StoryboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sb, ok := h.storyboards.GetByID(r.Context(), id)
	if !ok {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %s", services.ErrStoryboardNotFound, id))
		return
	}
	render.JSON(w, r, sb)
}

// RequestAccess handles POST /api/storyboards/{id}/access
func (h *StoryboardHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	sb, changed, err := h.storyboards.RequestAccess(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, AccessRequestResponse{Storyboard: sb, Changed: changed})
}
