package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/preview"
	api "assetlib/pkg/contracts/api/v1"
	"assetlib/pkg/contracts/domain"
)

// PreviewHandler serves the layout preview modal
type PreviewHandler struct {
	manager *preview.Manager
	deps    Deps
}

// NewPreviewHandler creates a preview handler
func NewPreviewHandler(manager *preview.Manager, deps Deps) *PreviewHandler {
	return &PreviewHandler{manager: manager, deps: deps.named("preview_handler")}
}

// Routes returns the preview routes
func (h *PreviewHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Open)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Close)
		r.Get("/chart", h.Chart)
	})
	return r
}

// Open handles POST /api/previews
func (h *PreviewHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.OpenPreviewRequest
	if err := h.deps.Validation.DecodeJSON(r, &req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	session, err := h.manager.Open(ctx, req.LayoutID)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+session.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, session)
}

// Get handles GET /api/previews/{id}
func (h *PreviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, session)
}

// Update handles PATCH /api/previews/{id}
func (h *PreviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req api.UpdatePreviewRequest
	if err := h.deps.Validation.DecodeJSON(r, &req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	session, err := h.manager.Update(r.Context(), chi.URLParam(r, "id"), preview.Change{
		KPIID:     req.KPIID,
		MetricID:  req.MetricID,
		Visual:    req.Visual,
		DateRange: req.DateRange,
		Affiliate: req.Affiliate,
	})
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, session)
}

// Chart handles GET /api/previews/{id}/chart
func (h *PreviewHandler) Chart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.manager.Chart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, chart)
}

// Close handles DELETE /api/previews/{id}?reason=close|escape
func (h *PreviewHandler) Close(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := api.ClosePreviewRequest{Reason: domain.CloseReason(r.URL.Query().Get("reason"))}
	if err := h.deps.Validation.ValidateStruct(req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	session, err := h.manager.Close(ctx, chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	h.deps.Logger.DebugContext(ctx, "Preview modal dismissed",
		slog.String("session_id", session.ID),
		slog.String("reason", string(req.Reason)))

	render.JSON(w, r, session)
}
