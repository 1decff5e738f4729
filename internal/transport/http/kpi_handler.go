package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/services"
	api "assetlib/pkg/contracts/api/v1"
	"assetlib/pkg/contracts/domain"
)

// KPIHandler serves the KPI collection
type KPIHandler struct {
	kpis *services.KpiService
	deps Deps
}

// NewKPIHandler creates a KPI handler
func NewKPIHandler(kpis *services.KpiService, deps Deps) *KPIHandler {
	return &KPIHandler{kpis: kpis, deps: deps.named("kpi_handler")}
}

// Routes returns the KPI routes
func (h *KPIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Post("/request", h.Request)
	})
	return r
}

// List handles GET /api/kpis?q=. A non-blank query filters by name.
func (h *KPIHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kpis := h.kpis.GetAll(ctx)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		kpis = h.kpis.SearchByName(ctx, q)
	}
	render.JSON(w, r, h.kpis.Cards(kpis))
}

// Get handles GET /api/kpis/{id}
func (h *KPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kpi, ok := h.kpis.GetByID(r.Context(), id)
	if !ok {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("%w: %s", services.ErrKPINotFound, id))
		return
	}
	render.JSON(w, r, h.kpis.Cards([]domain.KPI{kpi})[0])
}

// Update handles PATCH /api/kpis/{id}
func (h *KPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateKPIRequest
	if err := h.deps.Validation.DecodeJSON(r, &req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	kpi, err := h.kpis.Update(r.Context(), chi.URLParam(r, "id"), req.KPIUpdate)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, kpi)
}

// Request handles POST /api/kpis/{id}/request
func (h *KPIHandler) Request(w http.ResponseWriter, r *http.Request) {
	kpi, err := h.kpis.Request(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, kpi)
}
