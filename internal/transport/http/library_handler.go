package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"assetlib/internal/exporter"
	"assetlib/internal/services"
	api "assetlib/pkg/contracts/api/v1"
	"assetlib/pkg/contracts/domain"
)

// SnapshotSource provides a point-in-time copy of the catalog
type SnapshotSource interface {
	Snapshot() domain.CatalogSnapshot
}

// LibraryHandler serves the library screen: tabs, home sections, tab
// contents, search and export
type LibraryHandler struct {
	library  *services.LibraryService
	assets   *services.AssetService
	snapshot SnapshotSource
	deps     Deps
}

// NewLibraryHandler creates a library handler
func NewLibraryHandler(library *services.LibraryService, assets *services.AssetService, snapshot SnapshotSource, deps Deps) *LibraryHandler {
	return &LibraryHandler{
		library:  library,
		assets:   assets,
		snapshot: snapshot,
		deps:     deps.named("library_handler"),
	}
}

// Routes returns the library routes
func (h *LibraryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/tabs", h.Tabs)
	r.Get("/tabs/{tab}", h.TabContents)
	r.Get("/home", h.Home)
	r.Get("/sections/{section}", h.Section)
	r.Get("/search", h.Search)
	r.Get("/export", h.Export)
	return r
}

// Tabs handles GET /api/library/tabs
func (h *LibraryHandler) Tabs(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.library.Tabs())
}

// Home handles GET /api/library/home. Sections that fail to load carry
// their failure message; the response is still 200.
func (h *LibraryHandler) Home(w http.ResponseWriter, r *http.Request) {
	home := h.library.Home(r.Context())
	for _, s := range []domain.Section{home.Featured, home.Trending, home.Favorites} {
		h.recordFailure(r, s)
	}
	render.JSON(w, r, home)
}

// Section handles GET /api/library/sections/{section}, the retry of a
// single home section
func (h *LibraryHandler) Section(w http.ResponseWriter, r *http.Request) {
	name := domain.SectionName(chi.URLParam(r, "section"))
	section, err := h.library.LoadSection(r.Context(), name)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	h.recordFailure(r, section)
	render.JSON(w, r, section)
}

// TabContents handles GET /api/library/tabs/{tab}?q=
func (h *LibraryHandler) TabContents(w http.ResponseWriter, r *http.Request) {
	tab := domain.Tab(chi.URLParam(r, "tab"))
	contents, err := h.library.TabContents(r.Context(), tab, r.URL.Query().Get("q"))
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, contents)
}

// Search handles GET /api/library/search?q=&tab=&areas=. Without a tab the
// search spans every asset type. The query is trimmed in both cases.
func (h *LibraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	areas, ok := h.deps.Queries.ValidateBool(w, r, "areas", false)
	if !ok {
		return
	}
	req := api.SearchRequest{
		Query:        strings.TrimSpace(query.Get("q")),
		Tab:          domain.Tab(query.Get("tab")),
		IncludeAreas: areas,
	}
	if err := h.deps.Validation.ValidateStruct(req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	opts := services.SearchOptions{IncludeAreas: req.IncludeAreas}
	var results domain.SearchResults
	if req.Tab == "" {
		items := h.assets.SearchAcrossAll(ctx, req.Query, opts)
		results = domain.SearchResults{Query: req.Query, Count: len(items), Items: items}
	} else {
		results = h.assets.SearchInTab(ctx, req.Query, req.Tab, opts)
	}

	scope := string(req.Tab)
	if scope == "" {
		scope = "all"
	}
	h.deps.Metrics.RecordSearch(ctx, scope, results.Count)
	h.deps.Logger.DebugContext(ctx, "Library searched",
		slog.String("query", req.Query),
		slog.String("tab", scope),
		slog.Int("results", results.Count))

	render.JSON(w, r, results)
}

var exportFormats = []string{string(exporter.FormatXLSX), string(exporter.FormatCSV)}

// Export handles GET /api/library/export?format=xlsx|csv
func (h *LibraryHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := h.deps.Queries.ValidateEnum(w, r, "format", exportFormats, string(exporter.FormatXLSX))
	if !ok {
		return
	}
	format, err := exporter.ParseFormat(name)
	if err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, format, h.snapshot.Snapshot()); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, fmt.Errorf("export library: %w", err))
		return
	}

	h.deps.Metrics.RecordExport(ctx, string(format))
	h.deps.Logger.InfoContext(ctx, "Library exported",
		slog.String("format", string(format)),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *LibraryHandler) recordFailure(r *http.Request, s domain.Section) {
	if s.Error != "" {
		h.deps.Metrics.RecordSectionFailure(r.Context(), string(s.Name))
	}
}
