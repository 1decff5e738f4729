package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ClientLogHandler receives log entries from library clients so that
// section load failures seen in a browser end up in the server log
type ClientLogHandler struct {
	deps Deps
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(deps Deps) *ClientLogHandler {
	return &ClientLogHandler{deps: deps.named("client_log")}
}

// LogRequest represents a client log entry
type LogRequest struct {
	Level   string                 `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string                 `json:"message" validate:"required,notblank,max=2048"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty" validate:"max=256"`
}

// Handle processes POST /api/logs
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := h.deps.Validation.DecodeJSON(r, &req); err != nil {
		h.deps.ErrorHandler.HandleError(w, r, err)
		return
	}

	attrs := []slog.Attr{slog.String("client_source", req.Source)}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}

	level := slog.LevelInfo
	switch req.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h.deps.Logger.LogAttrs(r.Context(), level, req.Message, attrs...)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{"success": true})
}
