package websocket

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"assetlib/internal/config"
	"assetlib/internal/infrastructure"
)

// Handler upgrades requests to websocket connections on the change feed
type Handler struct {
	hub            *Hub
	upgrader       websocket.Upgrader
	allowedOrigins []string
	logger         *slog.Logger
}

// NewHandler creates a change feed handler. Requests without an Origin
// header are accepted; others must match one of allowedOrigins, unless the
// list is empty.
func NewHandler(hub *Hub, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Handler{
		hub:            hub,
		allowedOrigins: allowedOrigins,
		logger:         logger.With(slog.String("component", "websocket.handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	if slices.Contains(h.allowedOrigins, origin) {
		return true
	}
	h.logger.WarnContext(r.Context(), "WebSocket origin check - origin not allowed",
		slog.String("origin", origin))
	return false
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.ErrorContext(ctx, "WebSocket upgrade error",
			slog.String("error", err.Error()),
			slog.String("origin", r.Header.Get("Origin")))
		return
	}

	client := ServeWS(h.hub, NewConnectionWrapper(conn), infrastructure.GetTraceID(ctx), h.logger)
	h.logger.InfoContext(ctx, "WebSocket connection established",
		slog.String("client_id", client.ID()),
		slog.String("remote_addr", r.RemoteAddr))
}
