package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"assetlib/internal/infrastructure"
	"assetlib/pkg/contracts/events"
)

// broadcastBuffer is the number of events queued for the hub loop before
// Broadcast starts dropping them
const broadcastBuffer = 256

// Hub maintains the set of active clients and fans change events out to them
type Hub struct {
	clients map[*Client]bool

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// mu guards clients for readers outside the hub loop
	mu sync.RWMutex

	logger   *slog.Logger
	recorder ClientRecorder

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  bool
}

// NewHub creates a new Hub. recorder may be nil.
func NewHub(logger *slog.Logger, recorder ClientRecorder) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		recorder:   recorder,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs the hub loop in its own goroutine
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
				h.recordClientChange(client.context(), -1)
			}
			h.mu.Unlock()
			h.logger.Info("Hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			ctx := client.context()
			h.recordClientChange(ctx, 1)
			h.logger.InfoContext(ctx, "Client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			h.greet(ctx, client, count)

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			if ok {
				ctx := client.context()
				h.recordClientChange(ctx, -1)
				h.logger.InfoContext(ctx, "Client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			}

		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

// greet sends the connection event to a newly registered client
func (h *Hub) greet(ctx context.Context, client *Client, count int) {
	data, err := json.Marshal(events.WebSocketMessage{
		Type: events.MessageTypeConnection,
		Data: events.ConnectionStatus{
			Status:   "connected",
			ClientID: client.id,
			Clients:  count,
		},
		Timestamp: time.Now().UTC(),
		TraceID:   client.traceID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling connection message", slog.String("error", err.Error()))
		return
	}

	select {
	case client.send <- data:
	default:
		h.logger.WarnContext(ctx, "Failed to send connection message - client buffer full",
			slog.String("client_id", client.id))
	}
}

func (h *Hub) fanOut(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
			dropped++
			h.recordClientChange(client.context(), -1)
			h.logger.Warn("Client send buffer full, disconnecting",
				slog.String("client_id", client.id))
		}
	}

	h.logger.Debug("Broadcast delivered",
		slog.Int("client_count", len(h.clients)),
		slog.Int("dropped_clients", dropped),
		slog.Int("message_size", len(message)))
}

// Broadcast queues an event for every connected client. It never blocks:
// when the queue is full the event is dropped and a warning is logged.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	message, err := json.Marshal(events.WebSocketMessage{
		Type:      events.MessageType(messageType),
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("Error marshaling message",
			slog.String("error", err.Error()),
			slog.String("message_type", messageType))
		return
	}

	select {
	case <-h.quit:
	case h.broadcast <- message:
	default:
		h.logger.Warn("Broadcast queue full, dropping event",
			slog.String("message_type", messageType))
	}
}

// Register adds a client to the hub. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.quit:
		return false
	}
}

// Unregister removes a client from the hub and closes its send channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop stops the hub loop and disconnects every client. It waits for the
// loop to exit when the hub was started.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})

	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if running {
		<-h.done
	}
}

func (h *Hub) recordClientChange(ctx context.Context, delta int64) {
	if h.recorder != nil {
		h.recorder.RecordClientChange(ctx, delta)
	}
}
