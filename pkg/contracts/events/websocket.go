// Package events contains the event contracts of the asset library change feed.
package events

import (
	"time"

	"assetlib/pkg/contracts/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Library change events
	MessageTypeFavoritesUpdated MessageType = "favorites:updated"
	MessageTypeLayoutFavorite   MessageType = "layout:favorite"
	MessageTypeStoryboardAccess MessageType = "storyboard:access"
	MessageTypeKPIUpdated       MessageType = "kpi:updated"

	// Connection messages
	MessageTypeConnection MessageType = "connection"
	MessageTypeError      MessageType = "error"
)

// WebSocketMessage is the envelope of every message sent to feed clients
type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// FavoritesUpdated carries the favorites list after a toggle
type FavoritesUpdated struct {
	Toggled   domain.Asset   `json:"toggled"`
	Favorite  bool           `json:"favorite"`
	Favorites []domain.Asset `json:"favorites"`
}

// LayoutFavorite carries a layout whose favorite flag flipped
type LayoutFavorite struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// StoryboardAccess carries the access state of a storyboard after a request
type StoryboardAccess struct {
	ID                  string                     `json:"id"`
	HasAccess           bool                       `json:"hasAccess"`
	AccessRequestStatus domain.AccessRequestStatus `json:"accessRequestStatus,omitempty"`
}

// ConnectionStatus is sent to a client right after it connects
type ConnectionStatus struct {
	Status   string `json:"status"`
	ClientID string `json:"client_id"`
	Clients  int    `json:"clients"`
}
