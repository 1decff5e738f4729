package websocket

import (
	"context"
	"time"
)

// Connection is the part of a websocket connection the client pumps use.
// *websocket.Conn is adapted to it by ConnectionWrapper.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() string
}

// ClientRecorder records connected client count changes
type ClientRecorder interface {
	RecordClientChange(ctx context.Context, delta int64)
}
