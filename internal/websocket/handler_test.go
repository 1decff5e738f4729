package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetlib/internal/config"
	"assetlib/pkg/contracts/events"
)

func TestHandler_ChangeFeed(t *testing.T) {
	hub := NewHub(discardLogger(), nil)
	hub.Start()
	defer hub.Stop()

	cfg := config.Default().WebSocket
	srv := httptest.NewServer(NewHandler(hub, cfg, []string{"http://localhost:3000"}, discardLogger()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	t.Run("streams events", func(t *testing.T) {
		header := http.Header{"Origin": []string{"http://localhost:3000"}}
		conn, _, err := websocket.DefaultDialer.Dial(url, header)
		require.NoError(t, err)
		defer conn.Close()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		var greeting events.WebSocketMessage
		require.NoError(t, conn.ReadJSON(&greeting))
		assert.Equal(t, events.MessageTypeConnection, greeting.Type)

		hub.Broadcast(string(events.MessageTypeKPIUpdated), map[string]string{"id": "revenue_growth"})

		var update events.WebSocketMessage
		require.NoError(t, conn.ReadJSON(&update))
		assert.Equal(t, events.MessageTypeKPIUpdated, update.Type)
		assert.Equal(t, map[string]interface{}{"id": "revenue_growth"}, update.Data)
	})

	t.Run("rejects unknown origin", func(t *testing.T) {
		header := http.Header{"Origin": []string{"http://evil.example"}}
		conn, resp, err := websocket.DefaultDialer.Dial(url, header)
		if conn != nil {
			conn.Close()
		}
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
