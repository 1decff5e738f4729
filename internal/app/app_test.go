package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetlib/internal/config"
	"assetlib/internal/infrastructure"
	"assetlib/pkg/contracts/domain"
	"assetlib/pkg/contracts/events"
)

const testOrigin = "http://localhost:3000"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Security.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 5 * time.Second
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *httptest.Server) {
	t.Helper()
	infrastructure.ResetLoggerForTesting()

	a, err := New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router)
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, a.release(context.Background()))
		infrastructure.ResetLoggerForTesting()
	})
	return a, srv
}

func request(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestNew_WiresServices(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))

	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Server)
	assert.NotNil(t, a.WebSocketHub)
	assert.NotNil(t, a.Catalog)
	require.NotNil(t, a.Services)
	assert.NotNil(t, a.Services.Library)
	assert.NotNil(t, a.Services.Previews)
	assert.Equal(t, ":8080", a.Server.Addr)
}

func TestRouter_Endpoints(t *testing.T) {
	_, srv := newTestApp(t, testConfig(t))

	resp, body := request(t, http.MethodGet, srv.URL+"/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, body = request(t, http.MethodGet, srv.URL+"/api/library/tabs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, "storyboards")

	resp, body = request(t, http.MethodGet, srv.URL+"/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"status":404`)

	resp, body = request(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests")
}

func TestRouter_CORSPreflight(t *testing.T) {
	_, srv := newTestApp(t, testConfig(t))

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/kpis", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_ChangeFeed(t *testing.T) {
	_, srv := newTestApp(t, testConfig(t))

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{testOrigin}})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var greeting events.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, events.MessageTypeConnection, greeting.Type)

	resp, body := request(t, http.MethodPost, srv.URL+"/api/assets/favorites/toggle",
		`{"id":"market_share","type":"kpi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var update events.WebSocketMessage
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, events.MessageTypeFavoritesUpdated, update.Type)
}

func TestRouter_ChangeFeedDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.WebSocket.Enabled = false
	a, srv := newTestApp(t, cfg)
	assert.Nil(t, a.WebSocketHub)

	resp, _ := request(t, http.MethodGet, srv.URL+"/ws", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Services still work without a feed
	resp, body := request(t, http.MethodPost, srv.URL+"/api/storyboards/market_analysis/access", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
}

func TestFileStorePersistsAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = config.StorageDriverFile
	cfg.Storage.DataDir = t.TempDir()

	infrastructure.ResetLoggerForTesting()
	first, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(first.Router)

	resp, body := request(t, http.MethodPost, srv.URL+"/api/assets/favorites/toggle",
		`{"id":"sales_dashboard","type":"layout"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	srv.Close()
	require.NoError(t, first.release(context.Background()))

	_, srv = newTestApp(t, cfg)
	resp, body = request(t, http.MethodGet, srv.URL+"/api/assets/favorites", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var favorites []domain.AssetItem
	require.NoError(t, json.Unmarshal([]byte(body), &favorites))
	require.Len(t, favorites, 1)
	assert.Equal(t, "sales_dashboard", favorites[0].ID)
}

func TestRunListener_StopsOnCancel(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	a, err := New(testConfig(t))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.RunListener(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/health/live")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("RunListener did not return after cancel")
	}
}
