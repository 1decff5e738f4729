package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"assetlib/internal/catalog"
)

// ClientCounter reports the number of connected change feed clients
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	driver    string
	state     *catalog.StateRepository
	hub       ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service. hub may be nil when the
// change feed is disabled.
func NewHealthService(version, driver string, state *catalog.StateRepository, hub ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("storage_driver", driver))

	return &HealthService{
		version:   version,
		driver:    driver,
		state:     state,
		hub:       hub,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"storage":   hs.checkStorageHealth(ctx),
			"websocket": hs.checkWebSocketHealth(),
		},
	}

	for _, service := range status.Services {
		if service.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":        hs.version,
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
		"storage_driver": hs.driver,
		"uptime":         time.Since(hs.startTime).Seconds(),
		"start_time":     hs.startTime.Format(time.RFC3339),
	}
}

func (hs *HealthService) checkStorageHealth(ctx context.Context) ServiceHealth {
	if hs.state == nil {
		return ServiceHealth{Status: "not_ready", Message: "storage not initialized"}
	}
	if _, err := hs.state.Load(ctx); err != nil {
		hs.logger.WarnContext(ctx, "Storage health check failed", slog.String("error", err.Error()))
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Storage error: %v", err),
		}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%s storage is healthy", hs.driver),
	}
}

func (hs *HealthService) checkWebSocketHealth() ServiceHealth {
	if hs.hub == nil {
		return ServiceHealth{Status: "ready", Message: "WebSocket feed disabled"}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("WebSocket service is healthy (%d clients)", hs.hub.ClientCount()),
		Uptime:  time.Since(hs.startTime).String(),
	}
}
