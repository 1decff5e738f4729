package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"assetlib/internal/catalog"
	"assetlib/internal/config"
	apierrors "assetlib/internal/errors"
	"assetlib/internal/infrastructure"
	customMiddleware "assetlib/internal/middleware"
	"assetlib/internal/preview"
	"assetlib/internal/services"
	"assetlib/internal/storage"
	handlers "assetlib/internal/transport/http"
	ws "assetlib/internal/websocket"
	"assetlib/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Store         storage.Store
	Catalog       *catalog.Catalog
	WebSocketHub  *ws.Hub
	Services      *ServiceContainer
	ErrorHandler  *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	KPIs        *services.KpiService
	Layouts     *services.LayoutService
	Storyboards *services.StoryboardService
	Assets      *services.AssetService
	Library     *services.LibraryService
	Health      *services.HealthService
	Previews    *preview.Manager
}

// NewApplication loads the configuration and creates the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(cfg)
}

// New creates an application from cfg with dependency injection
func New(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("storage_driver", cfg.Storage.Driver))

	paths, err := cfg.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(cfg.Storage.Driver); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false, handlers.ErrorMappings()...),
	}

	if err := app.initializeServices(); err != nil {
		app.release(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices opens the store and wires every service
func (a *Application) initializeServices() error {
	ctx := context.Background()

	store, err := storage.Open(a.Config.Storage, a.Paths)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", a.Config.Storage.Driver, err)
	}
	a.Store = store

	cat, err := catalog.Open(ctx, store, catalog.DefaultSeed())
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	a.Catalog = cat

	var notifier services.Notifier
	var clients services.ClientCounter
	if a.Config.WebSocket.Enabled {
		hub := ws.NewHub(a.Logger, a.Metrics)
		hub.Start()
		a.WebSocketHub = hub
		notifier = ws.NewFeedNotifier(hub)
		clients = hub
	}

	kpis := services.NewKpiService(cat.KPIs, notifier, a.Logger)
	layouts := services.NewLayoutService(cat.Layouts, notifier, a.Logger)
	storyboards := services.NewStoryboardService(cat.Storyboards, notifier, a.Logger)
	assets := services.NewAssetService(kpis, layouts, storyboards, cat.State, notifier, a.Logger)

	previews, err := preview.NewManager(a.Config.Preview.MaxSessions, layouts, kpis, a.Metrics, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize preview manager: %w", err)
	}

	a.Services = &ServiceContainer{
		KPIs:        kpis,
		Layouts:     layouts,
		Storyboards: storyboards,
		Assets:      assets,
		Library:     services.NewLibraryService(assets, kpis, layouts, storyboards, a.Logger),
		Health:      services.NewHealthService(contracts.Version, a.Config.Storage.Driver, cat.State, clients, a.Logger),
		Previews:    previews,
	}
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Safe for the websocket upgrade: none of these hide the Hijacker
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	if a.WebSocketHub != nil {
		r.Handle("/ws", ws.NewHandler(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger))
	}

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	deps := handlers.NewDeps(a.Logger, a.ErrorHandler, a.Metrics)
	s := a.Services

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
		r.Use(customMiddleware.ContentTypeValidator("application/json"))
		r.Use(deps.Validation.LimitBody)

		r.Mount("/health", handlers.NewHealthHandler(s.Health, a.ErrorHandler, a.Logger).Routes())
		r.Mount("/library", handlers.NewLibraryHandler(s.Library, s.Assets, a.Catalog, deps).Routes())
		r.Mount("/assets", handlers.NewAssetHandler(s.Assets, deps).Routes())
		r.Mount("/kpis", handlers.NewKPIHandler(s.KPIs, deps).Routes())
		r.Mount("/layouts", handlers.NewLayoutHandler(s.Layouts, deps).Routes())
		r.Mount("/storyboards", handlers.NewStoryboardHandler(s.Storyboards, deps).Routes())
		r.Mount("/previews", handlers.NewPreviewHandler(s.Previews, deps).Routes())
		r.Post("/logs", handlers.NewClientLogHandler(deps).Handle)
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Serve accepts connections on ln until the server is shut down
func (a *Application) Serve(ln net.Listener) error {
	a.Logger.Info("Application started",
		slog.String("address", ln.Addr().String()),
		slog.String("version", contracts.Version))

	if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if err := a.release(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// release stops the background services and closes the store
func (a *Application) release(ctx context.Context) error {
	var errs []error
	if a.WebSocketHub != nil {
		a.WebSocketHub.Stop()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close error: %w", err))
		}
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("log file close error: %w", err))
	}
	return errors.Join(errs...)
}

// Run serves on the configured port until ctx is cancelled, then shuts down
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		a.release(ctx)
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.RunListener(ctx, ln)
}

// RunListener serves on ln until ctx is cancelled or the server fails
func (a *Application) RunListener(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout+5*time.Second)
		defer cancel()
		return a.Stop(stopCtx)
	})

	return g.Wait()
}
