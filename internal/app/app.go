package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"csatpulse/internal/config"
	"csatpulse/internal/dataprocessing"
	apierrors "csatpulse/internal/errors"
	"csatpulse/internal/generator"
	"csatpulse/internal/infrastructure"
	customMiddleware "csatpulse/internal/middleware"
	"csatpulse/internal/services"
	"csatpulse/internal/store"
	handlers "csatpulse/internal/transport/http"
	"csatpulse/internal/validation"
	"csatpulse/pkg/contracts"
)

const AppName = "CSAT Pulse"

// Application is the main application container.
type Application struct {
	Config   *config.Config
	Router   *chi.Mux
	Server   *http.Server
	Logger   *slog.Logger
	Metrics  *infrastructure.Metrics
	Services *ServiceContainer
}

// ServiceContainer holds the application services.
type ServiceContainer struct {
	Dashboard *services.DashboardService
	Upload    *services.UploadService
	Export    *services.ExportService
	Health    *services.HealthService
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	a := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) initializeServices() error {
	start, end, err := a.Config.Generator.DateWindow()
	if err != nil {
		return err
	}

	genCfg := generator.Config{
		Seed:       a.Config.Generator.Seed,
		Start:      start,
		End:        end,
		BaseMean:   a.Config.Generator.BaseMean,
		BaseStdDev: a.Config.Generator.BaseStdDev,
	}

	uploads := store.NewUploadStore(a.Logger)
	dashboard := services.NewDashboardService(generator.New(a.Logger), genCfg, uploads, a.Metrics, a.Logger)

	upload := services.NewUploadService(
		dataprocessing.NewParser(a.Logger),
		validation.NewUploadValidator(a.Logger, a.Config.Upload.MaxFileSize),
		uploads,
		a.Metrics,
		a.Config.Upload.MaxBatchSize,
		a.Logger,
	)

	export := services.NewExportService(dashboard, a.Config.Paths.ExportsDir, a.Metrics, a.Logger)

	a.Services = &ServiceContainer{
		Dashboard: dashboard,
		Upload:    upload,
		Export:    export,
		Health:    services.NewHealthService(a.Logger),
	}

	return nil
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Metrics endpoint stays outside the full middleware chain so
	// scrapes are not rate limited or logged per request.
	r.Handle("/metrics", promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))
		r.Use(customMiddleware.Metrics(a.Metrics))

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures the API endpoints.
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)

		r.Mount("/dashboard", handlers.NewDashboardHandler(a.Services.Dashboard, a.Logger, errorHandler).Routes())
		r.Mount("/uploads", handlers.NewUploadHandler(a.Services.Upload, a.Logger, errorHandler).Routes())
		r.Mount("/export", handlers.NewExportHandler(a.Services.Export, a.Logger, errorHandler).Routes())
	})
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins:   a.Config.Security.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run serves until the context is cancelled or the listener fails, then
// shuts down gracefully within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
		slog.String("level", a.Config.Logging.Level))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.Logger.Info("application shutdown complete")
	infrastructure.CloseLogFile()
	return nil
}

func (a *Application) shutdown() error {
	a.Logger.Info("shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
