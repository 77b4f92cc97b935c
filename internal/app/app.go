package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"accheck/internal/config"
	"accheck/internal/dataset"
	"accheck/internal/dedup"
	apierrors "accheck/internal/errors"
	"accheck/internal/exporter"
	"accheck/internal/files"
	"accheck/internal/infrastructure"
	customMiddleware "accheck/internal/middleware"
	"accheck/internal/services"
	transport "accheck/internal/transport/http"
)

// Application wires configuration, services, and the HTTP server
// together.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Router   chi.Router
	Server   *http.Server
	Registry *prometheus.Registry

	version   string
	buildTime string
}

// New creates a fully wired application
func New(cfg *config.Config, version, buildTime string) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.PathsFromConfig(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	a := &Application{
		Config:    cfg,
		Logger:    logger,
		Registry:  prometheus.NewRegistry(),
		version:   version,
		buildTime: buildTime,
	}

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.setupRouter(paths)
	a.createServer()

	logger.Info("application initialized",
		slog.String("version", version),
		slog.Int("port", cfg.Server.Port))

	return a, nil
}

// setupRouter builds the middleware chain and routes
func (a *Application) setupRouter(paths *config.Paths) {
	metrics := customMiddleware.NewMetrics(a.Registry)

	loader := dataset.NewLoader(a.Logger)
	selector := dedup.NewSelector(a.Logger)
	reportExporter := exporter.NewReportExporter(exporter.NewCSVWriter(paths), a.Logger)
	checkService := services.NewCheckService(loader, selector, reportExporter, a.Logger)
	healthService := services.NewHealthService(a.version, a.buildTime, a.Logger)

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	checkHandler := transport.NewCheckHandler(checkService, a.Logger, errorHandler, metrics,
		a.Config.Server.MaxUploadBytes, a.Config.Check.OutputBOM)
	healthHandler := transport.NewHealthHandler(healthService, a.Logger)
	reportsHandler := transport.NewReportsHandler(
		files.NewDiscovery(paths.ExecutableDir), paths.ReportsDir, a.Logger, errorHandler)

	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(metrics.Handler)

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))
		r.Get("/health", healthHandler.Health)
		r.Get("/version", healthHandler.Version)
		r.Mount("/v1/duplicates", checkHandler.Routes())
		r.Mount("/v1/reports", reportsHandler.Routes())
	})

	// Metrics endpoint outside the rate-limited group
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	a.Router = r
}

// createServer configures the HTTP server with timeouts
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// server fails. Shutdown is graceful within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down http server",
			slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if closeErr := infrastructure.CloseLogFile(); closeErr != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", closeErr.Error()))
	}
	return err
}

// WaitForReady polls the health endpoint until the server answers or
// the deadline passes. Used by tests and startup checks.
func (a *Application) WaitForReady(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			resp, err := client.Get(baseURL + "/api/health")
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return nil
				}
			}
		}
	}
}
