// Package app assembles the monitoring service: configuration,
// logging, metrics, the dataset pipeline and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"childmon/internal/config"
	apierrors "childmon/internal/errors"
	"childmon/internal/infrastructure"
	"childmon/internal/middleware"
	"childmon/internal/services"
	transporthttp "childmon/internal/transport/http"
)

// Application owns the service lifecycle.
type Application struct {
	config     *config.Config
	logger     *slog.Logger
	otel       *infrastructure.OTelProviders
	metrics    *infrastructure.PipelineMetrics
	dataset    *services.DatasetService
	httpServer *http.Server
}

// NewApplication wires the full dependency graph from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	datasetService := services.NewDatasetService(cfg, logger, metrics)

	app := &Application{
		config:  cfg,
		logger:  logger,
		otel:    otelProviders,
		metrics: metrics,
		dataset: datasetService,
	}
	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.buildRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) buildRouter() chi.Router {
	errorHandler := apierrors.NewErrorHandler(a.logger, false)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			a.metrics.HTTPRequests.Add(req.Context(), 1)
			next.ServeHTTP(w, req)
		})
	})
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.SecurityHeaders)
	if a.config.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: a.config.Security.AllowedOrigins,
		}))
	}
	if a.config.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			a.config.Security.RateLimit.RPS,
			a.config.Security.RateLimit.Burst,
			a.logger,
		)
		r.Use(limiter.Handler)
	}

	datasetHandler := transporthttp.NewDatasetHandler(a.dataset, a.logger, errorHandler)
	chartsHandler := transporthttp.NewChartsHandler(a.dataset, a.logger, errorHandler)
	dashboardHandler := transporthttp.NewDashboardHandler(a.dataset, a.logger, errorHandler)
	healthHandler := transporthttp.NewHealthHandler(infrastructure.ServiceVersion)

	r.Mount("/api", datasetHandler.Routes())
	r.Mount("/charts", chartsHandler.Routes())
	r.Get("/", dashboardHandler.Dashboard)
	r.Get("/table", dashboardHandler.Table)
	r.Get("/healthz", healthHandler.Healthz)
	r.Handle("/metrics", a.otel.PrometheusHTTP)
	r.NotFound(errorHandler.NotFound)

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled
// or the server fails. SIGINT and SIGTERM trigger a graceful shutdown.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("http server starting",
			slog.String("addr", a.httpServer.Addr),
			slog.String("workbook", a.config.Data.WorkbookPath()))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutdown requested")
		return a.Stop()
	})

	return g.Wait()
}

// Stop shuts the server and telemetry down within the configured
// shutdown timeout.
func (a *Application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown failed", slog.String("error", err.Error()))
		return err
	}
	if err := a.otel.Shutdown(ctx); err != nil {
		a.logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
