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

	"github.com/Mees070/woningprijs-calculater/internal/config"
	custommw "github.com/Mees070/woningprijs-calculater/internal/middleware"
	"github.com/Mees070/woningprijs-calculater/internal/services"
	transport "github.com/Mees070/woningprijs-calculater/internal/transport/http"
)

// Version is the application version, overridable at build time with
// -ldflags "-X ...app.Version=v1.2.3".
var Version = "dev"

// Application wires the configuration, services and HTTP server together.
type Application struct {
	Config          *config.Config
	Logger          *slog.Logger
	Router          chi.Router
	Server          *http.Server
	EstimateService *services.EstimateService
	HealthService   *services.HealthService
}

// NewApplication builds a ready-to-run application from the configuration.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	estimateService, err := services.NewEstimateService(cfg.Paths.ProfileFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize estimate service: %w", err)
	}

	a := &Application{
		Config:          cfg,
		Logger:          logger,
		EstimateService: estimateService,
		HealthService:   services.NewHealthService(Version, estimateService),
	}
	a.setupRouter()
	a.createServer()
	return a, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Mount("/estimate", transport.NewEstimateHandler(a.EstimateService, a.Logger).Routes())
		r.Mount("/profile", transport.NewProfileHandler(a.EstimateService, a.Logger).Routes())
	})

	r.Get("/healthz", transport.NewHealthHandler(a.HealthService, a.Logger).HealthCheck)

	// Prometheus endpoint stays outside the rate limited group so scrapes
	// never compete with API traffic.
	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
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

// Start launches the HTTP server. A listen failure cancels the context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("profile", a.Config.Paths.ProfileFile),
	)

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()
}

// Stop gracefully stops the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a.Start(ctx, cancel)

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
