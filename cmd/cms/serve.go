package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"doccms/docs"
	"doccms/internal/auth"
	"doccms/internal/config"
	"doccms/internal/database"
	"doccms/internal/database/migration"
	"doccms/internal/docstore"
	handlers "doccms/internal/http/handler"
	"doccms/internal/http/middleware"
	"doccms/internal/http/session"
	"doccms/internal/http/view"
	"doccms/internal/logging"
	"doccms/internal/otel"
	"doccms/internal/repository"
	"doccms/internal/repository/postgres"
	"doccms/internal/service"
	"doccms/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.Location())

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("tracer_shutdown_failed")
		}
	}()

	backend, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	creds, err := auth.LoadCredentials(cfg.Auth.UsersFile)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	// The activity journal is optional; without a database it is discarded.
	var (
		db       *sql.DB
		activity repository.ActivityRepository = repository.Nop{}
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		activity = postgres.NewActivityPostgres(db)
	}

	gate := service.NewAccessGate(creds)
	docSvc := service.NewDocumentService(docstore.New(backend), gate, activity, log)
	authSvc := service.NewAuthService(gate, activity, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		Views:                 view.NewEngine(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())
	app.Use(middleware.Logger(log))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	app.Use(session.New(cfg.Auth.SessionExpiry()).Handler())
	handlers.RegisterRoutes(app, handlers.Deps{
		Documents: docSvc,
		Auth:      authSvc,
		DB:        db,
		Metrics:   reg,
	})

	return listen(ctx, app, log, ":"+cfg.Port)
}

func openStorage(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return storage.NewLocal(cfg.Storage.DataDir)
	}
}

func listen(ctx context.Context, app *fiber.App, log zerolog.Logger, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server_listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("server_shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
