package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"empapi/docs"
	"empapi/internal/config"
	"empapi/internal/database"
	"empapi/internal/database/migration"
	handlers "empapi/internal/http/handler"
	"empapi/internal/http/middleware"
	"empapi/internal/logging"
	"empapi/internal/model"
	"empapi/internal/otel"
	"empapi/internal/repository"
	"empapi/internal/repository/memory"
	"empapi/internal/repository/postgres"
	"empapi/internal/service"
	"empapi/internal/storage"
)

// @title Employee API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location())

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exit", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logging.Component(logger, "otel"))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, repo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	empSvc := service.NewEmployeeService(repo)

	var exporter service.RosterExporter
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		exporter = service.NewRosterExporter(repo, objStore, cfg.MinIO.PresignExpiry())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(logger, "http")))
	app.Use(promMW.Handler())
	// Innermost, so logging and metrics see a handler panic as a returned error.
	app.Use(recover.New())

	handlers.RegisterRoutes(app, db, empSvc, exporter)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

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

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start",
			slog.String("addr", ":"+cfg.Port),
			slog.String("storage_driver", cfg.StorageDriver),
			slog.Bool("export_enabled", exporter != nil),
		)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server_shutdown")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRepository selects the storage backend. The returned *sql.DB is nil for
// the in-memory driver.
func newRepository(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, repository.EmployeeRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, logging.Component(logger, "migration"), cfg.Database.Host); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("bootstrap schema: %w", err)
		}
		return db, postgres.NewEmployeePostgres(db), nil
	case config.StorageDriverMemory:
		var seed []model.Employee
		if cfg.MemorySeed {
			seed = memory.SampleEmployees()
		}
		return nil, memory.NewEmployeeMemory(seed), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
