package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nmt-console/internal/api/http"
	"github.com/spec-kit/nmt-console/internal/api/http/handlers"
	"github.com/spec-kit/nmt-console/internal/apiclient"
	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/config"
	"github.com/spec-kit/nmt-console/internal/console"
	"github.com/spec-kit/nmt-console/internal/events"
	"github.com/spec-kit/nmt-console/internal/observability"
	"github.com/spec-kit/nmt-console/internal/persistence"
	"github.com/spec-kit/nmt-console/internal/repository"
	"github.com/spec-kit/nmt-console/internal/service"
	"github.com/spec-kit/nmt-console/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var auditRepo repository.AuditRepository
	if pool := pg.PoolHandle(); pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
	}
	auditService := service.NewAuditService(dispatcher, auditRepo, metrics, logger)
	worker.StartAuditWorker(auditService)

	factory := apiclient.NewFactory(cfg.API, logger)
	logger.Info("release backend", zap.String("endpoint", cfg.API.Endpoint()))

	scope := &console.Builder{
		Factory:     factory,
		Revocations: auth.NewRevocations(redis.Handle()),
		Dispatcher:  dispatcher,
		Session:     cfg.Session,
		Logger:      logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, handlers.HealthDependencies{
			Postgres: pg,
			Redis:    redis,
			Backend:  factory,
			Metrics:  metrics,
		}),
		Auth:      handlers.NewAuthHandler(),
		Dashboard: handlers.NewDashboardHandler(),
		Releases:  handlers.NewReleasesHandler(),
		Users:     handlers.NewUsersHandler(auditService),
		Scope:     scope,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
