package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/fraud-desk/internal/api/http"
	"github.com/spec-kit/fraud-desk/internal/api/http/handlers"
	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/config"
	"github.com/spec-kit/fraud-desk/internal/currency"
	"github.com/spec-kit/fraud-desk/internal/events"
	"github.com/spec-kit/fraud-desk/internal/observability"
	"github.com/spec-kit/fraud-desk/internal/persistence"
	"github.com/spec-kit/fraud-desk/internal/remote"
	"github.com/spec-kit/fraud-desk/internal/repository"
	"github.com/spec-kit/fraud-desk/internal/service"
	"github.com/spec-kit/fraud-desk/internal/triage"
	"github.com/spec-kit/fraud-desk/internal/worker"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	var sharedCache *goredis.Client
	if redis.Reachable {
		sharedCache = redis.Client
	}

	metrics := observability.NewMetrics()
	complaintRepo, transitionRepo := buildStore(cfg, pg, logger)

	currencies := currency.NewProvider(currency.Options{
		URL:      cfg.Currency.URL,
		Timeout:  cfg.Currency.RequestTimeout(),
		CacheTTL: cfg.Currency.CacheTTL(),
		Redis:    sharedCache,
		Logger:   logger,
	})
	currencyWorker := worker.NewCurrencyWorker(currencies, cfg.Currency.RefreshInterval(), cfg.Currency.RequestTimeout(), logger)
	if err := currencyWorker.Start(); err != nil {
		logger.Fatal("failed to schedule currency refresh", zap.Error(err))
	}
	defer currencyWorker.Stop()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo:  complaintRepo,
		TransitionRepo: transitionRepo,
		Board:          triage.NewBoard(),
		Currencies:     currencies,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})
	authService, err := service.NewAuthService(cfg.Auth, auth.NewRedisRevocations(sharedCache, logger), logger)
	if err != nil {
		logger.Fatal("failed to init operator auth", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	dependencies := []handlers.Dependency{{Name: "redis", Check: redis, Optional: true}}
	if pg.Enabled() {
		dependencies = append(dependencies, handlers.Dependency{Name: "postgres", Check: pg})
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies...),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Auth:           handlers.NewAuthHandler(authService),
		Currencies:     handlers.NewCurrencyHandler(currencies),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), authService.Revocations()),
		IntakeLimiter:  httptransport.NewRateLimiter(cfg.Intake.PerMinute, cfg.Intake.Burst),
		LoginLimiter:   httptransport.NewRateLimiter(cfg.Auth.LoginPerMinute, 5),
		Metrics:        metrics,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
	}
}

// buildStore picks the complaint store: a remote store when a base URL is
// configured, postgres when connected, process memory otherwise. The
// transition log lives in postgres whenever it is available.
func buildStore(cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (repository.ComplaintRepository, repository.TransitionRepository) {
	var transitions repository.TransitionRepository = repository.NewInMemoryTransitions()
	if pg.Enabled() {
		transitions = repository.NewTransitionRepository(pg.PoolHandle())
	}

	switch {
	case cfg.Store.BaseURL != "":
		logger.Info("using remote complaint store", zap.String("base_url", cfg.Store.BaseURL))
		return remote.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout(), logger), transitions
	case pg.Enabled():
		logger.Info("using postgres complaint store")
		return repository.NewComplaintRepository(pg.PoolHandle()), transitions
	default:
		logger.Warn("no store configured; complaints are kept in memory")
		return repository.NewInMemoryComplaints(), transitions
	}
}
