package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/user-admin-service/internal/api/http"
	"github.com/spec-kit/user-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/identity"
	"github.com/spec-kit/user-admin-service/internal/notify"
	"github.com/spec-kit/user-admin-service/internal/observability"
	"github.com/spec-kit/user-admin-service/internal/persistence"
	"github.com/spec-kit/user-admin-service/internal/profile"
	"github.com/spec-kit/user-admin-service/internal/service"
	"github.com/spec-kit/user-admin-service/internal/worker"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	sessions := identity.NewSessionRegistry(redis.Client)
	identityProvider := identity.NewPostgresProvider(pool, sessions, cfg.Identity)
	profileStore := profile.NewPostgresStore(pool)

	var transport notify.Transport
	if cfg.Notification.SMTPAddr != "" {
		transport = notify.NewSMTPTransport(cfg.Notification.SMTPAddr, nil)
	} else {
		logger.Warn("NOTIFY_SMTP_ADDR not set; credential notifications will only be logged")
		transport = notify.NewLogTransport(logger)
	}
	notifier := notify.NewDispatcher(transport, logger, cfg.Notification)

	eventDispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(eventDispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	gate := auth.NewGate(profileStore)
	userService := service.NewUserService(service.UserDependencies{
		Gate:       gate,
		Identity:   identityProvider,
		Profiles:   profileStore,
		Notifier:   notifier,
		Dispatcher: eventDispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		Identity: identityProvider,
		Profiles: profileStore,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), sessions)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	adminUsersHandler := handlers.NewAdminUsersHandler(userService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		AdminUsers:     adminUsersHandler,
		AuthMiddleware: authMiddleware,
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
