package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/field-report-service/internal/api/http"
	"github.com/spec-kit/field-report-service/internal/api/http/handlers"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/config"
	"github.com/spec-kit/field-report-service/internal/events"
	"github.com/spec-kit/field-report-service/internal/messaging"
	"github.com/spec-kit/field-report-service/internal/observability"
	"github.com/spec-kit/field-report-service/internal/persistence"
	"github.com/spec-kit/field-report-service/internal/repository"
	"github.com/spec-kit/field-report-service/internal/service"
	"github.com/spec-kit/field-report-service/internal/storage"
	"github.com/spec-kit/field-report-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var photoStore storage.PhotoStore
	if cfg.Cloudinary.URL != "" {
		store, err := storage.NewCloudinaryStore(cfg.Cloudinary.URL)
		if err != nil {
			logger.Fatal("cloudinary setup failed", zap.Error(err))
		}
		photoStore = store
	} else {
		logger.Warn("CLOUDINARY_URL not provided; photo uploads disabled")
		photoStore = storage.DisabledStore{}
	}

	var publisher messaging.Publisher
	if cfg.Rabbit.URL != "" {
		rabbit, err := messaging.NewRabbitPublisher(cfg.Rabbit.URL, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable; notifications limited to logs", zap.Error(err))
		} else {
			publisher = rabbit
			defer rabbit.Close()
		}
	}

	userRepo := repository.NewUserRepository(postgres.PoolHandle())
	reportRepo := repository.NewReportRepository(postgres.PoolHandle())

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, dispatcher)
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:  reportRepo,
		UserRepo:    userRepo,
		PhotoStore:  photoStore,
		PhotoFolder: cfg.Cloudinary.Folder,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	sessions := auth.NewSessionResolver(authService.TokenManager())

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})

	httpapi.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:       handlers.NewHealthHandler(postgres, redis, cfg.App.Version),
		Auth:         handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure),
		Reports:      handlers.NewReportsHandler(reportService),
		Users:        handlers.NewUsersHandler(userService),
		Profile:      handlers.NewProfileHandler(userService, authService),
		Dashboard:    handlers.NewDashboardHandler(reportService),
		Sessions:     sessions,
		LoginLimiter: httpapi.LoginRateLimiter(redis.Client, cfg.RateLimit, logger),
	})

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped cleanly")
}
