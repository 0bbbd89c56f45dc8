package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"nexfolio_backend/internal/controller"
	"nexfolio_backend/internal/middleware"
	"nexfolio_backend/internal/model"
	"nexfolio_backend/internal/service"
	"nexfolio_backend/pkg/config"
	"nexfolio_backend/pkg/cron"
	"nexfolio_backend/pkg/database"
	"nexfolio_backend/pkg/seed"
	"nexfolio_backend/pkg/utils/jwt"
	"nexfolio_backend/pkg/utils/storage"
)

func newStorage(ctx context.Context, cfg config.UploadConfig) (storage.Storage, *storage.LocalStorage, error) {
	if cfg.Backend == "s3" {
		s3, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		return s3, nil, err
	}

	local, err := storage.NewLocalStorage(cfg.Dir, cfg.URLPrefix)
	if err != nil {
		return nil, nil, err
	}
	return local, local, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, model.All()...); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	ctx := context.Background()
	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authService := service.NewAuthService(db, tokens)

	if cfg.SeedDemo {
		if err := seed.Demo(ctx, db, authService); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	store, local, err := newStorage(ctx, cfg.Upload)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	subscriptionService := service.NewSubscriptionService(db, cfg.Subscription.PeriodDays)
	if cfg.Subscription.ExpiryCron != "" {
		scheduler, err := cron.StartSubscriptionExpiry(cfg.Subscription.ExpiryCron, subscriptionService)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: controller.ErrorHandler,
		BodyLimit:    cfg.Server.BodyLimitMB << 20,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowCredentials: cfg.Server.CORSOrigins != "*",
	}))

	if local != nil {
		app.Static(cfg.Upload.URLPrefix, local.Dir())
	}

	controller.SetupRoutes(app, controller.Handlers{
		Auth:         controller.NewAuthController(authService, cfg.JWT.CookieName, tokens.Expiry(), !cfg.IsDevelopment()),
		Profile:      controller.NewProfileController(service.NewProfileService(db)),
		Provider:     controller.NewProviderController(service.NewProviderService(db)),
		Portfolio:    controller.NewPortfolioController(service.NewPortfolioService(db)),
		Booking:      controller.NewBookingController(service.NewBookingService(db)),
		Review:       controller.NewReviewController(service.NewReviewService(db)),
		Subscription: controller.NewSubscriptionController(subscriptionService),
		Upload:       controller.NewUploadController(service.NewUploadService(store)),
		Health:       controller.NewHealthController(db),
	}, middleware.AuthMiddleware(tokens, cfg.JWT.CookieName))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server is running on port %s", cfg.Server.Port)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
