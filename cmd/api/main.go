package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tourism-service/internal/api/http"
	"github.com/spec-kit/tourism-service/internal/api/http/handlers"
	"github.com/spec-kit/tourism-service/internal/auth"
	"github.com/spec-kit/tourism-service/internal/config"
	"github.com/spec-kit/tourism-service/internal/events"
	"github.com/spec-kit/tourism-service/internal/observability"
	"github.com/spec-kit/tourism-service/internal/persistence"
	"github.com/spec-kit/tourism-service/internal/repository"
	"github.com/spec-kit/tourism-service/internal/service"
	"github.com/spec-kit/tourism-service/internal/worker"
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

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		mongo.Close(shutdownCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, logger); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(mongo)
	packageRepo := repository.NewPackageRepository(mongo)
	guideRepo := repository.NewGuideRepository(mongo)
	storyRepo := repository.NewStoryRepository(mongo)
	bookingRepo := repository.NewBookingRepository(mongo)
	wishlistRepo := repository.NewWishlistRepository(mongo)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(dispatcher, logger)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, dispatcher, logger)
	catalogService := service.NewCatalogService(packageRepo, guideRepo, storyRepo, redis, cfg.Cache.CacheTTL(), dispatcher, logger)
	tripService := service.NewTripService(bookingRepo, wishlistRepo, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	// UnescapePath decodes percent-encoded path segments before routing, so
	// email path params like a%40x.com compare equal to the token identity.
	app := fiber.New(fiber.Config{AppName: cfg.App.Name, UnescapePath: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Trips:          handlers.NewTripsHandler(tripService),
		AuthMiddleware: authMiddleware,
		Roles:          userRepo,
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
