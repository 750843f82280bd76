package main

// @title Restaurant Locator API
// @version 1.0.0
// @description Поиск ресторанов рядом с пользователем через Google Places API.
// @description Результаты нормализуются и сохраняются в PostgreSQL, пользователи синхронизируются по Firebase ID токену.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Firebase ID token: Bearer <token>

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/restaurant-locator/docs"
	"github.com/restaurant-locator/internal/config"
	httpDelivery "github.com/restaurant-locator/internal/delivery/http"
	"github.com/restaurant-locator/internal/delivery/http/handler"
	"github.com/restaurant-locator/internal/infrastructure/firebase"
	"github.com/restaurant-locator/internal/infrastructure/googleplaces"
	"github.com/restaurant-locator/internal/pkg/logger"
	"github.com/restaurant-locator/internal/repository/cache"
	"github.com/restaurant-locator/internal/repository/postgres"
	redisRepo "github.com/restaurant-locator/internal/repository/redis"
	"github.com/restaurant-locator/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting Restaurant Locator API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("persistence_mode", cfg.Persistence.Mode),
		zap.Bool("location_auth", cfg.Auth.RequireLocationAuth),
		zap.String("places_api_key", logger.MaskSecret(cfg.Places.APIKey)),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis (только для stream режима)
	var redisClient *cache.Redis
	if cfg.StreamMode() {
		redisClient, err = cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis connected")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories and clients
	placeRepo := postgres.NewPlaceRepository(db)
	userRepo := postgres.NewUserRepository(db)

	placesClient := googleplaces.NewPlacesClient(&cfg.Places, log)
	verifier := firebase.NewVerifier(&cfg.Auth, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	var persister usecase.PlacePersister
	if redisClient != nil {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
		persister = usecase.NewStreamPersister(streamRepo, log, time.Now)
	} else {
		persister = usecase.NewPlaceReconciler(placeRepo, log, time.Now)
	}

	locationUC := usecase.NewLocationUseCase(placesClient, persister, log)
	userUC := usecase.NewUserUseCase(userRepo, log, time.Now)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	locationHandler := handler.NewLocationHandler(locationUC, log)
	profileHandler := handler.NewProfileHandler(userUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		verifier,
		locationHandler,
		profileHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
