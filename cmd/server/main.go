// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"imagify-backend/internal/config"
	"imagify-backend/internal/database"
	"imagify-backend/internal/handlers"
	"imagify-backend/internal/repository"
	"imagify-backend/internal/routes"
	"imagify-backend/internal/services"
)

type store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func initLogger(env string) *zap.Logger {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// openStore connects the configured backend and returns its repositories.
func openStore(cfg *config.Config, logger *zap.Logger) (store, repository.UserRepository, repository.UsageRepository, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := database.NewPostgres(cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return pg, repository.NewPostgresUserRepository(pg.DB), repository.NewPostgresUsageRepository(pg.DB), nil
	default:
		db, err := database.NewMongoDB(cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return db,
			repository.NewUserRepository(db.GetCollection(database.UsersCollection)),
			repository.NewUsageRepository(db.GetCollection(database.GenerationsCollection)),
			nil
	}
}

func main() {
	logger := initLogger(os.Getenv("ENV"))
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	logger.Info("Starting imagify-backend server")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.Duration("clipdrop_timeout", cfg.ClipDrop.Timeout),
		zap.Bool("token_auth", cfg.Auth.JWTSecret != ""))

	if cfg.ClipDrop.APIKey == "" {
		logger.Warn("CLIPDROP_API is not set, every request will receive a placeholder image")
	}

	db, userRepo, usageRepo, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			logger.Error("Error closing store connection", zap.Error(err))
		}
	}()

	logger.Info("Store connected", zap.String("driver", cfg.Store.Driver))

	generator := services.NewClipDropService(cfg.ClipDrop, logger.Named("clipdrop"))
	imageService := services.NewImageService(
		userRepo,
		usageRepo,
		generator,
		services.NewPlaceholderRenderer(nil),
		logger.Named("image"),
	)

	userService := services.NewUserService(userRepo)
	if cfg.Seed.Email != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		user, created, err := userService.EnsureUser(seedCtx, cfg.Seed.Name, cfg.Seed.Email, cfg.Seed.Credits)
		cancel()
		if err != nil {
			logger.Fatal("Failed to seed user", zap.String("email", cfg.Seed.Email), zap.Error(err))
		}
		logger.Info("Seed user ready",
			zap.String("user_id", user.ID),
			zap.String("email", user.Email),
			zap.Bool("created", created),
			zap.Int("credit_balance", user.CreditBalance))
	}

	h := &routes.Handlers{
		Health: handlers.NewHealthHandler(db),
		Image:  handlers.NewImageHandler(imageService),
		User:   handlers.NewUserHandler(userService),
		Usage:  handlers.NewUsageHandler(services.NewUsageService(usageRepo)),
	}

	router := routes.SetupRoutes(h, routes.Options{
		Logger:        logger,
		AllowedOrigin: cfg.Server.AllowedOrigin,
		JWTSecret:     cfg.Auth.JWTSecret,
		// Leave room for the ClipDrop call plus the store round trips
		RequestTimeout: cfg.ClipDrop.Timeout + 30*time.Second,
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ClipDrop.Timeout + 60*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", serverAddr))

		endpoints := []struct {
			method string
			path   string
		}{
			{"GET", "/"},
			{"GET", "/health"},
			{"POST", "/api/image/generate-image"},
			{"GET", "/api/image/history"},
			{"GET", "/api/user/credits"},
		}
		for _, endpoint := range endpoints {
			logger.Debug("Endpoint registered",
				zap.String("method", endpoint.method),
				zap.String("path", endpoint.path))
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Received shutdown signal, shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
