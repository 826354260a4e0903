package main

import (
	"context"
	"devpair/internal/api"
	"devpair/internal/api/middleware"
	"devpair/internal/app/service"
	"devpair/internal/common/security"
	"devpair/internal/domain/repository"
	"devpair/internal/domain/repository/memory"
	"devpair/internal/platform/cache"
	"devpair/internal/platform/config"
	"devpair/internal/platform/database"
	"devpair/internal/platform/logger"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info().Str("storage", cfg.StorageBackend).Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.AccessTTL, cfg.RefreshTTL)

	// 3. Initialize storage and the revocation store
	var (
		store       *repository.Store
		revocations security.RevocationStore
		healthCheck func(ctx context.Context) error
	)
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		logger.Warn().Msg("Using in-memory storage; data is lost on restart")
		store = memory.NewStore(memory.NewDB())
		revocations = security.NewMemoryRevocationStore()
	case config.StorageBackendPostgres:
		database.Connect()
		defer database.Close()
		if cfg.DBAutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := database.Migrate(ctx, database.DB)
			cancel()
			if err != nil {
				logger.Fatal().Err(err).Msg("Schema migration failed")
			}
			logger.Info().Msg("Schema migrated")
		}

		cache.ConnectRedis()
		defer cache.CloseRedis()

		store = repository.NewPgStore(database.DB)
		revocations = security.NewRedisRevocationStore(cache.RDB)
		healthCheck = func(ctx context.Context) error {
			if err := database.DB.PingContext(ctx); err != nil {
				return err
			}
			return cache.RDB.Ping(ctx).Err()
		}
	default:
		logger.Fatal().Str("storage", cfg.StorageBackend).Msg("Unknown STORAGE_BACKEND")
	}

	// 4. Initialize Services
	services := service.New(store, revocations, cfg.BcryptCost)

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(services, middleware.NewAuthenticator(revocations), api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthRateLimit:  cfg.AuthRateLimit,
		HealthCheck:    healthCheck,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Str("port", cfg.APIPort).Msg("Could not listen")
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
		return
	}
	logger.Info().Msg("Server stopped gracefully")
}
