// Command seed loads demo users, projects and activity through the service
// layer. Every seeded account uses the password "password123".
package main

import (
	"context"
	"devpair/internal/app/service"
	"devpair/internal/common/security"
	"devpair/internal/domain/repository"
	"devpair/internal/platform/config"
	"devpair/internal/platform/database"
	"devpair/internal/platform/logger"
	"flag"
	"time"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate every table before seeding")
	flag.Parse()

	config.Load()
	cfg := config.AppConfig
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	security.InitJWT(cfg.JWTKey, cfg.AccessTTL, cfg.RefreshTTL)

	database.Connect()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *reset {
		if err := database.Reset(ctx, database.DB); err != nil {
			logger.Fatal().Err(err).Msg("Reset failed")
		}
		logger.Info().Msg("Tables dropped and recreated")
	} else if err := database.Migrate(ctx, database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Schema migration failed")
	}

	// Seeding never logs anyone out, so the revocation store stays local.
	svc := service.New(repository.NewPgStore(database.DB), security.NewMemoryRevocationStore(), cfg.BcryptCost)
	summary, err := Seed(ctx, svc)
	if err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
	}

	logger.Info().
		Int("users", summary.Users).
		Int("projects", summary.Projects).
		Int("pairing_requests", summary.PairingRequests).
		Int("milestones", summary.Milestones).
		Msg("Database seeded successfully")
}
