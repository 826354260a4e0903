package database

import (
	"context"
	"database/sql"
	"devpair/internal/platform/config"
	"devpair/internal/platform/logger"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error opening database")
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = DB.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Str("host", config.AppConfig.DBHost).Msg("Error connecting to database")
	}

	logger.Info().Str("host", config.AppConfig.DBHost).Str("db", config.AppConfig.DBName).Msg("Connected to PostgreSQL")
}

func Close() {
	if DB != nil {
		DB.Close()
		logger.Info().Msg("Database connection closed")
	}
}
