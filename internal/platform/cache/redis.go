package cache

import (
	"context"
	"devpair/internal/platform/config"
	"devpair/internal/platform/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := RDB.Ping(ctx).Result(); err != nil {
		logger.Fatal().Err(err).Str("addr", config.AppConfig.RedisAddr).Msg("Could not connect to Redis")
	}
	logger.Info().Str("addr", config.AppConfig.RedisAddr).Msg("Connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logger.Info().Msg("Redis connection closed")
	}
}
