package config

import (
	"devpair/internal/platform/logger"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	APIPort        string
	StorageBackend string

	JWTKey        []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
	AuthRateLimit int

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBConnStr     string
	DBAutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "8080"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageBackendPostgres),
		JWTKey:         []byte(getEnv("JWT_SECRET", "defaultsecret")),
		AccessTTL:      time.Duration(getEnvAsInt("JWT_ACCESS_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL:     time.Duration(getEnvAsInt("JWT_REFRESH_TTL_HOURS", 720)) * time.Hour,
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 10),
		AuthRateLimit:  getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 20),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "devpair"),
		DBPassword:     getEnv("DB_PASSWORD", "devpair"),
		DBName:         getEnv("DB_NAME", "devpair"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
