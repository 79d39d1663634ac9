package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/Skotchmaster/coffee_shop/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CSRFEnabled bool
	CORSOrigins []string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		ServiceName: pkgconfig.EnvDefault("SERVICE_NAME", "coffee_shop"),
		ServerPort:  pkgconfig.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    pkgconfig.EnvDefault("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		AccessTTL:        pkgconfig.EnvDurationDefault("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:       pkgconfig.EnvDurationDefault("JWT_REFRESH_TTL", 7*24*time.Hour),

		KafkaBrokers: pkgconfig.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    pkgconfig.EnvDefault("ES_INDEX", "products"),

		CSRFEnabled: pkgconfig.EnvBoolDefault("CSRF_ENABLED", true),
		CORSOrigins: pkgconfig.CSV(os.Getenv("CORS_ORIGINS")),
	}

	if err := errors.Join(
		pkgconfig.Require(cfg.DatabaseURL, "DATABASE_URL"),
		pkgconfig.RequireBytes(cfg.JWTAccessSecret, "JWT_SECRET"),
		pkgconfig.RequireBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET"),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}
