package config

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Tushank1/PowerSports-backend/internal/models"
	pkgconfig "github.com/Tushank1/PowerSports-backend/pkg/config"
	pkgdb "github.com/Tushank1/PowerSports-backend/pkg/db"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	JWTSecret []byte

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ServiceName: pkgconfig.EnvDefault("SERVICE_NAME", "powersports"),
		ServerPort:  pkgconfig.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: pkgconfig.EnvDefault("DATABASE_URL", ""),

		ESURL:      pkgconfig.EnvDefault("ES_URL", ""),
		ESUser:     pkgconfig.EnvDefault("ES_USER", ""),
		ESPassword: pkgconfig.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgconfig.EnvDefault("ES_INDEX", "products"),

		JWTSecret: []byte(pkgconfig.EnvDefault("JWT_SECRET", "")),

		KafkaBrokers: pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   pkgconfig.EnvDefault("KAFKA_TOPIC", "product_events"),
	}

	if err := pkgconfig.Require(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := pkgconfig.Require(string(cfg.JWTSecret), "JWT_SECRET"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// InitDB opens the pooled connection and migrates the catalog schema.
func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
