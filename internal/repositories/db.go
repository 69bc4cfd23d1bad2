// Package repositories provides the data access layer: the Postgres
// stores behind the scoring engine's lookups, the Redis velocity
// counter, and persistence for analyzed transactions and alerts.
package repositories

import (
	"context"
	"log"
	"time"

	"frauddetect/internal/config"
	"frauddetect/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// RedisClient backs the velocity counter store. Nil when Redis is
// unreachable at startup; scoring then runs without a velocity signal.
var RedisClient *redis.Client

// InitDB connects to Postgres, migrates the schema, and connects to
// Redis. Postgres is required; Redis failure is downgraded to a
// warning because the engine degrades gracefully without it.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "frauddetect") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	logLevel := logger.Warn
	if !config.IsProduction() {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(
		&models.UserProfile{},
		&models.BlacklistedIP{},
		&models.TransactionRecord{},
		&models.Alert{},
	); err != nil {
		return err
	}

	initRedis()
	return nil
}

func initRedis() {
	client := redis.NewClient(&redis.Options{
		Addr:         config.GetEnv("REDIS_HOST", "localhost") + ":" + config.GetEnv("REDIS_PORT", "6379"),
		Password:     config.GetEnv("REDIS_PASSWORD", ""),
		DB:           config.GetIntEnv("REDIS_DB", 0),
		DialTimeout:  config.GetDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  config.GetDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: config.GetDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable, velocity checks disabled: %v", err)
		_ = client.Close()
		return
	}

	RedisClient = client
}

// CloseDB releases the Postgres and Redis connections.
func CloseDB() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close database connection: %v", err)
			}
		}
	}
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			log.Printf("⚠️ Failed to close Redis connection: %v", err)
		}
	}
}
