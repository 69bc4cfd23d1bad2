// Package main is the entry point for the fraud detection API. It
// initializes the databases, loads the trained anomaly model, builds
// the scoring engine, and starts the HTTP server.
package main

import (
	"log"
	"time"

	"frauddetect/internal/config"
	"frauddetect/internal/repositories"
	"frauddetect/internal/routes"
	"frauddetect/internal/services/ml"
	"frauddetect/internal/services/risk"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	log.Println("Starting Fraud Detection API...")

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database")

	// Load the trained anomaly model. Absence is a degraded mode: the
	// engine runs rules-only and the ML contribution is zero.
	var model risk.AnomalyModel
	var scaler risk.FeatureScaler
	modelLoaded := false
	forest, std, err := ml.LoadFraudModel(
		config.GetEnv("MODEL_PATH", "models/fraud_model.json"),
		config.GetEnv("SCALER_PATH", "models/fraud_scaler.json"),
	)
	if err != nil {
		log.Printf("⚠️ Anomaly model unavailable, scoring with rules only: %v", err)
	} else {
		model, scaler = forest, std
		modelLoaded = true
		log.Println("✅ Anomaly model loaded")
	}

	var counters risk.CounterStore
	if repositories.RedisClient != nil {
		counters = repositories.NewRedisCounterStore(repositories.RedisClient)
	}

	engine := risk.NewService(
		repositories.NewProfileStore(repositories.NewUserProfileRepository(repositories.DB)),
		repositories.NewBlacklistRepository(repositories.DB),
		counters,
		model,
		scaler,
		risk.Config{
			ExternalCallTimeout: config.GetDurationEnv("EXTERNAL_CALL_TIMEOUT", 2*time.Second),
		},
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, engine, modelLoaded)

	log.Println("Fraud Detection API started successfully")
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "8001")))
}
