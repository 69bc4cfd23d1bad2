// Package routes defines the API routing configuration: public
// scoring endpoints, the JWT-protected admin surface, and the health
// and stats probes.
package routes

import (
	"time"

	"frauddetect/internal/config"
	"frauddetect/internal/handlers"
	"frauddetect/internal/middleware"
	"frauddetect/internal/repositories"
	"frauddetect/internal/services/alert"
	"frauddetect/internal/services/auth"
	"frauddetect/internal/services/risk"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes wires repositories, services, and handlers onto the app.
// The scoring engine is built by the caller (it needs the loaded model)
// and injected here.
func SetupRoutes(app *fiber.App, engine risk.Service, modelLoaded bool) {
	profileRepo := repositories.NewUserProfileRepository(repositories.DB)
	blacklistRepo := repositories.NewBlacklistRepository(repositories.DB)
	transactionRepo := repositories.NewTransactionRepository(repositories.DB)
	alertRepo := repositories.NewAlertRepository(repositories.DB)

	alertService := alert.NewService(alertRepo, alert.Config{
		Enabled:               config.GetBoolEnv("ENABLE_ALERTS", true),
		HighRiskThreshold:     config.GetFloatEnv("HIGH_RISK_THRESHOLD", alert.DefaultHighRiskThreshold),
		CriticalRiskThreshold: config.GetFloatEnv("CRITICAL_RISK_THRESHOLD", alert.DefaultCriticalRiskThreshold),
	})
	authService := auth.NewService(
		config.GetEnv("ADMIN_USER", "admin"),
		config.GetEnv("ADMIN_PASSWORD_HASH", ""),
		config.GetEnv("JWT_SECRET", "fraud-detection-secret"),
		config.GetDurationEnv("TOKEN_TTL", time.Hour),
	)

	transactionHandler := handlers.NewTransactionHandler(engine, transactionRepo, alertService)
	alertHandler := handlers.NewAlertHandler(alertService)
	userHandler := handlers.NewUserHandler(profileRepo)
	securityHandler := handlers.NewSecurityHandler(authService, blacklistRepo)
	healthHandler := handlers.NewHealthHandler(modelLoaded, transactionRepo, alertRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)
	app.Get("/stats", healthHandler.Stats)

	api := app.Group("/api")

	api.Post("/transactions/analyze", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("MAX_REQUESTS_PER_MINUTE", 100),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}), transactionHandler.Analyze)
	api.Get("/transactions/:id", transactionHandler.Get)

	api.Post("/security/login", securityHandler.Login)

	api.Get("/alerts", alertHandler.List)

	// Admin surface
	admin := api.Group("", authMiddleware.Handler)
	admin.Put("/alerts/:id/acknowledge", alertHandler.Acknowledge)
	admin.Get("/users/:id/profile", userHandler.GetProfile)
	admin.Put("/users/:id/profile", userHandler.UpsertProfile)
	admin.Delete("/users/:id/profile", userHandler.DeleteProfile)
	admin.Get("/users/:id/transactions", transactionHandler.ListByUser)
	admin.Get("/security/blacklist", securityHandler.ListBlacklist)
	admin.Post("/security/blacklist", securityHandler.AddBlacklistedIP)
	admin.Delete("/security/blacklist/:ip", securityHandler.RemoveBlacklistedIP)
}
