// Package middleware provides HTTP middleware for the API, including
// JWT authentication for the admin surface.
package middleware

import (
	"log"
	"strings"

	"frauddetect/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// AdminClaimsKey is the locals key the middleware stores parsed claims
// under.
const AdminClaimsKey = "admin"

// AuthMiddleware validates Bearer JWTs on admin endpoints and adds the
// claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler checks for a Bearer token, validates signature and expiry,
// and stores the admin claims in c.Locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.authService.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals(AdminClaimsKey, claims)
	return c.Next()
}
