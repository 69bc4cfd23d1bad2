// Package auth issues and validates the JWTs protecting the admin
// surface (blacklist management, profiles, alert acknowledgement).
package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"frauddetect/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(username, password string) (string, error)
	ParseToken(tokenString string) (*models.AdminClaims, error)
}

type service struct {
	username     string
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewService creates the auth service. passwordHash is a bcrypt hash
// of the admin credential, never the plaintext.
func NewService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) Service {
	if jwtSecret == "" {
		panic("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &service{
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

func (s *service) Login(username, password string) (string, error) {
	if username != s.username {
		log.Printf("login failed: unknown user %q", username)
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		log.Printf("login failed: bad credential for %q", username)
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &models.AdminClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *service) ParseToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
