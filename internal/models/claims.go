package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the JWT claims issued to operators of the admin
// surface (blacklist, profiles, alert acknowledgement).
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
