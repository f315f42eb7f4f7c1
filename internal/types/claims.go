package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the bearer token payload issued by the platform auth service.
// ID is the traveler's user id; Role must match the configured traveler role.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}
