package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wanderhost/concierge-agent/config"
	"github.com/wanderhost/concierge-agent/internal/api"
	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/golang-jwt/jwt/v5"
)

// Define typed context keys
type contextKey string

const UserIDKey contextKey = "userID"
const UserRoleKey contextKey = "userRole"

// Authenticate is middleware to validate traveler bearer tokens.
// With no secret configured the service refuses all authenticated traffic
// rather than silently accepting unsigned tokens.
func Authenticate(logger *slog.Logger, authCfg config.AuthConfig) func(next http.Handler) http.Handler {
	secretKey := []byte(authCfg.SecretKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			if len(secretKey) == 0 {
				l.ErrorContext(ctx, "JWT secret is not configured, denying all authenticated requests")
				api.ErrorResponse(w, r, http.StatusServiceUnavailable, api.CodeAuthNotConfigured, types.ErrAuthNotConfigured.Error())
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthenticated, "Authorization header required")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthenticated, "Authorization header format must be Bearer {token}")
				return
			}
			tokenString := headerParts[1]

			claims := &types.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secretKey, nil
			})

			if err != nil {
				l.WarnContext(ctx, "Token parsing/validation failed", slog.Any("error", err))
				errMsg := types.ErrInvalidCredential.Error()
				if errors.Is(err, jwt.ErrTokenExpired) {
					errMsg = types.ErrExpiredCredential.Error()
				} else if errors.Is(err, jwt.ErrTokenMalformed) {
					errMsg = "Malformed token"
				} else if errors.Is(err, jwt.ErrSignatureInvalid) {
					errMsg = "Invalid token signature"
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthenticated, errMsg)
				return
			}

			if !token.Valid {
				l.WarnContext(ctx, "Token marked as invalid or claims are nil")
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid token")
				return
			}

			if authCfg.Issuer != "" && claims.Issuer != authCfg.Issuer {
				l.WarnContext(ctx, "Token issuer mismatch", slog.String("expected", authCfg.Issuer), slog.String("actual", claims.Issuer))
				api.ErrorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid token issuer")
				return
			}

			// Identity and role live in custom claims; both are mandatory for
			// the concierge surface.
			if claims.ID == "" || claims.Role != authCfg.TravelerRole {
				l.WarnContext(ctx, "Token rejected by role check",
					slog.String("required_role", authCfg.TravelerRole),
					slog.String("actual_role", claims.Role),
				)
				api.ErrorResponse(w, r, http.StatusForbidden, api.CodeForbidden, types.ErrNotAuthorized.Error())
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.ID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			l.DebugContext(ctx, "Authentication successful, claims added to context", slog.String("userID", claims.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions to get claims from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}
