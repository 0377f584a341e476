package http

import (
	"context"
	"net/http"
	"strings"

	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/security"
)

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

// AuthMiddleware rejects requests without a valid admin bearer token and
// stores the claims on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminFromContext returns the claims stored by AuthMiddleware.
func adminFromContext(ctx context.Context) *security.AdminClaims {
	claims, ok := ctx.Value(adminClaimsKey).(*security.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
