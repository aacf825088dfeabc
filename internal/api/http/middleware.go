package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"depanku-backend/internal/logger"
	"depanku-backend/internal/security"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// UserFromContext returns the verified identity attached by RequireAuth.
func UserFromContext(ctx context.Context) (*security.AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(*security.AuthUser)
	return user, ok
}

// RequireAuth verifies the bearer token and attaches the identity to the
// request context.
func RequireAuth(verifier security.TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		user, err := verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequestLogger logs every request with its duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("HTTP request", "method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}
