package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pourover/drinks-api/internal/api/shared"
	"github.com/pourover/drinks-api/internal/redact"
	"github.com/pourover/drinks-api/internal/service/auth"
)

// AuthMiddleware guards routes with bearer-token verification and
// permission checks.
type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// RequirePermission returns a middleware that verifies the request's bearer
// token and confirms the given permission is present in its claims. On
// success the verified claims are stored in the request context; on failure
// the request is short-circuited with the uniform error body and never
// reaches the handler or the store.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				respondAuthError(w, r, err)
				return
			}

			claims, err := m.verifier.VerifyToken(r.Context(), token)
			if err != nil {
				respondAuthError(w, r, err)
				return
			}

			if err := m.verifier.CheckPermission(claims, permission); err != nil {
				respondAuthError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", auth.ErrMalformedHeader
	}

	return parts[1], nil
}

// respondAuthError writes the uniform error body for an authorization
// failure. Unexpected non-auth errors become a 500 without leaking detail.
func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		shared.RespondWithError(w, r, authErr.Status, authErr.Message)
		return
	}

	slog.Error("unexpected error during token verification", "error", redact.Error(err))
	shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
}

// GetClaims extracts the verified token claims from the request context.
// Returns the claims and a boolean indicating if they were found.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsContextKey).(*auth.Claims)
	return claims, ok
}
