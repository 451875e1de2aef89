package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSURL returns the well-known JWKS endpoint of the signing authority.
func JWKSURL(domain string) string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
}

// NewKeyfunc builds a jwt.Keyfunc backed by the given JWKS endpoint.
// The key set is fetched eagerly, cached process-wide, and refreshed in the
// background; key selection is by the kid in the token header.
func NewKeyfunc(ctx context.Context, jwksURL string) (jwt.Keyfunc, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", jwksURL, err)
	}
	return k.Keyfunc, nil
}
