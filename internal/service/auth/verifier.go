package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pourover/drinks-api/internal/config"
	"github.com/pourover/drinks-api/internal/platform/logger"
)

// Verifier validates bearer tokens issued by the external signing authority
// and checks permission claims against route requirements.
type Verifier interface {
	// VerifyToken validates the raw token's signature, expiry, audience,
	// and issuer, returning the decoded claims. Failures are *Error values
	// from this package.
	VerifyToken(ctx context.Context, raw string) (*Claims, error)

	// CheckPermission confirms the required permission string is present in
	// the claims. Returns ErrPermissionDenied when absent, or
	// ErrMissingPermissionsClaim when the token has no permissions claim.
	CheckPermission(claims *Claims, permission string) error
}

// Claims holds the decoded payload of a verified token.
type Claims struct {
	// Subject identifies the token's principal.
	Subject string

	// Permissions is the token's permission claim. Nil means the claim was
	// absent, which is distinct from an empty permission list.
	Permissions []string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire structure of the tokens the signing authority mints.
type tokenClaims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// jwtVerifier validates RS256 tokens against a signing-key set resolved
// through a jwt.Keyfunc (backed by the authority's JWKS endpoint in
// production, a static key in tests).
type jwtVerifier struct {
	keyfunc    jwt.Keyfunc
	audience   string
	issuer     string
	algorithms []string
	logger     *slog.Logger
	clockSkew  time.Duration
}

var _ Verifier = (*jwtVerifier)(nil)

// NewVerifier creates a Verifier that fetches the signing-key set from the
// configured authority's JWKS endpoint. The context bounds the initial key
// fetch; keys are cached process-wide and refreshed in the background.
func NewVerifier(ctx context.Context, cfg config.AuthConfig, log *slog.Logger) (Verifier, error) {
	kf, err := NewKeyfunc(ctx, JWKSURL(cfg.Domain))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing-key set: %w", err)
	}
	return NewVerifierWithKeyfunc(cfg, kf, log), nil
}

// NewVerifierWithKeyfunc creates a Verifier with an explicit key-resolution
// function. Tests use this to verify against a locally generated key pair.
func NewVerifierWithKeyfunc(cfg config.AuthConfig, kf jwt.Keyfunc, log *slog.Logger) Verifier {
	if log == nil {
		log = slog.Default()
	}

	algorithms := cfg.Algorithms
	if len(algorithms) == 0 {
		algorithms = []string{jwt.SigningMethodRS256.Name}
	}

	return &jwtVerifier{
		keyfunc:    kf,
		audience:   cfg.Audience,
		issuer:     Issuer(cfg.Domain),
		algorithms: algorithms,
		logger:     log.With(slog.String("component", "token_verifier")),
		clockSkew:  time.Minute,
	}
}

// Issuer returns the issuer URL the signing authority stamps into tokens.
func Issuer(domain string) string {
	return fmt.Sprintf("https://%s/", domain)
}

// VerifyToken implements Verifier.VerifyToken.
func (v *jwtVerifier) VerifyToken(ctx context.Context, raw string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(v.algorithms),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
	}

	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, v.keyfunc, parserOpts...)
	if err != nil {
		return nil, v.mapParseError(log, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	decoded := &Claims{
		Subject:     claims.Subject,
		Permissions: claims.Permissions,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug("token validated successfully",
		slog.String("subject", decoded.Subject),
		slog.Int("permission_count", len(decoded.Permissions)))
	return decoded, nil
}

// mapParseError translates golang-jwt validation failures into this
// package's structured errors so callers never see library error types.
func (v *jwtVerifier) mapParseError(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		log.Debug("token validation failed: token expired", slog.String("error", err.Error()))
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		log.Debug("token validation failed: invalid signature", slog.String("error", err.Error()))
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer):
		log.Debug("token validation failed: wrong audience or issuer", slog.String("error", err.Error()))
		return ErrInvalidClaims
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		log.Debug("token validation failed: no usable signing key", slog.String("error", err.Error()))
		return ErrMissingKey
	case errors.Is(err, jwt.ErrTokenMalformed):
		log.Debug("token validation failed: malformed token", slog.String("error", err.Error()))
		return ErrInvalidToken
	default:
		log.Debug("token validation failed",
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
		return ErrInvalidToken
	}
}

// CheckPermission implements Verifier.CheckPermission.
func (v *jwtVerifier) CheckPermission(claims *Claims, permission string) error {
	if claims == nil || claims.Permissions == nil {
		return ErrMissingPermissionsClaim
	}

	if !slices.Contains(claims.Permissions, permission) {
		return ErrPermissionDenied
	}

	return nil
}
