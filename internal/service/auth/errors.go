package auth

import "net/http"

// Error is a structured authorization failure. Every instance carries a
// machine-readable kind, a human message, and the HTTP status the boundary
// should respond with.
type Error struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Common authorization errors. Handlers and middleware match on these with
// errors.Is, so verification code must return these exact values.
var (
	// ErrMissingToken indicates no Authorization header was provided.
	ErrMissingToken = &Error{
		Code:    "authorization_header_missing",
		Message: "authorization header is expected",
		Status:  http.StatusUnauthorized,
	}

	// ErrMalformedHeader indicates the Authorization header is not a bearer token.
	ErrMalformedHeader = &Error{
		Code:    "invalid_header",
		Message: "authorization header must be a bearer token",
		Status:  http.StatusUnauthorized,
	}

	// ErrExpiredToken indicates the token's expiry is in the past.
	ErrExpiredToken = &Error{
		Code:    "token_expired",
		Message: "token is expired",
		Status:  http.StatusUnauthorized,
	}

	// ErrInvalidSignature indicates the token signature does not verify
	// against the signing-key set.
	ErrInvalidSignature = &Error{
		Code:    "invalid_signature",
		Message: "token signature could not be verified",
		Status:  http.StatusUnauthorized,
	}

	// ErrInvalidClaims indicates the token was issued for a different
	// audience or by a different issuer.
	ErrInvalidClaims = &Error{
		Code:    "invalid_claims",
		Message: "incorrect claims, check the audience and issuer",
		Status:  http.StatusUnauthorized,
	}

	// ErrMissingKey indicates no signing key matches the token's key ID.
	ErrMissingKey = &Error{
		Code:    "missing_key",
		Message: "unable to find an appropriate signing key",
		Status:  http.StatusUnauthorized,
	}

	// ErrInvalidToken indicates the token is malformed or otherwise invalid.
	ErrInvalidToken = &Error{
		Code:    "invalid_token",
		Message: "unable to parse authentication token",
		Status:  http.StatusUnauthorized,
	}

	// ErrMissingPermissionsClaim indicates the decoded token carries no
	// permissions claim at all.
	ErrMissingPermissionsClaim = &Error{
		Code:    "invalid_claims",
		Message: "permissions not included in token",
		Status:  http.StatusBadRequest,
	}

	// ErrPermissionDenied indicates the token lacks the required permission.
	ErrPermissionDenied = &Error{
		Code:    "unauthorized",
		Message: "permission not found",
		Status:  http.StatusForbidden,
	}
)
