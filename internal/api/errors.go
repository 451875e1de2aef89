// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"

	"github.com/pourover/drinks-api/internal/api/shared"
	"github.com/pourover/drinks-api/internal/service/auth"
	"github.com/pourover/drinks-api/internal/store"
)

// Fixed client-facing error messages. Clients pattern-match on these, so
// they never change with the underlying error detail.
const (
	MsgNotFound         = "resource not found"
	MsgBadRequest       = "bad request"
	MsgUnprocessable    = "unprocessable"
	MsgUnauthorized     = "unauthorized"
	MsgMethodNotAllowed = "method not allowed"
	MsgInternal         = "internal server error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Status
	}

	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsConstraintError(err):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the fixed, user-facing message for the error.
// Authorization errors carry their own message; everything else collapses
// onto the uniform taxonomy.
func GetSafeErrorMessage(err error) string {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}

	switch {
	case store.IsNotFoundError(err):
		return MsgNotFound

	case store.IsConstraintError(err):
		return MsgUnprocessable

	default:
		return MsgInternal
	}
}

// RespondWithMappedError translates an internal error to its status code and
// fixed message and writes the uniform error body. The raw error stays in
// the logs.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
