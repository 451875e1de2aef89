package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for request structs.
var Validate = validator.New()

// ErrEmptyBody is returned by DecodeJSON when the request carries no body
// at all. The create endpoint treats this as unprocessable before any
// field-level validation runs.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct.
// An entirely absent body yields ErrEmptyBody; malformed JSON yields the
// decoder's error.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}
