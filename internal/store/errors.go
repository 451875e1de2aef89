package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a drink with an already-used title).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the store rejects an entity that
	// violates a storage constraint other than uniqueness, such as a
	// missing required column. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDrinkNotFound indicates that the requested drink does not exist in the store.
	ErrDrinkNotFound = fmt.Errorf("%w: drink", ErrNotFound)

	// ErrTitleExists indicates that a drink with the given title already exists.
	ErrTitleExists = fmt.Errorf("%w: title", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConstraintError checks if the error is a storage-constraint rejection,
// either a duplicate or some other invalid-entity condition. The route layer
// translates these to an unprocessable response.
func IsConstraintError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrInvalidEntity)
}
