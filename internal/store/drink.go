package store

import (
	"context"

	"github.com/pourover/drinks-api/internal/domain"
)

// DrinkStore defines operations for persisting and retrieving drinks.
type DrinkStore interface {
	// Insert saves a new drink and assigns its ID from the store.
	// A missing title or a title that is already in use violates a storage
	// constraint; Insert returns ErrTitleExists or ErrInvalidEntity and
	// leaves the store unchanged.
	Insert(ctx context.Context, drink *domain.Drink) error

	// Update persists the title and recipe of an already-existing drink.
	// Returns ErrDrinkNotFound if no row with the drink's ID exists, or a
	// constraint error on rejection (e.g., renaming to a taken title).
	Update(ctx context.Context, drink *domain.Drink) error

	// Delete permanently removes the drink with the given ID.
	// Returns ErrDrinkNotFound if the drink does not exist.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a drink by its unique ID.
	// Returns ErrDrinkNotFound if the drink does not exist; absence is
	// never surfaced as a scan error.
	GetByID(ctx context.Context, id int64) (*domain.Drink, error)

	// List retrieves all drinks ordered by ID.
	// Returns an empty slice, not nil, when the menu is empty.
	List(ctx context.Context) ([]*domain.Drink, error)
}
