package domain

import (
	"errors"
)

// Drink-specific validation errors
var (
	// ErrDrinkTitleEmpty is returned when a drink's title is empty.
	ErrDrinkTitleEmpty = errors.New("drink title cannot be empty")

	// ErrIngredientColorEmpty is returned when a recipe ingredient has no color.
	ErrIngredientColorEmpty = errors.New("recipe ingredient color cannot be empty")
)

// maskedParts is the placeholder quantity used by the short representation.
// The public listing never exposes exact recipe proportions.
const maskedParts = 1

// Ingredient is a single entry in a drink's recipe: a color used by the
// graphical representation and the number of parts it contributes.
type Ingredient struct {
	Color string  `json:"color"`
	Parts float64 `json:"parts"`
}

// Drink represents one item on the drinks menu. The recipe is persisted as
// serialized JSON text but is always structured data in memory.
type Drink struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// NewDrink creates a Drink with the given title and recipe. The ID is zero
// until the store assigns one on insert.
func NewDrink(title string, recipe []Ingredient) *Drink {
	return &Drink{
		Title:  title,
		Recipe: recipe,
	}
}

// Validate checks if the Drink has valid data.
// Returns an error if any field fails validation.
func (d *Drink) Validate() error {
	if d.Title == "" {
		return ErrDrinkTitleEmpty
	}

	for _, ing := range d.Recipe {
		if ing.Color == "" {
			return ErrIngredientColorEmpty
		}
	}

	return nil
}

// Short returns the public projection of the drink: the recipe keeps its
// colors but every quantity is replaced with the masked placeholder.
func (d *Drink) Short() *Drink {
	masked := make([]Ingredient, len(d.Recipe))
	for i, ing := range d.Recipe {
		masked[i] = Ingredient{
			Color: ing.Color,
			Parts: maskedParts,
		}
	}

	return &Drink{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: masked,
	}
}

// Long returns the full projection of the drink, recipe quantities exact.
// The result is a copy so callers cannot mutate the original recipe.
func (d *Drink) Long() *Drink {
	recipe := make([]Ingredient, len(d.Recipe))
	copy(recipe, d.Recipe)

	return &Drink{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: recipe,
	}
}
