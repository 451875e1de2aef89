package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pourover/drinks-api/internal/domain"
	"github.com/pourover/drinks-api/internal/platform/logger"
	"github.com/pourover/drinks-api/internal/store"
)

// PostgresDrinkStore implements the store.DrinkStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDrinkStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDrinkStore creates a new PostgreSQL implementation of the DrinkStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDrinkStore(db store.DBTX, logger *slog.Logger) *PostgresDrinkStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDrinkStore{
		db:     db,
		logger: logger.With(slog.String("component", "drink_store")),
	}
}

// Ensure PostgresDrinkStore implements store.DrinkStore interface
var _ store.DrinkStore = (*PostgresDrinkStore)(nil)

// Insert implements store.DrinkStore.Insert
// It saves a new drink and assigns the row's ID to the drink.
// An absent title is written as SQL NULL so the NOT NULL constraint is what
// rejects it, keeping field-level policy at the storage boundary.
// Returns store.ErrTitleExists or store.ErrInvalidEntity on constraint violation.
func (s *PostgresDrinkStore) Insert(ctx context.Context, drink *domain.Drink) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := marshalRecipe(drink.Recipe)
	if err != nil {
		log.Warn("failed to serialize recipe during insert",
			slog.String("error", err.Error()),
			slog.String("title", drink.Title))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO drinks (title, recipe)
		VALUES ($1, $2)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		query,
		nullableTitle(drink.Title),
		recipe,
	).Scan(&drink.ID)

	if err != nil {
		mapped := MapError(err)
		if store.IsConstraintError(mapped) {
			log.Warn("constraint violation during drink creation",
				slog.String("error", err.Error()),
				slog.String("title", drink.Title))
			return mapped
		}

		log.Error("failed to create drink",
			slog.String("error", err.Error()),
			slog.String("title", drink.Title))
		return mapped
	}

	log.Info("drink created successfully",
		slog.Int64("drink_id", drink.ID),
		slog.String("title", drink.Title))
	return nil
}

// Update implements store.DrinkStore.Update
// It persists the drink's title and recipe.
// Returns store.ErrDrinkNotFound if the drink does not exist, or a
// constraint error when the new title is already taken.
func (s *PostgresDrinkStore) Update(ctx context.Context, drink *domain.Drink) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := drink.Validate(); err != nil {
		log.Warn("drink validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", drink.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	recipe, err := marshalRecipe(drink.Recipe)
	if err != nil {
		log.Warn("failed to serialize recipe during update",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", drink.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE drinks
		SET title = $1, recipe = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, drink.Title, recipe, drink.ID)
	if err != nil {
		mapped := MapError(err)
		if store.IsConstraintError(mapped) {
			log.Warn("constraint violation during drink update",
				slog.String("error", err.Error()),
				slog.Int64("drink_id", drink.ID),
				slog.String("title", drink.Title))
			return mapped
		}

		log.Error("failed to update drink",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", drink.ID))
		return mapped
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("drink not found for update", slog.Int64("drink_id", drink.ID))
		return err
	}

	log.Info("drink updated successfully",
		slog.Int64("drink_id", drink.ID),
		slog.String("title", drink.Title))
	return nil
}

// Delete implements store.DrinkStore.Delete
// It permanently removes the drink row.
// Returns store.ErrDrinkNotFound if the drink does not exist.
func (s *PostgresDrinkStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM drinks
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete drink",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("drink not found for delete", slog.Int64("drink_id", id))
		return err
	}

	log.Info("drink deleted successfully", slog.Int64("drink_id", id))
	return nil
}

// GetByID implements store.DrinkStore.GetByID
// It retrieves a drink by its unique ID.
// Returns store.ErrDrinkNotFound if the drink does not exist.
func (s *PostgresDrinkStore) GetByID(ctx context.Context, id int64) (*domain.Drink, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, recipe
		FROM drinks
		WHERE id = $1
	`

	var drink domain.Drink
	var recipe string

	err := s.db.QueryRowContext(ctx, query, id).Scan(&drink.ID, &drink.Title, &recipe)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("drink not found", slog.Int64("drink_id", id))
			return nil, store.ErrDrinkNotFound
		}
		log.Error("failed to get drink by ID",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", id))
		return nil, err
	}

	if err := unmarshalRecipe(recipe, &drink.Recipe); err != nil {
		log.Error("failed to deserialize stored recipe",
			slog.String("error", err.Error()),
			slog.Int64("drink_id", id))
		return nil, err
	}

	return &drink, nil
}

// List implements store.DrinkStore.List
// It retrieves all drinks ordered by ID.
// Returns an empty slice if the menu is empty.
func (s *PostgresDrinkStore) List(ctx context.Context) ([]*domain.Drink, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, recipe
		FROM drinks
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query drinks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var drinks []*domain.Drink
	for rows.Next() {
		var drink domain.Drink
		var recipe string

		if err := rows.Scan(&drink.ID, &drink.Title, &recipe); err != nil {
			log.Error("failed to scan drink row", slog.String("error", err.Error()))
			return nil, err
		}

		if err := unmarshalRecipe(recipe, &drink.Recipe); err != nil {
			log.Error("failed to deserialize stored recipe",
				slog.String("error", err.Error()),
				slog.Int64("drink_id", drink.ID))
			return nil, err
		}

		drinks = append(drinks, &drink)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if drinks == nil {
		drinks = []*domain.Drink{}
	}

	log.Debug("listed drinks", slog.Int("count", len(drinks)))
	return drinks, nil
}

// nullableTitle converts an empty title to SQL NULL.
func nullableTitle(title string) sql.NullString {
	return sql.NullString{String: title, Valid: title != ""}
}

// marshalRecipe serializes a recipe for the text column. A nil recipe is
// stored as an empty JSON array so reads always yield valid structured data.
func marshalRecipe(recipe []domain.Ingredient) (string, error) {
	if recipe == nil {
		return "[]", nil
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalRecipe deserializes the stored recipe text.
func unmarshalRecipe(data string, recipe *[]domain.Ingredient) error {
	if data == "" {
		*recipe = []domain.Ingredient{}
		return nil
	}
	return json.Unmarshal([]byte(data), recipe)
}
