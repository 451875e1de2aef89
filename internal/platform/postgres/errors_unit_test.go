package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pourover/drinks-api/internal/domain"
	"github.com/pourover/drinks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil error",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows maps to not found",
			err:     sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name:    "unique violation maps to title exists",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "drinks_title_key"},
			wantErr: store.ErrTitleExists,
		},
		{
			name:    "not null violation maps to invalid entity",
			err:     &pgconn.PgError{Code: "23502", ColumnName: "title"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "check violation maps to invalid entity",
			err:     &pgconn.PgError{Code: "23514", ConstraintName: "drinks_recipe_check"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tt.err)
			if tt.wantErr == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.wantErr)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	assert.Equal(t, cause, MapError(cause))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
}

// fakeResult implements sql.Result for rows-affected checks.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}))
	})

	t.Run("no rows means drink not found", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}), store.ErrDrinkNotFound)
	})

	t.Run("rows affected error is propagated", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{err: errors.New("driver does not support")})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrDrinkNotFound)
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil))
	})
}

func TestRecipeSerializationRoundTrip(t *testing.T) {
	t.Parallel()

	recipe := []domain.Ingredient{
		{Color: "blue", Parts: 1},
		{Color: "white", Parts: 2.5},
	}

	data, err := marshalRecipe(recipe)
	require.NoError(t, err)

	var decoded []domain.Ingredient
	require.NoError(t, unmarshalRecipe(data, &decoded))
	assert.Equal(t, recipe, decoded)
}

func TestMarshalRecipeNilIsEmptyArray(t *testing.T) {
	t.Parallel()

	data, err := marshalRecipe(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", data)

	var decoded []domain.Ingredient
	require.NoError(t, unmarshalRecipe("", &decoded))
	assert.Empty(t, decoded)
}

func TestNullableTitle(t *testing.T) {
	t.Parallel()

	assert.False(t, nullableTitle("").Valid, "empty title must be written as NULL")
	v := nullableTitle("Latte")
	assert.True(t, v.Valid)
	assert.Equal(t, "Latte", v.String)
}
