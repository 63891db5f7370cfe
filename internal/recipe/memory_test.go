package recipe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

func TestMemoryStoreList(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))

	recipes, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, 1, recipes[0].ID)
	assert.Equal(t, "Chicken Alfredo", recipes[0].Name)
	assert.NotEmpty(t, recipes[0].Ingredients)
}

func TestMemoryStoreSearch(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		query string
		count int
	}{
		{"chicken", 1},
		{"STIR", 1},
		{"soy sauce", 1},
		{"boil", 1},
		{"", 2},
		{"nonexistent-query-xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := store.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, results, tt.count)
		})
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	created, err := store.Create(ctx, "Taco", "put in shell", []string{"tortilla", "meat"})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	require.Len(t, created.Ingredients, 2)
	assert.NotEqual(t, created.Ingredients[0].ID, created.Ingredients[1].ID)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taco", got.Name)

	// Returned copies do not alias the store.
	got.Ingredients[0].Name = "changed"
	again, _ := store.Get(ctx, created.ID)
	assert.Equal(t, "tortilla", again.Ingredients[0].Name)

	updated, err := store.Update(ctx, created.ID, "Taco", "fold", []string{"tortilla"})
	require.NoError(t, err)
	assert.Equal(t, "fold", updated.Procedure)
	assert.Len(t, updated.Ingredients, 1)

	require.NoError(t, store.Delete(ctx, created.ID))
	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = store.Update(ctx, 999, "x", "y", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
