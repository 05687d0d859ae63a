package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haircolor-mixer/models"
)

func newFormula(id string) *models.Formula {
	level := 10
	now := time.Now()
	return &models.Formula{
		ID:        id,
		Rows:      []models.IngredientRow{{Code: "10GR", Ratio: 60}, {Code: "9SB", Ratio: 40}},
		State:     models.UIState{Mode: models.ModeRecipe, Level: &level},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFormulaRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewFormulaRepository()

	original := newFormula("a")
	require.NoError(t, repo.Create(ctx, original))
	assert.Error(t, repo.Create(ctx, original), "duplicate id")

	original.Rows[0].Code = "CHANGED"
	*original.State.Level = 3

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "10GR", got.Rows[0].Code, "stored copy is isolated from the caller")
	assert.Equal(t, 10, *got.State.Level)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormulaRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewFormulaRepository()
	require.NoError(t, repo.Create(ctx, newFormula("a")))

	updated, err := repo.Update(ctx, "a", func(f *models.Formula) error {
		f.Rows = append(f.Rows, models.IngredientRow{Ratio: 50})
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, updated.Rows, 3)

	_, err = repo.Update(ctx, "a", func(f *models.Formula) error {
		f.Rows = nil
		return errors.New("rejected")
	})
	assert.EqualError(t, err, "rejected")

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Rows, 3, "failed update leaves the formula unchanged")

	_, err = repo.Update(ctx, "missing", func(f *models.Formula) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormulaRepository_DeleteIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewFormulaRepository()

	old := newFormula("old")
	old.UpdatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, newFormula("fresh")))

	removed := repo.DeleteIdle(ctx, time.Now().Add(-time.Hour))
	assert.Equal(t, []string{"old"}, removed)
	assert.Equal(t, 1, repo.Count())

	require.NoError(t, repo.Delete(ctx, "fresh"))
	assert.ErrorIs(t, repo.Delete(ctx, "fresh"), ErrNotFound)
}
