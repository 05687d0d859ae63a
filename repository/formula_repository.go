package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"haircolor-mixer/models"
)

// FormulaRepository keeps formula sessions in memory
type FormulaRepository struct {
	mu       sync.RWMutex
	formulas map[string]*models.Formula
}

// NewFormulaRepository creates an empty FormulaRepository
func NewFormulaRepository() *FormulaRepository {
	return &FormulaRepository{formulas: make(map[string]*models.Formula)}
}

// Ensure FormulaRepository implements FormulaRepositoryInterface
var _ FormulaRepositoryInterface = (*FormulaRepository)(nil)

// Create stores a copy of formula; the ID must be unique
func (r *FormulaRepository) Create(ctx context.Context, formula *models.Formula) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formulas[formula.ID]; exists {
		return fmt.Errorf("formula %s already exists", formula.ID)
	}
	r.formulas[formula.ID] = cloneFormula(formula)
	return nil
}

// Get returns a copy of the formula
func (r *FormulaRepository) Get(ctx context.Context, id string) (*models.Formula, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.formulas[id]
	if !exists {
		return nil, fmt.Errorf("formula %s: %w", id, ErrNotFound)
	}
	return cloneFormula(f), nil
}

// Update applies fn to a copy of the formula under the write lock and stores it when fn succeeds
// UpdatedAt is refreshed on success
func (r *FormulaRepository) Update(ctx context.Context, id string, fn func(f *models.Formula) error) (*models.Formula, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.formulas[id]
	if !exists {
		return nil, fmt.Errorf("formula %s: %w", id, ErrNotFound)
	}
	next := cloneFormula(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()
	r.formulas[id] = next
	return cloneFormula(next), nil
}

// Delete removes the formula
func (r *FormulaRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formulas[id]; !exists {
		return fmt.Errorf("formula %s: %w", id, ErrNotFound)
	}
	delete(r.formulas, id)
	return nil
}

// DeleteIdle removes formulas not updated since olderThan and returns their IDs
func (r *FormulaRepository) DeleteIdle(ctx context.Context, olderThan time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []string
	for id, f := range r.formulas {
		if f.UpdatedAt.Before(olderThan) {
			delete(r.formulas, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Count returns the number of stored formulas
func (r *FormulaRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.formulas)
}

func cloneFormula(f *models.Formula) *models.Formula {
	out := *f
	out.Rows = append([]models.IngredientRow(nil), f.Rows...)
	if f.State.Level != nil {
		level := *f.State.Level
		out.State.Level = &level
	}
	return &out
}
