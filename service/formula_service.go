package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haircolor-mixer/blend"
	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/repository"
	"haircolor-mixer/utils"
)

const (
	// DefaultRowRatio is the ratio of a new or cleared row
	DefaultRowRatio = 50
	initialRowCount = 2

	NameEmptyFormula = "Set a formula or a hex color"
	NameBlendResult  = "Blend result"
	NameCustomHex    = "Custom hex"
)

var (
	ErrFormulaNotFound = errors.New("formula not found")
	ErrLastRow         = errors.New("a formula needs at least one ingredient row")
	ErrRowIndex        = errors.New("row index out of range")
	ErrUnknownRecipe   = errors.New("unknown quick recipe")
	ErrInvalidHex      = errors.New("invalid hex color")
	ErrInvalidState    = errors.New("invalid state")
)

// FormulaService owns formula sessions: the ingredient rows, the UI state and the final color
type FormulaService struct {
	repo           repository.FormulaRepositoryInterface
	catalogs       *catalog.Holder
	defaultBrand   string
	defaultResolve models.ResolveMode
	now            func() time.Time
	onExpire       []func(id string)
}

// NewFormulaService creates a new FormulaService
func NewFormulaService(repo repository.FormulaRepositoryInterface, catalogs *catalog.Holder, defaultBrand string, defaultResolve models.ResolveMode) *FormulaService {
	if defaultResolve == "" {
		defaultResolve = models.ResolvePriority
	}
	return &FormulaService{
		repo:           repo,
		catalogs:       catalogs,
		defaultBrand:   defaultBrand,
		defaultResolve: defaultResolve,
		now:            time.Now,
	}
}

// Create starts a session with two empty rows
func (s *FormulaService) Create(ctx context.Context, state models.UIState) (*models.FormulaView, error) {
	cat, err := s.catalogs.Get()
	if err != nil {
		return nil, err
	}
	state, err = s.normalizeState(state)
	if err != nil {
		return nil, err
	}

	now := s.now()
	f := &models.Formula{
		ID:        uuid.NewString(),
		Rows:      make([]models.IngredientRow, initialRowCount),
		State:     state,
		FinalHex:  blend.NeutralHex,
		FinalName: NameEmptyFormula,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range f.Rows {
		f.Rows[i].Ratio = DefaultRowRatio
	}
	refreshFinalColor(cat, f)

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to store formula: %w", err)
	}
	logger.Info("✅ CreateFormula: session created", zap.String("id", f.ID), zap.String("mode", string(state.Mode)))
	return buildView(cat, f), nil
}

// View returns the rendered projection of a session
func (s *FormulaService) View(ctx context.Context, id string) (*models.FormulaView, error) {
	cat, err := s.catalogs.Get()
	if err != nil {
		return nil, err
	}
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return buildView(cat, f), nil
}

// Get returns the stored session
func (s *FormulaService) Get(ctx context.Context, id string) (*models.Formula, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return f, nil
}

// AddRow appends an empty row with the default ratio
func (s *FormulaService) AddRow(ctx context.Context, id string) (*models.FormulaView, error) {
	return s.mutate(ctx, id, func(f *models.Formula) error {
		f.Rows = append(f.Rows, models.IngredientRow{Ratio: DefaultRowRatio})
		return nil
	})
}

// RemoveRow deletes a row; the last remaining row cannot be removed
func (s *FormulaService) RemoveRow(ctx context.Context, id string, index int) (*models.FormulaView, error) {
	return s.mutate(ctx, id, func(f *models.Formula) error {
		if index < 0 || index >= len(f.Rows) {
			return fmt.Errorf("%w: %d", ErrRowIndex, index)
		}
		if len(f.Rows) <= 1 {
			return ErrLastRow
		}
		f.Rows = append(f.Rows[:index], f.Rows[index+1:]...)
		f.RecipeKey = ""
		return nil
	})
}

// UpdateRow sets the code, ratio and optional brand of one row
// The code is upper-cased; a negative or non-finite ratio is stored as 0 and a
// ratio above blend.MaxRatio is capped
func (s *FormulaService) UpdateRow(ctx context.Context, id string, index int, req models.UpdateRowRequest) (*models.FormulaView, error) {
	return s.mutate(ctx, id, func(f *models.Formula) error {
		if index < 0 || index >= len(f.Rows) {
			return fmt.Errorf("%w: %d", ErrRowIndex, index)
		}
		f.Rows[index] = newRow(req.Code, req.Ratio, req.Brand)
		f.RecipeKey = ""
		return nil
	})
}

// SetIngredients replaces every row; an empty list leaves one empty row
func (s *FormulaService) SetIngredients(ctx context.Context, id string, ingredients []models.Ingredient) (*models.FormulaView, error) {
	return s.mutate(ctx, id, func(f *models.Formula) error {
		f.Rows = rowsFromIngredients(ingredients)
		f.RecipeKey = ""
		return nil
	})
}

// Clear empties every code, resets ratios, drops any hex selection and shows the neutral color
func (s *FormulaService) Clear(ctx context.Context, id string) (*models.FormulaView, error) {
	return s.mutate(ctx, id, func(f *models.Formula) error {
		for i := range f.Rows {
			f.Rows[i] = models.IngredientRow{Ratio: DefaultRowRatio}
		}
		f.RecipeKey = ""
		f.State.Hex = ""
		f.FinalHex = blend.NeutralHex
		f.FinalName = NameEmptyFormula
		return nil
	})
}

// SetState replaces the UI state
// Switching to hex mode with an invalid hex keeps the previous final color
func (s *FormulaService) SetState(ctx context.Context, id string, state models.UIState) (*models.FormulaView, error) {
	state, err := s.normalizeState(state)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(f *models.Formula) error {
		f.State = state
		return nil
	})
}

// LoadRecipe fills the rows from a quick recipe
func (s *FormulaService) LoadRecipe(ctx context.Context, id, key string) (*models.FormulaView, error) {
	cat, err := s.catalogs.Get()
	if err != nil {
		return nil, err
	}
	recipe, ok := cat.Recipe(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, key)
	}
	view, err := s.mutate(ctx, id, func(f *models.Formula) error {
		f.Rows = rowsFromIngredients(blend.FromRecipe(recipe))
		f.RecipeKey = recipe.Key
		f.State.Mode = models.ModeRecipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("✅ LoadRecipe: quick recipe loaded", zap.String("id", id), zap.String("recipe", key))
	return view, nil
}

// SelectPreset switches the session to hex mode with a preset (or any valid) color
func (s *FormulaService) SelectPreset(ctx context.Context, id, hex string) (*models.FormulaView, error) {
	normalized, err := utils.NormalizeHex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHex, hex)
	}
	return s.mutate(ctx, id, func(f *models.Formula) error {
		f.State.Mode = models.ModeHex
		f.State.Hex = normalized
		return nil
	})
}

// Delete ends a session
func (s *FormulaService) Delete(ctx context.Context, id string) error {
	return mapRepoErr(s.repo.Delete(ctx, id))
}

// OnExpire registers fn to run for every session removed by ExpireIdle
// Register hooks before the janitor starts
func (s *FormulaService) OnExpire(fn func(id string)) {
	s.onExpire = append(s.onExpire, fn)
}

// ExpireIdle deletes sessions idle for longer than ttl and returns how many were removed
func (s *FormulaService) ExpireIdle(ctx context.Context, ttl time.Duration) int {
	removed := s.repo.DeleteIdle(ctx, s.now().Add(-ttl))
	for _, id := range removed {
		for _, fn := range s.onExpire {
			fn(id)
		}
	}
	if len(removed) > 0 {
		logger.Info("🧹 ExpireIdle: formula sessions expired", zap.Int("removed", len(removed)))
	}
	return len(removed)
}

// RunJanitor expires idle sessions every interval until ctx is done
func (s *FormulaService) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ExpireIdle(ctx, ttl)
		}
	}
}

// Ingredients converts the rows of a formula to blend input
func Ingredients(f *models.Formula) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(f.Rows))
	for _, r := range f.Rows {
		out = append(out, models.Ingredient{Code: r.Code, Ratio: r.Ratio, Brand: r.Brand})
	}
	return out
}

func (s *FormulaService) mutate(ctx context.Context, id string, fn func(f *models.Formula) error) (*models.FormulaView, error) {
	cat, err := s.catalogs.Get()
	if err != nil {
		return nil, err
	}
	f, err := s.repo.Update(ctx, id, func(f *models.Formula) error {
		if err := fn(f); err != nil {
			return err
		}
		refreshFinalColor(cat, f)
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return buildView(cat, f), nil
}

func (s *FormulaService) normalizeState(state models.UIState) (models.UIState, error) {
	state = state.WithDefaults(s.defaultBrand, s.defaultResolve)
	if state.Mode != models.ModeRecipe && state.Mode != models.ModeHex {
		return state, fmt.Errorf("%w: unknown mode %q", ErrInvalidState, state.Mode)
	}
	if !state.Resolve.Valid() {
		return state, fmt.Errorf("%w: unknown resolve mode %q", ErrInvalidState, state.Resolve)
	}
	state.Hex = strings.TrimSpace(state.Hex)
	return state, nil
}

// refreshFinalColor derives the final color from the current mode
func refreshFinalColor(cat *catalog.Catalog, f *models.Formula) {
	if f.State.Mode == models.ModeHex {
		hex, err := utils.NormalizeHex(f.State.Hex)
		if err != nil {
			return
		}
		f.FinalHex = hex
		f.FinalName = NameCustomHex
		for _, p := range cat.Presets() {
			if p.Hex == hex {
				f.FinalName = p.Name
				break
			}
		}
		return
	}

	result := blend.ComputeForState(cat, Ingredients(f), f.State)
	if result.Neutral {
		f.FinalHex = blend.NeutralHex
		f.FinalName = NameEmptyFormula
		return
	}
	f.FinalHex = result.Hex
	f.FinalName = NameBlendResult
	if f.RecipeKey != "" {
		if recipe, ok := cat.Recipe(f.RecipeKey); ok {
			f.FinalName = recipe.Name
		}
	}
}

func buildView(cat *catalog.Catalog, f *models.Formula) *models.FormulaView {
	result := blend.ComputeForState(cat, Ingredients(f), f.State)

	view := &models.FormulaView{
		ID:            f.ID,
		State:         f.State,
		Rows:          make([]models.RowView, len(f.Rows)),
		InputRatio:    result.InputRatio,
		RatioComplete: result.RatioComplete,
		Blend:         result,
		FinalHex:      f.FinalHex,
		FinalName:     f.FinalName,
		UpdatedAt:     f.UpdatedAt,
	}

	for i, row := range f.Rows {
		status := result.Ingredients[i]
		rv := models.RowView{
			Index:      i,
			Code:       row.Code,
			Ratio:      row.Ratio,
			Brand:      row.Brand,
			PreviewHex: status.PreviewHex,
		}
		switch {
		case strings.TrimSpace(row.Code) == "":
			rv.Status = models.RowEmpty
		case status.Resolved:
			rv.Status = models.RowValid
		default:
			rv.Status = models.RowInvalid
		}
		view.Rows[i] = rv
	}

	if f.RecipeKey != "" {
		if recipe, ok := cat.Recipe(f.RecipeKey); ok {
			view.ReferenceHex = recipe.Hex
		}
	}

	if rgb, err := utils.ParseHex(f.FinalHex); err == nil {
		if preset, ok := utils.NearestPreset(rgb, cat.Presets()); ok {
			view.NearestPreset = &preset
		}
	}
	return view
}

func newRow(code string, ratio float64, brand string) models.IngredientRow {
	ratio = blend.CapRatio(ratio)
	if ratio < 0 {
		ratio = 0
	}
	return models.IngredientRow{
		Code:  catalog.NormalizeCode(code),
		Ratio: ratio,
		Brand: strings.TrimSpace(brand),
	}
}

func rowsFromIngredients(ingredients []models.Ingredient) []models.IngredientRow {
	if len(ingredients) == 0 {
		return []models.IngredientRow{{Ratio: DefaultRowRatio}}
	}
	rows := make([]models.IngredientRow, 0, len(ingredients))
	for _, ing := range ingredients {
		rows = append(rows, newRow(ing.Code, ing.Ratio, ing.Brand))
	}
	return rows
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrFormulaNotFound, err)
	}
	return err
}
