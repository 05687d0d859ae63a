// Package blend computes the color of a hair-color formula as a ratio-weighted
// average of its pigments in sRGB byte space.
//
// Every function is pure: results depend only on the arguments and the
// read-only catalog passed in.
package blend

import (
	"math"
	"strings"

	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

// Resolver looks pigments up; *catalog.Catalog implements it
type Resolver interface {
	Lookup(brand, code string) (models.PigmentEntry, bool)
	LookupAcrossBrands(code string) (models.PigmentEntry, bool)
}

// MaxRatio is the largest ratio a single ingredient can carry; larger ratios are capped
const MaxRatio = 1e6

// Options selects how ingredients resolve and whether a level adjustment applies
type Options struct {
	ActiveBrand string
	Resolve     models.ResolveMode // Empty behaves as ResolvePriority
	Level       *int               // nil disables the level adjustment
}

// OptionsFromState maps a UI state to engine options
func OptionsFromState(state models.UIState) Options {
	return Options{
		ActiveBrand: state.Brand,
		Resolve:     state.Resolve,
		Level:       state.Level,
	}
}

// Resolve finds the pigment for one ingredient under the given options
func Resolve(r Resolver, ing models.Ingredient, opts Options) (models.PigmentEntry, bool) {
	code := strings.TrimSpace(ing.Code)
	if code == "" || r == nil {
		return models.PigmentEntry{}, false
	}
	if ing.Brand != "" {
		return r.Lookup(ing.Brand, code)
	}
	if opts.Resolve == models.ResolveExplicit {
		return r.Lookup(opts.ActiveBrand, code)
	}
	return r.LookupAcrossBrands(code)
}

// Compute blends the ingredients into one color
//
// Ingredients with ratio <= 0 or an unresolved code are excluded, and ratios are
// capped at MaxRatio. When nothing is included the neutral sentinel is returned
// with Neutral set. Channels are rounded half away from zero and clamped to
// [0,255]. The level adjustment, when requested, is applied to each pigment
// before accumulation.
func Compute(r Resolver, ingredients []models.Ingredient, opts Options) models.BlendResult {
	var delta float64
	var level *int
	if opts.Level != nil {
		if d, ok := LevelDelta(*opts.Level); ok {
			delta = d
			l := *opts.Level
			level = &l
		}
	}

	result := models.BlendResult{
		Level:       level,
		Ingredients: make([]models.IngredientStatus, 0, len(ingredients)),
	}

	var sumR, sumG, sumB, sumRatio float64
	for _, ing := range ingredients {
		ratio := CapRatio(ing.Ratio)
		result.InputRatio += ratio

		status := models.IngredientStatus{
			Code:       strings.ToUpper(strings.TrimSpace(ing.Code)),
			Ratio:      ratio,
			PreviewHex: UnresolvedPreviewHex,
		}

		entry, ok := Resolve(r, ing, opts)
		if ok {
			status.Resolved = true
			status.Brand = entry.Brand
			status.PreviewHex = entry.Hex
		}

		if ok && ratio > 0 {
			status.Included = true
			if level != nil {
				sumR += adjustChannel(entry.RGB.R, delta) * ratio
				sumG += adjustChannel(entry.RGB.G, delta) * ratio
				sumB += adjustChannel(entry.RGB.B, delta) * ratio
			} else {
				sumR += float64(entry.RGB.R) * ratio
				sumG += float64(entry.RGB.G) * ratio
				sumB += float64(entry.RGB.B) * ratio
			}
			sumRatio += ratio
			result.ValidIngredientCount++
		}

		result.Ingredients = append(result.Ingredients, status)
	}

	result.TotalRatio = sumRatio
	result.RatioComplete = result.InputRatio == 100

	if sumRatio == 0 {
		result.Neutral = true
		result.ValidIngredientCount = 0
		result.RGB = NeutralRGB
		result.Hex = NeutralHex
		return result
	}

	result.RGB = models.RGB{
		R: clampChannel(sumR / sumRatio),
		G: clampChannel(sumG / sumRatio),
		B: clampChannel(sumB / sumRatio),
	}
	result.Hex = utils.FormatHex(result.RGB)
	return result
}

// CapRatio maps NaN and infinities to 0 and limits the ratio to MaxRatio
func CapRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	if ratio > MaxRatio {
		return MaxRatio
	}
	return ratio
}

// ComputeForState blends using the selection carried by an explicit UI state
func ComputeForState(r Resolver, ingredients []models.Ingredient, state models.UIState) models.BlendResult {
	return Compute(r, ingredients, OptionsFromState(state))
}

// FromRecipe converts quick recipe lines to blend ingredients
func FromRecipe(recipe models.RecipeTemplate) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		out = append(out, models.Ingredient{Code: ri.Code, Ratio: ri.Ratio, Brand: ri.Brand})
	}
	return out
}
