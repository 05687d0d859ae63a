// Package catalog holds the read-only pigment lookup table: per-brand pigment
// codes, preset colors and quick recipes, loaded once from a single document.
package catalog

import (
	"sort"
	"strings"

	"haircolor-mixer/models"
)

// Catalog is immutable once returned by Load; it is safe for concurrent readers
type Catalog struct {
	brands      []string                                   // Display names, priority order
	brandKeys   map[string]string                          // lowercase -> display name
	pigments    map[string]map[string]models.PigmentEntry // lowercase brand -> uppercase code -> entry
	presets     []models.PresetColor
	recipes     map[string]models.RecipeTemplate
	recipeOrder []string
}

// NormalizeCode upper-cases and trims a pigment code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func brandKey(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}

// Lookup finds a pigment by brand and code; both are matched case-insensitively
func (c *Catalog) Lookup(brand, code string) (models.PigmentEntry, bool) {
	table, ok := c.pigments[brandKey(brand)]
	if !ok {
		return models.PigmentEntry{}, false
	}
	entry, ok := table[NormalizeCode(code)]
	return entry, ok
}

// LookupAcrossBrands returns the first match in brand priority order
func (c *Catalog) LookupAcrossBrands(code string) (models.PigmentEntry, bool) {
	code = NormalizeCode(code)
	for _, brand := range c.brands {
		if entry, ok := c.pigments[brandKey(brand)][code]; ok {
			return entry, true
		}
	}
	return models.PigmentEntry{}, false
}

// HasBrand reports whether the catalog carries a pigment table for brand
func (c *Catalog) HasBrand(brand string) bool {
	_, ok := c.brandKeys[brandKey(brand)]
	return ok
}

// Brands returns the brand names in priority order
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// BrandSummaries returns each brand with its priority and pigment count
func (c *Catalog) BrandSummaries() []models.BrandSummary {
	out := make([]models.BrandSummary, 0, len(c.brands))
	for i, b := range c.brands {
		out = append(out, models.BrandSummary{
			Name:         b,
			Priority:     i + 1,
			PigmentCount: len(c.pigments[brandKey(b)]),
		})
	}
	return out
}

// Pigments returns the pigments of one brand sorted by code; nil for an unknown brand
func (c *Catalog) Pigments(brand string) []models.PigmentEntry {
	table, ok := c.pigments[brandKey(brand)]
	if !ok {
		return nil
	}
	out := make([]models.PigmentEntry, 0, len(table))
	for _, e := range table {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Presets returns the preset colors in document order
func (c *Catalog) Presets() []models.PresetColor {
	out := make([]models.PresetColor, len(c.presets))
	copy(out, c.presets)
	return out
}

// Recipe returns a quick recipe by key
func (c *Catalog) Recipe(key string) (models.RecipeTemplate, bool) {
	r, ok := c.recipes[strings.TrimSpace(key)]
	if !ok {
		return models.RecipeTemplate{}, false
	}
	return cloneRecipe(r), true
}

// Recipes returns every quick recipe in document order
func (c *Catalog) Recipes() []models.RecipeTemplate {
	out := make([]models.RecipeTemplate, 0, len(c.recipeOrder))
	for _, key := range c.recipeOrder {
		out = append(out, cloneRecipe(c.recipes[key]))
	}
	return out
}

// UnresolvedRecipeIngredients lists "recipe/code" pairs that resolve in no brand
func (c *Catalog) UnresolvedRecipeIngredients() []string {
	var missing []string
	for _, key := range c.recipeOrder {
		for _, ing := range c.recipes[key].Ingredients {
			var ok bool
			if ing.Brand != "" {
				_, ok = c.Lookup(ing.Brand, ing.Code)
			} else {
				_, ok = c.LookupAcrossBrands(ing.Code)
			}
			if !ok {
				missing = append(missing, key+"/"+ing.Code)
			}
		}
	}
	return missing
}

func cloneRecipe(r models.RecipeTemplate) models.RecipeTemplate {
	ings := make([]models.RecipeIngredient, len(r.Ingredients))
	copy(ings, r.Ingredients)
	r.Ingredients = ings
	return r
}
