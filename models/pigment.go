package models

// RGB is an sRGB triple in byte space
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// PigmentEntry represents a single pigment code of a brand
// Hex is a cache of RGB and always matches it (lowercase #rrggbb)
type PigmentEntry struct {
	Brand string `json:"brand"`
	Code  string `json:"code"` // Uppercase (e.g., "10GR")
	RGB   RGB    `json:"rgb"`
	Hex   string `json:"hex"`
}

// PresetColor is a named color offered for direct-hex selection
type PresetColor struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

// RecipeIngredient is one line of a quick recipe
// Brand is optional; when empty it resolves against the active brand or the brand priority order
type RecipeIngredient struct {
	Brand string  `json:"brand,omitempty"`
	Code  string  `json:"code"`
	Ratio float64 `json:"ratio"`
}

// RecipeTemplate represents a named quick recipe from the catalog
type RecipeTemplate struct {
	Key         string             `json:"key"`           // Key in quick_recipes (e.g., "ash")
	Name        string             `json:"name"`          // Display name
	Hex         string             `json:"hex,omitempty"` // Reference hex shown with the recipe, if any
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// BrandSummary is a brand with its pigment count, used by catalog listings
type BrandSummary struct {
	Name         string `json:"name"`
	Priority     int    `json:"priority"`
	PigmentCount int    `json:"pigmentCount"`
}
