package models

import "time"

// Row validity values
const (
	RowEmpty   = "empty"
	RowValid   = "valid"
	RowInvalid = "invalid"
)

// IngredientRow is one editable line of a formula
type IngredientRow struct {
	Code  string  `json:"code"`
	Ratio float64 `json:"ratio"`
	Brand string  `json:"brand,omitempty"`
}

// Formula is the in-memory ingredient list of one editing session
type Formula struct {
	ID        string          `json:"id"`
	Rows      []IngredientRow `json:"rows"`
	State     UIState         `json:"state"`
	FinalHex  string          `json:"finalHex"`
	FinalName string          `json:"finalName"`
	RecipeKey string          `json:"recipeKey,omitempty"` // Set after loading a quick recipe, cleared on edit
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// RowView is the rendered projection of one row
// Example: {"index": 0, "code": "10GR", "ratio": 60, "status": "valid", "previewHex": "#b8a089"}
type RowView struct {
	Index      int     `json:"index"`
	Code       string  `json:"code"`
	Ratio      float64 `json:"ratio"`
	Brand      string  `json:"brand,omitempty"`
	Status     string  `json:"status"` // empty, valid, invalid
	PreviewHex string  `json:"previewHex"`
}

// FormulaView is the rendered projection of a formula session
type FormulaView struct {
	ID            string       `json:"id"`
	State         UIState      `json:"state"`
	Rows          []RowView    `json:"rows"`
	InputRatio    float64      `json:"inputRatio"`
	RatioComplete bool         `json:"ratioComplete"`
	Blend         BlendResult  `json:"blend"`
	FinalHex      string       `json:"finalHex"`
	FinalName     string       `json:"finalName"`
	ReferenceHex  string       `json:"referenceHex,omitempty"` // Display hex of the loaded quick recipe
	NearestPreset *PresetColor `json:"nearestPreset,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreateFormulaRequest represents the request body for POST /formulas
// Example: {"state": {"mode": "recipe", "brand": "qualucia"}}
type CreateFormulaRequest struct {
	State UIState `json:"state"`
}

// UpdateRowRequest represents the request body for PUT /formulas/:id/rows/:index
// Example: {"code": "10gr", "ratio": 60}
type UpdateRowRequest struct {
	Code  string  `json:"code"`
	Ratio float64 `json:"ratio"`
	Brand string  `json:"brand,omitempty"`
}

// SelectPresetRequest represents the request body for POST /formulas/:id/preset
type SelectPresetRequest struct {
	Hex string `json:"hex"`
}
