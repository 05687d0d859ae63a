package models

// ResolveMode selects how an ingredient without an explicit brand finds its pigment
type ResolveMode string

const (
	// ResolvePriority looks the code up across brands in priority order
	ResolvePriority ResolveMode = "priority"
	// ResolveExplicit looks the code up in the ingredient brand, or the active brand when absent
	ResolveExplicit ResolveMode = "explicit"
)

// Valid reports whether m is a known resolve mode
func (m ResolveMode) Valid() bool {
	return m == ResolvePriority || m == ResolveExplicit
}

// Ingredient is one blend input
// Example: {"code": "10GR", "ratio": 60, "brand": "qualucia"}
type Ingredient struct {
	Code  string  `json:"code"`
	Ratio float64 `json:"ratio"`
	Brand string  `json:"brand,omitempty"`
}

// IngredientStatus reports how one ingredient took part in a blend
type IngredientStatus struct {
	Code       string  `json:"code"`
	Brand      string  `json:"brand,omitempty"` // Brand the code resolved in
	Ratio      float64 `json:"ratio"`
	Resolved   bool    `json:"resolved"`
	Included   bool    `json:"included"` // Resolved and ratio > 0
	PreviewHex string  `json:"previewHex"`
}

// BlendResult is the derived color of a set of ingredients
type BlendResult struct {
	Hex                  string             `json:"hex"`
	RGB                  RGB                `json:"rgb"`
	ValidIngredientCount int                `json:"validIngredientCount"`
	TotalRatio           float64            `json:"totalRatio"`    // Sum of included ratios
	InputRatio           float64            `json:"inputRatio"`    // Sum of every entered ratio
	RatioComplete        bool               `json:"ratioComplete"` // InputRatio == 100
	Neutral              bool               `json:"neutral"`       // No valid ingredient; Hex is the sentinel
	Level                *int               `json:"level,omitempty"`
	Ingredients          []IngredientStatus `json:"ingredients"`
}

// AmountSplit is the root/ends split of a product amount (grams)
type AmountSplit struct {
	Total       float64 `json:"total"`
	RootPercent float64 `json:"rootPercent"`
	EndsPercent float64 `json:"endsPercent"`
	RootAmount  float64 `json:"rootAmount"`
	EndsAmount  float64 `json:"endsAmount"`
}

// AmountRequest represents the request body for POST /amounts/split
// Zero values are replaced by defaults (total from hair length, root 60, ends 40)
type AmountRequest struct {
	HairLength  string  `json:"hairLength,omitempty"` // short, medium, long, superlong
	Total       float64 `json:"total,omitempty"`
	RootPercent float64 `json:"rootPercent,omitempty"`
	EndsPercent float64 `json:"endsPercent,omitempty"`
}

// AmountResponse is the amount split together with the hair length label
type AmountResponse struct {
	AmountSplit
	HairLength     string `json:"hairLength"`
	HairLengthText string `json:"hairLengthText"`
}

// BlendRequest represents the request body for POST /blend
type BlendRequest struct {
	Ingredients []Ingredient `json:"ingredients"`
	State       UIState      `json:"state"`
}
