package models

// Mode is the editing mode of a formula session
type Mode string

const (
	ModeRecipe Mode = "recipe" // Color derived from the ingredient list
	ModeHex    Mode = "hex"    // Color entered directly as #RRGGBB
)

// UIState is the immutable selection a caller forwards to the blend engine
// Example: {"mode": "recipe", "brand": "qualucia", "level": 10, "resolve": "priority"}
type UIState struct {
	Mode    Mode        `json:"mode"`
	Brand   string      `json:"brand,omitempty"`
	Level   *int        `json:"level,omitempty"`
	Resolve ResolveMode `json:"resolve,omitempty"`
	Hex     string      `json:"hex,omitempty"` // Only used in hex mode
}

// WithDefaults fills empty fields from the given defaults and returns the copy
func (s UIState) WithDefaults(brand string, resolve ResolveMode) UIState {
	if s.Mode == "" {
		s.Mode = ModeRecipe
	}
	if s.Brand == "" {
		s.Brand = brand
	}
	if s.Resolve == "" {
		s.Resolve = resolve
	}
	return s
}
