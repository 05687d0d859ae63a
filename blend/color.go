package blend

import (
	"math"

	"haircolor-mixer/models"
)

const (
	// NeutralHex is the color shown while no ingredient is valid
	NeutralHex = "#f5f5f5"
	// UnresolvedPreviewHex is the row preview of a code that does not resolve
	UnresolvedPreviewHex = "#f7fafc"
)

// NeutralRGB is NeutralHex as a triple
var NeutralRGB = models.RGB{R: 0xf5, G: 0xf5, B: 0xf5}

// clampChannel rounds half away from zero and clamps to [0,255]
func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
