package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"haircolor-mixer/models"
)

// FormatHex renders a triple as lowercase #rrggbb
func FormatHex(c models.RGB) string {
	return toColorful(c).Hex()
}

// ParseHex parses a strict #RRGGBB string (either case)
func ParseHex(s string) (models.RGB, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return models.RGB{}, fmt.Errorf("invalid hex color %q: expected #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return models.RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return models.RGB{R: r, G: g, B: b}, nil
}

// IsValidHex reports whether s is a strict #RRGGBB color
func IsValidHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// NormalizeHex returns the lowercase #rrggbb form of s
func NormalizeHex(s string) (string, error) {
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return FormatHex(c), nil
}

// NearestPreset returns the preset closest to c by plain sRGB distance
// Ties keep the earlier preset; ok is false when presets is empty or no preset hex parses
func NearestPreset(c models.RGB, presets []models.PresetColor) (models.PresetColor, bool) {
	target := toColorful(c)
	best := models.PresetColor{}
	bestDist := math.Inf(1)
	found := false
	for _, p := range presets {
		pc, err := ParseHex(p.Hex)
		if err != nil {
			continue
		}
		d := target.DistanceRgb(toColorful(pc))
		if d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

func toColorful(c models.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}
