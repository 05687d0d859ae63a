package utils

import "strings"

// Hair length constants
const (
	HairLengthShort     = "short"
	HairLengthMedium    = "medium"
	HairLengthLong      = "long"
	HairLengthSuperLong = "superlong"
)

// hairLengthAmounts is the default product amount in grams per hair length
var hairLengthAmounts = map[string]float64{
	HairLengthShort:     80,
	HairLengthMedium:    100,
	HairLengthLong:      120,
	HairLengthSuperLong: 150,
}

var hairLengthTexts = map[string]string{
	HairLengthShort:     "Short",
	HairLengthMedium:    "Medium",
	HairLengthLong:      "Long",
	HairLengthSuperLong: "Super long",
}

// NormalizeHairLength lowercases and trims the input; "super long" and "super-long" map to superlong
func NormalizeHairLength(length string) string {
	l := strings.ToLower(strings.TrimSpace(length))
	l = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(l)
	return l
}

// MapHairLengthToAmount returns the default amount for a hair length
// ok is false for an unknown length
func MapHairLengthToAmount(length string) (float64, bool) {
	amount, exists := hairLengthAmounts[NormalizeHairLength(length)]
	return amount, exists
}

// MapHairLengthToText returns the display text of a hair length
// If not found, the input is returned unchanged
func MapHairLengthToText(length string) string {
	if text, exists := hairLengthTexts[NormalizeHairLength(length)]; exists {
		return text
	}
	return length
}

// HairLengths returns the known hair lengths from shortest to longest
func HairLengths() []string {
	return []string{HairLengthShort, HairLengthMedium, HairLengthLong, HairLengthSuperLong}
}
