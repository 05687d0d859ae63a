package utils

import (
	"strconv"
	"strings"
)

// FormatGrams formats an amount as "90g", keeping at most one decimal ("37.5g")
func FormatGrams(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		s = "0"
	}
	return s + "g"
}

// FormatPercent formats a ratio as "60%"
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "%"
}
