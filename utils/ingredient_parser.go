package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"haircolor-mixer/models"
)

var ingredientSpecRegex = regexp.MustCompile(`^(?:([A-Za-z][\w-]*):)?([^=:\s]+)=([-+]?\d+(?:\.\d+)?)$`)

// ParseIngredientSpec parses one ingredient written as [BRAND:]CODE=RATIO
// Example: qualucia:10GR=60 or 3-7=30
func ParseIngredientSpec(spec string) (models.Ingredient, error) {
	matches := ingredientSpecRegex.FindStringSubmatch(strings.TrimSpace(spec))
	if len(matches) != 4 {
		return models.Ingredient{}, fmt.Errorf("invalid ingredient %q: expected [BRAND:]CODE=RATIO", spec)
	}

	ratio, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("invalid ratio in %q: %w", spec, err)
	}

	return models.Ingredient{
		Brand: strings.ToLower(matches[1]),
		Code:  strings.ToUpper(matches[2]),
		Ratio: ratio,
	}, nil
}

// ParseIngredientSpecs parses every spec, stopping at the first error
func ParseIngredientSpecs(specs []string) ([]models.Ingredient, error) {
	out := make([]models.Ingredient, 0, len(specs))
	for _, s := range specs {
		ing, err := ParseIngredientSpec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}
