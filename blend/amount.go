package blend

import (
	"math"

	"haircolor-mixer/models"
)

const (
	DefaultTotalAmount = 100
	DefaultRootPercent = 60
	DefaultEndsPercent = 40
)

// SplitAmount divides a product amount between roots and ends
// Each side is rounded independently; the percentages are not required to sum to 100
func SplitAmount(total, rootPercent, endsPercent float64) models.AmountSplit {
	return models.AmountSplit{
		Total:       total,
		RootPercent: rootPercent,
		EndsPercent: endsPercent,
		RootAmount:  math.Round(total * rootPercent / 100),
		EndsAmount:  math.Round(total * endsPercent / 100),
	}
}
