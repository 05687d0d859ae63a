package service

import (
	"errors"
	"fmt"
	"math"

	"haircolor-mixer/blend"
	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

var ErrInvalidAmount = errors.New("invalid amount")

// SplitAmount applies the request defaults and splits the amount between roots and ends
// Total defaults to the hair length amount (medium when no length is given); percentages default to 60/40
func SplitAmount(req models.AmountRequest) (*models.AmountResponse, error) {
	length := utils.NormalizeHairLength(req.HairLength)
	if length == "" {
		length = utils.HairLengthMedium
	}
	lengthAmount, known := utils.MapHairLengthToAmount(length)
	if !known && req.Total == 0 {
		return nil, fmt.Errorf("%w: unknown hair length %q", ErrInvalidAmount, req.HairLength)
	}

	for name, v := range map[string]float64{"total": req.Total, "rootPercent": req.RootPercent, "endsPercent": req.EndsPercent} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidAmount, name)
		}
	}

	total := req.Total
	if total == 0 {
		total = lengthAmount
	}
	root := req.RootPercent
	if root == 0 {
		root = blend.DefaultRootPercent
	}
	ends := req.EndsPercent
	if ends == 0 {
		ends = blend.DefaultEndsPercent
	}

	return &models.AmountResponse{
		AmountSplit:    blend.SplitAmount(total, root, ends),
		HairLength:     length,
		HairLengthText: utils.MapHairLengthToText(length),
	}, nil
}
