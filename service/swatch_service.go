package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

const (
	// Base swatch geometry; output is resized to the requested width
	swatchBaseWidth  = 400
	swatchBaseHeight = 300
	swatchStripRatio = 4 // Ingredient strip takes 1/4 of the height
	minSwatchWidth   = 16
	maxSwatchWidth   = 2048
)

// SwatchService renders blend colors as PNG images
type SwatchService struct{}

// NewSwatchService creates a new SwatchService
func NewSwatchService() *SwatchService {
	return &SwatchService{}
}

// RenderHex renders a solid swatch of hex at the given width (3:4 aspect ratio)
func (s *SwatchService) RenderHex(hex string, width int) ([]byte, error) {
	rgb, err := utils.ParseHex(hex)
	if err != nil {
		return nil, err
	}
	img := imaging.New(swatchBaseWidth, swatchBaseHeight, toNRGBA(rgb))
	return encodeSwatch(img, width)
}

// RenderBlend renders the blend color with a strip showing each included ingredient
// Strip segments are proportional to the ingredient ratios; a neutral blend has no strip
func (s *SwatchService) RenderBlend(result models.BlendResult, width int) ([]byte, error) {
	final := toNRGBA(result.RGB)
	img := imaging.New(swatchBaseWidth, swatchBaseHeight, final)

	if !result.Neutral && result.TotalRatio > 0 {
		stripHeight := swatchBaseHeight / swatchStripRatio
		top := swatchBaseHeight - stripHeight
		x := 0
		included := 0
		for _, ing := range result.Ingredients {
			if ing.Included {
				included++
			}
		}
		seen := 0
		for _, ing := range result.Ingredients {
			if !ing.Included {
				continue
			}
			seen++
			rgb, err := utils.ParseHex(ing.PreviewHex)
			if err != nil {
				continue
			}
			segWidth := int(float64(swatchBaseWidth) * ing.Ratio / result.TotalRatio)
			if seen == included {
				segWidth = swatchBaseWidth - x
			}
			if segWidth <= 0 {
				continue
			}
			segment := imaging.New(segWidth, stripHeight, toNRGBA(rgb))
			img = imaging.Paste(img, segment, image.Pt(x, top))
			x += segWidth
		}
	}

	logger.Debug("🎨 RenderBlend: swatch rendered",
		zap.String("hex", result.Hex), zap.Int("ingredients", result.ValidIngredientCount))
	return encodeSwatch(img, width)
}

func encodeSwatch(img image.Image, width int) ([]byte, error) {
	if width <= 0 {
		width = swatchBaseWidth
	}
	if width < minSwatchWidth || width > maxSwatchWidth {
		return nil, fmt.Errorf("swatch width must be between %d and %d, got %d", minSwatchWidth, maxSwatchWidth, width)
	}

	var out image.Image = img
	if width != swatchBaseWidth {
		out = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}
	return buf.Bytes(), nil
}

func toNRGBA(c models.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
