package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"haircolor-mixer/catalog"
)

const serviceTestDocument = `{
  "qualucia": {
    "colors": {
      "RED":  {"rgb": [255, 0, 0]},
      "BLUE": {"rgb": [0, 0, 255]},
      "10GR": {"rgb": [184, 160, 137]},
      "9SB":  {"rgb": [170, 148, 125]}
    }
  },
  "blcolor": {
    "colors": {
      "3-7": {"rgb": [214, 170, 165]},
      "3-8": {"rgb": [212, 186, 170]}
    }
  },
  "preset_colors": {"#B39C86": "Ash beige", "#D4B0A8": "Pink beige"},
  "quick_recipes": {
    "ash":  {"name": "Ash beige", "hex": "#B39C86", "ingredients": [{"code": "10GR", "ratio": 60}, {"code": "9SB", "ratio": 40}]},
    "pink": {"name": "Pink beige", "ingredients": [{"code": "3-7", "ratio": 70}, {"code": "3-8", "ratio": 30}]}
  }
}`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load([]byte(serviceTestDocument), catalog.FormatJSON, catalog.LoadOptions{Source: "test"})
	require.NoError(t, err)
	return cat
}

func readyHolder(t *testing.T) *catalog.Holder {
	t.Helper()
	return catalog.NewReadyHolder(testCatalog(t))
}
