package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "qualucia": {
    "colors": {
      "10GR": {"rgb": [184, 160, 137], "hex": "#B8A089"},
      "9sb":  {"rgb": [170, 148, 125]},
      "RED":  {"rgb": [255, 0, 0], "hex": "#ff0000"}
    }
  },
  "blcolor": {
    "colors": {
      "3-7":  {"rgb": [214, 170, 165], "hex": "#d6aaa5"},
      "RED":  {"rgb": [200, 0, 0], "hex": "#c80000"},
      "BLUE": {"rgb": [0, 0, 255], "hex": "#0000ff"}
    }
  },
  "preset_colors": {"#B39C86": "Ash beige", "#D4B0A8": "Pink beige", "#C5B8B0": "Silver ash"},
  "quick_recipes": {
    "silver": {"name": "Silver ash", "ingredients": [{"code": "3-7", "ratio": 50}, {"code": "NOPE", "ratio": 50}]},
    "ash": {"name": "Ash beige", "hex": "#B39C86", "ingredients": [{"code": "10gr", "ratio": 60}, {"code": "9SB", "ratio": 40}]}
  }
}`

func loadTestCatalog(t *testing.T, opts LoadOptions) *Catalog {
	t.Helper()
	cat, err := Load([]byte(testDocument), FormatJSON, opts)
	require.NoError(t, err)
	require.NotNil(t, cat)
	return cat
}

func TestLoad_Success(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{RequiredBrands: []string{"qualucia", "blcolor"}})

	assert.Equal(t, []string{"qualucia", "blcolor"}, cat.Brands())
	assert.Len(t, cat.Pigments("qualucia"), 3)
	assert.Nil(t, cat.Pigments("unknown"))

	presets := cat.Presets()
	require.Len(t, presets, 3)
	assert.Equal(t, "#b39c86", presets[0].Hex)
	assert.Equal(t, "Ash beige", presets[0].Name)
	assert.Equal(t, "Silver ash", presets[2].Name)

	recipes := cat.Recipes()
	require.Len(t, recipes, 2)
	assert.Equal(t, "silver", recipes[0].Key, "recipes keep document order")
	assert.Equal(t, "ash", recipes[1].Key)
	assert.Equal(t, "10GR", recipes[1].Ingredients[0].Code)
	assert.Equal(t, "#b39c86", recipes[1].Hex)

	assert.Equal(t, []string{"silver/NOPE"}, cat.UnresolvedRecipeIngredients())
}

func TestLoad_HexDerivedFromRGB(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{})

	entry, ok := cat.Lookup("qualucia", "9SB")
	require.True(t, ok)
	assert.Equal(t, "#aa947d", entry.Hex)

	entry, ok = cat.Lookup("qualucia", "10GR")
	require.True(t, ok)
	assert.Equal(t, "#b8a089", entry.Hex, "stored hex is normalised to lowercase")
}

func TestLookup_CaseInsensitive(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{})

	lower, ok := cat.Lookup("qualucia", "10gr")
	require.True(t, ok)
	upper, ok := cat.Lookup("QUALUCIA", " 10GR ")
	require.True(t, ok)
	assert.Equal(t, upper, lower)
	assert.Equal(t, "10GR", lower.Code)

	_, ok = cat.Lookup("qualucia", "3-7")
	assert.False(t, ok, "code exists only in another brand")
	_, ok = cat.Lookup("nobrand", "10GR")
	assert.False(t, ok)
}

func TestLookupAcrossBrands_PriorityOrder(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{})

	entry, ok := cat.LookupAcrossBrands("red")
	require.True(t, ok)
	assert.Equal(t, "qualucia", entry.Brand, "first brand in document order wins")

	entry, ok = cat.LookupAcrossBrands("3-7")
	require.True(t, ok)
	assert.Equal(t, "blcolor", entry.Brand)

	_, ok = cat.LookupAcrossBrands("missing")
	assert.False(t, ok)
}

func TestLookupAcrossBrands_ConfiguredPriority(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{BrandPriority: []string{"BLCOLOR", "unknown"}})

	assert.Equal(t, []string{"blcolor", "qualucia"}, cat.Brands())
	entry, ok := cat.LookupAcrossBrands("RED")
	require.True(t, ok)
	assert.Equal(t, "blcolor", entry.Brand)
	assert.Equal(t, uint8(200), entry.RGB.R)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts LoadOptions
	}{
		{
			name: "malformed json",
			doc:  `{"qualucia": `,
		},
		{
			name: "empty document",
			doc:  "",
		},
		{
			name: "missing preset_colors",
			doc:  `{"qualucia": {"colors": {}}, "quick_recipes": {}}`,
		},
		{
			name: "missing quick_recipes",
			doc:  `{"qualucia": {"colors": {}}, "preset_colors": {}}`,
		},
		{
			name: "missing configured brand",
			doc:  `{"qualucia": {"colors": {}}, "preset_colors": {}, "quick_recipes": {}}`,
			opts: LoadOptions{RequiredBrands: []string{"qualucia", "blcolor"}},
		},
		{
			name: "no brands at all",
			doc:  `{"preset_colors": {}, "quick_recipes": {}}`,
		},
		{
			name: "pigment without rgb",
			doc:  `{"qualucia": {"colors": {"10GR": {"hex": "#b8a089"}}}, "preset_colors": {}, "quick_recipes": {}}`,
		},
		{
			name: "brand without colors",
			doc:  `{"qualucia": {"name": "x"}, "preset_colors": {}, "quick_recipes": {}}`,
		},
		{
			name: "rgb out of range",
			doc:  `{"qualucia": {"colors": {"10GR": {"rgb": [300, 0, 0]}}}, "preset_colors": {}, "quick_recipes": {}}`,
		},
		{
			name: "rgb with two channels",
			doc:  `{"qualucia": {"colors": {"10GR": {"rgb": [1, 2]}}}, "preset_colors": {}, "quick_recipes": {}}`,
		},
		{
			name: "invalid preset hex",
			doc:  `{"qualucia": {"colors": {}}, "preset_colors": {"blue": "Blue"}, "quick_recipes": {}}`,
		},
		{
			name: "recipe ratio not positive",
			doc:  `{"qualucia": {"colors": {}}, "preset_colors": {}, "quick_recipes": {"x": {"ingredients": [{"code": "A", "ratio": 0}]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Load([]byte(tt.doc), FormatJSON, tt.opts)
			require.Error(t, err)
			assert.Nil(t, cat)
			assert.True(t, errors.Is(err, ErrCatalogLoad))

			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	doc := `
blcolor:
  colors:
    "3-7": {rgb: [214, 170, 165]}
qualucia:
  colors:
    10GR: {rgb: [184, 160, 137]}
preset_colors:
  "#D4B0A8": Pink beige
  "#B39C86": Ash beige
quick_recipes:
  pink:
    name: Pink beige
    ingredients:
      - {code: "3-7", ratio: 100}
`
	cat, err := Load([]byte(doc), FormatYAML, LoadOptions{RequiredBrands: []string{"qualucia"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"blcolor", "qualucia"}, cat.Brands())
	assert.Equal(t, "Pink beige", cat.Presets()[0].Name)

	entry, ok := cat.Lookup("qualucia", "10gr")
	require.True(t, ok)
	assert.Equal(t, "#b8a089", entry.Hex)

	recipe, ok := cat.Recipe("pink")
	require.True(t, ok)
	assert.Equal(t, 100.0, recipe.Ingredients[0].Ratio)
}

func TestRecipe_ReturnsCopy(t *testing.T) {
	cat := loadTestCatalog(t, LoadOptions{})

	recipe, ok := cat.Recipe("ash")
	require.True(t, ok)
	recipe.Ingredients[0].Code = "CHANGED"

	again, _ := cat.Recipe("ash")
	assert.Equal(t, "10GR", again.Ingredients[0].Code)
}

func TestLoadFrom_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0644))

	cat, err := LoadFrom(context.Background(), FileSource{Path: path}, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cat.HasBrand("blcolor"))
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}, LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.Contains(t, err.Error(), "source unreachable")
}

func TestLoadFrom_HTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/color-database.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testDocument))
	}))
	defer server.Close()

	cat, err := LoadFrom(context.Background(), HTTPSource{URL: server.URL + "/color-database.json"}, LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, cat.Brands(), 2)

	_, err = LoadFrom(context.Background(), HTTPSource{URL: server.URL + "/missing.json"}, LoadOptions{})
	assert.ErrorIs(t, err, ErrCatalogLoad)
}

func TestLoadFrom_HTTPSourceTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDocument))
	}))
	defer server.Close()

	src := HTTPSource{URL: server.URL, MaxSize: int64(len(testDocument)) - 1}
	_, err := LoadFrom(context.Background(), src, LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLoad)
	assert.Contains(t, err.Error(), "exceeds")

	src.MaxSize = int64(len(testDocument))
	cat, err := LoadFrom(context.Background(), src, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cat.HasBrand("qualucia"))
}

type stubStore struct {
	docs map[string][]byte
}

func (s stubStore) GetDocument(ctx context.Context, name string) ([]byte, error) {
	doc, ok := s.docs[name]
	if !ok {
		return nil, errors.New("document not found")
	}
	return doc, nil
}

func TestLoadFrom_StoreSource(t *testing.T) {
	store := stubStore{docs: map[string][]byte{"default": []byte(testDocument)}}

	cat, err := LoadFrom(context.Background(), StoreSource{DocumentName: "default", Store: store}, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cat.HasBrand("qualucia"))

	_, err = LoadFrom(context.Background(), StoreSource{DocumentName: "other", Store: store}, LoadOptions{})
	assert.ErrorIs(t, err, ErrCatalogLoad)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("catalog.yml", nil))
	assert.Equal(t, FormatJSON, DetectFormat("catalog.JSON", []byte("a: b")))
	assert.Equal(t, FormatJSON, DetectFormat("", []byte("  {\"a\": 1}")))
	assert.Equal(t, FormatYAML, DetectFormat("", []byte("a: b")))
}

func TestBundledDatabase(t *testing.T) {
	cat, err := LoadFrom(context.Background(), FileSource{Path: "../data/color-database.json"},
		LoadOptions{RequiredBrands: []string{"qualucia", "blcolor"}})
	require.NoError(t, err)
	assert.Empty(t, cat.UnresolvedRecipeIngredients())
	for _, key := range []string{"ash", "pink", "silver"} {
		_, ok := cat.Recipe(key)
		assert.True(t, ok, key)
	}
}
