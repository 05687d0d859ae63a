package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/utils"
)

const (
	keyPresetColors = "preset_colors"
	keyQuickRecipes = "quick_recipes"
)

// ErrCatalogLoad is matched by every *LoadError
var ErrCatalogLoad = errors.New("catalog load failed")

// LoadError reports why the catalog document could not be used
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	msg := "catalog load failed"
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCatalogLoad) true for any LoadError
func (e *LoadError) Is(target error) bool { return target == ErrCatalogLoad }

func loadErr(source, reason string, err error) *LoadError {
	return &LoadError{Source: source, Reason: reason, Err: err}
}

// Format is the encoding of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// LoadOptions tunes validation and brand priority
type LoadOptions struct {
	// Source names the document in errors and logs
	Source string
	// RequiredBrands must all be present as top-level brand keys
	RequiredBrands []string
	// BrandPriority puts these brands first in LookupAcrossBrands; others follow in document order
	BrandPriority []string
}

type pigmentDoc struct {
	RGB []int  `json:"rgb"`
	Hex string `json:"hex"`
}

type brandDoc struct {
	Colors json.RawMessage `json:"colors"`
}

type recipeDoc struct {
	Name        string                    `json:"name"`
	Hex         string                    `json:"hex"`
	Ingredients []models.RecipeIngredient `json:"ingredients"`
}

// Load parses a catalog document
func Load(data []byte, format Format, opts LoadOptions) (*Catalog, error) {
	src := opts.Source
	if format == FormatYAML {
		converted, err := YAMLToJSON(data)
		if err != nil {
			return nil, loadErr(src, "malformed YAML document", err)
		}
		data = converted
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, loadErr(src, "empty document", nil)
	}
	if !json.Valid(data) {
		return nil, loadErr(src, "malformed JSON document", nil)
	}
	if err := validateDocument(data); err != nil {
		return nil, loadErr(src, "document does not match the catalog schema", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, loadErr(src, "malformed document", err)
	}
	order, err := objectKeys(data)
	if err != nil {
		return nil, loadErr(src, "malformed document", err)
	}

	for _, required := range []string{keyPresetColors, keyQuickRecipes} {
		if _, ok := top[required]; !ok {
			return nil, loadErr(src, fmt.Sprintf("missing required key %q", required), nil)
		}
	}

	cat := &Catalog{
		brandKeys: make(map[string]string),
		pigments:  make(map[string]map[string]models.PigmentEntry),
		recipes:   make(map[string]models.RecipeTemplate),
	}

	var docBrands []string
	for _, key := range order {
		if key == keyPresetColors || key == keyQuickRecipes {
			continue
		}
		raw := bytes.TrimSpace(top[key])
		if len(raw) == 0 || raw[0] != '{' {
			// Scalar metadata such as a version string
			continue
		}
		table, err := parseBrand(key, raw)
		if err != nil {
			return nil, loadErr(src, fmt.Sprintf("brand %q", key), err)
		}
		bk := brandKey(key)
		if _, dup := cat.brandKeys[bk]; dup {
			return nil, loadErr(src, fmt.Sprintf("duplicate brand %q", key), nil)
		}
		cat.brandKeys[bk] = key
		cat.pigments[bk] = table
		docBrands = append(docBrands, key)
	}

	if len(docBrands) == 0 {
		return nil, loadErr(src, "document has no pigment brands", nil)
	}
	for _, required := range opts.RequiredBrands {
		if _, ok := cat.brandKeys[brandKey(required)]; !ok {
			return nil, loadErr(src, fmt.Sprintf("missing pigment brand %q", required), nil)
		}
	}
	cat.brands = priorityOrder(docBrands, opts.BrandPriority, cat.brandKeys)

	presets, err := parsePresets(top[keyPresetColors])
	if err != nil {
		return nil, loadErr(src, "preset_colors", err)
	}
	cat.presets = presets

	if err := parseRecipes(cat, top[keyQuickRecipes]); err != nil {
		return nil, loadErr(src, "quick_recipes", err)
	}

	if missing := cat.UnresolvedRecipeIngredients(); len(missing) > 0 {
		logger.Warn("Catalog: quick recipe ingredients do not resolve in any brand",
			zap.String("source", src), zap.Strings("ingredients", missing))
	}

	logger.Info("✅ Catalog: loaded",
		zap.String("source", src),
		zap.Strings("brands", cat.brands),
		zap.Int("presets", len(cat.presets)),
		zap.Int("recipes", len(cat.recipeOrder)))
	return cat, nil
}

func parseBrand(brand string, raw json.RawMessage) (map[string]models.PigmentEntry, error) {
	var doc brandDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Colors) == 0 {
		return nil, errors.New("missing colors table")
	}
	var colors map[string]json.RawMessage
	if err := json.Unmarshal(doc.Colors, &colors); err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}

	table := make(map[string]models.PigmentEntry, len(colors))
	for rawCode, rawEntry := range colors {
		code := NormalizeCode(rawCode)
		if code == "" {
			return nil, errors.New("empty pigment code")
		}
		if _, dup := table[code]; dup {
			return nil, fmt.Errorf("duplicate pigment code %q", code)
		}

		var pd pigmentDoc
		if err := json.Unmarshal(rawEntry, &pd); err != nil {
			return nil, fmt.Errorf("pigment %q: %w", rawCode, err)
		}
		if pd.RGB == nil {
			return nil, fmt.Errorf("pigment %q: missing rgb", rawCode)
		}
		rgb, err := toRGB(pd.RGB)
		if err != nil {
			return nil, fmt.Errorf("pigment %q: %w", rawCode, err)
		}

		hex := utils.FormatHex(rgb)
		if pd.Hex != "" && !strings.EqualFold(pd.Hex, hex) {
			logger.Warn("Catalog: stored hex disagrees with rgb, using rgb",
				zap.String("brand", brand), zap.String("code", code),
				zap.String("storedHex", pd.Hex), zap.String("hex", hex))
		}

		table[code] = models.PigmentEntry{Brand: brand, Code: code, RGB: rgb, Hex: hex}
	}
	return table, nil
}

func toRGB(v []int) (models.RGB, error) {
	if len(v) != 3 {
		return models.RGB{}, fmt.Errorf("rgb must have 3 channels, got %d", len(v))
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return models.RGB{}, fmt.Errorf("rgb channel %d out of range 0..255", c)
		}
	}
	return models.RGB{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}, nil
}

func parsePresets(raw json.RawMessage) ([]models.PresetColor, error) {
	var names map[string]string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	order, err := objectKeys(raw)
	if err != nil {
		return nil, err
	}
	presets := make([]models.PresetColor, 0, len(order))
	for _, hex := range order {
		normalized, err := utils.NormalizeHex(hex)
		if err != nil {
			return nil, err
		}
		presets = append(presets, models.PresetColor{Hex: normalized, Name: names[hex]})
	}
	return presets, nil
}

func parseRecipes(cat *Catalog, raw json.RawMessage) error {
	var docs map[string]recipeDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return err
	}
	order, err := objectKeys(raw)
	if err != nil {
		return err
	}
	for _, key := range order {
		doc := docs[key]
		recipe := models.RecipeTemplate{
			Key:         key,
			Name:        doc.Name,
			Ingredients: make([]models.RecipeIngredient, 0, len(doc.Ingredients)),
		}
		if recipe.Name == "" {
			recipe.Name = key
		}
		if doc.Hex != "" {
			hex, err := utils.NormalizeHex(doc.Hex)
			if err != nil {
				return fmt.Errorf("recipe %q: %w", key, err)
			}
			recipe.Hex = hex
		}
		for i, ing := range doc.Ingredients {
			if !(ing.Ratio > 0) {
				return fmt.Errorf("recipe %q ingredient %d: ratio must be > 0, got %v", key, i, ing.Ratio)
			}
			code := NormalizeCode(ing.Code)
			if code == "" {
				return fmt.Errorf("recipe %q ingredient %d: empty code", key, i)
			}
			recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
				Brand: strings.TrimSpace(ing.Brand),
				Code:  code,
				Ratio: ing.Ratio,
			})
		}
		cat.recipes[key] = recipe
		cat.recipeOrder = append(cat.recipeOrder, key)
	}
	return nil
}

// priorityOrder lists configured priority brands first, then the rest in document order
func priorityOrder(docBrands, priority []string, known map[string]string) []string {
	out := make([]string, 0, len(docBrands))
	seen := make(map[string]bool, len(docBrands))
	for _, p := range priority {
		bk := brandKey(p)
		name, ok := known[bk]
		if !ok || seen[bk] {
			continue
		}
		seen[bk] = true
		out = append(out, name)
	}
	for _, b := range docBrands {
		if !seen[brandKey(b)] {
			out = append(out, b)
		}
	}
	return out
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
