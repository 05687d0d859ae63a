package controller

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/models"
)

// CatalogController handles HTTP requests for the pigment catalog
type CatalogController struct {
	catalogs *catalog.Holder
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogs *catalog.Holder) *CatalogController {
	return &CatalogController{catalogs: catalogs}
}

// StatusResponse reports whether the catalog is loaded
type StatusResponse struct {
	Ready   bool     `json:"ready"`
	Error   string   `json:"error,omitempty"`
	Brands  []string `json:"brands,omitempty"`
	Presets int      `json:"presets"`
	Recipes int      `json:"recipes"`
}

// Status handles GET /status
// Answers 200 when the catalog is ready and 503 while loading or after a failed load
func (c *CatalogController) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Status", http.MethodGet) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, StatusResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Ready:   true,
		Brands:  cat.Brands(),
		Presets: len(cat.Presets()),
		Recipes: len(cat.Recipes()),
	})
}

// Brands handles GET /catalog/brands and GET /catalog/brands/{brand}/pigments
func (c *CatalogController) Brands(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListBrands", http.MethodGet) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeError(w, "ListBrands", err)
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/catalog/brands"), "/")
	if path == "" {
		writeJSON(w, http.StatusOK, cat.BrandSummaries())
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[1] != "pigments" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	pigments := cat.Pigments(parts[0])
	if pigments == nil {
		logger.Warn("⚠️  ListPigments: unknown brand", zap.String("brand", parts[0]))
		http.Error(w, "unknown brand: "+parts[0], http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, pigments)
}

// Lookup handles GET /catalog/lookup?code=10GR&brand=qualucia
// Without brand the code is searched across brands in priority order
func (c *CatalogController) Lookup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Lookup", http.MethodGet) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeError(w, "Lookup", err)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	brand := strings.TrimSpace(r.URL.Query().Get("brand"))
	if code == "" {
		http.Error(w, "code parameter is required", http.StatusBadRequest)
		return
	}

	var (
		entry models.PigmentEntry
		found bool
	)
	if brand != "" {
		entry, found = cat.Lookup(brand, code)
	} else {
		entry, found = cat.LookupAcrossBrands(code)
	}
	if !found {
		http.Error(w, "pigment not found: "+code, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Presets handles GET /catalog/presets
func (c *CatalogController) Presets(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListPresets", http.MethodGet) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeError(w, "ListPresets", err)
		return
	}
	writeJSON(w, http.StatusOK, cat.Presets())
}

// Recipes handles GET /catalog/recipes
func (c *CatalogController) Recipes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListRecipes", http.MethodGet) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeError(w, "ListRecipes", err)
		return
	}
	writeJSON(w, http.StatusOK, cat.Recipes())
}
