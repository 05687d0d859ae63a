package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"haircolor-mixer/blend"
	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/service"
)

// BlendController handles stateless blend, swatch and amount requests
type BlendController struct {
	catalogs       *catalog.Holder
	swatches       *service.SwatchService
	defaultBrand   string
	defaultResolve models.ResolveMode
}

// NewBlendController creates a new BlendController
func NewBlendController(catalogs *catalog.Holder, swatches *service.SwatchService, defaultBrand string, defaultResolve models.ResolveMode) *BlendController {
	return &BlendController{
		catalogs:       catalogs,
		swatches:       swatches,
		defaultBrand:   defaultBrand,
		defaultResolve: defaultResolve,
	}
}

// Blend handles POST /blend
// Example request body:
// {"ingredients": [{"code": "10GR", "ratio": 60}, {"code": "9SB", "ratio": 40}], "state": {"level": 9}}
func (c *BlendController) Blend(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Blend", http.MethodPost) {
		return
	}
	cat, err := c.catalogs.Get()
	if err != nil {
		writeError(w, "Blend", err)
		return
	}

	var req models.BlendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("❌ Blend: Failed to decode request body", zap.Error(err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	state := req.State.WithDefaults(c.defaultBrand, c.defaultResolve)
	if !state.Resolve.Valid() {
		http.Error(w, fmt.Sprintf("unknown resolve mode %q", state.Resolve), http.StatusBadRequest)
		return
	}

	result := blend.ComputeForState(cat, req.Ingredients, state)
	logger.Debug("Blend: computed", zap.String("hex", result.Hex), zap.Int("valid", result.ValidIngredientCount))
	writeJSON(w, http.StatusOK, result)
}

// Swatch handles GET /blend/swatch.png?hex=%23b39c86&width=200
func (c *BlendController) Swatch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Swatch", http.MethodGet) {
		return
	}
	hex := strings.TrimSpace(r.URL.Query().Get("hex"))
	if hex == "" {
		http.Error(w, "hex parameter is required", http.StatusBadRequest)
		return
	}
	width, ok := parseWidth(w, r)
	if !ok {
		return
	}

	png, err := c.swatches.RenderHex(hex, width)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writePNG(w, png, "swatch.png")
}

// SplitAmount handles POST /amounts/split
// Example request body: {"hairLength": "long", "rootPercent": 60, "endsPercent": 40}
func (c *BlendController) SplitAmount(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "SplitAmount", http.MethodPost) {
		return
	}
	var req models.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	resp, err := service.SplitAmount(req)
	if err != nil {
		writeError(w, "SplitAmount", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// OfflineManifest handles GET /offline/manifest
func (c *BlendController) OfflineManifest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "OfflineManifest", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, service.OfflineManifest())
}

// parseWidth reads the optional width query parameter; 0 means the default size
func parseWidth(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("width"))
	if raw == "" {
		return 0, true
	}
	width, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "width must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return width, true
}

func writePNG(w http.ResponseWriter, png []byte, filename string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logger.Error("❌ writePNG: Error writing response", zap.Error(err))
	}
}
