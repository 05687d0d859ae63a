package router

import (
	"net/http"

	"haircolor-mixer/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Blend   *controller.BlendController
	Formula *controller.FormulaController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Catalog readiness
	mux.HandleFunc("/status", controllers.Catalog.Status)

	// Catalog routes
	mux.HandleFunc("/catalog/brands", controllers.Catalog.Brands)
	// GET /catalog/brands/{brand}/pigments
	mux.HandleFunc("/catalog/brands/", controllers.Catalog.Brands)
	mux.HandleFunc("/catalog/lookup", controllers.Catalog.Lookup)
	mux.HandleFunc("/catalog/presets", controllers.Catalog.Presets)
	mux.HandleFunc("/catalog/recipes", controllers.Catalog.Recipes)

	// Stateless blend routes
	mux.HandleFunc("/blend", controllers.Blend.Blend)
	mux.HandleFunc("/blend/swatch.png", controllers.Blend.Swatch)
	mux.HandleFunc("/amounts/split", controllers.Blend.SplitAmount)
	mux.HandleFunc("/offline/manifest", controllers.Blend.OfflineManifest)

	// Formula sessions
	mux.HandleFunc("/formulas", controllers.Formula.Create)
	// Rows, state, recipe, preset, card, swatch and advice of one session
	mux.HandleFunc("/formulas/", controllers.Formula.Route)
}
