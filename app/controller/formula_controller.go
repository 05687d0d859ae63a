package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"haircolor-mixer/logger"
	"haircolor-mixer/models"
	"haircolor-mixer/service"
)

// FormulaController handles HTTP requests for formula sessions
type FormulaController struct {
	formulas *service.FormulaService
	advisor  *service.RecipeAdvisor
	cards    *service.CardService
	swatches *service.SwatchService
}

// NewFormulaController creates a new FormulaController
func NewFormulaController(formulas *service.FormulaService, advisor *service.RecipeAdvisor, cards *service.CardService, swatches *service.SwatchService) *FormulaController {
	return &FormulaController{
		formulas: formulas,
		advisor:  advisor,
		cards:    cards,
		swatches: swatches,
	}
}

// validCardFormats is a map of valid card format values
var validCardFormats = map[string]bool{
	"html": true,
	"pdf":  true,
	"png":  true,
}

// Create handles POST /formulas
// Example request body: {"state": {"mode": "recipe", "brand": "qualucia", "level": 9}}
// An empty body starts a session with the default state
func (c *FormulaController) Create(w http.ResponseWriter, r *http.Request) {
	logger.Info("📥 CreateFormula: Received request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	if !allowMethod(w, r, "CreateFormula", http.MethodPost) {
		return
	}

	var req models.CreateFormulaRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	view, err := c.formulas.Create(r.Context(), req.State)
	if err != nil {
		writeError(w, "CreateFormula", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Route dispatches /formulas/{id}/... to the handler of the sub-resource
func (c *FormulaController) Route(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/formulas/"), "/")
	parts := strings.Split(path, "/")
	id := parts[0]
	if id == "" {
		http.Error(w, "formula id is required", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			c.view(w, r, id)
		case http.MethodDelete:
			c.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case parts[1] == "rows" && len(parts) == 2:
		switch r.Method {
		case http.MethodPost:
			c.addRow(w, r, id)
		case http.MethodPut:
			c.setIngredients(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case parts[1] == "rows" && len(parts) == 3:
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			http.Error(w, "row index must be an integer", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPut:
			c.updateRow(w, r, id, index)
		case http.MethodDelete:
			c.removeRow(w, r, id, index)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case parts[1] == "clear" && len(parts) == 2:
		if allowMethod(w, r, "ClearFormula", http.MethodPost) {
			c.respond(w, "ClearFormula")(c.formulas.Clear(r.Context(), id))
		}
	case parts[1] == "state" && len(parts) == 2:
		if allowMethod(w, r, "SetState", http.MethodPut) {
			c.setState(w, r, id)
		}
	case parts[1] == "recipe" && len(parts) == 3:
		if allowMethod(w, r, "LoadRecipe", http.MethodPost) {
			c.respond(w, "LoadRecipe")(c.formulas.LoadRecipe(r.Context(), id, parts[2]))
		}
	case parts[1] == "preset" && len(parts) == 2:
		if allowMethod(w, r, "SelectPreset", http.MethodPost) {
			c.selectPreset(w, r, id)
		}
	case parts[1] == "card" && len(parts) == 2:
		if allowMethod(w, r, "FormulaCard", http.MethodGet) {
			c.card(w, r, id)
		}
	case parts[1] == "swatch.png" && len(parts) == 2:
		if allowMethod(w, r, "FormulaSwatch", http.MethodGet) {
			c.swatch(w, r, id)
		}
	case parts[1] == "advice" && len(parts) == 2:
		switch r.Method {
		case http.MethodPost:
			c.requestAdvice(w, r, id)
		case http.MethodGet:
			c.latestAdvice(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// respond writes a view or the mapped error
func (c *FormulaController) respond(w http.ResponseWriter, op string) func(*models.FormulaView, error) {
	return func(view *models.FormulaView, err error) {
		if err != nil {
			writeError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// GET /formulas/{id}
func (c *FormulaController) view(w http.ResponseWriter, r *http.Request, id string) {
	c.respond(w, "GetFormula")(c.formulas.View(r.Context(), id))
}

// DELETE /formulas/{id}
func (c *FormulaController) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.formulas.Delete(r.Context(), id); err != nil {
		writeError(w, "DeleteFormula", err)
		return
	}
	c.advisor.Forget(id)
	logger.Info("✅ DeleteFormula: session deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// POST /formulas/{id}/rows
func (c *FormulaController) addRow(w http.ResponseWriter, r *http.Request, id string) {
	c.respond(w, "AddRow")(c.formulas.AddRow(r.Context(), id))
}

// setIngredientsRequest represents the request body for PUT /formulas/{id}/rows
// Example: {"ingredients": [{"code": "3-7", "ratio": 70}, {"code": "3-8", "ratio": 30}]}
type setIngredientsRequest struct {
	Ingredients []models.Ingredient `json:"ingredients"`
}

// PUT /formulas/{id}/rows
func (c *FormulaController) setIngredients(w http.ResponseWriter, r *http.Request, id string) {
	var req setIngredientsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.respond(w, "SetIngredients")(c.formulas.SetIngredients(r.Context(), id, req.Ingredients))
}

// PUT /formulas/{id}/rows/{index}
func (c *FormulaController) updateRow(w http.ResponseWriter, r *http.Request, id string, index int) {
	var req models.UpdateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.respond(w, "UpdateRow")(c.formulas.UpdateRow(r.Context(), id, index, req))
}

// DELETE /formulas/{id}/rows/{index}
func (c *FormulaController) removeRow(w http.ResponseWriter, r *http.Request, id string, index int) {
	c.respond(w, "RemoveRow")(c.formulas.RemoveRow(r.Context(), id, index))
}

// PUT /formulas/{id}/state
// Example request body: {"mode": "hex", "hex": "#D4B0A8"}
func (c *FormulaController) setState(w http.ResponseWriter, r *http.Request, id string) {
	var state models.UIState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.respond(w, "SetState")(c.formulas.SetState(r.Context(), id, state))
}

// POST /formulas/{id}/preset
// Example request body: {"hex": "#B39C86"}
func (c *FormulaController) selectPreset(w http.ResponseWriter, r *http.Request, id string) {
	var req models.SelectPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	c.respond(w, "SelectPreset")(c.formulas.SelectPreset(r.Context(), id, req.Hex))
}

// GET /formulas/{id}/swatch.png?width=200
func (c *FormulaController) swatch(w http.ResponseWriter, r *http.Request, id string) {
	width, ok := parseWidth(w, r)
	if !ok {
		return
	}
	view, err := c.formulas.View(r.Context(), id)
	if err != nil {
		writeError(w, "FormulaSwatch", err)
		return
	}

	var png []byte
	if view.State.Mode == models.ModeHex {
		png, err = c.swatches.RenderHex(view.FinalHex, width)
	} else {
		png, err = c.swatches.RenderBlend(view.Blend, width)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writePNG(w, png, id+".png")
}

// GET /formulas/{id}/card?format=html|pdf|png&hairLength=long&total=120
// PDF and PNG are printed by a headless browser loading the HTML format of the same card
func (c *FormulaController) card(w http.ResponseWriter, r *http.Request, id string) {
	query := r.URL.Query()
	format := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if format == "" {
		format = "html"
	}
	if !validCardFormats[format] {
		logger.Warn("❌ FormulaCard: Invalid format", zap.String("format", format))
		http.Error(w, "Invalid format. Valid formats: html, pdf, png", http.StatusBadRequest)
		return
	}

	view, err := c.formulas.View(r.Context(), id)
	if err != nil {
		writeError(w, "FormulaCard", err)
		return
	}
	amount, err := amountFromQuery(query)
	if err != nil {
		writeError(w, "FormulaCard", err)
		return
	}

	switch format {
	case "html":
		advice, _ := c.advisor.Latest(id)
		html, err := c.cards.RenderCardHTML(service.BuildCardData(view, amount, advice))
		if err != nil {
			writeError(w, "FormulaCard", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))

	case "pdf":
		query.Del("format")
		pdf, err := c.cards.GeneratePDF(r.Context(), id, query.Encode())
		if err != nil {
			writeError(w, "FormulaCard", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "recipe-"+id+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)

	case "png":
		query.Del("format")
		png, err := c.cards.GeneratePNG(r.Context(), id, query.Encode())
		if err != nil {
			writeError(w, "FormulaCard", err)
			return
		}
		writePNG(w, png, "recipe-"+id+".png")
	}
}

// amountFromQuery builds the optional amount split of a card; nil when no amount parameter is present
func amountFromQuery(q url.Values) (*models.AmountResponse, error) {
	if q.Get("hairLength") == "" && q.Get("total") == "" {
		return nil, nil
	}
	req := models.AmountRequest{HairLength: q.Get("hairLength")}
	for key, dst := range map[string]*float64{"total": &req.Total, "rootPercent": &req.RootPercent, "endsPercent": &req.EndsPercent} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", service.ErrInvalidAmount, key)
		}
		*dst = v
	}
	return service.SplitAmount(req)
}

// POST /formulas/{id}/advice
// Example request body: {"request": "soft ash beige for level 9 hair", "brand": "qualucia"}
func (c *FormulaController) requestAdvice(w http.ResponseWriter, r *http.Request, id string) {
	var req models.RecipeAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if _, err := c.formulas.Get(r.Context(), id); err != nil {
		writeError(w, "RecipeAdvice", err)
		return
	}

	advice, err := c.advisor.Request(r.Context(), id, req)
	if err != nil {
		writeError(w, "RecipeAdvice", err)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// GET /formulas/{id}/advice
func (c *FormulaController) latestAdvice(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := c.formulas.Get(r.Context(), id); err != nil {
		writeError(w, "GetRecipeAdvice", err)
		return
	}
	advice, ok := c.advisor.Latest(id)
	if !ok {
		http.Error(w, "no recipe advice for this formula", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// decodeOptional decodes a JSON body, accepting an empty one
func decodeOptional(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
