package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"haircolor-mixer/catalog"
	"haircolor-mixer/logger"
	"haircolor-mixer/service"
)

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ writeJSON: Error encoding response", zap.Error(err))
	}
}

// statusFor maps service and catalog errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrCatalogNotReady), errors.Is(err, catalog.ErrCatalogLoad):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrFormulaNotFound), errors.Is(err, service.ErrUnknownRecipe):
		return http.StatusNotFound
	case errors.Is(err, service.ErrLastRow):
		return http.StatusConflict
	case errors.Is(err, service.ErrRowIndex),
		errors.Is(err, service.ErrInvalidHex),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrEmptyRecipeRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStaleRecipeRequest):
		return http.StatusConflict
	case errors.Is(err, service.ErrRecipeRequestFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs the failure of op and writes the mapped status with the error text
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("❌ "+op+": request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Warn("⚠️  "+op+": request rejected", zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

// allowMethod writes 405 and returns false unless r uses method
func allowMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method == method {
		return true
	}
	logger.Warn("❌ "+op+": Method not allowed", zap.String("method", r.Method))
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}
