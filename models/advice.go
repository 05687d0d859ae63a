package models

import "time"

// RecipeAdviceRequest represents the request body for POST /formulas/:id/advice
// Example: {"request": "soft ash beige for level 9 hair", "brand": "qualucia"}
type RecipeAdviceRequest struct {
	Request string `json:"request"`
	Brand   string `json:"brand,omitempty"` // Empty serialises every brand
}

// RecipeAdvice is the free-text recipe returned by the recipe generator
type RecipeAdvice struct {
	RequestID   string    `json:"requestId"`
	Sequence    uint64    `json:"sequence"`
	Provider    string    `json:"provider"`
	Request     string    `json:"request"`
	Text        string    `json:"text"`
	Formula     string    `json:"formula,omitempty"`     // Recommended mixing ratios
	Result      string    `json:"result,omitempty"`      // Expected finish
	Cautions    string    `json:"cautions,omitempty"`
	ImagePrompt string    `json:"imagePrompt,omitempty"` // Prompt for an image generator
	CreatedAt   time.Time `json:"createdAt"`
}

// OfflineManifest lists the assets retained for offline use
type OfflineManifest struct {
	CacheName string   `json:"cacheName"`
	Assets    []string `json:"assets"`
}
