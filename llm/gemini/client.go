// Package gemini is a minimal client for the Google Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"haircolor-mixer/logger"
)

// DefaultBaseURL is the public Gemini endpoint
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrEmptyResponse is returned when Gemini answers without any text
var ErrEmptyResponse = errors.New("gemini returned no text")

// Client calls generateContent for one model
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// Config holds configuration for the Gemini client.
type Config struct {
	// Required: Gemini API key
	APIKey string

	// Model to use (default: "gemini-2.5-flash")
	Model string

	// Optional configuration
	BaseURL     string        // Default: DefaultBaseURL
	MaxTokens   int           // Default: 2048
	Temperature float64       // Default: 0.7
	Timeout     time.Duration // Default: 60s
}

// NewClient creates a new Gemini client.
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 2048
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		apiKey:      config.APIKey,
		model:       config.Model,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "gemini"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends a single-turn prompt and returns the text of the first candidate
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := &GenerateContentRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: prompt}},
		}},
		GenerationConfig: &GenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	}

	resp, err := c.callAPI(ctx, req)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	fields := []zap.Field{zap.String("model", c.model), zap.Int("chars", len(text))}
	if resp.UsageMetadata != nil {
		fields = append(fields, zap.Int("totalTokens", resp.UsageMetadata.TotalTokenCount))
	}
	logger.Debug("Gemini: generateContent completed", fields...)
	return text, nil
}

// Text joins the text parts of the first candidate
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

// callAPI makes the HTTP request to the Gemini API.
func (c *Client) callAPI(ctx context.Context, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	// Format: {baseURL}/models/{model}:generateContent?key={apiKey}
	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp GenerateContentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("Gemini API error: %s (code: %d)", resp.Error.Message, resp.Error.Code)
	}

	return &resp, nil
}
