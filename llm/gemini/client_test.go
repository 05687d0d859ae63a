package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "with defaults",
			config: Config{APIKey: "test-key"},
			want:   "gemini-2.5-flash",
		},
		{
			name:   "with custom model",
			config: Config{APIKey: "test-key", Model: "gemini-2.5-pro"},
			want:   "gemini-2.5-pro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.config)
			assert.NotNil(t, client)
			assert.Equal(t, "gemini", client.Name())
			assert.Equal(t, tt.want, client.Model())
		})
	}
}

func TestClient_Generate(t *testing.T) {
	var got GenerateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GenerateContentResponse{
			Candidates: []Candidate{{
				Content: Content{Role: "model", Parts: []Part{{Text: "Formula: "}, {Text: "10GR 60%"}}},
			}},
			UsageMetadata: &UsageMetadata{TotalTokenCount: 42},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Model: "gemini-test", BaseURL: server.URL + "/"})
	text, err := client.Generate(context.Background(), "make it ash")
	require.NoError(t, err)
	assert.Equal(t, "Formula: 10GR 60%", text)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "make it ash", got.Contents[0].Parts[0].Text)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, 2048, got.GenerationConfig.MaxOutputTokens)
}

func TestClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "http status",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": 429, "message": "quota"}}`,
			wantErr: "API error (status 429)",
		},
		{
			name:    "error in body",
			status:  http.StatusOK,
			body:    `{"error": {"code": 400, "message": "bad prompt"}}`,
			wantErr: "bad prompt",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates": []}`,
			wantErr: ErrEmptyResponse.Error(),
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"candidates": `,
			wantErr: "failed to unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
			_, err := client.Generate(context.Background(), "prompt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_GenerateCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
