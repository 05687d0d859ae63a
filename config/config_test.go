package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("HAIRCOLOR_AI_PROVIDER", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 2*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, []string{"qualucia", "blcolor"}, cfg.Catalog.RequiredBrands)
	assert.Equal(t, "priority", cfg.Blend.Resolve)
	assert.Equal(t, ProviderMock, cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "haircolor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  session_ttl: 30m
catalog:
  source: http
  url: https://example.com/color-database.json
  brand_priority: [blcolor]
blend:
  resolve: explicit
ai:
  timeout: 5s
`), 0644))

	t.Setenv("PORT", ":7000")
	t.Setenv("HAIRCOLOR_LOGGING_LEVEL", "debug")
	t.Setenv("CHROME_PATH", "/opt/chrome")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "7000", cfg.Server.Port, "PORT wins over the file and loses its colon")
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, SourceHTTP, cfg.Catalog.Source)
	assert.Equal(t, []string{"blcolor"}, cfg.Catalog.BrandPriority)
	assert.Equal(t, "explicit", string(cfg.ResolveMode()))
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/opt/chrome", cfg.Render.ChromePath)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "haircolor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Chdir(t.TempDir())
		cfg, err := Load(viper.New(), "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown source", func(c *Config) { c.Catalog.Source = "ftp" }},
		{"http without url", func(c *Config) { c.Catalog.Source = SourceHTTP }},
		{"drive without file id", func(c *Config) { c.Catalog.Source = SourceDrive }},
		{"drive without credentials", func(c *Config) {
			c.Catalog.Source = SourceDrive
			c.Catalog.DriveFileID = "abc"
			c.Google.CredentialsFile = ""
		}},
		{"unknown resolve", func(c *Config) { c.Blend.Resolve = "random" }},
		{"unknown provider", func(c *Config) { c.AI.Provider = "openai" }},
		{"gemini without key", func(c *Config) {
			c.AI.Provider = ProviderGemini
			c.AI.GeminiAPIKey = ""
		}},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"zero session ttl", func(c *Config) { c.Server.SessionTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
