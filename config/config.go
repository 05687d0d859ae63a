package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"haircolor-mixer/models"
)

// DefaultConfigFileName is searched in the working directory and /etc/haircolor/
const DefaultConfigFileName = "haircolor"

// Catalog source kinds
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceDrive    = "drive"
	SourcePostgres = "postgres"
)

// AI providers
const (
	ProviderMock   = "mock"
	ProviderGemini = "gemini"
)

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Blend    BlendConfig    `mapstructure:"blend"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	AI       AIConfig       `mapstructure:"ai"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Render   RenderConfig   `mapstructure:"render"`
}

type ServerConfig struct {
	Host       string        `mapstructure:"host"`
	Port       string        `mapstructure:"port"`
	BaseURL    string        `mapstructure:"base_url"` // Used by the headless browser to load card pages
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type CatalogConfig struct {
	Source         string   `mapstructure:"source"`
	Path           string   `mapstructure:"path"`
	URL            string   `mapstructure:"url"`
	DriveFileID    string   `mapstructure:"drive_file_id"`
	Name           string   `mapstructure:"name"` // Row key in color_catalogs
	RequiredBrands []string `mapstructure:"required_brands"`
	BrandPriority  []string `mapstructure:"brand_priority"`
}

type BlendConfig struct {
	Resolve      string `mapstructure:"resolve"`
	DefaultBrand string `mapstructure:"default_brand"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RenderConfig struct {
	ChromePath  string `mapstructure:"chrome_path"`
	TemplateDir string `mapstructure:"template_dir"`
}

// Addr returns host:port with any leading colon stripped from the port
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strings.TrimPrefix(s.Port, ":")
}

// ResolveMode returns the configured blend resolve mode
func (c *Config) ResolveMode() models.ResolveMode {
	return models.ResolveMode(c.Blend.Resolve)
}

// SetDefaults registers the default value of every key
// Every key needs a default for AutomaticEnv to reach it through Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.session_ttl", 2*time.Hour)

	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.path", "data/color-database.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.drive_file_id", "")
	v.SetDefault("catalog.name", "default")
	v.SetDefault("catalog.required_brands", []string{"qualucia", "blcolor"})
	v.SetDefault("catalog.brand_priority", []string{})

	v.SetDefault("blend.resolve", string(models.ResolvePriority))
	v.SetDefault("blend.default_brand", "qualucia")

	v.SetDefault("database.url", "")
	v.SetDefault("google.credentials_file", "")

	v.SetDefault("ai.provider", ProviderMock)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.template_dir", "templates")
}

// Load reads configuration with this priority:
// flags bound to v, HAIRCOLOR_* environment variables, the config file, defaults
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/haircolor/")
		v.SetConfigName(DefaultConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	v.SetEnvPrefix("HAIRCOLOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names used by hosting platforms and the Google SDK
	_ = v.BindEnv("server.port", "HAIRCOLOR_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.url", "HAIRCOLOR_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("google.credentials_file", "HAIRCOLOR_GOOGLE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("ai.gemini_api_key", "HAIRCOLOR_AI_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("render.chrome_path", "HAIRCOLOR_RENDER_CHROME_PATH", "CHROME_PATH")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	return &cfg, nil
}

// Validate rejects unknown enum values and missing source settings
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive")
	}

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the file source")
		}
	case SourceHTTP:
		if c.Catalog.URL == "" {
			return fmt.Errorf("catalog.url is required for the http source")
		}
	case SourceDrive:
		if c.Catalog.DriveFileID == "" {
			return fmt.Errorf("catalog.drive_file_id is required for the drive source")
		}
		if c.Google.CredentialsFile == "" {
			return fmt.Errorf("google.credentials_file (or GOOGLE_APPLICATION_CREDENTIALS) is required for the drive source")
		}
	case SourcePostgres:
		if c.Catalog.Name == "" {
			return fmt.Errorf("catalog.name is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q (file, http, drive, postgres)", c.Catalog.Source)
	}

	if !c.ResolveMode().Valid() {
		return fmt.Errorf("unknown blend.resolve %q (priority, explicit)", c.Blend.Resolve)
	}

	switch c.AI.Provider {
	case ProviderMock:
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("gemini API key is required (set ai.gemini_api_key, HAIRCOLOR_AI_GEMINI_API_KEY or GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown ai.provider %q (mock, gemini)", c.AI.Provider)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q (text, json)", c.Logging.Format)
	}
	return nil
}
