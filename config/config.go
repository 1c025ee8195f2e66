package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string   `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	AppEnv         string   `mapstructure:"APP_ENV"`         // "production" switches gin and logs to release/JSON
	LogLevel       string   `mapstructure:"LOG_LEVEL"`       // debug, info, warn, error
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"` // CORS origins of the web client
	MaxUploadMB    int64    `mapstructure:"MAX_UPLOAD_MB"`   // multipart memory limit

	// Model Gateway Configuration
	AIProvider     string        `mapstructure:"AI_PROVIDER"`     // "gemini" or "openrouter"
	GatewayTimeout time.Duration `mapstructure:"GATEWAY_TIMEOUT"` // e.g., "120s"

	// Gemini
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiEndpoint   string `mapstructure:"GEMINI_ENDPOINT"`    // e.g., "https://generativelanguage.googleapis.com"
	GeminiAPIVersion string `mapstructure:"GEMINI_API_VERSION"` // e.g., "v1"
	VisionModelID    string `mapstructure:"VISION_MODEL_ID"`    // image + text analysis
	CodeModelID      string `mapstructure:"CODE_MODEL_ID"`      // text-only code generation

	// OpenRouter (OpenAI-compatible)
	OpenRouterAPIKey        string `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL       string `mapstructure:"OPENROUTER_BASE_URL"`
	OpenRouterVisionModelID string `mapstructure:"OPENROUTER_VISION_MODEL_ID"`
	OpenRouterCodeModelID   string `mapstructure:"OPENROUTER_CODE_MODEL_ID"`
	OpenRouterReferer       string `mapstructure:"OPENROUTER_REFERER"`
	OpenRouterTitle         string `mapstructure:"OPENROUTER_TITLE"`

	// ConfigFile is the config file that was read, empty when only the environment was used.
	ConfigFile string `mapstructure:"-"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":             ":8080",
	"APP_ENV":                    "development",
	"LOG_LEVEL":                  "info",
	"ALLOWED_ORIGINS":            "http://localhost:3000",
	"MAX_UPLOAD_MB":              10,
	"AI_PROVIDER":                ProviderGemini,
	"GATEWAY_TIMEOUT":            "120s",
	"GEMINI_API_KEY":             "",
	"GEMINI_ENDPOINT":            "https://generativelanguage.googleapis.com",
	"GEMINI_API_VERSION":         "v1",
	"VISION_MODEL_ID":            "gemini-2.5-flash",
	"CODE_MODEL_ID":              "gemini-2.5-pro",
	"OPENROUTER_API_KEY":         "",
	"OPENROUTER_BASE_URL":        "https://openrouter.ai/api/v1",
	"OPENROUTER_VISION_MODEL_ID": "google/gemini-2.5-flash",
	"OPENROUTER_CODE_MODEL_ID":   "google/gemini-2.5-pro",
	"OPENROUTER_REFERER":         "http://localhost:3001",
	"OPENROUTER_TITLE":           "Image-to-Code Pipeline",
}

// LoadConfig reads configuration from config.yaml in path (optional) and environment variables.
// Every key has a default so AutomaticEnv can resolve it.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv() // Read environment variables that match keys

	fileFound := true
	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		fileFound = false
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.AIProvider = strings.ToLower(strings.TrimSpace(config.AIProvider))
	config.AllowedOrigins = splitOrigins(config.AllowedOrigins)
	if fileFound {
		config.ConfigFile = v.ConfigFileUsed()
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate rejects settings the server cannot start with. A missing API key is not an error,
// see Warnings.
func (c Config) Validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q (want %q or %q)", c.AIProvider, ProviderGemini, ProviderOpenRouter)
	}
	if c.GatewayTimeout < 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must not be negative, got %s", c.GatewayTimeout)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// Warnings lists settings the server can start with but that degrade it. A missing API key makes
// every model call fail, so the service answers with demo output.
func (c Config) Warnings() []string {
	var warnings []string
	switch {
	case c.AIProvider == ProviderGemini && c.GeminiAPIKey == "":
		warnings = append(warnings, "GEMINI_API_KEY is not set, model calls will fall back to demo output")
	case c.AIProvider == ProviderOpenRouter && c.OpenRouterAPIKey == "":
		warnings = append(warnings, "OPENROUTER_API_KEY is not set, model calls will fall back to demo output")
	}
	return warnings
}

// IsProduction reports whether APP_ENV selects production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// VisionModel returns the vision model id of the selected provider.
func (c Config) VisionModel() string {
	if c.AIProvider == ProviderOpenRouter {
		return c.OpenRouterVisionModelID
	}
	return c.VisionModelID
}

// CodeModel returns the code model id of the selected provider.
func (c Config) CodeModel() string {
	if c.AIProvider == ProviderOpenRouter {
		return c.OpenRouterCodeModelID
	}
	return c.CodeModelID
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(values []string) []string {
	var origins []string
	for _, value := range values {
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}
