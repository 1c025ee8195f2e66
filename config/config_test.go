package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
	assert.Equal(t, 120*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, "v1", cfg.GeminiAPIVersion)
	assert.Equal(t, "gemini-2.5-flash", cfg.VisionModel())
	assert.Equal(t, "gemini-2.5-pro", cfg.CodeModel())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("AI_PROVIDER", " OpenRouter ")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENROUTER_VISION_MODEL_ID", "openai/gpt-4o")
	t.Setenv("GATEWAY_TIMEOUT", "45s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenRouter, cfg.AIProvider)
	assert.Equal(t, "or-key", cfg.OpenRouterAPIKey)
	assert.Equal(t, "openai/gpt-4o", cfg.VisionModel())
	assert.Equal(t, "google/gemini-2.5-pro", cfg.CodeModel())
	assert.Equal(t, 45*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(25), cfg.MaxUploadMB)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`SERVER_ADDRESS: ":9090"
GEMINI_API_KEY: "file-key"
CODE_MODEL_ID: "gemini-custom"
ALLOWED_ORIGINS:
  - "http://one.test"
  - "http://two.test"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddress, "environment overrides the file")
	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-custom", cfg.CodeModel())
	assert.Equal(t, []string{"http://one.test", "http://two.test"}, cfg.AllowedOrigins)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"AI_PROVIDER": "bard"}},
		{name: "negative timeout", env: map[string]string{"GATEWAY_TIMEOUT": "-1s"}},
		{name: "zero upload limit", env: map[string]string{"MAX_UPLOAD_MB": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("SERVER_ADDRESS: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestConfig_Warnings(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "gemini without key",
			cfg:  Config{AIProvider: ProviderGemini},
			want: []string{"GEMINI_API_KEY is not set, model calls will fall back to demo output"},
		},
		{
			name: "openrouter without key",
			cfg:  Config{AIProvider: ProviderOpenRouter, GeminiAPIKey: "unused"},
			want: []string{"OPENROUTER_API_KEY is not set, model calls will fall back to demo output"},
		},
		{name: "gemini with key", cfg: Config{AIProvider: ProviderGemini, GeminiAPIKey: "k"}},
		{name: "openrouter with key", cfg: Config{AIProvider: ProviderOpenRouter, OpenRouterAPIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Warnings())
		})
	}
}

func TestLoadConfig_MissingKeyIsNotAnError(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, cfg.Warnings(), 1)
}
