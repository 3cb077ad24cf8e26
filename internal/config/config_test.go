package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	t.Run("Valid config file", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "config.yaml")
		data := `
port: 9090
api:
  baseURL: https://api.example.com
pricing:
  baseAmount: 29.99
  currency: gbp
`
		require.NoError(t, os.WriteFile(configPath, []byte(data), 0644))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
		assert.Equal(t, 29.99, cfg.Pricing.BaseAmount)
		assert.Equal(t, "gbp", cfg.Pricing.Currency)
	})

	t.Run("Defaults", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "empty.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(""), 0644))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 8081, cfg.Port)
		assert.Equal(t, "https://serverapis.vercel.app", cfg.API.BaseURL)
		assert.Equal(t, 20.00, cfg.Pricing.BaseAmount)
		assert.Equal(t, "usd", cfg.Pricing.Currency)
		assert.Equal(t, "templates/portal", cfg.TemplateDir)
	})

	t.Run("Environment override", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "env.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("port: 8081"), 0644))

		os.Setenv("PAYMENT_API_URL", "https://staging.example.com")
		defer os.Unsetenv("PAYMENT_API_URL")

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "https://staging.example.com", cfg.API.BaseURL)
	})

	t.Run("Invalid config file", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("port: [not a number"), 0644))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}
