package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "GHS", cfg.DefaultCurrency)
	assert.Equal(t, entity.DefaultTaxRate, cfg.TaxRate)
	assert.Equal(t, DefaultAdminEmail, cfg.AdminEmail)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10000, cfg.MaxSessions)
	require.Len(t, cfg.Currencies, 2)
	assert.Equal(t, entity.GHS, cfg.Currencies[1].Code)
	assert.Equal(t, 15.5, cfg.Currencies[1].Rate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DEFAULT_CURRENCY", "usd")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("ADMIN_EMAIL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 0.1, cfg.TaxRate)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.AdminEmail)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	data := `
http_addr: ":7070"
default_currency: EUR
currencies:
  - {code: USD, symbol: "$", rate: 1, label: "USD ($)"}
  - {code: EUR, symbol: "€", rate: 0.92, label: "EUR (€)"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	require.Len(t, cfg.Currencies, 2)
	assert.Equal(t, 0.92, cfg.Currencies[1].Rate)
}

func TestValidate(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("unknown default currency", func(t *testing.T) {
		t.Setenv("DEFAULT_CURRENCY", "JPY")
		_, err := Load()
		assert.ErrorIs(t, err, entity.ErrUnsupportedCurrency)
	})

	t.Run("tax rate out of range", func(t *testing.T) {
		t.Setenv("TAX_RATE", "1.5")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative session cap", func(t *testing.T) {
		t.Setenv("MAX_SESSIONS", "-1")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})
}
