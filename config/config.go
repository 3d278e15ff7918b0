package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/autoparts-storefront/internal/currency"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

const (
	DefaultAdminEmail       = "admin@vandrid.com"
	DefaultPlaceholderImage = "https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?auto=format&fit=crop&w=600&q=80"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	HTTPAddr string `mapstructure:"http_addr"`

	// TelegramToken bo'sh bo'lsa bot ishga tushmaydi
	TelegramToken string `mapstructure:"telegram_bot_token"`

	// GeminiAPIKey bo'sh bo'lsa advisor o'chiq
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	GeminiModel    string `mapstructure:"gemini_model"`
	MaxContextSize int    `mapstructure:"max_context_size"`

	// AdminEmail grants the admin role on login. Demo behaviour, there is no
	// credential check; leave empty to disable admin logins.
	AdminEmail string `mapstructure:"admin_email"`

	DefaultCurrency     string            `mapstructure:"default_currency"`
	Currencies          []entity.Currency `mapstructure:"currencies"`
	TaxRate             float64           `mapstructure:"tax_rate"`
	PlaceholderImageURL string            `mapstructure:"placeholder_image_url"`
	SeedFile            string            `mapstructure:"seed_file"`

	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	// MaxSessions caps in-memory sessions; 0 disables the cap
	MaxSessions int `mapstructure:"max_sessions"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("max_context_size", 20)
	v.SetDefault("admin_email", DefaultAdminEmail)
	v.SetDefault("default_currency", string(entity.GHS))
	v.SetDefault("currencies", currency.DefaultTable())
	v.SetDefault("tax_rate", entity.DefaultTaxRate)
	v.SetDefault("placeholder_image_url", DefaultPlaceholderImage)
	v.SetDefault("seed_file", "")
	v.SetDefault("rate_limit_rps", 20.0)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("max_sessions", 10000)
}

// Load konfiguratsiyani yuklash: .env (mavjud bo'lsa), CONFIG_FILE (mavjud
// bo'lsa), keyin environment. Environment wins over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (c *Config) normalize() {
	c.DefaultCurrency = strings.ToUpper(strings.TrimSpace(c.DefaultCurrency))
	c.AdminEmail = strings.TrimSpace(c.AdminEmail)

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORSOrigins = origins
}

// Validate konfiguratsiyani tekshirish
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is empty")
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("TAX_RATE must be in [0, 1), got %v", c.TaxRate)
	}
	if c.MaxContextSize <= 0 {
		return fmt.Errorf("MAX_CONTEXT_SIZE must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("MAX_SESSIONS must not be negative")
	}

	formatter, err := currency.New(c.Currencies)
	if err != nil {
		return err
	}
	if _, err := formatter.Lookup(entity.CurrencyCode(c.DefaultCurrency)); err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY: %w", err)
	}
	return nil
}

// IsProduction production muhitimi
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
