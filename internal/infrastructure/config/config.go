// Package config provides centralized configuration management
// using Viper for configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog providers.
const (
	CatalogProviderMemory  = "memory"
	CatalogProviderShopify = "shopify"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Shopify  ShopifyConfig  `mapstructure:"shopify"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Social   SocialConfig   `mapstructure:"social"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Features FeatureFlags   `mapstructure:"features"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
}

// AIConfig contains vision model configuration.
type AIConfig struct {
	GeminiKey      string        `mapstructure:"gemini_key"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	EnableCache    bool          `mapstructure:"enable_cache"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// ShopifyConfig contains Shopify store configuration.
type ShopifyConfig struct {
	StoreURL        string `mapstructure:"store_url"`
	StorefrontToken string `mapstructure:"storefront_token"`
	AdminToken      string `mapstructure:"admin_token"`
	APIVersion      string `mapstructure:"api_version"`
}

// CatalogConfig selects the product catalog backing.
type CatalogConfig struct {
	Provider     string `mapstructure:"provider"`
	BaseURL      string `mapstructure:"base_url"`
	SearchLimit  int    `mapstructure:"search_limit"`
	MaxTermCount int    `mapstructure:"max_term_count"`
}

// RedisConfig contains Redis cache configuration. Redis is optional; when
// Host is empty the in-memory cache is used.
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SocialConfig contains the social style-hint source configuration.
type SocialConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// UploadConfig bounds image uploads.
type UploadConfig struct {
	MaxImageBytes int64    `mapstructure:"max_image_bytes"`
	AllowedTypes  []string `mapstructure:"allowed_types"`
}

// FeatureFlags contains feature toggles. Missing credentials flip the
// corresponding feature off instead of failing startup.
type FeatureFlags struct {
	EnableVision  bool `mapstructure:"enable_vision"`
	EnableShopify bool `mapstructure:"enable_shopify"`
	EnableSocial  bool `mapstructure:"enable_social"`
	EnableMetrics bool `mapstructure:"enable_metrics"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/stylelens")
	}

	v.SetEnvPrefix("STYLELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Defaults cover a missing config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "StyleLens")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", true)

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.enable_cache", true)
	v.SetDefault("ai.cache_ttl", "1h")

	v.SetDefault("shopify.api_version", "2023-10")

	v.SetDefault("catalog.provider", CatalogProviderMemory)
	v.SetDefault("catalog.base_url", "https://demo-store.myshopify.com")
	v.SetDefault("catalog.search_limit", 3)
	v.SetDefault("catalog.max_term_count", 3)

	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetDefault("social.enabled", true)

	v.SetDefault("upload.max_image_bytes", 10<<20) // 10MB
	v.SetDefault("upload.allowed_types", []string{"image/jpeg", "image/png"})

	v.SetDefault("features.enable_vision", true)
	v.SetDefault("features.enable_shopify", false)
	v.SetDefault("features.enable_social", true)
	v.SetDefault("features.enable_metrics", true)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Catalog.Provider {
	case CatalogProviderMemory, CatalogProviderShopify:
	default:
		return fmt.Errorf("catalog.provider must be %q or %q", CatalogProviderMemory, CatalogProviderShopify)
	}

	if c.Catalog.SearchLimit < 1 {
		return fmt.Errorf("catalog.search_limit must be positive")
	}

	return nil
}

// VisionConfigured reports whether the vision model can be called.
func (c *Config) VisionConfigured() bool {
	return c.Features.EnableVision && c.AI.GeminiKey != ""
}

// ShopifyConfigured reports whether the remote catalog can be used.
func (c *Config) ShopifyConfigured() bool {
	return c.Shopify.StoreURL != "" && c.Shopify.StorefrontToken != ""
}

// IsProduction returns true if running in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// NormalizedStoreDomain strips any scheme and trailing slash from the
// configured store URL, leaving the bare myshopify domain.
func (c *Config) NormalizedStoreDomain() string {
	domain := strings.TrimSpace(c.Shopify.StoreURL)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}
