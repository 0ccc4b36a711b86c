package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Providers ProvidersConfig
	RateLimit RateLimitConfig
	Vision    VisionConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatasetConfig points at the local food-composition table.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// ProvidersConfig holds credentials and endpoints for the external
// nutrition data sources. Any provider with missing credentials silently
// declines lookups; none of the keys are required at startup.
type ProvidersConfig struct {
	USDA      USDAConfig      `mapstructure:"usda"`
	Edamam    EdamamConfig    `mapstructure:"edamam"`
	APINinjas APINinjasConfig `mapstructure:"apininjas"`
}

// USDAConfig holds USDA FoodData Central API configuration
type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// EdamamConfig holds Edamam nutrition-data API configuration
type EdamamConfig struct {
	AppID   string `mapstructure:"app_id"`
	AppKey  string `mapstructure:"app_key"`
	BaseURL string `mapstructure:"base_url"`
}

// APINinjasConfig holds API Ninjas nutrition API configuration
type APINinjasConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// RateLimitConfig holds per-client-IP rate limiting configuration
type RateLimitConfig struct {
	PerIPRPS float64 `mapstructure:"per_ip_rps"`
	Burst    int     `mapstructure:"burst"`
}

// VisionConfig holds image-recognition configuration
type VisionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/foodgapp/")

	v.SetEnvPrefix("FOODGAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("dataset.path", "fel_data.csv")

	// Credentials default to empty so the env bindings exist; a provider
	// without credentials declines lookups at runtime.
	v.SetDefault("providers.usda.api_key", "")
	v.SetDefault("providers.usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("providers.edamam.app_id", "")
	v.SetDefault("providers.edamam.app_key", "")
	v.SetDefault("providers.edamam.base_url", "https://api.edamam.com/api/nutrition-data")
	v.SetDefault("providers.apininjas.api_key", "")
	v.SetDefault("providers.apininjas.base_url", "https://api.api-ninjas.com/v1/nutrition")

	v.SetDefault("ratelimit.per_ip_rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("vision.enabled", false)
	v.SetDefault("vision.region", "us-east-1")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if config.Dataset.Path == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	if config.RateLimit.PerIPRPS <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit values must be positive, got rps=%v burst=%d",
			config.RateLimit.PerIPRPS, config.RateLimit.Burst)
	}
	return nil
}
