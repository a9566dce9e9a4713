package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Classifier ClassifierConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Logging    LoggingConfig
	Admin      AdminConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog configuration
type CatalogConfig struct {
	DSN      string `mapstructure:"dsn"`       // sqlite path or ":memory:"
	SeedFile string `mapstructure:"seed_file"` // YAML menu loaded into an empty catalog
	AutoSeed bool   `mapstructure:"auto_seed"`
}

// ClassifierConfig holds intent classifier configuration
type ClassifierConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	ModelPath string `mapstructure:"model_path"` // relative paths resolve against the binary's directory
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"` // catalog snapshot lifetime
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// AdminConfig holds admin API configuration
type AdminConfig struct {
	Key string `mapstructure:"key"` // sent as X-Admin-Key; empty disables the admin API
}

// Load loads configuration from environment variables and config files.
// configFile, when set, replaces the default search paths.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/cafeassist/")
	}

	// Environment variable settings
	v.SetEnvPrefix("CAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.dsn", "cafe.db")
	v.SetDefault("catalog.seed_file", "data/menu.yaml")
	v.SetDefault("catalog.auto_seed", true)

	// Classifier defaults
	v.SetDefault("classifier.enabled", true)
	v.SetDefault("classifier.model_path", "models/intent_model.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "1m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.burst", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Admin defaults
	v.SetDefault("admin.key", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set CAFE_SERVER_PORT)")
	}

	if config.Catalog.DSN == "" {
		return fmt.Errorf("catalog DSN is required (set CAFE_CATALOG_DSN)")
	}

	if config.Classifier.Enabled && config.Classifier.ModelPath == "" {
		return fmt.Errorf("classifier model path is required when the classifier is enabled")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if config.RateLimit.PerIP > 0 && config.RateLimit.Burst == 0 {
		return fmt.Errorf("rate limit burst must be positive when per_ip is set")
	}

	if _, err := log.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Logging.Format)
	}

	return nil
}

// ConfigureLogging applies the logging section to the global logger
func ConfigureLogging(cfg LoggingConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
