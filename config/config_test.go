package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "5000" {
			t.Errorf("Server.Port = %s, want 5000", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.DSN != "cafe.db" {
			t.Errorf("Catalog.DSN = %s, want cafe.db", cfg.Catalog.DSN)
		}
		if !cfg.Catalog.AutoSeed {
			t.Errorf("Catalog.AutoSeed = false, want true")
		}
		if !cfg.Classifier.Enabled {
			t.Errorf("Classifier.Enabled = false, want true")
		}
		if cfg.Classifier.ModelPath != "models/intent_model.json" {
			t.Errorf("Classifier.ModelPath = %s, want models/intent_model.json", cfg.Classifier.ModelPath)
		}
		if cfg.Cache.TTL != time.Minute {
			t.Errorf("Cache.TTL = %v, want 1m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 60 {
			t.Errorf("RateLimit.PerIP = %d, want 60", cfg.RateLimit.PerIP)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
		if cfg.Admin.Key != "" {
			t.Errorf("Admin.Key = %s, want empty (admin API disabled)", cfg.Admin.Key)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("CAFE_SERVER_PORT", "9090")
		t.Setenv("CAFE_SERVER_ENVIRONMENT", "production")
		t.Setenv("CAFE_CATALOG_DSN", ":memory:")
		t.Setenv("CAFE_CATALOG_AUTO_SEED", "false")
		t.Setenv("CAFE_CLASSIFIER_ENABLED", "false")
		t.Setenv("CAFE_CACHE_TTL", "30s")
		t.Setenv("CAFE_RATELIMIT_PER_IP", "200")
		t.Setenv("CAFE_RATELIMIT_BURST", "20")
		t.Setenv("CAFE_LOGGING_LEVEL", "debug")
		t.Setenv("CAFE_LOGGING_FORMAT", "json")
		t.Setenv("CAFE_ADMIN_KEY", "s3cret")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.DSN != ":memory:" {
			t.Errorf("Catalog.DSN = %s, want :memory:", cfg.Catalog.DSN)
		}
		if cfg.Catalog.AutoSeed {
			t.Errorf("Catalog.AutoSeed = true, want false")
		}
		if cfg.Classifier.Enabled {
			t.Errorf("Classifier.Enabled = true, want false")
		}
		if cfg.Cache.TTL != 30*time.Second {
			t.Errorf("Cache.TTL = %v, want 30s", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 || cfg.RateLimit.Burst != 20 {
			t.Errorf("RateLimit = %+v, want 200/20", cfg.RateLimit)
		}
		if cfg.Logging.Format != "json" {
			t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
		}
		if cfg.Admin.Key != "s3cret" {
			t.Errorf("Admin.Key = %s, want s3cret", cfg.Admin.Key)
		}
	})

	t.Run("reads an explicit config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cafe.yaml")
		content := "server:\n  port: \"7070\"\n  allowed_origins:\n    - http://cafe.local\ncatalog:\n  dsn: /var/lib/cafe/cafe.db\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://cafe.local" {
			t.Errorf("Server.AllowedOrigins = %v, want [http://cafe.local]", cfg.Server.AllowedOrigins)
		}
		if cfg.Catalog.DSN != "/var/lib/cafe/cafe.db" {
			t.Errorf("Catalog.DSN = %s, want /var/lib/cafe/cafe.db", cfg.Catalog.DSN)
		}
	})

	t.Run("fails when explicit config file is missing", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Load() error = nil, want error for missing file")
		}
	})

	t.Run("fails validation for invalid log format", func(t *testing.T) {
		t.Setenv("CAFE_LOGGING_FORMAT", "xml")

		if _, err := Load(""); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: "5000"},
			Catalog:    CatalogConfig{DSN: "cafe.db"},
			Classifier: ClassifierConfig{Enabled: true, ModelPath: "models/intent_model.json"},
			RateLimit:  RateLimitConfig{PerIP: 60, Burst: 10},
			Logging:    LoggingConfig{Level: "info", Format: "text"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fails when port is empty", func(c *Config) { c.Server.Port = "" }},
		{"fails when DSN is empty", func(c *Config) { c.Catalog.DSN = "" }},
		{"fails when enabled classifier has no model path", func(c *Config) { c.Classifier.ModelPath = "" }},
		{"fails for negative rate limit", func(c *Config) { c.RateLimit.PerIP = -1 }},
		{"fails for zero burst with rate limit", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"fails for unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"fails for unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("validate() error = nil, want error")
			}
		})
	}

	t.Run("allows disabled classifier without model path", func(t *testing.T) {
		cfg := valid()
		cfg.Classifier = ClassifierConfig{Enabled: false}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("allows disabled rate limit", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimit = RateLimitConfig{}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	ConfigureLogging(LoggingConfig{Level: "debug", Format: "json"})
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
	if _, ok := log.StandardLogger().Formatter.(*log.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.JSONFormatter", log.StandardLogger().Formatter)
	}

	ConfigureLogging(LoggingConfig{Level: "nonsense", Format: "text"})
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info fallback", log.GetLevel())
	}
}
