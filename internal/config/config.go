package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the full application configuration, loaded once at startup.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	Identification IdentificationConfig `yaml:"identification"`
	Audit          AuditConfig          `yaml:"audit"`
	CORS           CORSConfig           `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// IdentificationConfig bounds and defaults for identification requests.
type IdentificationConfig struct {
	DefaultLimit         int     `yaml:"default_limit"`
	MaxLimit             int     `yaml:"max_limit"`
	DefaultMinConfidence float64 `yaml:"default_min_confidence"`
	// FilterBeforeLimit applies the confidence floor before truncating to
	// the requested limit, so short result sets are backfilled from lower
	// ranks. Set false to restore the historical filter-after-limit order.
	FilterBeforeLimit bool `yaml:"filter_before_limit"`
}

// AuditConfig controls the audit trail retention worker.
type AuditConfig struct {
	RetentionDays      int `yaml:"retention_days"`
	PruneIntervalHours int `yaml:"prune_interval_hours"`
}

// PruneInterval returns the worker tick as a duration.
func (c AuditConfig) PruneInterval() time.Duration {
	return time.Duration(c.PruneIntervalHours) * time.Hour
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var AppConfig Config

// LoadConfig reads the YAML file and applies environment overrides.
// The config path itself can be overridden with CONFIG_PATH.
func LoadConfig() error {
	path := getEnv("CONFIG_PATH", "config/config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	AppConfig = defaults()
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnvOverrides(&AppConfig)

	if AppConfig.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required (or set DATABASE_URL)")
	}
	if AppConfig.Identification.MaxLimit < AppConfig.Identification.DefaultLimit {
		return fmt.Errorf("identification.max_limit must be >= default_limit")
	}
	return nil
}

func GetConfig() *Config {
	return &AppConfig
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8000",
			Env:  "development",
		},
		Identification: IdentificationConfig{
			DefaultLimit:         20,
			MaxLimit:             100,
			DefaultMinConfidence: 0.1,
			FilterBeforeLimit:    true,
		},
		Audit: AuditConfig{
			RetentionDays:      365,
			PruneIntervalHours: 24,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("APP_ENV", cfg.Server.Env)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)

	if v, ok := os.LookupEnv("IDENTIFICATION_MAX_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Identification.MaxLimit = n
		}
	}
	if v, ok := os.LookupEnv("AUDIT_RETENTION_DAYS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Audit.RetentionDays = n
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
