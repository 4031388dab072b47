package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
database:
  dsn: "host=db dbname=lysobacter_db"
identification:
  filter_before_limit: false
`)
	t.Setenv("CONFIG_PATH", path)

	require.NoError(t, LoadConfig())
	cfg := GetConfig()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Unset identification keys keep their defaults, set ones override.
	assert.Equal(t, 20, cfg.Identification.DefaultLimit)
	assert.Equal(t, 100, cfg.Identification.MaxLimit)
	assert.Equal(t, 0.1, cfg.Identification.DefaultMinConfidence)
	assert.False(t, cfg.Identification.FilterBeforeLimit)

	assert.Equal(t, 365, cfg.Audit.RetentionDays)
	assert.Equal(t, 24*time.Hour, cfg.Audit.PruneInterval())
}

func TestLoadConfigEnvWins(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=file"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_URL", "host=env dbname=lysobacter_db")
	t.Setenv("IDENTIFICATION_MAX_LIMIT", "250")

	require.NoError(t, LoadConfig())
	cfg := GetConfig()

	assert.Equal(t, "host=env dbname=lysobacter_db", cfg.Database.DSN)
	assert.Equal(t, 250, cfg.Identification.MaxLimit)
}

func TestLoadConfigRequiresDSN(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
`)
	t.Setenv("CONFIG_PATH", path)

	err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
}

func TestLoadConfigRejectsInconsistentLimits(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=db"
identification:
  default_limit: 50
  max_limit: 10
`)
	t.Setenv("CONFIG_PATH", path)

	err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_limit")
}
