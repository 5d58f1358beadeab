package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(kv map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := kv[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.TLS())
	assert.False(t, cfg.HistoryEnabled())
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestYAMLFile(t *testing.T) {
	p := write(t, "formulary.yaml", `
addr: ":9000"
database:
  driver: sqlite
  url: file:history.db
token_key: secret
log:
  level: debug
rate_limit:
  rps: 5
  burst: 10
`)
	cfg, err := Parse(p, env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, DatabaseConfig{Driver: DriverSQLite, URL: "file:history.db"}, cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, RateLimitConfig{RPS: 5, Burst: 10}, cfg.RateLimit)
	assert.True(t, cfg.HistoryEnabled())
}

func TestTOMLFileWithEnvOverrides(t *testing.T) {
	p := write(t, "formulary.toml", `
addr = ":9000"
token_key = "from-file"

[database]
driver = "postgres"
url = "postgres://localhost/formulary"
`)
	cfg, err := Parse(p, env(map[string]string{
		"ADDR":             ":7000",
		"TOKEN_KEY":        "from-env",
		"RATE_LIMIT_BURST": "7",
		"TLS_CERT":         "server.crt",
		"TLS_KEY":          "server.key",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "from-env", cfg.TokenKey)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
	assert.Equal(t, "postgres://localhost/formulary", cfg.Database.URL)
	assert.True(t, cfg.TLS())
}

func TestValidate(t *testing.T) {
	tests := map[string]map[string]string{
		"history without key": {"DATABASE_URL": "postgres://x"},
		"unknown driver":      {"DB_DRIVER": "mysql"},
		"bad level":           {"LOG_LEVEL": "loud"},
		"zero rps":            {"RATE_LIMIT_RPS": "0"},
		"half tls":            {"TLS_CERT": "server.crt"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("", env(kv))
			assert.Error(t, err)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("", env(map[string]string{"RATE_LIMIT_RPS": "fast"}))
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
	_, err = Parse(write(t, "formulary.ini", "addr=:1"), env(nil))
	assert.ErrorContains(t, err, "unsupported")
	_, err = Parse(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)
}
