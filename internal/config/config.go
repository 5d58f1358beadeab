// Package config loads server settings from defaults, an optional YAML or TOML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr      string          `yaml:"addr" toml:"addr"`
	TLSCert   string          `yaml:"tls_cert" toml:"tls_cert"`
	TLSKey    string          `yaml:"tls_key" toml:"tls_key"`
	Database  DatabaseConfig  `yaml:"database" toml:"database"`
	TokenKey  string          `yaml:"token_key" toml:"token_key"`
	Log       LogConfig       `yaml:"log" toml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Bot       BotConfig       `yaml:"bot" toml:"bot"`
}

// DatabaseConfig enables accounts and history when URL is set.
type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	URL    string `yaml:"url" toml:"url"`
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" toml:"rps"`
	Burst int     `yaml:"burst" toml:"burst"`
}

type BotConfig struct {
	Token string `yaml:"token" toml:"token"`
	API   string `yaml:"api" toml:"api"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Default() *Config {
	return &Config{
		Addr:      ":8080",
		Database:  DatabaseConfig{Driver: DriverPostgres},
		Log:       LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{RPS: 1, Burst: 3},
		Bot:       BotConfig{API: "https://api.telegram.org"},
	}
}

func (c *Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

func (c *Config) HistoryEnabled() bool { return c.Database.URL != "" }

// Load reads .env if present, then the file named by FORMULARY_CONFIG, then
// the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return Parse(os.Getenv("FORMULARY_CONFIG"), os.LookupEnv)
}

// Parse builds a validated Config from an optional file and lookup.
func Parse(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("config: unsupported file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":         &c.Addr,
		"TLS_CERT":     &c.TLSCert,
		"TLS_KEY":      &c.TLSKey,
		"DATABASE_URL": &c.Database.URL,
		"DB_DRIVER":    &c.Database.Driver,
		"TOKEN_KEY":    &c.TokenKey,
		"LOG_LEVEL":    &c.Log.Level,
		"TOKEN_BOT":    &c.Bot.Token,
	}
	for k, p := range strs {
		if v, ok := lookup(k); ok {
			*p = v
		}
	}
	if v, ok := lookup("RATE_LIMIT_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = f
	}
	if v, ok := lookup("RATE_LIMIT_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimit.Burst = n
	}
	if v, ok := lookup("LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = b
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		errs = append(errs, errors.New("tls_cert and tls_key must be set together"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	if c.HistoryEnabled() && c.TokenKey == "" {
		errs = append(errs, errors.New("token_key is required when a database is configured"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
