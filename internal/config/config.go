package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the leadscope API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Campaigns CampaignsConfig `yaml:"campaigns"`
	Assistant AssistantConfig `yaml:"assistant"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the Postgres pool settings.
type DatabaseConfig struct {
	DSN                string `yaml:"dsn"`
	MinConns           int32  `yaml:"min_conns"`
	MaxConns           int32  `yaml:"max_conns"`
	MaxConnIdleTimeSec int    `yaml:"max_conn_idle_time_sec"`
	AcquireTimeoutMs   int    `yaml:"acquire_timeout_ms"`
	StatementTimeoutMs int    `yaml:"statement_timeout_ms"`
	ReadinessTimeout   int    `yaml:"readiness_timeout_sec"`
}

// MaxConnIdleTime returns the idle timeout as a duration.
func (d DatabaseConfig) MaxConnIdleTime() time.Duration {
	return time.Duration(d.MaxConnIdleTimeSec) * time.Second
}

// AcquireTimeout returns the connection acquire deadline.
func (d DatabaseConfig) AcquireTimeout() time.Duration {
	return time.Duration(d.AcquireTimeoutMs) * time.Millisecond
}

// StatementTimeout returns the per-statement server timeout.
func (d DatabaseConfig) StatementTimeout() time.Duration {
	return time.Duration(d.StatementTimeoutMs) * time.Millisecond
}

// SearchConfig holds paging and export limits.
type SearchConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
	MaxExportRows   int `yaml:"max_export_rows"`
	SuggestionLimit int `yaml:"suggestion_limit"`
}

// CampaignsConfig holds the encrypted campaign store settings.
type CampaignsConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Addrs         []string `yaml:"addrs"`
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	DB            int      `yaml:"db"`
	Standalone    bool     `yaml:"standalone"` // skip cluster discovery
	KeyPrefix     string   `yaml:"key_prefix"`
	EncryptionKey string   `yaml:"encryption_key"` // base64, 32 bytes decoded
}

// Key decodes the payload encryption key.
func (c CampaignsConfig) Key() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("campaigns.encryption_key: %w", err)
	}
	return key, nil
}

// AssistantConfig holds the optional query assistant settings.
type AssistantConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, expanding ${VAR} references, then applies
// defaults and validates.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Database.MinConns <= 0 {
		c.Database.MinConns = 2
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MaxConnIdleTimeSec <= 0 {
		c.Database.MaxConnIdleTimeSec = 300
	}
	if c.Database.AcquireTimeoutMs <= 0 {
		c.Database.AcquireTimeoutMs = 5000
	}
	if c.Database.StatementTimeoutMs <= 0 {
		c.Database.StatementTimeoutMs = 30000
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 50
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 500
	}
	if c.Search.MaxExportRows <= 0 {
		c.Search.MaxExportRows = 10000
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = 10
	}

	if c.Campaigns.KeyPrefix == "" {
		c.Campaigns.KeyPrefix = "leadscope:"
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = "gpt-4o-mini"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size (%d) exceeds max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Campaigns.Enabled {
		if len(c.Campaigns.Addrs) == 0 {
			return errors.New("campaigns.addrs is required when campaigns are enabled")
		}
		if c.Campaigns.DB < 0 {
			return fmt.Errorf("campaigns.db must be non-negative, got %d", c.Campaigns.DB)
		}
		key, err := c.Campaigns.Key()
		if err != nil {
			return err
		}
		if len(key) != 32 {
			return fmt.Errorf("campaigns.encryption_key must decode to 32 bytes, got %d", len(key))
		}
	}
	if c.Assistant.Enabled && c.Assistant.APIKey == "" {
		return errors.New("assistant.api_key is required when the assistant is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := env + ".yaml"

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
