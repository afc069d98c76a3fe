package config

import (
	"strings"
	"testing"
)

const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/leads"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"min over max conns", func(c *Config) { c.Database.MinConns = 20 }, "min_conns"},
		{"default page over max", func(c *Config) { c.Search.DefaultPageSize = 1000 }, "default_page_size"},
		{"campaigns without addrs", func(c *Config) {
			c.Campaigns = CampaignsConfig{Enabled: true, EncryptionKey: testKey}
		}, "campaigns.addrs"},
		{"campaigns bad key encoding", func(c *Config) {
			c.Campaigns = CampaignsConfig{Enabled: true, Addrs: []string{"localhost:6379"}, EncryptionKey: "%%%"}
		}, "campaigns.encryption_key"},
		{"campaigns short key", func(c *Config) {
			c.Campaigns = CampaignsConfig{Enabled: true, Addrs: []string{"localhost:6379"}, EncryptionKey: "c2hvcnQ="}
		}, "32 bytes"},
		{"campaigns valid", func(c *Config) {
			c.Campaigns = CampaignsConfig{Enabled: true, Addrs: []string{"localhost:6379"}, EncryptionKey: testKey}
		}, ""},
		{"campaigns negative db", func(c *Config) {
			c.Campaigns = CampaignsConfig{Enabled: true, Addrs: []string{"localhost:6379"}, DB: -1, EncryptionKey: testKey}
		}, "campaigns.db"},
		{"disabled campaigns ignore key", func(c *Config) {
			c.Campaigns = CampaignsConfig{EncryptionKey: "%%%"}
		}, ""},
		{"assistant without key", func(c *Config) { c.Assistant.Enabled = true }, "assistant.api_key"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Database.MinConns != 2 || cfg.Database.MaxConns != 10 {
		t.Errorf("unexpected pool size: %d/%d", cfg.Database.MinConns, cfg.Database.MaxConns)
	}
	if cfg.Database.AcquireTimeout().Seconds() != 5 || cfg.Database.StatementTimeout().Seconds() != 30 {
		t.Errorf("unexpected timeouts: %v %v", cfg.Database.AcquireTimeout(), cfg.Database.StatementTimeout())
	}
	if cfg.Database.MaxConnIdleTime().Minutes() != 5 {
		t.Errorf("unexpected idle time: %v", cfg.Database.MaxConnIdleTime())
	}
	if cfg.Search.DefaultPageSize != 50 || cfg.Search.MaxPageSize != 500 || cfg.Search.MaxExportRows != 10000 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Search.SuggestionLimit != 10 {
		t.Errorf("SuggestionLimit = %d", cfg.Search.SuggestionLimit)
	}
	if cfg.Campaigns.KeyPrefix != "leadscope:" {
		t.Errorf("KeyPrefix = %q", cfg.Campaigns.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30},
		Database:  DatabaseConfig{MaxConns: 40, StatementTimeoutMs: 1500},
		Search:    SearchConfig{MaxExportRows: 2000},
		Campaigns: CampaignsConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.Database.MaxConns != 40 || cfg.Search.MaxExportRows != 2000 {
		t.Errorf("defaults overrode explicit values: %+v", cfg)
	}
	if cfg.Database.StatementTimeout().Milliseconds() != 1500 {
		t.Errorf("StatementTimeout = %v", cfg.Database.StatementTimeout())
	}
	if cfg.Campaigns.KeyPrefix != "custom:" {
		t.Errorf("KeyPrefix = %q", cfg.Campaigns.KeyPrefix)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("LEADSCOPE_TEST_DSN", "postgres://env@db:5432/leads")

	cfg, err := Parse([]byte(`
http:
  port: ${LEADSCOPE_TEST_PORT:-9090}
database:
  dsn: ${LEADSCOPE_TEST_DSN}
auth:
  api_keys: ["${LEADSCOPE_TEST_KEY:-dev-key}"]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "postgres://env@db:5432/leads" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "dev-key" {
		t.Errorf("api_keys = %v", cfg.Auth.APIKeys)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Error("expected validation error for missing dsn")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("local config should load: %v", err)
	}
	if cfg.HTTP.Port == 0 || cfg.Database.DSN == "" {
		t.Errorf("unexpected local config: %+v", cfg)
	}
}
