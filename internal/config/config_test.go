package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 5000, ShutdownTimeout: 5 * time.Second},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "data/test.db"},
		JWT:      JWTConfig{Secret: "s3cret"},
		Plaid: PlaidConfig{
			Environment:  "sandbox",
			HistoryStart: "2020-01-01",
			Timeout:      time.Second,
			PageSize:     100,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Server.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name:        "unknown driver",
			mutate:      func(c *Config) { c.Database.Driver = "mongo" },
			wantErr:     true,
			errorString: "invalid database driver 'mongo'",
		},
		{
			name:        "missing jwt secret",
			mutate:      func(c *Config) { c.JWT.Secret = "" },
			wantErr:     true,
			errorString: "jwt secret cannot be empty",
		},
		{
			name:        "bad plaid environment",
			mutate:      func(c *Config) { c.Plaid.Environment = "development" },
			wantErr:     true,
			errorString: "invalid plaid environment",
		},
		{
			name:        "bad history start",
			mutate:      func(c *Config) { c.Plaid.HistoryStart = "01/01/2020" },
			wantErr:     true,
			errorString: "invalid plaid history_start",
		},
		{
			name:        "bad country code",
			mutate:      func(c *Config) { c.Plaid.CountryCodes = []string{"US", "USA"} },
			wantErr:     true,
			errorString: "invalid plaid country code 'USA'",
		},
		{
			name:        "page size too large",
			mutate:      func(c *Config) { c.Plaid.PageSize = 501 },
			wantErr:     true,
			errorString: "invalid plaid page_size 501",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	c := validConfig()
	c.Server.Port = 0
	c.JWT.Secret = ""

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "invalid port 0") || !strings.Contains(err.Error(), "jwt secret") {
		t.Errorf("Validate() error = %q, want both problems reported", err.Error())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7000
database:
  driver: sqlite
  dsn: /tmp/buddyget.db
jwt:
  secret: from-file
plaid:
  timeout: 5s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PORT", "")
	t.Setenv("BUDDYGET_SERVER_PORT", "")
	t.Setenv("BUDDYGET_JWT_SECRET", "from-env")
	t.Setenv("PLAID_CLIENT_ID", "client-123")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "from-env" {
		t.Errorf("JWT.Secret = %q, want env override", cfg.JWT.Secret)
	}
	if cfg.Plaid.ClientID != "client-123" {
		t.Errorf("Plaid.ClientID = %q, want legacy env value", cfg.Plaid.ClientID)
	}
	if cfg.Plaid.Timeout != 5*time.Second {
		t.Errorf("Plaid.Timeout = %v, want 5s", cfg.Plaid.Timeout)
	}
	if cfg.Plaid.HistoryStart != "2020-01-01" {
		t.Errorf("Plaid.HistoryStart = %q, want default", cfg.Plaid.HistoryStart)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.TTL() != 24*time.Hour {
		t.Errorf("JWT.TTL() = %v, want 24h", cfg.JWT.TTL())
	}
}

func TestPlaidConfig_HistoryStartDate(t *testing.T) {
	got, err := PlaidConfig{HistoryStart: "2021-06-01"}.HistoryStartDate()
	if err != nil {
		t.Fatalf("HistoryStartDate() error = %v", err)
	}
	if want := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("HistoryStartDate() = %v, want %v", got, want)
	}
	if _, err := (PlaidConfig{HistoryStart: ""}).HistoryStartDate(); err == nil {
		t.Error("HistoryStartDate(empty) error = nil, want error")
	}
}
