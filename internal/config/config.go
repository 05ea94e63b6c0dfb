package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite / postgres
	DSN     string `mapstructure:"dsn"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// TTL returns the token lifetime, falling back to 24h.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpireHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpireHours) * time.Hour
}

type SecurityConfig struct {
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console / json
}

type PlaidConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	Secret       string        `mapstructure:"secret"`
	Environment  string        `mapstructure:"environment"` // sandbox / production
	ClientName   string        `mapstructure:"client_name"`
	ClientUserID string        `mapstructure:"client_user_id"`
	CountryCodes []string      `mapstructure:"country_codes"`
	Language     string        `mapstructure:"language"`
	HistoryStart string        `mapstructure:"history_start"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PageSize     int           `mapstructure:"page_size"`
}

// HistoryStartDate parses HistoryStart (YYYY-MM-DD, UTC).
func (p PlaidConfig) HistoryStartDate() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", p.HistoryStart, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid plaid history_start '%s': want YYYY-MM-DD", p.HistoryStart)
	}
	return t, nil
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	Plaid    PlaidConfig    `mapstructure:"plaid"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// legacyEnv maps config keys to the environment variable names used by
// earlier deployments of the service.
var legacyEnv = map[string][]string{
	"server.port":       {"PORT"},
	"jwt.secret":        {"SECRET_key", "SECRET_KEY"},
	"database.dsn":      {"Db_connect", "DB_CONNECT"},
	"plaid.client_id":   {"PLAID_CLIENT_ID"},
	"plaid.secret":      {"PLAID_SECRET"},
	"plaid.environment": {"PLAID_ENV"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/buddyget.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "buddyget")
	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("security.bcrypt_cost", 12)
	v.SetDefault("security.encryption_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("plaid.client_id", "")
	v.SetDefault("plaid.secret", "")
	v.SetDefault("plaid.environment", "sandbox")
	v.SetDefault("plaid.client_name", "BuddyGet")
	v.SetDefault("plaid.client_user_id", "buddyget-anonymous")
	v.SetDefault("plaid.country_codes", []string{"US"})
	v.SetDefault("plaid.language", "en")
	v.SetDefault("plaid.history_start", "2020-01-01")
	v.SetDefault("plaid.timeout", 30*time.Second)
	v.SetDefault("plaid.page_size", 500)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads configuration from the given YAML file (optional), a .env file
// in the working directory (optional) and the environment.
// Environment variables use the BUDDYGET_ prefix, e.g. BUDDYGET_SERVER_PORT=9000.
func Load(path string) (*Config, error) {
	// .env is a convenience for local runs; absence is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BUDDYGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		envName := "BUDDYGET_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key, envName}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("stat config: %w", statErr)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server shutdown timeout must be positive")
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("invalid database driver '%s': must be sqlite or postgres", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "database dsn cannot be empty")
	}

	if c.JWT.Secret == "" {
		problems = append(problems, "jwt secret cannot be empty")
	}

	switch c.Plaid.Environment {
	case "sandbox", "production":
	default:
		problems = append(problems, fmt.Sprintf("invalid plaid environment '%s': must be sandbox or production", c.Plaid.Environment))
	}
	if _, err := c.Plaid.HistoryStartDate(); err != nil {
		problems = append(problems, err.Error())
	}
	for _, code := range c.Plaid.CountryCodes {
		if !isCountryCode(code) {
			problems = append(problems, fmt.Sprintf("invalid plaid country code '%s': want two letters", code))
		}
	}
	if c.Plaid.Timeout <= 0 {
		problems = append(problems, "plaid timeout must be positive")
	}
	if c.Plaid.PageSize < 1 || c.Plaid.PageSize > 500 {
		problems = append(problems, fmt.Sprintf("invalid plaid page_size %d: must be between 1 and 500", c.Plaid.PageSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
