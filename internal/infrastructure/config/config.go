package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/costview/backend/internal/domain/shared"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Log          LogConfig
	Telemetry    TelemetryConfig
	Currency     CurrencyConfig
	Suite        SuiteConfig
	CloudBilling CloudBillingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // sqlite, postgres
	Path            string // sqlite file path (":memory:" for tests)
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret          string
	TokenExpiration time.Duration
	Issuer          string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry trace export settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string  // OTLP gRPC endpoint, host:port
	SamplingRatio     float64 // 0..1
	Insecure          bool    // plaintext collector connection
}

// CurrencyConfig holds the currency rate provider settings
type CurrencyConfig struct {
	URL    string
	APIKey string
}

// SuiteConfig holds the accounting suite connection settings
type SuiteConfig struct {
	URL      string
	Username string
	Password string
}

// CloudBillingConfig holds the cloud billing API connection settings
type CloudBillingConfig struct {
	URL          string
	AccessID     string
	APIKey       string
	Subscription string
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with COSTVIEW_ prefix (e.g., COSTVIEW_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, shared.WrapError(shared.ErrKindInvalidConfiguration, err, "reading config file")
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("COSTVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Path:            v.GetString("database.path"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt.secret"),
			TokenExpiration: v.GetDuration("jwt.token_expiration"),
			Issuer:          v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
		Currency: CurrencyConfig{
			URL:    v.GetString("currency.url"),
			APIKey: v.GetString("currency.api_key"),
		},
		Suite: SuiteConfig{
			URL:      v.GetString("suite.url"),
			Username: v.GetString("suite.username"),
			Password: v.GetString("suite.password"),
		},
		CloudBilling: CloudBillingConfig{
			URL:          v.GetString("cloudbilling.url"),
			AccessID:     v.GetString("cloudbilling.access_id"),
			APIKey:       v.GetString("cloudbilling.api_key"),
			Subscription: v.GetString("cloudbilling.subscription"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "costview-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "costview.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "costview"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.JWT.TokenExpiration == 0 {
		cfg.JWT.TokenExpiration = time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "costview-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Currency.URL == "" {
		cfg.Currency.URL = "https://rates.example.com"
	}
	if cfg.Suite.URL == "" {
		cfg.Suite.URL = "https://suite.example.com"
	}
	if cfg.CloudBilling.URL == "" {
		cfg.CloudBilling.URL = "https://billing.example.com"
	}
}

// Validate checks the configuration for invalid or incomplete settings.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
			fmt.Sprintf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	if c.Database.MaxOpenConns <= 0 {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
			"database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
			fmt.Sprintf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
				c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}
	if c.JWT.TokenExpiration < time.Minute {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
			"jwt.token_expiration must be at least one minute")
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
			fmt.Sprintf("telemetry.sampling_ratio must be between 0 and 1, got %g", c.Telemetry.SamplingRatio))
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
				"jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
				"jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver == "postgres" && c.Database.Password == "" {
			return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
				"database.password is required in production")
		}
		if c.Database.Driver == "postgres" && c.Database.SSLMode == "disable" {
			return shared.NewErrorWithDetail(shared.ErrKindInvalidConfiguration,
				"database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the postgres connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
