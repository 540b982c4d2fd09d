// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: triggers godotenv's autoload feature.
	// If a `.env` file exists, it gets loaded into process env
	// before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "SKY_"

/*
	Key mapping:
	- Only env vars with the SKY_ prefix are read
	- Keys are lowercased and the prefix is removed
	- A double underscore separates nesting levels, so single underscores
	  can stay inside field names
	  e.g. SKY_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns
	       SKY_OBSERVABILITY__NEW_RELIC__LICENSE_KEY -> observability.new_relic.license_key
*/

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are used by go-playground/validator
// to enforce that the config is present and populated.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env ("local" turns on SQL logging).
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// LoginRateLimit is the sustained number of login attempts per second
	// allowed from one client IP.
	LoginRateLimit float64 `koanf:"login_rate_limit" validate:"gt=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Redis backs the shop status flag and the job queue.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// AuthConfig stores the admin token settings.
//
// AdminSecretKey signs the HS256 tokens issued at login; it must be at
// least 32 bytes so the HMAC key is not trivially short.
// AdminTokenName is the raw header the legacy admin client sends the
// token in. Authorization: Bearer is always accepted as well.
type AuthConfig struct {
	AdminSecretKey string        `koanf:"admin_secret_key" validate:"required,min=32"`
	AdminTTL       time.Duration `koanf:"admin_ttl" validate:"required,min=1m"`
	AdminTokenName string        `koanf:"admin_token_name" validate:"required"`
}

// StorageConfig holds the Azure Blob Storage target for uploads.
//
// Either ConnectionString or AccountURL must be set. With only an
// AccountURL the client authenticates through azidentity's default
// credential chain (env, managed identity, az cli).
type StorageConfig struct {
	ConnectionString string `koanf:"connection_string" validate:"required_without=AccountURL"`
	AccountURL       string `koanf:"account_url" validate:"required_without=ConnectionString,omitempty,url"`
	Container        string `koanf:"container" validate:"required"`
}

// defaultConfig returns the values used when an env var is absent.
// Required secrets (database password, token key, storage target) have no default.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			LoginRateLimit:     1,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
		Auth: AuthConfig{
			AdminTTL:       2 * time.Hour,
			AdminTokenName: "token",
		},
		Storage:       StorageConfig{Container: "sky-takeout"},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it over
// the defaults, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix SKY_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into a Config pre-populated with defaults
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Validates observability config as well
//
// The caller decides what to do with an error; cmd/sky-server exits.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal keeps fields that have no matching key, so defaults survive.
	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Comma separated list in env, e.g. SKY_SERVER__CORS_ALLOWED_ORIGINS=http://a,http://b
	if raw := k.String("server.cors_allowed_origins"); raw != "" {
		mainConfig.Server.CORSAllowedOrigins = splitList(raw)
	}
	if raw := k.String("observability.health_checks.checks"); raw != "" && mainConfig.Observability != nil {
		mainConfig.Observability.HealthChecks.Checks = splitList(raw)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force service name and environment values regardless of what user set.
	// This keeps tracing/logging naming consistent.
	mainConfig.Observability.ServiceName = "sky-takeout"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
