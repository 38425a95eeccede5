// Package config loads the runtime configuration from the environment.
//
// Values come from the process environment (and a `.env` file when present),
// are decoded into Config by koanf and checked by validator. Settings live
// under the SUPPLY_ prefix with "__" separating nested keys, e.g.
//
//	SUPPLY_SERVER__PORT=8080            -> Config.Server.Port
//	SUPPLY_DATABASE__MAX_CONNS=4        -> Config.Database.MaxConns
//	SUPPLY_OBSERVABILITY__LOGGING__LEVEL=debug
//
// The database connection string is read from the unprefixed DATABASE_URL, the
// name the deployment platform injects.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads .env into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every application setting.
	EnvPrefix = "SUPPLY_"
	// DatabaseURLEnv names the connection string variable.
	DatabaseURLEnv = "DATABASE_URL"
	// ServiceName tags every log line and APM transaction.
	ServiceName = "supply-desk"
)

// Config is the root configuration object.
//
// Observability is a pointer so a partially configured block is merged over
// the defaults instead of replacing them.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"min=1"`
}

// DatabaseConfig holds the connection string and pool tuning.
//
// URL may be empty: the service still starts and answers every action with
// "DATABASE_URL not configured".
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	MaxConns        int32  `koanf:"max_conns" validate:"min=1"`
	MinConns        int32  `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`

	// FailFast makes an unreachable database at startup fatal.
	FailFast bool `koanf:"fail_fast"`
}

// Configured reports whether a connection string was supplied.
func (d DatabaseConfig) Configured() bool {
	return strings.TrimSpace(d.URL) != ""
}

// RedisConfig configures the optional product list cache.
// An empty Address disables caching.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
	// CacheTTL is in seconds.
	CacheTTL int `koanf:"cache_ttl" validate:"min=1"`
}

// Enabled reports whether a Redis address was supplied.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

// Default returns the configuration used before the environment is applied.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			MaxConns:        4,
			MinConns:        0,
			ConnMaxLifetime: 3600,
			ConnMaxIdleTime: 300,
		},
		Redis: RedisConfig{
			CacheTTL: 60,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig reads the environment into a validated Config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s variables: %w", EnvPrefix, err)
	}

	err = k.Load(env.Provider(DatabaseURLEnv, ".", func(s string) string {
		if s != DatabaseURLEnv {
			return ""
		}
		return "database.url"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", DatabaseURLEnv, err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
