package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full service configuration.
type Config struct {
	Service  ServiceConfig  `koanf:"service"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	NATS     NATSConfig     `koanf:"nats"`
	Cache    CacheConfig    `koanf:"cache"`
	Retry    RetryConfig    `koanf:"retry"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// ServiceConfig contains service metadata.
type ServiceConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"` // dev, staging, production
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"database"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxConnections  int           `koanf:"max_connections"`
	MinConnections  int           `koanf:"min_connections"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
}

// RedisConfig contains cache backend connection settings. An empty Addr
// selects the in-memory cache.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// NATSConfig contains notification transport settings. An empty URL selects
// the no-op notifier.
type NATSConfig struct {
	URL string `koanf:"url"`
}

// CacheConfig contains cache TTLs.
type CacheConfig struct {
	EntityTTL time.Duration `koanf:"entity_ttl"`
	ListTTL   time.Duration `koanf:"list_ttl"`
}

// RetryConfig bounds the storage retry helper.
type RetryConfig struct {
	Attempts int           `koanf:"attempts"`
	Delay    time.Duration `koanf:"delay"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			Name:        "catalog",
			Environment: "development",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "reelstack",
			Password:        "reelstack_dev",
			Database:        "reelstack_dev",
			SSLMode:         "disable",
			MaxConnections:  25,
			MinConnections:  5,
			MaxConnLifetime: time.Hour,
		},
		Cache: CacheConfig{
			EntityTTL: 5 * time.Minute,
			ListTTL:   time.Minute,
		},
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    100 * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// envPrefix namespaces environment overrides, e.g. REELSTACK_DATABASE_HOST.
const envPrefix = "REELSTACK_"

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in increasing precedence.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// MustLoad loads the configuration or panics.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
