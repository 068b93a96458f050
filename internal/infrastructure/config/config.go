package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "HOMESIM_"

// Config is the root configuration structure for homesim.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageConfig selects where home state is persisted.
type StorageConfig struct {
	// Backend is "sqlite" (durable) or "memory" (lost on exit).
	Backend string `yaml:"backend"`

	// Namespace prefixes the persisted record keys.
	Namespace string `yaml:"namespace"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool                `yaml:"enabled"`
	TopicPrefix string              `yaml:"topic_prefix"`
	Broker      MQTTBrokerConfig    `yaml:"broker"`
	Auth        MQTTAuthConfig      `yaml:"auth"`
	QoS         int                 `yaml:"qos"`
	Reconnect   MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TLS  bool   `yaml:"tls"`

	// ClientID identifies the session. Empty means a generated id.
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	// MaxDelay caps the reconnect backoff, in seconds.
	MaxDelay int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// MetricsConfig contains Prometheus metric settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. .env files, when present (never override variables already set)
//  4. Environment variables (override file values)
//
// Environment variables follow the pattern: HOMESIM_SECTION_KEY
// For example: HOMESIM_DATABASE_PATH, HOMESIM_STORAGE_BACKEND
//
// A missing file is an error unless optional is true, in which case the
// defaults are used.
func Load(path string, optional bool, envFiles ...string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadEnvFiles loads the existing files among names into the environment.
func loadEnvFiles(names []string) error {
	existing := make([]string, 0, len(names))
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			ID:   "home-001",
			Name: "Simulated Home",
		},
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			Namespace: "smartHome",
		},
		Database: DatabaseConfig{
			Path:        "./data/homesim.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			TopicPrefix: "homesim",
			Broker: MQTTBrokerConfig{
				Host: "localhost",
				Port: 1883,
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				MaxDelay: 60,
			},
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "homesim",
			Bucket:        "homesim",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "homesim",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Storage
	if v := os.Getenv(EnvPrefix + "STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvPrefix + "STORAGE_NAMESPACE"); v != "" {
		cfg.Storage.Namespace = v
	}

	// Database
	if v := os.Getenv(EnvPrefix + "DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v, ok := envBool("MQTT_ENABLED"); ok {
		cfg.MQTT.Enabled = v
	}
	if v := os.Getenv(EnvPrefix + "MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv(EnvPrefix + "MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv(EnvPrefix + "MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v, ok := envBool("INFLUXDB_ENABLED"); ok {
		cfg.InfluxDB.Enabled = v
	}
	if v := os.Getenv(EnvPrefix + "INFLUXDB_URL"); v != "" {
		cfg.InfluxDB.URL = v
	}
	if v := os.Getenv(EnvPrefix + "INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Site.ID == "" {
		errs = append(errs, "site.id is required")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		errs = append(errs, "storage.backend must be sqlite or memory")
	}
	if c.Storage.Namespace == "" {
		errs = append(errs, "storage.namespace is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
			errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
		}
		if c.MQTT.TopicPrefix == "" {
			errs = append(errs, "mqtt.topic_prefix is required when mqtt is enabled")
		}
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errs = append(errs, "metrics.namespace is required when metrics are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
