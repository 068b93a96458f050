package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
site:
  id: "test-home"
storage:
  backend: sqlite
  namespace: testHome
database:
  path: "/tmp/test.db"
  wal_mode: false
mqtt:
  enabled: true
  topic_prefix: sim
  broker:
    host: "broker.local"
    port: 1884
  qos: 2
metrics:
  enabled: false
`
	path := writeFile(t, "config.yaml", content)

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-home" {
		t.Errorf("Site.ID = %q, want %q", cfg.Site.ID, "test-home")
	}
	if cfg.Storage.Namespace != "testHome" {
		t.Errorf("Storage.Namespace = %q, want %q", cfg.Storage.Namespace, "testHome")
	}
	if cfg.Database.Path != "/tmp/test.db" || cfg.Database.WALMode {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.TopicPrefix != "sim" || cfg.MQTT.Broker.Port != 1884 || cfg.MQTT.QoS != 2 {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	// Untouched sections keep defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml", false); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	unsetEnv(t, EnvPrefix+"STORAGE_BACKEND")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want default %q", cfg.Storage.Backend, BackendSQLite)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "invalid: [yaml: content")

	if _, err := Load(path, true); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, "config.yaml", "storage:\n  backend: redis\n")

	_, err := Load(path, false)
	if err == nil {
		t.Fatal("Load() expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "storage.backend") {
		t.Errorf("error = %v, want storage.backend message", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, EnvPrefix+"DATABASE_PATH")
	unsetEnv(t, EnvPrefix+"STORAGE_BACKEND")
	t.Setenv(EnvPrefix+"STORAGE_NAMESPACE", "fromEnv")

	envPath := writeFile(t, ".env",
		"HOMESIM_DATABASE_PATH=/tmp/from-dotenv.db\nHOMESIM_STORAGE_NAMESPACE=fromDotenv\n")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true, envPath, "/nonexistent/.env")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/tmp/from-dotenv.db" {
		t.Errorf("Database.Path = %q, want value from .env", cfg.Database.Path)
	}
	if cfg.Storage.Namespace != "fromEnv" {
		t.Errorf("Storage.Namespace = %q, want process env to win over .env", cfg.Storage.Namespace)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing site id",
			modify:  func(c *Config) { c.Site.ID = "" },
			wantErr: "site.id",
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "storage.backend",
		},
		{
			name:    "sqlite without path",
			modify:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name: "memory without path",
			modify: func(c *Config) {
				c.Storage.Backend = BackendMemory
				c.Database.Path = ""
			},
		},
		{
			name:    "empty namespace",
			modify:  func(c *Config) { c.Storage.Namespace = "" },
			wantErr: "storage.namespace",
		},
		{
			name:    "invalid qos",
			modify:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled with bad port",
			modify: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Port = 0
			},
			wantErr: "mqtt.broker.port",
		},
		{
			name: "influxdb enabled without bucket",
			modify: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Bucket = ""
			},
			wantErr: "influxdb.bucket",
		},
		{
			name:    "metrics without namespace",
			modify:  func(c *Config) { c.Metrics.Namespace = "" },
			wantErr: "metrics.namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Site.ID = ""
	cfg.MQTT.QoS = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	for _, want := range []string{"site.id", "mqtt.qos"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"STORAGE_BACKEND", "memory")
	t.Setenv(EnvPrefix+"DATABASE_PATH", "/env/path.db")
	t.Setenv(EnvPrefix+"MQTT_ENABLED", "true")
	t.Setenv(EnvPrefix+"MQTT_HOST", "env-host")
	t.Setenv(EnvPrefix+"MQTT_PASSWORD", "secret")
	t.Setenv(EnvPrefix+"INFLUXDB_ENABLED", "not-a-bool")
	t.Setenv(EnvPrefix+"INFLUXDB_TOKEN", "token")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Storage.Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Database.Path != "/env/path.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker.Host != "env-host" || cfg.MQTT.Auth.Password != "secret" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.InfluxDB.Enabled {
		t.Error("InfluxDB.Enabled = true, want unparsable bool ignored")
	}
	if cfg.InfluxDB.Token != "token" {
		t.Errorf("InfluxDB.Token = %q", cfg.InfluxDB.Token)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Namespace != "smartHome" {
		t.Errorf("Storage.Namespace = %q, want smartHome", cfg.Storage.Namespace)
	}
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("external sinks should be disabled by default")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
	if cfg.MQTT.TopicPrefix != "homesim" {
		t.Errorf("MQTT.TopicPrefix = %q", cfg.MQTT.TopicPrefix)
	}
}
