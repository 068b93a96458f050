package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/homesim/internal/infrastructure/config"
)

// testConfig returns a valid MQTT configuration for testing.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled:     true,
		TopicPrefix: "homesim-test",
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "homesim-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			MaxDelay: 5,
		},
	}
}

// =============================================================================
// Options Tests
// =============================================================================

func TestBuildClientOptions(t *testing.T) {
	t.Run("plain tcp", func(t *testing.T) {
		opts := buildClientOptions(testConfig(), "id-1")

		if len(opts.Servers) != 1 || opts.Servers[0].String() != "tcp://127.0.0.1:1883" {
			t.Errorf("Servers = %v, want tcp://127.0.0.1:1883", opts.Servers)
		}
		if opts.ClientID != "id-1" {
			t.Errorf("ClientID = %q, want id-1", opts.ClientID)
		}
		if opts.Username != "" {
			t.Errorf("Username = %q, want empty", opts.Username)
		}
		if !opts.AutoReconnect || !opts.CleanSession {
			t.Error("expected auto-reconnect and clean session")
		}
		if opts.MaxReconnectInterval != 5*time.Second {
			t.Errorf("MaxReconnectInterval = %v, want 5s", opts.MaxReconnectInterval)
		}
		if opts.TLSConfig != nil {
			t.Error("TLSConfig set without tls")
		}
	})

	t.Run("tls with auth", func(t *testing.T) {
		cfg := testConfig()
		cfg.Broker.TLS = true
		cfg.Broker.Port = 8883
		cfg.Auth = config.MQTTAuthConfig{Username: "sim", Password: "pw"}

		opts := buildClientOptions(cfg, "id-2")

		if opts.Servers[0].String() != "ssl://127.0.0.1:8883" {
			t.Errorf("Servers = %v, want ssl://127.0.0.1:8883", opts.Servers)
		}
		if opts.Username != "sim" || opts.Password != "pw" {
			t.Errorf("credentials = %q/%q", opts.Username, opts.Password)
		}
		if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tls.VersionTLS12 {
			t.Error("expected TLS 1.2 minimum")
		}
	})
}

func TestClientIDFor(t *testing.T) {
	cfg := testConfig()
	if got := clientIDFor(cfg); got != "homesim-test" {
		t.Errorf("clientIDFor() = %q, want configured id", got)
	}

	cfg.Broker.ClientID = ""
	a, b := clientIDFor(cfg), clientIDFor(cfg)
	if !strings.HasPrefix(a, "homesim-") || len(a) != len("homesim-")+36 {
		t.Errorf("clientIDFor() = %q, want homesim-<uuid>", a)
	}
	if a == b {
		t.Error("generated client IDs should differ per session")
	}
}

func TestConfigureLWT(t *testing.T) {
	opts := buildClientOptions(testConfig(), "id-1")
	configureLWT(opts, NewTopics("sim"), "id-1")

	if !opts.WillEnabled || !opts.WillRetained || opts.WillQos != 1 {
		t.Errorf("will enabled=%v retained=%v qos=%d", opts.WillEnabled, opts.WillRetained, opts.WillQos)
	}
	if opts.WillTopic != "sim/status" {
		t.Errorf("WillTopic = %q, want sim/status", opts.WillTopic)
	}

	var payload map[string]string
	if err := json.Unmarshal(opts.WillPayload, &payload); err != nil {
		t.Fatalf("will payload is not JSON: %v", err)
	}
	if payload["status"] != "offline" || payload["reason"] != "unexpected_disconnect" {
		t.Errorf("will payload = %v", payload)
	}
}

func TestBuildStatusPayload(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := buildStatusPayload("online", "id-1", "", now)
	want := `{"status":"online","client_id":"id-1","timestamp":"2026-03-01T12:00:00Z"}`
	if got != want {
		t.Errorf("online payload = %s, want %s", got, want)
	}

	got = buildStatusPayload("offline", "id-1", "graceful_shutdown", now)
	if !strings.Contains(got, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload = %s, want reason", got)
	}
}

// =============================================================================
// Topic Tests
// =============================================================================

func TestTopicBuilders(t *testing.T) {
	topics := NewTopics("homesim")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Status", topics.Status(), "homesim/status"},
		{"Stats", topics.Stats(), "homesim/stats"},
		{"ComponentState", topics.ComponentState(3), "homesim/component/3/state"},
		{"Event", topics.Event("CREATE"), "homesim/event/create"},
		{"Action", topics.Action(12), "homesim/action/12"},
		{"PersistenceError", topics.PersistenceError(), "homesim/error/persistence"},
		{"AllTopics", topics.AllTopics(), "homesim/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNewTopics(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "homesim/status"},
		{"/", "homesim/status"},
		{"lab/sim/", "lab/sim/status"},
	}
	for _, tt := range tests {
		if got := NewTopics(tt.prefix).Status(); got != tt.want {
			t.Errorf("NewTopics(%q).Status() = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	if got := (Topics{}).Stats(); got != "homesim/stats" {
		t.Errorf("zero Topics.Stats() = %q, want default prefix", got)
	}
}

// =============================================================================
// Client State Tests (no broker required)
// =============================================================================

func TestCloseNil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}
	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestHealthCheckDisconnected(t *testing.T) {
	client := &Client{}

	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}

func TestPublishValidation(t *testing.T) {
	client := &Client{}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 1, ErrInvalidTopic},
		{"invalid qos", "homesim/stats", []byte("x"), 3, ErrInvalidQoS},
		{"payload too large", "homesim/stats", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "homesim/stats", []byte("x"), 1, ErrNotConnected},
		{"nil payload not connected", "homesim/stats", nil, 0, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStats_CountsFailedPublishes(t *testing.T) {
	client := &Client{}

	_ = client.Publish("", []byte("x"), 1, false)
	_ = client.Publish("homesim/stats", []byte("x"), 1, true)
	_ = client.Publish("homesim/stats", []byte("y"), 1, true)

	// Invalid arguments are rejected before they count as attempts.
	if got := client.Stats(); got.Failed != 2 || got.Published != 0 {
		t.Errorf("Stats() = %+v, want 2 failed", got)
	}
}
