package mqtt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/homesim/internal/infrastructure/config"
)

// Session status values published on the status topic.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Logger is the subset of logging.Logger the client uses.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Client is a publish-only MQTT session for simulator telemetry.
//
// The session announces itself with a retained online status and leaves a
// Last Will so subscribers see it go offline if the process dies. Paho
// reconnects automatically. All methods are safe for concurrent use.
type Client struct {
	client   pahomqtt.Client
	qos      byte
	clientID string
	topics   Topics

	connected atomic.Bool
	published atomic.Uint64
	failed    atomic.Uint64

	logMu  sync.RWMutex
	logger Logger
}

// Connect opens a session with the configured broker and waits for the
// first CONNACK. An empty client ID in cfg is replaced by a generated one.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	c := &Client{
		qos:      byte(cfg.QoS), // #nosec G115 -- validated to 0..2 by config
		clientID: clientIDFor(cfg),
		topics:   NewTopics(cfg.TopicPrefix),
	}

	opts := buildClientOptions(cfg, c.clientID)
	configureLWT(opts, c.topics, c.clientID)
	opts.SetOnConnectHandler(func(pahomqtt.Client) { c.onConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.onConnectionLost(err) })

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// onConnect runs on a paho goroutine and may not have fired yet.
	c.connected.Store(true)
	return c, nil
}

func (c *Client) onConnect() {
	c.connected.Store(true)
	c.announce(StatusOnline, "")
	c.log().Info("mqtt connected", "client_id", c.clientID)
}

func (c *Client) onConnectionLost(err error) {
	c.connected.Store(false)
	c.log().Warn("mqtt connection lost", "client_id", c.clientID, "error", err)
}

// announce publishes the retained session status and returns the token.
func (c *Client) announce(status, reason string) pahomqtt.Token {
	payload := buildStatusPayload(status, c.clientID, reason, time.Now())
	return c.client.Publish(c.topics.Status(), c.qos, true, payload)
}

// Close publishes a graceful offline status, lets in-flight messages drain
// and disconnects.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	if c.IsConnected() {
		c.announce(StatusOffline, "graceful_shutdown").WaitTimeout(defaultPublishTimeout)
	}
	c.client.Disconnect(defaultDisconnectQuiesce)
	c.connected.Store(false)
	return nil
}

// HealthCheck reports ErrNotConnected while the session is down.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected reports the last known session state.
func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.client != nil && c.client.IsConnected()
}

// ClientID returns the MQTT client ID of this session.
func (c *Client) ClientID() string {
	return c.clientID
}

// Topics returns the topic builders for the configured prefix.
func (c *Client) Topics() Topics {
	return c.topics
}

// SetLogger sets the logger for session events. Nil disables logging.
func (c *Client) SetLogger(logger Logger) {
	c.logMu.Lock()
	defer c.logMu.Unlock()
	c.logger = logger
}

func (c *Client) log() Logger {
	c.logMu.RLock()
	defer c.logMu.RUnlock()
	if c.logger == nil {
		return nopLogger{}
	}
	return c.logger
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
