package influxdb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/nerrad567/homesim/internal/infrastructure/config"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second

	defaultBatchSize     = 100
	defaultFlushInterval = 10 // seconds

	// SiteTag is added to every point when a site ID is given to Connect.
	SiteTag = "site"
)

// Stats counts points handed to the write API and batches it failed to
// deliver.
type Stats struct {
	Written uint64 `json:"written"`
	Failed  uint64 `json:"failed"`
}

// Client records simulator history in an InfluxDB v2 bucket.
//
// Writes are non-blocking and batched by the underlying write API;
// delivery failures arrive on the SetOnError callback. All methods are
// safe for concurrent use.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI

	closed  atomic.Bool
	written atomic.Uint64
	failed  atomic.Uint64

	errMu   sync.RWMutex
	onError func(err error)
}

// Connect pings the server and opens a batched write API on the configured
// org and bucket. A non-empty siteID is attached to every point as the
// SiteTag tag.
func Connect(cfg config.InfluxDBConfig, siteID string) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	opts := influxdb2.DefaultOptions().
		SetBatchSize(positiveOr(cfg.BatchSize, defaultBatchSize)).
		SetFlushInterval(positiveOr(cfg.FlushInterval, defaultFlushInterval) * uint(time.Second/time.Millisecond))
	if siteID != "" {
		opts.AddDefaultTag(SiteTag, siteID)
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := ping(ctx, client); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	c := &Client{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
	}
	go c.drainErrors()

	return c, nil
}

// positiveOr returns v as a uint, or fallback when v is not positive.
func positiveOr(v, fallback int) uint {
	if v <= 0 {
		v = fallback
	}
	return uint(v) // #nosec G115 -- v is positive
}

func ping(ctx context.Context, client influxdb2.Client) error {
	healthy, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if !healthy {
		return fmt.Errorf("ping: server not healthy")
	}
	return nil
}

// drainErrors counts and forwards async write failures until the write API
// is closed.
func (c *Client) drainErrors() {
	for err := range c.writeAPI.Errors() {
		c.failed.Add(1)

		c.errMu.RLock()
		callback := c.onError
		c.errMu.RUnlock()
		if callback != nil {
			callback(fmt.Errorf("%w: %w", ErrWriteFailed, err))
		}
	}
}

// Close flushes pending points and closes the connection. Calling it more
// than once is safe.
func (c *Client) Close() error {
	if c == nil || c.client == nil || c.closed.Swap(true) {
		return nil
	}
	c.writeAPI.Flush()
	c.client.Close()
	return nil
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := ping(ctx, c.client); err != nil {
		return fmt.Errorf("influxdb health check failed: %w", err)
	}
	return nil
}

// IsConnected reports whether the client is open. It does not ping.
func (c *Client) IsConnected() bool {
	return !c.closed.Load()
}

// SetOnError sets the callback for async write failures. Errors wrap
// ErrWriteFailed.
func (c *Client) SetOnError(callback func(err error)) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	c.onError = callback
}

// Flush blocks until buffered points are sent. It is a no-op after Close.
func (c *Client) Flush() {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.Flush()
}

// Stats returns the write counters.
func (c *Client) Stats() Stats {
	return Stats{Written: c.written.Load(), Failed: c.failed.Load()}
}
