package main

import (
	"context"
	"fmt"
	"io"

	"github.com/nerrad567/homesim/internal/home"
	"github.com/nerrad567/homesim/internal/infrastructure/config"
	"github.com/nerrad567/homesim/internal/infrastructure/database"
	"github.com/nerrad567/homesim/internal/infrastructure/influxdb"
	"github.com/nerrad567/homesim/internal/infrastructure/logging"
	"github.com/nerrad567/homesim/internal/infrastructure/mqtt"
	"github.com/nerrad567/homesim/internal/store"
	"github.com/nerrad567/homesim/internal/telemetry"
	"github.com/nerrad567/homesim/migrations"
)

// app holds the service and the infrastructure wired around it for one
// command.
type app struct {
	cfg *config.Config
	log *logging.Logger
	svc *home.Service

	db      *database.DB       // nil for the memory backend
	mqtt    *mqtt.Client       // nil when disabled
	influx  *influxdb.Client   // nil when disabled
	metrics *telemetry.Metrics // nil when disabled

	closers []io.Closer
}

// newApp opens the store, connects the optional sinks, registers the
// observers and loads the persisted home.
func newApp(ctx context.Context, cfg *config.Config, log *logging.Logger) (a *app, err error) {
	a = &app{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	kv, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}

	a.svc = home.New(store.New(kv, cfg.Storage.Namespace))
	a.svc.SetLogger(log.With("component", "home"))

	if cfg.Metrics.Enabled {
		a.metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
		a.svc.AddObserver(a.metrics)
	}

	var mirror *telemetry.MQTTMirror
	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("connecting to MQTT: %w", err)
		}
		client.SetLogger(log.With("component", "mqtt"))
		a.mqtt = client
		a.closers = append(a.closers, client)
		log.Debug("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", client.ClientID(),
		)

		// #nosec G115 -- qos validated to 0..2 by config
		mirror = telemetry.NewMQTTMirror(client, client.Topics(), byte(cfg.MQTT.QoS), log.With("component", "mqtt-mirror"))
		a.svc.AddObserver(mirror)
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(cfg.InfluxDB, cfg.Site.ID)
		if err != nil {
			return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		client.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		a.influx = client
		a.closers = append(a.closers, client)
		a.svc.AddObserver(telemetry.NewInfluxRecorder(client))
		log.Debug("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	a.svc.Load(ctx)
	log.Debug("home loaded", "components", a.svc.Count())
	if mirror != nil {
		mirror.Sync(a.svc.ListComponents())
	}

	return a, nil
}

// openKV returns the key-value backend selected by storage.backend.
func (a *app) openKV(ctx context.Context) (store.KV, error) {
	if a.cfg.Storage.Backend == config.BackendMemory {
		a.log.Debug("using in-memory storage")
		return store.NewMemoryKV(), nil
	}

	db, err := database.Open(ctx, database.Config{
		Path:        a.cfg.Database.Path,
		WALMode:     a.cfg.Database.WALMode,
		BusyTimeout: a.cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db)

	if err := db.Migrate(ctx, migrations.FS, migrations.Dir); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	a.log.Debug("database ready", "path", db.Path())

	return store.NewSQLiteKV(db.DB), nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Error("error closing resource", "error", err)
		}
	}
	a.closers = nil
}

// healthReport is the output of the health command. Stats are present
// only for sinks that are enabled.
type healthReport struct {
	Database    string          `json:"database"`
	MQTT        string          `json:"mqtt"`
	InfluxDB    string          `json:"influxdb"`
	MQTTStats   *mqtt.Stats     `json:"mqttStats,omitempty"`
	InfluxStats *influxdb.Stats `json:"influxdbStats,omitempty"`
}

// healthCheck reports the state of every configured dependency.
func (a *app) healthCheck(ctx context.Context) healthReport {
	status := func(enabled bool, check func(context.Context) error) string {
		if !enabled {
			return "disabled"
		}
		if err := check(ctx); err != nil {
			return err.Error()
		}
		return "ok"
	}

	r := healthReport{
		Database: status(a.db != nil, func(ctx context.Context) error { return a.db.HealthCheck(ctx) }),
		MQTT:     status(a.mqtt != nil, func(ctx context.Context) error { return a.mqtt.HealthCheck(ctx) }),
		InfluxDB: status(a.influx != nil, func(ctx context.Context) error { return a.influx.HealthCheck(ctx) }),
	}
	if a.mqtt != nil {
		st := a.mqtt.Stats()
		r.MQTTStats = &st
	}
	if a.influx != nil {
		st := a.influx.Stats()
		r.InfluxStats = &st
	}
	return r
}
