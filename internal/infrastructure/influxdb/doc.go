// Package influxdb provides InfluxDB connectivity for homesim.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, batched point writing and health monitoring. The simulator
// records component state and event history here so a session can be
// replayed on a dashboard.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB, cfg.Site.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WritePoint("component_state", tags, fields, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly.
package influxdb
