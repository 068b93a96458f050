// Package telemetry provides home.Observer implementations that export
// simulator activity.
//
//   - Metrics keeps Prometheus counters and gauges in its own registry.
//   - MQTTMirror publishes component state, events and stats to a broker.
//   - InfluxRecorder writes component state and event history as points.
//
// Observers run synchronously after each service operation. Export failures
// are logged and never reach the service.
package telemetry
