package telemetry

import (
	"strconv"
	"time"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
	"github.com/nerrad567/homesim/internal/home"
)

// Measurement names written by InfluxRecorder.
const (
	MeasurementComponentState = "component_state"
	MeasurementAction         = "component_action"
	MeasurementEvent          = "home_event"
	MeasurementStats          = "home_stats"
)

// PointWriter is the subset of the InfluxDB client used by InfluxRecorder.
// *influxdb.Client satisfies it.
type PointWriter interface {
	WritePoint(measurement string, tags map[string]string, fields map[string]any, timestamp time.Time)
}

// InfluxRecorder writes simulator history as time-series points: component
// state after every change, each dispatch, each event log entry and the
// registry statistics.
type InfluxRecorder struct {
	home.BaseObserver

	w   PointWriter
	now func() time.Time
}

// NewInfluxRecorder creates a recorder writing through w.
func NewInfluxRecorder(w PointWriter) *InfluxRecorder {
	return &InfluxRecorder{w: w, now: time.Now}
}

// SetClock replaces the time source used for points without their own
// timestamp.
func (r *InfluxRecorder) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	r.now = now
}

// ComponentCreated implements home.Observer.
func (r *InfluxRecorder) ComponentCreated(info component.Info) {
	r.writeState(info)
}

// ActionExecuted implements home.Observer.
func (r *InfluxRecorder) ActionExecuted(info component.Info, action string, res component.Result) {
	tags := map[string]string{
		"action":  actionLabel(action),
		"outcome": outcome(res),
	}
	if info.ID != 0 {
		tags["component_id"] = strconv.Itoa(info.ID)
		tags["type"] = string(info.Type)
	}
	r.w.WritePoint(MeasurementAction, tags, map[string]any{
		"success": res.Success,
		"message": res.Message,
	}, r.now().UTC())

	if res.Success {
		r.writeState(info)
	}
}

// EventLogged implements home.Observer.
func (r *InfluxRecorder) EventLogged(entry eventlog.Entry) {
	r.w.WritePoint(MeasurementEvent,
		map[string]string{"type": string(entry.Type)},
		map[string]any{"message": entry.Message},
		entry.Timestamp)
}

// StateChanged implements home.Observer.
func (r *InfluxRecorder) StateChanged(stats home.Stats) {
	r.w.WritePoint(MeasurementStats, nil, map[string]any{
		"total":   stats.Total,
		"online":  stats.Online,
		"offline": stats.Offline,
	}, r.now().UTC())
}

func (r *InfluxRecorder) writeState(info component.Info) {
	r.w.WritePoint(MeasurementComponentState, map[string]string{
		"component_id": strconv.Itoa(info.ID),
		"type":         string(info.Type),
		"room":         info.Room,
	}, stateFields(info), info.LastUpdated)
}

// stateFields flattens the variant fields present in info.
func stateFields(info component.Info) map[string]any {
	fields := map[string]any{
		"online": info.Status == component.StatusOnline,
	}
	if info.Brightness != nil {
		fields["brightness"] = *info.Brightness
	}
	if info.Temperature != nil {
		fields["temperature"] = *info.Temperature
	}
	if info.IsLocked != nil {
		fields["locked"] = *info.IsLocked
	}
	if info.IsRecording != nil {
		fields["recording"] = *info.IsRecording
	}
	if info.Volume != nil {
		fields["volume"] = *info.Volume
	}
	if info.IsMuted != nil {
		fields["muted"] = *info.IsMuted
	}
	if info.CurrentChannel != nil {
		fields["channel"] = *info.CurrentChannel
	}
	if info.InputSource != "" {
		fields["input"] = info.InputSource
	}
	return fields
}
