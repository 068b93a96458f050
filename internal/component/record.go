package component

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FromRecord rebuilds a component from a persisted info-shaped record, as
// produced by encoding Info to JSON and decoding it back into a map.
//
// Numeric fields must be JSON numbers; numeric strings count as wrong-typed.
// Records without a positive integral "id" are rejected. Every other field
// degrades instead of failing: missing, wrong-typed or out-of-range variant
// fields take the variant default, unparsable timestamps become now, and any
// status other than "online" restores as offline.
func FromRecord(rec map[string]any, now time.Time) (*Component, bool) {
	if rec == nil {
		return nil, false
	}
	r := record(rec)

	id, ok := r.integer("id")
	if !ok || id <= 0 {
		return nil, false
	}

	name, _ := rec["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Component %d", id)
	}
	kind, _ := rec["type"].(string)
	room, _ := rec["room"].(string)

	c := New(id, name, ParseKind(kind), room, now)

	if status, _ := rec["status"].(string); Status(status) == StatusOnline {
		c.Status = StatusOnline
	}
	c.LastUpdated = recordTime(rec, "lastUpdated", now)
	c.CreatedAt = recordTime(rec, "createdAt", c.LastUpdated)

	switch c.Kind {
	case KindLight:
		if v, ok := r.integer("brightness"); ok && v >= MinBrightness && v <= MaxBrightness {
			c.Light.Brightness = v
		}
	case KindThermostat:
		if v, ok := r.number("temperature"); ok && v >= MinTemperature && v <= MaxTemperature {
			c.Thermostat.Temperature = v
		}
	case KindLock:
		if v, ok := rec["isLocked"].(bool); ok {
			c.Lock.IsLocked = v
		}
	case KindCamera:
		if v, ok := rec["isRecording"].(bool); ok {
			c.Camera.IsRecording = v
		}
	case KindTelevision:
		restoreTelevision(c.Television, r)
	case KindGeneric:
	}
	return c, true
}

func restoreTelevision(tv *Television, r record) {
	if v, ok := r.integer("volume"); ok && v >= MinVolume && v <= MaxVolume {
		tv.Volume = v
	}
	if v, ok := r.integer("currentChannel"); ok && v >= 1 && v <= len(Channels) {
		tv.CurrentChannel = v
	}
	if v, ok := r["inputSource"].(string); ok && InputSource(v).Valid() {
		tv.InputSource = InputSource(v)
	}
	if v, ok := r["isMuted"].(bool); ok {
		tv.IsMuted = v
	}
}

// record reads persisted fields. Unlike Params it accepts only JSON numbers
// for numeric fields.
type record map[string]any

func (r record) number(key string) (float64, bool) {
	switch r[key].(type) {
	case float64, json.Number:
		return Params(r).Number(key)
	}
	return 0, false
}

func (r record) integer(key string) (int, bool) {
	switch r[key].(type) {
	case float64, json.Number:
		return Params(r).Int(key)
	}
	return 0, false
}

// recordTime parses an RFC 3339 timestamp field, returning fallback when the
// field is missing or unparsable.
func recordTime(rec map[string]any, key string, fallback time.Time) time.Time {
	s, ok := rec[key].(string)
	if !ok || s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
