package component

import "time"

// Info is the flattened plain-data projection of a Component.
//
// It is returned to callers and is also the persisted record shape, so JSON
// keys are stable. Variant fields are pointers so that absent fields are
// omitted while zero values (brightness 0, unlocked) are kept.
type Info struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Type        Kind               `json:"type"`
	Status      Status             `json:"status"`
	Room        string             `json:"room"`
	CreatedAt   time.Time          `json:"createdAt"`
	LastUpdated time.Time          `json:"lastUpdated"`
	Actions     []ActionDescriptor `json:"actions"`

	// Light
	Brightness *int `json:"brightness,omitempty"`

	// Thermostat
	Temperature *float64 `json:"temperature,omitempty"`

	// Lock
	IsLocked *bool `json:"isLocked,omitempty"`

	// Camera
	IsRecording *bool `json:"isRecording,omitempty"`

	// Television
	Volume         *int   `json:"volume,omitempty"`
	IsMuted        *bool  `json:"isMuted,omitempty"`
	CurrentChannel *int   `json:"currentChannel,omitempty"`
	ChannelName    string `json:"channelName,omitempty"`
	InputSource    string `json:"inputSource,omitempty"`
	TotalChannels  *int   `json:"totalChannels,omitempty"`
}

// ActionKind distinguishes plain buttons from ranged controls.
type ActionKind string

// ActionKind constants.
const (
	ActionButton ActionKind = "button"
	ActionRange  ActionKind = "range"
)

// ActionDescriptor describes one capability a component exposes.
// Min, Max, Value and Unit are only set for range actions.
type ActionDescriptor struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Kind  ActionKind `json:"kind"`
	Min   *float64   `json:"min,omitempty"`
	Max   *float64   `json:"max,omitempty"`
	Value *float64   `json:"value,omitempty"`
	Unit  string     `json:"unit,omitempty"`
}

func button(key, label string) ActionDescriptor {
	return ActionDescriptor{Key: key, Label: label, Kind: ActionButton}
}

func rangeAction(key, label string, minVal, maxVal, value float64, unit string) ActionDescriptor {
	return ActionDescriptor{
		Key:   key,
		Label: label,
		Kind:  ActionRange,
		Min:   ptr(minVal),
		Max:   ptr(maxVal),
		Value: ptr(value),
		Unit:  unit,
	}
}
