package component

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// maxNameLength is the longest accepted component name, in characters.
const maxNameLength = 100

// Component is a single simulated device.
//
// Exactly one variant pointer is non-nil and it always matches Kind; generic
// components have none. Components are created with New or FromRecord and
// mutated only through Execute.
type Component struct {
	// Identity
	ID   int
	Name string
	Kind Kind

	// Shared state
	Status Status
	Room   string

	// Timestamps (UTC)
	CreatedAt   time.Time
	LastUpdated time.Time

	// Variant payloads
	Light      *Light
	Thermostat *Thermostat
	Lock       *Lock
	Camera     *Camera
	Television *Television
}

// New creates a component of the given kind with variant defaults applied.
// The component starts offline; an empty room becomes DefaultRoom.
func New(id int, name string, kind Kind, room string, now time.Time) *Component {
	if strings.TrimSpace(room) == "" {
		room = DefaultRoom
	}
	c := &Component{
		ID:          id,
		Name:        name,
		Kind:        kind,
		Status:      StatusOffline,
		Room:        room,
		CreatedAt:   now,
		LastUpdated: now,
	}

	switch kind {
	case KindLight:
		c.Light = NewLight()
	case KindThermostat:
		c.Thermostat = NewThermostat()
	case KindLock:
		c.Lock = NewLock()
	case KindCamera:
		c.Camera = NewCamera()
	case KindTelevision:
		c.Television = NewTelevision()
	case KindGeneric:
	default:
		c.Kind = KindGeneric
	}
	return c
}

// ValidateName checks a user-supplied component name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return failf(ErrValidation, "Component name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return failf(ErrValidation, "Component name exceeds %d characters", maxNameLength)
	}
	return nil
}

// Clone returns an independent copy of the component.
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	cpy := *c
	if c.Light != nil {
		l := *c.Light
		cpy.Light = &l
	}
	if c.Thermostat != nil {
		t := *c.Thermostat
		cpy.Thermostat = &t
	}
	if c.Lock != nil {
		l := *c.Lock
		cpy.Lock = &l
	}
	if c.Camera != nil {
		cam := *c.Camera
		cpy.Camera = &cam
	}
	if c.Television != nil {
		tv := *c.Television
		cpy.Television = &tv
	}
	return &cpy
}

// IsOnline reports whether the component is powered on.
func (c *Component) IsOnline() bool {
	return c.Status == StatusOnline
}

func (c *Component) turnOn() string {
	c.Status = StatusOnline
	return fmt.Sprintf("%s turned on", c.Name)
}

func (c *Component) turnOff() string {
	c.Status = StatusOffline
	return fmt.Sprintf("%s turned off", c.Name)
}

func (c *Component) toggle() string {
	if c.IsOnline() {
		return c.turnOff()
	}
	return c.turnOn()
}

// Actions returns the capability descriptors for the component: the base
// power actions followed by the variant's own actions.
func (c *Component) Actions() []ActionDescriptor {
	actions := []ActionDescriptor{
		button("on", "On"),
		button("off", "Off"),
		button("toggle", "Toggle"),
	}

	switch c.Kind {
	case KindLight:
		actions = append(actions, c.Light.actions()...)
	case KindThermostat:
		actions = append(actions, c.Thermostat.actions()...)
	case KindLock:
		actions = append(actions, c.Lock.actions()...)
	case KindCamera:
		actions = append(actions, c.Camera.actions()...)
	case KindTelevision:
		actions = append(actions, c.Television.actions()...)
	case KindGeneric:
	}
	return actions
}

// Info returns the flattened snapshot of the component.
func (c *Component) Info() Info {
	info := Info{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Kind,
		Status:      c.Status,
		Room:        c.Room,
		CreatedAt:   c.CreatedAt,
		LastUpdated: c.LastUpdated,
		Actions:     c.Actions(),
	}

	switch c.Kind {
	case KindLight:
		info.Brightness = ptr(c.Light.Brightness)
	case KindThermostat:
		info.Temperature = ptr(c.Thermostat.Temperature)
	case KindLock:
		info.IsLocked = ptr(c.Lock.IsLocked)
	case KindCamera:
		info.IsRecording = ptr(c.Camera.IsRecording)
	case KindTelevision:
		tv := c.Television
		info.Volume = ptr(tv.Volume)
		info.IsMuted = ptr(tv.IsMuted)
		info.CurrentChannel = ptr(tv.CurrentChannel)
		info.ChannelName = tv.ChannelName()
		info.InputSource = string(tv.InputSource)
		info.TotalChannels = ptr(len(Channels))
	case KindGeneric:
	}
	return info
}

func ptr[T any](v T) *T {
	return &v
}
