package component

import (
	"sort"
	"strings"
	"time"
)

// handler runs an action against a component whose capability has already
// been checked. It returns the success message and an optional data payload.
type handler func(c *Component, p Params) (string, any, error)

// actionDef is one row of the dispatch table.
type actionDef struct {
	// supports is the capability check for the action.
	supports func(c *Component) bool

	run handler

	// mutates is false for read-only actions, which leave LastUpdated alone.
	mutates bool
}

func anyKind(*Component) bool          { return true }
func hasLight(c *Component) bool      { return c.Light != nil }
func hasThermostat(c *Component) bool { return c.Thermostat != nil }
func hasLock(c *Component) bool       { return c.Lock != nil }
func hasCamera(c *Component) bool     { return c.Camera != nil }
func hasTelevision(c *Component) bool { return c.Television != nil }

// message adapts a message-only operation to a handler.
func message(fn func(c *Component) string) handler {
	return func(c *Component, _ Params) (string, any, error) {
		return fn(c), nil, nil
	}
}

// fallible adapts a validating operation to a handler.
func fallible(fn func(c *Component, p Params) (string, error)) handler {
	return func(c *Component, p Params) (string, any, error) {
		msg, err := fn(c, p)
		return msg, nil, err
	}
}

func inputAction(source InputSource) actionDef {
	return actionDef{
		supports: hasTelevision,
		mutates:  true,
		run: fallible(func(c *Component, _ Params) (string, error) {
			return c.Television.SetInputSource(source)
		}),
	}
}

// actionTable maps lower-case action keys to their definitions.
var actionTable = map[string]actionDef{
	// Base power actions
	"on": {supports: anyKind, mutates: true, run: message(func(c *Component) string {
		return c.turnOn()
	})},
	"off": {supports: anyKind, mutates: true, run: message(func(c *Component) string {
		return c.turnOff()
	})},
	"toggle": {supports: anyKind, mutates: true, run: message(func(c *Component) string {
		return c.toggle()
	})},

	// Light
	"setbrightness": {supports: hasLight, mutates: true, run: fallible(func(c *Component, p Params) (string, error) {
		level, ok := p.Int("brightness")
		if !ok {
			return "", errBrightnessRange()
		}
		return c.Light.SetBrightness(level)
	})},

	// Thermostat
	"settemperature": {supports: hasThermostat, mutates: true, run: fallible(func(c *Component, p Params) (string, error) {
		temp, ok := p.Number("temperature")
		if !ok {
			return "", errTemperatureRange()
		}
		return c.Thermostat.SetTemperature(temp)
	})},

	// Lock
	"lock": {supports: hasLock, mutates: true, run: message(func(c *Component) string {
		c.Lock.Engage()
		return c.Name + " is now locked"
	})},
	"unlock": {supports: hasLock, mutates: true, run: message(func(c *Component) string {
		c.Lock.Release()
		return c.Name + " is now unlocked"
	})},

	// Camera
	"record": {supports: hasCamera, mutates: true, run: message(func(c *Component) string {
		c.Camera.StartRecording()
		return c.Name + " recording started"
	})},
	"stop": {supports: hasCamera, mutates: true, run: message(func(c *Component) string {
		c.Camera.StopRecording()
		return c.Name + " recording stopped"
	})},

	// Television
	"setvolume": {supports: hasTelevision, mutates: true, run: fallible(func(c *Component, p Params) (string, error) {
		level, ok := p.Int("volume")
		if !ok {
			return "", errVolumeRange()
		}
		return c.Television.SetVolume(level)
	})},
	"setchannel": {supports: hasTelevision, mutates: true, run: fallible(func(c *Component, p Params) (string, error) {
		number, ok := p.Int("channel")
		if !ok {
			return "", errChannelRange()
		}
		return c.Television.SetChannel(number)
	})},
	"mute": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		c.Television.Mute()
		return c.Name + " muted"
	})},
	"unmute": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		c.Television.Unmute()
		return c.Name + " unmuted"
	})},
	"volumeup": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		return c.Television.VolumeUp()
	})},
	"volumedown": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		return c.Television.VolumeDown()
	})},
	"channelup": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		return c.Television.ChannelUp()
	})},
	"channeldown": {supports: hasTelevision, mutates: true, run: message(func(c *Component) string {
		return c.Television.ChannelDown()
	})},
	"inputtv":    inputAction(InputTV),
	"inputhdmi1": inputAction(InputHDMI1),
	"inputhdmi2": inputAction(InputHDMI2),
	"inputusb":   inputAction(InputUSB),
	"getchannels": {supports: hasTelevision, run: func(c *Component, _ Params) (string, any, error) {
		list, msg := c.Television.ChannelList()
		return msg, list, nil
	}},
}

// ActionKeys returns every known action key, lower-cased and sorted.
func ActionKeys() []string {
	keys := make([]string, 0, len(actionTable))
	for k := range actionTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsAction reports whether action is a known key, ignoring case.
func IsAction(action string) bool {
	_, ok := actionTable[strings.ToLower(action)]
	return ok
}

// Supports reports whether the component's variant implements the action.
// Unknown actions report false.
func (c *Component) Supports(action string) bool {
	def, ok := actionTable[strings.ToLower(action)]
	return ok && def.supports(c)
}

// Execute runs an action against the component.
//
// The key is matched case-insensitively. Unknown keys fail with
// ErrUnknownAction; keys the variant does not implement fail with
// ErrActionNotSupported. Validation failures leave the component untouched.
// On success of a mutating action LastUpdated is set to now.
func Execute(c *Component, action string, params Params, now time.Time) Result {
	def, ok := actionTable[strings.ToLower(action)]
	if !ok {
		return Failed(&ActionError{Kind: ErrUnknownAction, Message: MsgUnknownAction})
	}
	if !def.supports(c) {
		return Failed(&ActionError{Kind: ErrActionNotSupported, Message: MsgActionNotSupported})
	}
	if params == nil {
		params = Params{}
	}

	msg, data, err := def.run(c, params)
	if err != nil {
		return Failed(err)
	}
	if def.mutates {
		c.LastUpdated = now
	}

	res := OK(msg)
	res.Data = data
	return res
}
