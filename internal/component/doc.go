// Package component provides the simulated smart-home device model.
//
// A Component is one simulated device. Every component shares a common set
// of fields (identity, status, room, timestamps) and carries exactly one
// variant payload that matches its Kind:
//
//	┌──────────────┬──────────────────────────────────────────────┐
//	│ Kind         │ Variant payload                              │
//	├──────────────┼──────────────────────────────────────────────┤
//	│ generic      │ (none)                                       │
//	│ light        │ *Light      brightness 0-100                 │
//	│ thermostat   │ *Thermostat temperature 16-30 °C             │
//	│ lock         │ *Lock       locked flag                      │
//	│ camera       │ *Camera     recording flag                   │
//	│ television   │ *Television volume, channel, input, mute     │
//	└──────────────┴──────────────────────────────────────────────┘
//
// # Actions
//
// Components are mutated only through Execute, which looks up an action key
// (case-insensitive) in a fixed table. Each table entry carries a capability
// check; a key that exists but is not supported by the component's variant
// fails with ErrActionNotSupported, an unknown key with ErrUnknownAction.
//
//	c := component.New(1, "Lamp", component.KindLight, "", time.Now().UTC())
//	res := component.Execute(c, "setBrightness", component.Params{"brightness": 40}, time.Now().UTC())
//	if !res.Success {
//	    // res.Message is user-facing, res.Err matches errors.Is(res.Err, component.ErrValidation)
//	}
//
// # Snapshots
//
// Info returns a flattened plain-data view used both by callers and as the
// persisted record format. FromRecord rebuilds a component from a decoded
// record, falling back to variant defaults for missing or malformed fields.
//
// # Thread Safety
//
// Components are plain values and are not safe for concurrent mutation. The
// home.Service owns all live components and serialises access to them.
package component
