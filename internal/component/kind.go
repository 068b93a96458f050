package component

import "strings"

// Kind identifies which variant a component is.
type Kind string

// Kind constants.
const (
	KindGeneric    Kind = "generic"
	KindLight      Kind = "light"
	KindThermostat Kind = "thermostat"
	KindLock       Kind = "lock"
	KindCamera     Kind = "camera"
	KindTelevision Kind = "television"
)

// AllKinds lists every Kind in display order.
var AllKinds = []Kind{
	KindGeneric,
	KindLight,
	KindThermostat,
	KindLock,
	KindCamera,
	KindTelevision,
}

// kindAliases maps accepted spellings to their Kind.
var kindAliases = map[string]Kind{
	"tv": KindTelevision,
}

// ParseKind resolves a user-supplied type name, case-insensitively.
// Unknown or empty names fall back to KindGeneric.
func ParseKind(s string) Kind {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindAliases[name]; ok {
		return k
	}
	for _, k := range AllKinds {
		if string(k) == name {
			return k
		}
	}
	return KindGeneric
}

// Status is the power state of a component.
type Status string

// Status constants.
const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// DefaultRoom is assigned when no room is given.
const DefaultRoom = "Unassigned"
