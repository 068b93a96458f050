package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicPrefix is used when the configured prefix is empty.
const DefaultTopicPrefix = "homesim"

// Topics builds the homesim MQTT topic hierarchy under a prefix:
//
//	{prefix}/status                    retained session status (LWT)
//	{prefix}/stats                     retained registry statistics
//	{prefix}/component/{id}/state      retained component snapshot
//	{prefix}/event/{type}              event log entries
//	{prefix}/action/{id}               action results
//	{prefix}/error/persistence         persistence failures
//
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct {
	Prefix string
}

// NewTopics returns topic builders for prefix, trimming slashes.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{Prefix: prefix}
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return DefaultTopicPrefix
	}
	return t.Prefix
}

// Status returns the session status topic.
//
// Example: homesim/status
func (t Topics) Status() string {
	return fmt.Sprintf("%s/status", t.prefix())
}

// Stats returns the registry statistics topic.
//
// Example: homesim/stats
func (t Topics) Stats() string {
	return fmt.Sprintf("%s/stats", t.prefix())
}

// ComponentState returns the retained state topic for a component.
//
// Example: homesim/component/3/state
func (t Topics) ComponentState(id int) string {
	return fmt.Sprintf("%s/component/%d/state", t.prefix(), id)
}

// Event returns the topic for event log entries of a type, lower-cased.
//
// Example: homesim/event/create
func (t Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/event/%s", t.prefix(), strings.ToLower(eventType))
}

// Action returns the topic for action results on a component.
//
// Example: homesim/action/3
func (t Topics) Action(id int) string {
	return fmt.Sprintf("%s/action/%d", t.prefix(), id)
}

// PersistenceError returns the topic for persistence failures.
//
// Example: homesim/error/persistence
func (t Topics) PersistenceError() string {
	return fmt.Sprintf("%s/error/persistence", t.prefix())
}

// AllTopics returns a pattern matching every homesim topic.
//
// Pattern: homesim/#
func (t Topics) AllTopics() string {
	return fmt.Sprintf("%s/#", t.prefix())
}
