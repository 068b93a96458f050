package telemetry

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
	"github.com/nerrad567/homesim/internal/home"
	"github.com/nerrad567/homesim/internal/infrastructure/mqtt"
)

// Publisher is the subset of the MQTT client used by MQTTMirror.
// *mqtt.Client satisfies it.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// actionMessage is the payload published for every action dispatch.
type actionMessage struct {
	ComponentID int    `json:"componentId"`
	Action      string `json:"action"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

// persistenceMessage is the payload published when a store write fails.
type persistenceMessage struct {
	Op        string `json:"op"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// MQTTMirror mirrors the home onto MQTT topics (see mqtt.Topics):
// component snapshots and stats are retained, events and action results
// are not. Removed components have their retained state cleared.
type MQTTMirror struct {
	home.BaseObserver

	pub    Publisher
	topics mqtt.Topics
	qos    byte
	logger home.Logger
	now    func() time.Time

	mu        sync.Mutex
	published map[int]bool // ids with retained state on the broker
}

// NewMQTTMirror creates a mirror publishing through pub.
func NewMQTTMirror(pub Publisher, topics mqtt.Topics, qos byte, logger home.Logger) *MQTTMirror {
	if logger == nil {
		logger = home.NopLogger{}
	}
	return &MQTTMirror{
		pub:       pub,
		topics:    topics,
		qos:       qos,
		logger:    logger,
		now:       time.Now,
		published: make(map[int]bool),
	}
}

// Sync publishes retained state for every component, typically right after
// the service has loaded.
func (m *MQTTMirror) Sync(infos []component.Info) {
	for _, info := range infos {
		m.publishState(info)
	}
}

// ComponentCreated implements home.Observer.
func (m *MQTTMirror) ComponentCreated(info component.Info) {
	m.publishState(info)
}

// ComponentRemoved implements home.Observer.
func (m *MQTTMirror) ComponentRemoved(info component.Info) {
	m.clearState(info.ID)
}

// ActionExecuted implements home.Observer.
func (m *MQTTMirror) ActionExecuted(info component.Info, action string, res component.Result) {
	if info.ID == 0 {
		return
	}
	m.publishJSON(m.topics.Action(info.ID), actionMessage{
		ComponentID: info.ID,
		Action:      action,
		Success:     res.Success,
		Message:     res.Message,
		Timestamp:   m.timestamp(),
	}, false)

	if res.Success {
		m.publishState(info)
	}
}

// EventLogged implements home.Observer.
func (m *MQTTMirror) EventLogged(entry eventlog.Entry) {
	m.publishJSON(m.topics.Event(string(entry.Type)), entry, false)
}

// StateChanged implements home.Observer. An empty home clears every retained
// component state published by this mirror.
func (m *MQTTMirror) StateChanged(stats home.Stats) {
	if stats.Total == 0 {
		m.mu.Lock()
		ids := make([]int, 0, len(m.published))
		for id := range m.published {
			ids = append(ids, id)
		}
		m.mu.Unlock()

		for _, id := range ids {
			m.clearState(id)
		}
	}
	m.publishJSON(m.topics.Stats(), stats, true)
}

// PersistenceFailed implements home.Observer.
func (m *MQTTMirror) PersistenceFailed(op string, err error) {
	m.publishJSON(m.topics.PersistenceError(), persistenceMessage{
		Op:        op,
		Error:     err.Error(),
		Timestamp: m.timestamp(),
	}, false)
}

func (m *MQTTMirror) publishState(info component.Info) {
	if m.publishJSON(m.topics.ComponentState(info.ID), info, true) {
		m.mu.Lock()
		m.published[info.ID] = true
		m.mu.Unlock()
	}
}

// clearState publishes an empty retained message, which deletes the
// retained state on the broker.
func (m *MQTTMirror) clearState(id int) {
	if m.publish(m.topics.ComponentState(id), nil, true) {
		m.mu.Lock()
		delete(m.published, id)
		m.mu.Unlock()
	}
}

func (m *MQTTMirror) publishJSON(topic string, v any, retained bool) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn("encoding mqtt payload failed", "topic", topic, "error", err)
		return false
	}
	return m.publish(topic, payload, retained)
}

func (m *MQTTMirror) publish(topic string, payload []byte, retained bool) bool {
	if err := m.pub.Publish(topic, payload, m.qos, retained); err != nil {
		m.logger.Warn("mqtt publish failed", "topic", topic, "error", err)
		return false
	}
	return true
}

func (m *MQTTMirror) timestamp() string {
	return m.now().UTC().Format(time.RFC3339Nano)
}
