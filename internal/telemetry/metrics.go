package telemetry

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
	"github.com/nerrad567/homesim/internal/home"
)

// Metrics exports simulator activity as Prometheus metrics. It owns its
// registry so several services can run in one process.
type Metrics struct {
	home.BaseObserver

	registry *prometheus.Registry

	componentsTotal   prometheus.Gauge
	componentsOnline  prometheus.Gauge
	componentsByType  *prometheus.GaugeVec
	createdTotal      prometheus.Counter
	removedTotal      prometheus.Counter
	actionsTotal      *prometheus.CounterVec
	eventsTotal       *prometheus.CounterVec
	persistenceErrors *prometheus.CounterVec

	// mu serialises the reset-and-set of componentsByType.
	mu sync.Mutex
}

// NewMetrics creates a Metrics registry with every homesim metric registered
// under namespace.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		componentsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "components",
			Help:      "Number of components in the home",
		}),
		componentsOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "components_online",
			Help:      "Number of components that are online",
		}),
		componentsByType: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "components_by_type",
			Help:      "Number of components per type",
		}, []string{"type"}),
		createdTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "components_created_total",
			Help:      "Components created",
		}),
		removedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "components_removed_total",
			Help:      "Components removed",
		}),
		actionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Action dispatches by action and outcome",
		}, []string{"action", "outcome"}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Event log entries appended by type",
		}, []string{"type"}),
		persistenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Failed writes to the state store by operation",
		}, []string{"op"}),
	}

	registry.MustRegister(
		m.componentsTotal,
		m.componentsOnline,
		m.componentsByType,
		m.createdTotal,
		m.removedTotal,
		m.actionsTotal,
		m.eventsTotal,
		m.persistenceErrors,
	)

	return m
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ComponentCreated implements home.Observer.
func (m *Metrics) ComponentCreated(component.Info) {
	m.createdTotal.Inc()
}

// ComponentRemoved implements home.Observer.
func (m *Metrics) ComponentRemoved(component.Info) {
	m.removedTotal.Inc()
}

// ActionExecuted implements home.Observer.
func (m *Metrics) ActionExecuted(_ component.Info, action string, res component.Result) {
	m.actionsTotal.WithLabelValues(actionLabel(action), outcome(res)).Inc()
}

// EventLogged implements home.Observer.
func (m *Metrics) EventLogged(entry eventlog.Entry) {
	m.eventsTotal.WithLabelValues(string(entry.Type)).Inc()
}

// StateChanged implements home.Observer.
func (m *Metrics) StateChanged(stats home.Stats) {
	m.componentsTotal.Set(float64(stats.Total))
	m.componentsOnline.Set(float64(stats.Online))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.componentsByType.Reset()
	for _, kind := range component.AllKinds {
		m.componentsByType.WithLabelValues(string(kind)).Set(float64(stats.ByType[kind]))
	}
}

// PersistenceFailed implements home.Observer.
func (m *Metrics) PersistenceFailed(op string, _ error) {
	m.persistenceErrors.WithLabelValues(op).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	return writeFamilies(w, families)
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
