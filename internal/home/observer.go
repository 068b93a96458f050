package home

import (
	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
)

// Logger defines the logging interface used by the Service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger is a Logger that does nothing. It is the default for the
// service and for observers without a logger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// Observer receives notifications about service activity. Notifications are
// delivered synchronously after the operation completes and the service lock
// is released, so observers may call back into the Service.
type Observer interface {
	// ComponentCreated is called after a component is added.
	ComponentCreated(info component.Info)

	// ComponentRemoved is called after a component is deleted.
	ComponentRemoved(info component.Info)

	// ActionExecuted is called for every dispatch, successful or not.
	// info is the post-action snapshot, or zero when the ID was unknown.
	ActionExecuted(info component.Info, action string, res component.Result)

	// EventLogged is called for every entry appended to the event log.
	EventLogged(entry eventlog.Entry)

	// StateChanged is called with fresh statistics after any mutation,
	// reset or load.
	StateChanged(stats Stats)

	// PersistenceFailed is called when a write-through or reset delete
	// fails. The in-memory state is kept.
	PersistenceFailed(op string, err error)
}

// BaseObserver implements Observer with no-ops. Embed it to handle only the
// notifications of interest.
type BaseObserver struct{}

func (BaseObserver) ComponentCreated(component.Info)                         {}
func (BaseObserver) ComponentRemoved(component.Info)                         {}
func (BaseObserver) ActionExecuted(component.Info, string, component.Result) {}
func (BaseObserver) EventLogged(eventlog.Entry)                              {}
func (BaseObserver) StateChanged(Stats)                                      {}
func (BaseObserver) PersistenceFailed(string, error)                         {}

// notifications collects observer calls made while the service lock is held
// so they can be delivered after it is released.
type notifications []func(Observer)

func (n *notifications) add(fn func(Observer)) {
	*n = append(*n, fn)
}

func (n notifications) deliver(observers []Observer) {
	for _, fn := range n {
		for _, o := range observers {
			fn(o)
		}
	}
}
