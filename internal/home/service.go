package home

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
	"github.com/nerrad567/homesim/internal/store"
)

// Reset modes.
const (
	ResetEventLog = "event-log"
	ResetFactory  = "factory"
)

// Persistence operation names reported to observers and logs.
const (
	opSaveComponents = "save_components"
	opSaveEventLog   = "save_event_log"
	opClear          = "clear"
	opLoad           = "load"
)

// Service owns the components of a simulated home, dispatches actions to
// them, keeps the event log and writes state through to the store.
//
// All public methods are thread-safe.
type Service struct {
	mu         sync.Mutex
	store      *store.Store
	components map[int]*component.Component
	order      []int // creation order
	counter    int
	events     *eventlog.Log

	logger    Logger
	observers []Observer
	now       func() time.Time
}

// New creates an empty service persisting to st. For memory-only state use
// a store over store.NewMemoryKV. Call Load to restore persisted state.
func New(st *store.Store) *Service {
	if st == nil {
		st = store.New(store.NewMemoryKV(), "")
	}
	return &Service{
		store:      st,
		components: make(map[int]*component.Component),
		events:     eventlog.New(),
		logger:     NopLogger{},
		now:        time.Now,
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger == nil {
		logger = NopLogger{}
	}
	s.logger = logger
}

// SetClock replaces the time source. Timestamps are always stored in UTC.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// AddObserver registers an observer for service notifications.
func (s *Service) AddObserver(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// unlock releases s.mu and delivers pending notifications.
func (s *Service) unlock(n notifications) {
	observers := s.observers
	s.mu.Unlock()
	n.deliver(observers)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// Load replaces the in-memory state with the persisted snapshot. The ID
// counter is raised to the highest loaded ID.
//
// Corrupt records load as empty. A backend read failure is handled like a
// write failure: it is logged at Warn, reported through PersistenceFailed
// and the home starts empty.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	var n notifications
	defer func() { s.unlock(n) }()

	snap, err := s.store.Load(ctx, s.clock())
	if err != nil {
		s.persistFailedLocked(&n, opLoad, err)
		snap = store.Snapshot{}
	}

	s.components = make(map[int]*component.Component, len(snap.Components))
	s.order = s.order[:0]
	s.counter = snap.Counter
	for _, c := range snap.Components {
		s.components[c.ID] = c
		s.order = append(s.order, c.ID)
		if c.ID > s.counter {
			s.counter = c.ID
		}
	}
	s.events.Restore(snap.Events)

	s.logger.Info("home state loaded",
		"components", len(s.order),
		"counter", s.counter,
		"events", s.events.Len(),
	)
	stats := s.statsLocked()
	n.add(func(o Observer) { o.StateChanged(stats) })
}

// Save writes all three records. Errors are joined and returned.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(
		s.store.SaveComponents(ctx, s.infosLocked()),
		s.store.SaveCounter(ctx, s.counter),
		s.store.SaveEventLog(ctx, s.events.Entries()),
	)
}

// CreateComponent adds a component of the given type and returns its
// snapshot. Unknown types create a generic component; "tv" is accepted for
// television. An empty room means component.DefaultRoom.
func (s *Service) CreateComponent(ctx context.Context, name, kind, room string) (component.Info, error) {
	name = strings.TrimSpace(name)
	if err := component.ValidateName(name); err != nil {
		return component.Info{}, err
	}

	s.mu.Lock()
	var n notifications
	defer func() { s.unlock(n) }()

	s.counter++
	c := component.New(s.counter, name, component.ParseKind(kind), strings.TrimSpace(room), s.clock())
	s.components[c.ID] = c
	s.order = append(s.order, c.ID)

	s.logEventLocked(ctx, &n, eventlog.TypeCreate, fmt.Sprintf("Component \"%s\" (%s) created", name, c.Kind))
	s.persistComponentsLocked(ctx, &n)
	s.logger.Info("component created", "id", c.ID, "name", name, "type", c.Kind, "room", c.Room)

	info := c.Info()
	stats := s.statsLocked()
	n.add(func(o Observer) { o.ComponentCreated(info) })
	n.add(func(o Observer) { o.StateChanged(stats) })
	return info, nil
}

// RemoveComponent deletes a component. IDs are never reused.
func (s *Service) RemoveComponent(ctx context.Context, id int) component.Result {
	s.mu.Lock()
	var n notifications
	defer func() { s.unlock(n) }()

	c, ok := s.components[id]
	if !ok {
		return component.Failed(component.NotFoundError())
	}

	info := c.Info()
	delete(s.components, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logEventLocked(ctx, &n, eventlog.TypeDelete, fmt.Sprintf("Component \"%s\" deleted", c.Name))
	s.persistComponentsLocked(ctx, &n)
	s.logger.Info("component removed", "id", id, "name", c.Name)

	stats := s.statsLocked()
	n.add(func(o Observer) { o.ComponentRemoved(info) })
	n.add(func(o Observer) { o.StateChanged(stats) })
	return component.OK(c.Name + " removed")
}

// GetComponent returns a copy of the component with the given ID.
func (s *Service) GetComponent(id int) (*component.Component, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.components[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// ListComponents returns snapshots of every component in creation order.
func (s *Service) ListComponents() []component.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infosLocked()
}

// ListByRoom returns the components assigned to room, in creation order.
// An empty room selects component.DefaultRoom.
func (s *Service) ListByRoom(room string) []component.Info {
	room = strings.TrimSpace(room)
	if room == "" {
		room = component.DefaultRoom
	}
	return s.filter(func(c *component.Component) bool { return c.Room == room })
}

// ListByType returns the components of the given type, in creation order.
// The type is resolved like CreateComponent does.
func (s *Service) ListByType(kind string) []component.Info {
	k := component.ParseKind(kind)
	return s.filter(func(c *component.Component) bool { return c.Kind == k })
}

// Rooms returns the distinct room names in use, sorted.
func (s *Service) Rooms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	rooms := make([]string, 0)
	for _, id := range s.order {
		room := s.components[id].Room
		if !seen[room] {
			seen[room] = true
			rooms = append(rooms, room)
		}
	}
	sort.Strings(rooms)
	return rooms
}

// Count returns the number of components.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// ExecuteAction dispatches an action to a component.
//
// Failures (unknown ID, unknown action, unsupported action, invalid
// parameters) change nothing and are neither logged nor persisted.
// Successful actions are logged as ACTION events and persisted.
func (s *Service) ExecuteAction(ctx context.Context, id int, action string, params component.Params) component.Result {
	s.mu.Lock()
	var n notifications
	defer func() { s.unlock(n) }()

	c, ok := s.components[id]
	if !ok {
		res := component.Failed(component.NotFoundError())
		n.add(func(o Observer) { o.ActionExecuted(component.Info{}, action, res) })
		return res
	}

	res := component.Execute(c, action, params, s.clock())
	info := c.Info()
	n.add(func(o Observer) { o.ActionExecuted(info, action, res) })

	if !res.Success {
		s.logger.Debug("action rejected", "id", id, "action", action, "reason", res.Message)
		return res
	}

	s.logEventLocked(ctx, &n, eventlog.TypeAction, fmt.Sprintf("%s on \"%s\": %s", action, c.Name, res.Message))
	s.persistComponentsLocked(ctx, &n)
	s.logger.Debug("action executed", "id", id, "action", action)

	stats := s.statsLocked()
	n.add(func(o Observer) { o.StateChanged(stats) })
	return res
}

// Stats returns current registry statistics.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

// EventLog returns up to limit entries, newest first. A limit of zero or less
// means eventlog.DefaultLimit.
func (s *Service) EventLog(limit int) []eventlog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Recent(limit)
}

// Reset clears state according to mode.
//
// ResetEventLog empties the event log and records a SYSTEM entry.
// ResetFactory removes every component, the counter and the log, deletes the
// persisted records and then records a single SYSTEM entry.
func (s *Service) Reset(ctx context.Context, mode string) component.Result {
	s.mu.Lock()
	var n notifications
	defer func() { s.unlock(n) }()

	var res component.Result
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ResetEventLog:
		s.events.Clear()
		s.logEventLocked(ctx, &n, eventlog.TypeSystem, "Event log cleared")
		res = component.OK("Event log cleared")

	case ResetFactory:
		s.components = make(map[int]*component.Component)
		s.order = s.order[:0]
		s.counter = 0
		s.events.Clear()
		if err := s.store.Clear(ctx); err != nil {
			s.persistFailedLocked(&n, opClear, err)
		}
		s.logEventLocked(ctx, &n, eventlog.TypeSystem, "All data cleared")
		res = component.OK("All data has been reset")

	default:
		return component.Failed(&component.ActionError{
			Kind:    component.ErrValidation,
			Message: "Unknown reset mode",
		})
	}

	s.logger.Info("home state reset", "mode", mode)
	stats := s.statsLocked()
	n.add(func(o Observer) { o.StateChanged(stats) })
	return res
}

// logEventLocked appends an entry and persists the event log record.
func (s *Service) logEventLocked(ctx context.Context, n *notifications, typ eventlog.Type, message string) {
	entry := eventlog.Entry{Timestamp: s.clock(), Type: typ, Message: message}
	s.events.Append(entry)

	if err := s.store.SaveEventLog(ctx, s.events.Entries()); err != nil {
		s.persistFailedLocked(n, opSaveEventLog, err)
	}
	n.add(func(o Observer) { o.EventLogged(entry) })
}

// persistComponentsLocked writes the component and counter records.
func (s *Service) persistComponentsLocked(ctx context.Context, n *notifications) {
	err := errors.Join(
		s.store.SaveComponents(ctx, s.infosLocked()),
		s.store.SaveCounter(ctx, s.counter),
	)
	if err != nil {
		s.persistFailedLocked(n, opSaveComponents, err)
	}
}

func (s *Service) persistFailedLocked(n *notifications, op string, err error) {
	s.logger.Warn("persisting home state failed", "op", op, "error", err)
	n.add(func(o Observer) { o.PersistenceFailed(op, err) })
}

func (s *Service) infosLocked() []component.Info {
	infos := make([]component.Info, 0, len(s.order))
	for _, id := range s.order {
		infos = append(infos, s.components[id].Info())
	}
	return infos
}

func (s *Service) filter(match func(c *component.Component) bool) []component.Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]component.Info, 0)
	for _, id := range s.order {
		if c := s.components[id]; match(c) {
			infos = append(infos, c.Info())
		}
	}
	return infos
}
