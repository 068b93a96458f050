package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
)

// DefaultNamespace prefixes every record key when none is configured.
const DefaultNamespace = "smartHome"

// Record key suffixes.
const (
	keyComponents = "components"
	keyCounter    = "counter"
	keyEventLog   = "eventLog"
)

// Snapshot is the complete persisted state of a simulated home.
type Snapshot struct {
	// Components in their persisted order.
	Components []*component.Component

	// Counter is the last issued component ID.
	Counter int

	// Events are oldest first.
	Events []eventlog.Entry
}

// Store maps a home's state onto three namespaced KV records:
// <ns>.components (JSON array of info records), <ns>.counter (decimal
// string) and <ns>.eventLog (JSON array, oldest first).
type Store struct {
	kv        KV
	namespace string
}

// New creates a Store over kv. An empty namespace means DefaultNamespace.
func New(kv KV, namespace string) *Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{kv: kv, namespace: namespace}
}

// Key returns the fully-qualified key for a record suffix.
func (s *Store) Key(suffix string) string {
	return s.namespace + "." + suffix
}

// Load reads all three records.
//
// Missing records load as empty. Corrupt records also load as empty rather
// than failing; only backend errors are returned, wrapped in ErrPersistence.
// now stands in for unparsable component timestamps.
func (s *Store) Load(ctx context.Context, now time.Time) (Snapshot, error) {
	var snap Snapshot

	raw, err := s.get(ctx, keyCounter)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Counter = decodeCounter(raw)

	raw, err = s.get(ctx, keyEventLog)
	if err != nil {
		return Snapshot{}, err
	}
	if raw != "" {
		snap.Events = eventlog.Decode([]byte(raw))
	}

	raw, err = s.get(ctx, keyComponents)
	if err != nil {
		return Snapshot{}, err
	}
	if raw != "" {
		snap.Components = decodeComponents([]byte(raw), now)
	}

	return snap, nil
}

// SaveComponents writes the component record.
func (s *Store) SaveComponents(ctx context.Context, infos []component.Info) error {
	if infos == nil {
		infos = []component.Info{}
	}
	data, err := json.Marshal(infos)
	if err != nil {
		return fmt.Errorf("%w: marshalling components: %w", ErrPersistence, err)
	}
	return s.set(ctx, keyComponents, string(data))
}

// SaveCounter writes the ID counter record.
func (s *Store) SaveCounter(ctx context.Context, counter int) error {
	return s.set(ctx, keyCounter, strconv.Itoa(counter))
}

// SaveEventLog writes the event log record.
func (s *Store) SaveEventLog(ctx context.Context, entries []eventlog.Entry) error {
	if entries == nil {
		entries = []eventlog.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: marshalling event log: %w", ErrPersistence, err)
	}
	return s.set(ctx, keyEventLog, string(data))
}

// Clear removes all three records. Every delete is attempted; the errors
// are joined.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, suffix := range []string{keyComponents, keyCounter, keyEventLog} {
		if err := s.kv.Delete(ctx, s.Key(suffix)); err != nil {
			errs = append(errs, fmt.Errorf("%w: deleting %s: %w", ErrPersistence, s.Key(suffix), err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) get(ctx context.Context, suffix string) (string, error) {
	v, err := s.kv.Get(ctx, s.Key(suffix))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading %s: %w", ErrPersistence, s.Key(suffix), err)
	}
	return v, nil
}

func (s *Store) set(ctx context.Context, suffix, value string) error {
	if err := s.kv.Set(ctx, s.Key(suffix), value); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrPersistence, s.Key(suffix), err)
	}
	return nil
}

// decodeCounter parses the counter record. Anything that is not a
// non-negative integer reads as zero.
func decodeCounter(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// decodeComponents rebuilds components from the persisted array. Invalid
// items are skipped. When an ID repeats, the later record replaces the
// earlier one in the earlier position.
func decodeComponents(data []byte, now time.Time) []*component.Component {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	out := make([]*component.Component, 0, len(items))
	index := make(map[int]int, len(items))
	for _, item := range items {
		var rec map[string]any
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			continue
		}
		c, ok := component.FromRecord(rec, now)
		if !ok {
			continue
		}
		if i, dup := index[c.ID]; dup {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}
