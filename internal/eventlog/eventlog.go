// Package eventlog keeps the bounded audit trail of a simulated home.
//
// The log is append-only from the caller's point of view: entries are added
// at the end and, once Capacity is reached, the oldest entry is evicted.
// A Log is not safe for concurrent use; the owning service serialises access.
package eventlog

import (
	"encoding/json"
	"time"
)

// Capacity is the maximum number of entries a Log retains.
const Capacity = 50

// DefaultLimit is used by Recent when the requested limit is not positive.
const DefaultLimit = 10

// Type classifies an event.
type Type string

// Event types.
const (
	TypeCreate Type = "CREATE"
	TypeDelete Type = "DELETE"
	TypeAction Type = "ACTION"
	TypeSystem Type = "SYSTEM"
)

// Entry is one audit record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
}

// Log is a ring of at most Capacity entries, oldest first.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{entries: make([]Entry, 0, Capacity)}
}

// Append adds an entry, evicting the oldest one when the log is full.
func (l *Log) Append(e Entry) {
	if len(l.entries) >= Capacity {
		copy(l.entries, l.entries[len(l.entries)-Capacity+1:])
		l.entries = l.entries[:Capacity-1]
	}
	l.entries = append(l.entries, e)
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Last returns the newest entry, if any.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// means DefaultLimit.
func (l *Log) Recent(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	n := min(limit, len(l.entries))

	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Entries returns a copy of every entry, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
}

// Restore replaces the log contents with entries (oldest first). Only the
// newest Capacity entries are kept.
func (l *Log) Restore(entries []Entry) {
	l.Clear()
	for _, e := range entries {
		l.Append(e)
	}
}

// Decode parses a persisted log record. Anything that is not a JSON array
// yields an empty slice; array items that are not event objects are skipped.
func Decode(data []byte) []Entry {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			continue
		}
		if e.Type == "" && e.Message == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
