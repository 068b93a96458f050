package home

import (
	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
)

// Stats summarises the registry. It is recomputed on every call.
type Stats struct {
	Total     int                    `json:"total"`
	Online    int                    `json:"online"`
	Offline   int                    `json:"offline"`
	ByType    map[component.Kind]int `json:"byType"`
	LastEvent *eventlog.Entry        `json:"lastEvent"`
}

// statsLocked computes Stats. The caller must hold s.mu.
func (s *Service) statsLocked() Stats {
	stats := Stats{
		Total:  len(s.order),
		ByType: make(map[component.Kind]int),
	}
	for _, id := range s.order {
		c := s.components[id]
		if c.IsOnline() {
			stats.Online++
		}
		stats.ByType[c.Kind]++
	}
	stats.Offline = stats.Total - stats.Online

	if last, ok := s.events.Last(); ok {
		stats.LastEvent = &last
	}
	return stats
}
