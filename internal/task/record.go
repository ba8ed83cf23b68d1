package task

import (
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
)

// Status is an explicit per-day outcome stored in a completion record.
type Status string

// Recorded statuses. StatusNone is never stored; it stands for "no entry"
// in the today-cycle.
const (
	StatusNone      Status = ""
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// ParseStatus converts user input into a recorded Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCompleted, StatusMissed:
		return Status(s), nil
	}
	return StatusNone, ValidateStatus(s)
}

// Record maps calendar dates to explicit statuses. A missing key means the
// day was never marked, which is distinct from an explicit "missed".
type Record map[date.Date]Status

// Get returns the status recorded for d.
func (r Record) Get(d date.Date) (Status, bool) {
	s, ok := r[d]
	return s, ok
}

// Set records s for d, or removes the entry when s is StatusNone.
func (r Record) Set(d date.Date, s Status) {
	if s == StatusNone {
		delete(r, d)
		return
	}
	r[d] = s
}

// Dates returns the recorded dates in ascending order.
func (r Record) Dates() []date.Date {
	dates := make([]date.Date, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Clone returns a copy of r. A nil record clones to an empty one.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for d, s := range r {
		c[d] = s
	}
	return c
}

// MarshalYAML writes the record as a mapping keyed by YYYY-MM-DD so the
// encoder emits keys in date order.
func (r Record) MarshalYAML() (interface{}, error) {
	m := make(map[string]Status, len(r))
	for d, s := range r {
		m[d.String()] = s
	}
	return m, nil
}

// UnmarshalYAML reads a YYYY-MM-DD keyed mapping. Null entries are treated
// as cleared days and dropped.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]*string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(Record, len(raw))
	for key, val := range raw {
		d, err := date.Parse(key)
		if err != nil {
			return fmt.Errorf("completions: %w", err)
		}
		if val == nil || *val == "" {
			continue
		}
		s, err := ParseStatus(*val)
		if err != nil {
			return fmt.Errorf("completions[%s]: %w", key, err)
		}
		out[d] = s
	}
	*r = out
	return nil
}
