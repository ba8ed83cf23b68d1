// Package task handles recurring tasks, their per-day completion records,
// and the markdown files they are stored in.
package task

import (
	"time"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
)

// Frequency describes how often a task is meant to recur. It is informational
// only: aggregation evaluates every task against every calendar day.
type Frequency string

// Supported frequencies.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Frequencies lists the allowed frequencies in display order.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Monthly}
}

// Task represents a recurring task parsed from a markdown file.
type Task struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Frequency   Frequency `yaml:"frequency" json:"frequency"`
	Active      bool      `yaml:"active" json:"active"`
	Created     time.Time `yaml:"created" json:"created"`
	Updated     time.Time `yaml:"updated" json:"updated"`
	Completions Record    `yaml:"completions,omitempty" json:"completions"`

	// Description is the markdown content below the frontmatter (not in YAML).
	Description string `yaml:"-" json:"description,omitempty"`

	// File is the path to the task file (not in YAML).
	File string `yaml:"-" json:"file,omitempty"`
}

// CreatedDate returns the calendar date of Created in the location the
// timestamp was recorded in.
func (t *Task) CreatedDate() date.Date {
	return date.Of(t.Created)
}

// StatusOn returns the explicit status recorded for d, if any.
func (t *Task) StatusOn(d date.Date) (Status, bool) {
	return t.Completions.Get(d)
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.Completions = t.Completions.Clone()
	return &c
}
