// Package stats derives productivity statistics from task completion
// records. Every function here is pure: "today" is always a parameter and
// nothing returns an error for well-formed input.
package stats

import (
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// Resolution is the effective status of one task on one date.
type Resolution int

// Resolutions, in the order the resolver tests for them.
const (
	Excluded Resolution = iota
	Completed
	Missed
	Pending
)

var resolutionNames = [...]string{
	Excluded:  "excluded",
	Completed: "completed",
	Missed:    "missed",
	Pending:   "pending",
}

func (r Resolution) String() string {
	if r < 0 || int(r) >= len(resolutionNames) {
		return "unknown"
	}
	return resolutionNames[r]
}

// Counted reports whether r contributes to window totals.
func (r Resolution) Counted() bool {
	return r == Completed || r == Missed
}

// Resolve returns the effective status of t on d:
//
//  1. before the task's creation date it is Excluded;
//  2. an explicit record wins;
//  3. an unmarked today is Pending;
//  4. any other unmarked day is Missed.
func Resolve(t *task.Task, d, today date.Date) Resolution {
	if d.Before(t.CreatedDate()) {
		return Excluded
	}
	if s, ok := t.StatusOn(d); ok {
		switch s {
		case task.StatusCompleted:
			return Completed
		case task.StatusMissed:
			return Missed
		}
	}
	if d.Equal(today) {
		return Pending
	}
	return Missed
}

// Eligible reports whether t takes part in aggregation at all. Inactive
// tasks never contribute; the creation-date cut-off is handled by Resolve.
func Eligible(t *task.Task) bool {
	return t != nil && t.Active
}
