package stats

import (
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// Window holds the totals for a run of dates.
type Window struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Missed       int `json:"missed"`
	Productivity int `json:"productivity"`
}

// Compute aggregates the resolved statuses of every active task over dates.
// Pending and Excluded resolutions contribute nothing.
func Compute(tasks []*task.Task, dates []date.Date, today date.Date) Window {
	var w Window
	for _, d := range dates {
		for _, t := range tasks {
			if !Eligible(t) {
				continue
			}
			switch Resolve(t, d, today) {
			case Completed:
				w.Completed++
			case Missed:
				w.Missed++
			}
		}
	}
	w.Total = w.Completed + w.Missed
	w.Productivity = percent(w.Completed, w.Total)
	return w
}

// percent returns round(100*part/whole) with halves rounded up, or 0 when
// whole is 0. Inputs are non-negative counts.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
