package board

import (
	"slices"
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Active      *bool            // nil=no filter
	Frequencies []task.Frequency // empty=all
	Search      string           // case-insensitive substring of title or description
	Today       []string         // today's resolution: pending, completed, missed
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions, today date.Date) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, opts, today) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t *task.Task, opts FilterOptions, today date.Date) bool {
	if opts.Active != nil && t.Active != *opts.Active {
		return false
	}
	if len(opts.Frequencies) > 0 && !slices.Contains(opts.Frequencies, t.Frequency) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if len(opts.Today) > 0 {
		r := stats.Resolve(t, today, today)
		if !slices.Contains(opts.Today, r.String()) {
			return false
		}
	}
	return true
}

func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// TodayFilterValues lists the values accepted by the today filter.
func TodayFilterValues() []string {
	return []string{stats.Pending.String(), stats.Completed.String(), stats.Missed.String()}
}
