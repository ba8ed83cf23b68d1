// Package board provides collection-level operations on a task snapshot:
// listing, per-task summaries and the activity log.
package board

import (
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int
}

// List filters and sorts a snapshot. The input slice is not modified.
func List(tasks []*task.Task, opts ListOptions, today date.Date) []*task.Task {
	out := Filter(tasks, opts.Filter, today)

	sortField := opts.SortBy
	if sortField == "" {
		sortField = FieldCreated
	}
	Sort(out, sortField, opts.Reverse)

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// FindByID returns the task with the given id from a snapshot.
func FindByID(tasks []*task.Task, id string) (*task.Task, error) {
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, task.NotFound(id)
}

// DayStatus is one cell of a task's recent-history strip.
type DayStatus struct {
	Date       date.Date        `json:"date"`
	Resolution stats.Resolution `json:"-"`
	Status     string           `json:"status"`
}

// TaskSummary is a task with its recent history resolved.
type TaskSummary struct {
	*task.Task
	Today  string      `json:"today"`
	Recent []DayStatus `json:"recent"`
	Window stats.Window `json:"window"`
}

// Summarize resolves t over the last days days. Inactive tasks still get a
// strip so paused tasks can be inspected, but their window stays zero.
func Summarize(t *task.Task, today date.Date, days int) TaskSummary {
	dates := date.Range(days, today)
	recent := make([]DayStatus, len(dates))
	for i, d := range dates {
		r := stats.Resolve(t, d, today)
		recent[i] = DayStatus{Date: d, Resolution: r, Status: r.String()}
	}

	return TaskSummary{
		Task:   t,
		Today:  stats.Resolve(t, today, today).String(),
		Recent: recent,
		Window: stats.Compute([]*task.Task{t}, dates, today),
	}
}

// FrequencyCount holds a count for one frequency.
type FrequencyCount struct {
	Frequency task.Frequency `json:"frequency"`
	Count     int            `json:"count"`
}

// Overview is the aggregate view of a snapshot for today.
type Overview struct {
	TotalTasks     int              `json:"total_tasks"`
	Active         int              `json:"active"`
	Paused         int              `json:"paused"`
	TodayCompleted int              `json:"today_completed"`
	TodayMissed    int              `json:"today_missed"`
	TodayPending   int              `json:"today_pending"`
	Frequencies    []FrequencyCount `json:"frequencies"`
}

// Summary counts tasks by state and today's resolution. Only active tasks
// are counted for today.
func Summary(tasks []*task.Task, today date.Date) Overview {
	ov := Overview{TotalTasks: len(tasks)}
	freq := make(map[task.Frequency]int)

	for _, t := range tasks {
		freq[t.Frequency]++
		if !t.Active {
			ov.Paused++
			continue
		}
		ov.Active++
		switch stats.Resolve(t, today, today) {
		case stats.Completed:
			ov.TodayCompleted++
		case stats.Missed:
			ov.TodayMissed++
		case stats.Pending:
			ov.TodayPending++
		}
	}

	for _, f := range task.Frequencies() {
		ov.Frequencies = append(ov.Frequencies, FrequencyCount{Frequency: f, Count: freq[f]})
	}
	return ov
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs.
func ParseIDs(arg string) ([]string, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := task.ValidateTaskID(p); err != nil {
			return nil, err
		}
		if !seen[p] {
			ids = append(ids, p)
			seen[p] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
