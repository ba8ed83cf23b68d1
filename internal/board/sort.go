package board

import (
	"slices"
	"sort"
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// Sortable fields.
const (
	FieldCreated   = "created"
	FieldUpdated   = "updated"
	FieldTitle     = "title"
	FieldFrequency = "frequency"
)

// SortFields lists the valid --sort values.
func SortFields() []string {
	return []string{FieldCreated, FieldUpdated, FieldTitle, FieldFrequency}
}

// Sort sorts tasks by the given field. Frequencies sort daily, weekly,
// monthly; ties fall back to creation order.
func Sort(tasks []*task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if reverse {
			a, b = b, a
		}
		if c := compareTasks(a, b, field); c != 0 {
			return c < 0
		}
		return compareCreated(a, b) < 0
	})
}

func compareTasks(a, b *task.Task, field string) int {
	switch field {
	case FieldUpdated:
		return a.Updated.Compare(b.Updated)
	case FieldTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case FieldFrequency:
		order := task.Frequencies()
		return slices.Index(order, a.Frequency) - slices.Index(order, b.Frequency)
	default:
		return compareCreated(a, b)
	}
}

func compareCreated(a, b *task.Task) int {
	if c := a.Created.Compare(b.Created); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
