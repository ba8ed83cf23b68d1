package board

import (
	"sort"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const (
	groupFrequency = "frequency"
	groupState     = "state"

	stateActive = "active"
	statePaused = "paused"
)

// GroupSummary is one group within a grouped stats view.
type GroupSummary struct {
	Key     string       `json:"key"`
	Total   int          `json:"total"`
	Weekly  stats.Window `json:"weekly"`
	Monthly stats.Window `json:"monthly"`
}

// GroupBy splits tasks by field and computes the weekly and monthly windows
// for each group. Paused tasks are grouped but, as everywhere else, do not
// contribute to the windows.
func GroupBy(tasks []*task.Task, field string, today date.Date) []GroupSummary {
	groups := make(map[string][]*task.Task)
	for _, t := range tasks {
		key := groupKey(t, field)
		groups[key] = append(groups[key], t)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sortGroupKeys(keys, field)

	week := date.Range(stats.WeekDays, today)
	month := date.Range(stats.MonthDays, today)

	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, GroupSummary{
			Key:     k,
			Total:   len(g),
			Weekly:  stats.Compute(g, week, today),
			Monthly: stats.Compute(g, month, today),
		})
	}
	return out
}

func groupKey(t *task.Task, field string) string {
	switch field {
	case groupFrequency:
		return string(t.Frequency)
	case groupState:
		if t.Active {
			return stateActive
		}
		return statePaused
	default:
		return "(all)"
	}
}

func sortGroupKeys(keys []string, field string) {
	switch field {
	case groupFrequency:
		rank := make(map[string]int)
		for i, f := range task.Frequencies() {
			rank[string(f)] = i
		}
		sort.SliceStable(keys, func(i, j int) bool { return rank[keys[i]] < rank[keys[j]] })
	case groupState:
		sort.SliceStable(keys, func(i, j int) bool { return keys[i] == stateActive && keys[j] != stateActive })
	default:
		sort.Strings(keys)
	}
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{groupFrequency, groupState}
}
