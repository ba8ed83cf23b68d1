package stats

import (
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// MonthDays is the length of the monthly window, the streak lookback and
// the export range.
const MonthDays = 30

// Derived bundles everything computed from one task snapshot. A new value
// replaces the previous one on every snapshot.
type Derived struct {
	Today       date.Date    `json:"today"`
	Weekly      Window       `json:"weekly"`
	Monthly     Window       `json:"monthly"`
	Streak      int          `json:"streak"`
	WeeklyChart []ChartPoint `json:"weekly_chart"`
}

// Recompute derives all statistics for tasks as of today.
func Recompute(tasks []*task.Task, today date.Date) Derived {
	week := date.Range(WeekDays, today)
	month := date.Range(MonthDays, today)

	return Derived{
		Today:       today,
		Weekly:      Compute(tasks, week, today),
		Monthly:     Compute(tasks, month, today),
		Streak:      Streak(tasks, today, DefaultLookback),
		WeeklyChart: WeeklySeries(tasks, today),
	}
}
