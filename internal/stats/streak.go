package stats

import (
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// DefaultLookback is the number of days the streak walk considers.
const DefaultLookback = 30

// SuccessfulDay reports whether at least one active task was completed on d
// and none was missed. A day with no counted tasks is not successful.
func SuccessfulDay(tasks []*task.Task, d, today date.Date) bool {
	completed, missed := 0, 0
	for _, t := range tasks {
		if !Eligible(t) {
			continue
		}
		switch Resolve(t, d, today) {
		case Completed:
			completed++
		case Missed:
			missed++
		}
	}
	return completed > 0 && missed == 0
}

// Streak counts consecutive successful days walking back from today over at
// most lookback days. An unsuccessful today or yesterday is skipped without
// ending the walk; any other unsuccessful day ends it.
func Streak(tasks []*task.Task, today date.Date, lookback int) int {
	yesterday := today.AddDays(-1)
	days := date.Range(lookback, today)

	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		switch {
		case SuccessfulDay(tasks, d, today):
			streak++
		case d.Equal(today), d.Equal(yesterday):
			continue
		default:
			return streak
		}
	}
	return streak
}
