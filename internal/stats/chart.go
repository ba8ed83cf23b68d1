package stats

import (
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// WeekDays is the length of the weekly window and chart.
const WeekDays = 7

// ChartPoint is one day of the weekly chart.
type ChartPoint struct {
	Date      date.Date `json:"date"`
	Label     string    `json:"label"`
	Completed int       `json:"completed"`
	Missed    int       `json:"missed"`
}

// WeeklySeries returns raw completed/missed counts for each of the last
// seven days, oldest first.
func WeeklySeries(tasks []*task.Task, today date.Date) []ChartPoint {
	days := date.Range(WeekDays, today)
	points := make([]ChartPoint, len(days))
	for i, d := range days {
		p := ChartPoint{Date: d, Label: d.MonthDay()}
		for _, t := range tasks {
			if !Eligible(t) {
				continue
			}
			switch Resolve(t, d, today) {
			case Completed:
				p.Completed++
			case Missed:
				p.Missed++
			}
		}
		points[i] = p
	}
	return points
}
