package task

// todayCycle is the three-state transition table used when a user taps
// today's checkbox: unmarked -> completed -> missed -> unmarked.
var todayCycle = map[Status]Status{
	StatusNone:      StatusCompleted,
	StatusCompleted: StatusMissed,
	StatusMissed:    StatusNone,
}

// NextTodayStatus returns the status that follows current in the today-cycle.
// StatusNone means the entry should be cleared. Unknown values restart the
// cycle at completed.
func NextTodayStatus(current Status) Status {
	if next, ok := todayCycle[current]; ok {
		return next
	}
	return StatusCompleted
}
