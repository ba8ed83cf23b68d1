package task

import (
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
)

// ValidateTitle trims the title and rejects it when nothing is left.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", clierr.New(clierr.InvalidTitle, "title must not be empty")
	}
	return trimmed, nil
}

// ParseFrequency checks that a frequency is one of the supported values.
// An empty string yields the daily default.
func ParseFrequency(s string) (Frequency, error) {
	if s == "" {
		return Daily, nil
	}
	allowed := Frequencies()
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidFrequency, "invalid frequency %q", s).
		WithDetails(map[string]any{
			"frequency": s,
			"allowed":   allowed,
		})
}

// ValidateStatus returns a CLIError for an unknown completion status.
func ValidateStatus(status string) *clierr.Error {
	return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status).
		WithDetails(map[string]any{
			"status":  status,
			"allowed": []Status{StatusCompleted, StatusMissed},
		})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID rejects IDs that could not have been assigned by a store.
func ValidateTaskID(input string) error {
	if input == "" || strings.ContainsAny(input, "-/\\. ") {
		return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
			WithDetails(map[string]any{"input": input})
	}
	return nil
}

// NotFound returns a CLIError for a task ID with no backing record.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}
