package board

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Log levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// LogEntry represents a single activity log entry.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	User      string    `json:"user,omitempty"`
	Action    string    `json:"action"`
	TaskID    string    `json:"task_id,omitempty"`
	Detail    string    `json:"detail"`
}

// LogPath returns the activity log location inside dir.
func LogPath(dir string) string {
	return filepath.Join(dir, logFileName)
}

// AppendLog appends a log entry to the activity log file in dir.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func AppendLog(dir string, entry LogEntry) error {
	path := LogPath(dir)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted data dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Best-effort.
	_ = truncateLogIfNeeded(path)

	return nil
}

// ReadLog returns up to limit of the newest entries, oldest first. A limit
// of zero or less returns everything. A missing log is empty.
func ReadLog(dir string, limit int) ([]LogEntry, error) {
	lines, err := readLines(LogPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]LogEntry, 0, len(lines))
	for _, line := range lines {
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// truncateLogIfNeeded rewrites the log keeping only the newest
// maxLogEntries lines.
func truncateLogIfNeeded(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= maxLogEntries {
		return nil
	}
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// LogMutation appends an info entry. Errors are discarded because logging
// should never fail a command.
func LogMutation(dir, user, action, taskID, detail string) {
	_ = AppendLog(dir, LogEntry{
		Timestamp: time.Now(),
		Level:     LevelInfo,
		User:      user,
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	})
}

// LogFailure appends an error entry for a failed operation.
func LogFailure(dir, user, action, taskID string, err error) {
	_ = AppendLog(dir, LogEntry{
		Timestamp: time.Now(),
		Level:     LevelError,
		User:      user,
		Action:    action,
		TaskID:    taskID,
		Detail:    err.Error(),
	})
}
