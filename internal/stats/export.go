package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const (
	csvLineEnd    = "\r\n"
	csvColumns    = "date,task_title,frequency,status"
	exportPattern = "%s-usage-%s.csv"

	// DefaultExportPrefix names exported reports when config sets nothing.
	DefaultExportPrefix = "taskflow"
)

// ExportRow is one (date, task) line of the usage report.
type ExportRow struct {
	Date      date.Date
	Title     string
	Frequency task.Frequency
	Status    string
}

// ExportRows lists the report rows for the last thirty days, oldest first
// and in task order within a day. Excluded days and inactive tasks are left
// out; an unmarked today is reported as pending.
func ExportRows(tasks []*task.Task, today date.Date) []ExportRow {
	var rows []ExportRow
	for _, d := range date.Range(MonthDays, today) {
		for _, t := range tasks {
			if !Eligible(t) {
				continue
			}
			r := Resolve(t, d, today)
			if r == Excluded {
				continue
			}
			rows = append(rows, ExportRow{
				Date:      d,
				Title:     t.Title,
				Frequency: t.Frequency,
				Status:    r.String(),
			})
		}
	}
	return rows
}

// FormatCSV renders the usage report. Lines are CRLF separated with no
// terminator after the last one.
func FormatCSV(tasks []*task.Task, streak int, today date.Date) string {
	rows := ExportRows(tasks, today)

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, fmt.Sprintf("streak_days,%d", streak), "", csvColumns)
	for _, r := range rows {
		lines = append(lines, strings.Join([]string{
			r.Date.String(),
			quoteTitle(r.Title),
			string(r.Frequency),
			r.Status,
		}, ","))
	}
	return strings.Join(lines, csvLineEnd)
}

// WriteCSV writes the usage report to w.
func WriteCSV(w io.Writer, tasks []*task.Task, streak int, today date.Date) error {
	if _, err := io.WriteString(w, FormatCSV(tasks, streak, today)); err != nil {
		return fmt.Errorf("writing usage report: %w", err)
	}
	return nil
}

// ExportFilename returns the default report name for today.
func ExportFilename(prefix string, today date.Date) string {
	if prefix == "" {
		prefix = DefaultExportPrefix
	}
	return fmt.Sprintf(exportPattern, prefix, today)
}

// quoteTitle quotes a title as a JSON string literal, leaving HTML
// characters and the line/paragraph separators unescaped.
func quoteTitle(title string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(title); err != nil {
		return `""`
	}
	return separatorUnescaper.Replace(strings.TrimSuffix(buf.String(), "\n"))
}

// An escaped backslash is matched first so a literal `\\u2028` in a title
// is kept as text.
var separatorUnescaper = strings.NewReplacer(`\\`, `\\`, `\u2028`, "\u2028", `\u2029`, "\u2029")
