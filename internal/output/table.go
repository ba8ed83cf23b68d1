package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const (
	maxBarWidth = 30
	maxTitleW   = 40
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	// Resolution colors shared with the dashboard.
	resolutionStyles = map[string]lipgloss.Style{
		"completed": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		"missed":    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"pending":   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"excluded":  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}

	frequencyStyles = map[string]lipgloss.Style{
		"daily":   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		"weekly":  lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		"monthly": lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	}

	completedBar = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	missedBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// glyphs for the history strip, by resolution.
var glyphs = map[stats.Resolution]string{
	stats.Completed: "✓",
	stats.Missed:    "✗",
	stats.Pending:   "·",
	stats.Excluded:  " ",
}

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	badgeStyle = lipgloss.NewStyle()
	resolutionStyles = map[string]lipgloss.Style{}
	frequencyStyles = map[string]lipgloss.Style{}
	completedBar = lipgloss.NewStyle()
	missedBar = lipgloss.NewStyle()
}

// Strip renders a history strip, oldest first.
func Strip(days []board.DayStatus) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(styledValueAs(glyphs[d.Resolution], d.Status, resolutionStyles))
	}
	return b.String()
}

// TaskTable renders tasks with today's status and their recent history.
func TaskTable(w io.Writer, rows []board.TaskSummary) {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, titleW, freqW, todayW, stripW := 4, 7, 11, 7, 8
	for _, r := range rows {
		idW = max(idW, len(r.ID)+pad)
		titleW = max(titleW, min(lipgloss.Width(r.Title)+pad, maxTitleW+pad))
		stripW = max(stripW, len(r.Recent)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", titleW, "TITLE", freqW, "FREQUENCY", todayW+pad, "TODAY", stripW, "HISTORY", "RATE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, r := range rows {
		title := truncate(r.Title, maxTitleW)
		if !r.Active {
			title = dimStyle.Render(title + " (paused)")
		}
		rate := dimStyle.Render("--")
		if r.Window.Total > 0 {
			rate = strconv.Itoa(r.Window.Productivity) + "%"
		}
		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idW, r.ID,
			padRight(title, titleW),
			padRight(styledValue(string(r.Frequency), frequencyStyles), freqW),
			padRight(styledValue(r.Today, resolutionStyles), todayW+pad),
			padRight(Strip(r.Recent), stripW),
			rate)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, r board.TaskSummary) {
	titleLine := fmt.Sprintf("Task %s: %s", r.ID, r.Title)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Frequency", styledValue(string(r.Frequency), frequencyStyles))
	state := "active"
	if !r.Active {
		state = dimStyle.Render("paused")
	}
	printField(w, "State", state)
	printField(w, "Today", styledValue(r.Today, resolutionStyles))
	printField(w, "History", Strip(r.Recent)+dimStyle.Render(stripRange(r.Recent)))
	printField(w, "Window", windowLine(r.Window))
	printField(w, "Created", r.Created.Format("2006-01-02 15:04"))
	printField(w, "Updated", r.Updated.Format("2006-01-02 15:04"))

	if r.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Description)
	}
}

// StatsTable renders the weekly and monthly windows, the streak badge and
// the weekly chart.
func StatsTable(w io.Writer, d Dashboard) {
	fmt.Fprintln(w, titleStyle.Render("TaskFlow stats for "+d.Today.String()))
	fmt.Fprintf(w, "Tasks: %d active, %d paused  Today: %s %s %s\n\n",
		d.Overview.Active, d.Overview.Paused,
		styledValueAs(strconv.Itoa(d.Overview.TodayCompleted)+" done", "completed", resolutionStyles),
		styledValueAs(strconv.Itoa(d.Overview.TodayMissed)+" missed", "missed", resolutionStyles),
		styledValueAs(strconv.Itoa(d.Overview.TodayPending)+" pending", "pending", resolutionStyles))

	header := fmt.Sprintf("%-10s %6s %10s %8s %13s", "WINDOW", "TOTAL", "COMPLETED", "MISSED", "PRODUCTIVITY")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, row := range []struct {
		name string
		win  stats.Window
	}{{"7 days", d.Weekly}, {"30 days", d.Monthly}} {
		fmt.Fprintf(w, "%-10s %6d %10d %8d %12d%%\n",
			row.name, row.win.Total, row.win.Completed, row.win.Missed, row.win.Productivity)
	}

	fmt.Fprintln(w)
	BadgeLine(w, d.Streak, d.Badge)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("LAST 7 DAYS"))
	ChartBars(w, d.WeeklyChart)

	if len(d.Groups) > 0 {
		fmt.Fprintln(w)
		GroupedTable(w, d.Groups)
	}
}

// BadgeLine renders the streak and its badge tier.
func BadgeLine(w io.Writer, streak int, b stats.Badge) {
	fmt.Fprintf(w, "Streak: %s  %s %s, %s\n",
		titleStyle.Render(pluralDays(streak)),
		b.Emoji, badgeStyle.Render(b.Name), b.Subtitle)
	if b.Next != nil {
		fmt.Fprintf(w, "  %s %d%% to %s %s (%s)\n",
			progressBar(b.Progress, 20), b.Progress, b.Next.Emoji, b.Next.Name, pluralDays(b.Next.MinDays))
	}
}

// ChartBars renders a horizontal bar per chart point.
func ChartBars(w io.Writer, points []stats.ChartPoint) {
	peak := 1
	for _, p := range points {
		peak = max(peak, p.Completed+p.Missed)
	}
	scale := min(1.0, float64(maxBarWidth)/float64(peak))

	for _, p := range points {
		done := int(float64(p.Completed)*scale + 0.5)
		miss := int(float64(p.Missed)*scale + 0.5)
		bar := completedBar.Render(strings.Repeat("█", done)) + missedBar.Render(strings.Repeat("█", miss))
		fmt.Fprintf(w, "  %s %s %s\n", p.Label, padRight(bar, maxBarWidth),
			dimStyle.Render(fmt.Sprintf("%d/%d", p.Completed, p.Missed)))
	}
}

// GroupedTable renders per-group windows.
func GroupedTable(w io.Writer, groups []board.GroupSummary) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}
	header := fmt.Sprintf("%-10s %6s %12s %12s", "GROUP", "TASKS", "7-DAY", "30-DAY")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, g := range groups {
		fmt.Fprintf(w, "%s %6d %11d%% %11d%%\n",
			padRight(styledValue(g.Key, frequencyStyles), 10), //nolint:mnd // column width
			g.Total, g.Weekly.Productivity, g.Monthly.Productivity)
	}
}

// ActivityTable renders activity log entries.
func ActivityTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	header := fmt.Sprintf("%-17s %-6s %-8s %-10s %s", "TIME", "LEVEL", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		level := e.Level
		if level == board.LevelError {
			level = missedBar.Render(level)
		}
		id := e.TaskID
		if id == "" {
			id = dimStyle.Render("--")
		}
		row := fmt.Sprintf("%-17s %s %-8s %s %s",
			e.Timestamp.Format("2006-01-02 15:04"), padRight(level, 6), e.Action, padRight(id, 10), e.Detail) //nolint:mnd // column widths
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// StatusWord describes a recorded status for confirmation messages.
func StatusWord(s task.Status) string {
	if s == task.StatusNone {
		return "unmarked"
	}
	return string(s)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func windowLine(win stats.Window) string {
	if win.Total == 0 {
		return dimStyle.Render("no decided days yet")
	}
	return fmt.Sprintf("%d/%d completed (%d%%)", win.Completed, win.Total, win.Productivity)
}

func stripRange(days []board.DayStatus) string {
	if len(days) == 0 {
		return ""
	}
	return fmt.Sprintf("  %s..%s", days[0].Date.MonthDay(), days[len(days)-1].Date.MonthDay())
}

func progressBar(pct, width int) string {
	filled := pct * width / 100 //nolint:mnd // percent
	return badgeStyle.Render(strings.Repeat("▰", filled)) + dimStyle.Render(strings.Repeat("▱", width-filled))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	return styledValueAs(s, s, styles)
}

// styledValueAs renders text with the style registered under key.
func styledValueAs(text, key string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[key]; ok {
		return st.Render(text)
	}
	return text
}
