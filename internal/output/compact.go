package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
)

// TaskCompact renders tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, rows []board.TaskSummary) {
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, r := range rows {
		fmt.Fprintln(w, formatTaskLine(r))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, r board.TaskSummary) {
	fmt.Fprintln(w, formatTaskLine(r))
	fmt.Fprintln(w, "  created:"+r.Created.Format("2006-01-02")+
		" updated:"+r.Updated.Format("2006-01-02")+
		" history:"+plainStrip(r.Recent))
	if r.Description != "" {
		for _, line := range strings.Split(r.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// StatsCompact renders the stats dashboard in compact format.
func StatsCompact(w io.Writer, d Dashboard) {
	fmt.Fprintf(w, "%s week:%s month:%s streak:%d badge:%s\n",
		d.Today, windowCompact(d.Weekly), windowCompact(d.Monthly), d.Streak, d.Badge.Name)
	parts := make([]string, 0, len(d.WeeklyChart))
	for _, p := range d.WeeklyChart {
		parts = append(parts, p.Label+"="+strconv.Itoa(p.Completed)+"/"+strconv.Itoa(p.Missed))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, " "))
	for _, g := range d.Groups {
		fmt.Fprintf(w, "  %s: week:%s month:%s\n", g.Key, windowCompact(g.Weekly), windowCompact(g.Monthly))
	}
}

func windowCompact(win stats.Window) string {
	return fmt.Sprintf("%d/%d(%d%%)", win.Completed, win.Total, win.Productivity)
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(r board.TaskSummary) string {
	line := r.ID + " [" + string(r.Frequency) + "/" + r.Today + "] " + r.Title
	if !r.Active {
		line += " (paused)"
	}
	return line
}

func plainStrip(days []board.DayStatus) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(glyphs[d.Resolution])
	}
	return b.String()
}
