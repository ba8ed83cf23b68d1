// Package tui implements the interactive TaskFlow dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/config"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
)

const (
	tickInterval = time.Minute // how often the day boundary is rechecked
	maxTitleW    = 36
	chrome       = 6 // header, stats, badge and status lines around the task list
)

// Board is the top-level bubbletea model.
type Board struct {
	tr          *tracker.Tracker
	ctx         context.Context
	state       tracker.State
	keys        keyMap
	help        help.Model
	historyDays int
	showPaused  bool

	view     view
	cursor   int
	selected string // task ID under the cursor, kept across snapshots
	offset   int
	width    int
	height   int
	err      error

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// NewBoard creates a Board driven by tr. Mutations run under ctx.
func NewBoard(ctx context.Context, tr *tracker.Tracker, cfg *config.Config) *Board {
	return &Board{
		tr:          tr,
		ctx:         ctx,
		state:       tr.State(),
		keys:        defaultKeys(),
		help:        help.New(),
		historyDays: cfg.HistoryDays(),
		showPaused:  !cfg.TUI.HidePaused,
	}
}

// StateMsg carries a new tracker state into the program.
type StateMsg struct {
	State tracker.State
}

// TickMsg is sent periodically so the dashboard follows a change of day.
type TickMsg struct{}

type errMsg struct{ err error }

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.ensureVisible()
		return b, nil
	case StateMsg:
		b.state = msg.State
		if msg.State.Err == "" {
			b.err = nil
		}
		b.restoreCursor()
		return b, nil
	case TickMsg:
		tr := b.tr
		// Refresh notifies the program from outside the update loop.
		return b, tea.Batch(tickCmd(), func() tea.Msg {
			tr.Refresh()
			return nil
		})
	case errMsg:
		b.err = msg.err
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 || !b.state.Loaded {
		if b.state.Err != "" {
			return errorStyle.Render("Error: " + b.state.Err)
		}
		return "Loading..."
	}

	if b.view == viewConfirmDelete {
		return b.viewDeleteConfirm()
	}
	return b.viewBoard()
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, b.keys.ForceQuit) {
		return b, tea.Quit
	}
	if b.view == viewConfirmDelete {
		return b.handleDeleteKey(msg)
	}

	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Up):
		b.move(-1)
	case key.Matches(msg, b.keys.Down):
		b.move(1)
	case key.Matches(msg, b.keys.Cycle):
		return b, b.cycleSelected()
	case key.Matches(msg, b.keys.Pause):
		return b, b.togglePause()
	case key.Matches(msg, b.keys.Delete):
		if t := b.selectedTask(); t != nil {
			b.deleteID = t.ID
			b.deleteTitle = t.Title
			b.view = viewConfirmDelete
		}
	case key.Matches(msg, b.keys.ShowPaused):
		b.showPaused = !b.showPaused
		b.restoreCursor()
	case key.Matches(msg, b.keys.Help):
		b.help.ShowAll = !b.help.ShowAll
	}
	return b, nil
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.view = viewBoard
		id := b.deleteID
		return b, b.run(func(ctx context.Context) error {
			return b.tr.Delete(ctx, id)
		})
	case "n", "N", "esc", "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) cycleSelected() tea.Cmd {
	t := b.selectedTask()
	if t == nil {
		return nil
	}
	if !t.Active {
		b.err = fmt.Errorf("task %s is paused", t.ID)
		return nil
	}
	return b.run(func(ctx context.Context) error {
		_, err := b.tr.CycleToday(ctx, t)
		return err
	})
}

func (b *Board) togglePause() tea.Cmd {
	t := b.selectedTask()
	if t == nil {
		return nil
	}
	active := !t.Active
	id := t.ID
	return b.run(func(ctx context.Context) error {
		return b.tr.Update(ctx, id, store.Patch{Active: &active})
	})
}

// run executes a tracker mutation off the update loop. The resulting state
// arrives through the tracker subscription.
func (b *Board) run(fn func(context.Context) error) tea.Cmd {
	ctx := b.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// rows returns the tasks currently listed, in snapshot order.
func (b *Board) rows() []*task.Task {
	if b.showPaused {
		return b.state.Tasks
	}
	out := make([]*task.Task, 0, len(b.state.Tasks))
	for _, t := range b.state.Tasks {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) selectedTask() *task.Task {
	rows := b.rows()
	if b.cursor < 0 || b.cursor >= len(rows) {
		return nil
	}
	return rows[b.cursor]
}

func (b *Board) move(delta int) {
	rows := b.rows()
	if len(rows) == 0 {
		return
	}
	b.cursor = max(0, min(len(rows)-1, b.cursor+delta))
	b.selected = rows[b.cursor].ID
	b.ensureVisible()
}

// restoreCursor keeps the cursor on the same task after the list changes.
func (b *Board) restoreCursor() {
	rows := b.rows()
	for i, t := range rows {
		if t.ID == b.selected {
			b.cursor = i
			b.ensureVisible()
			return
		}
	}
	b.cursor = max(0, min(b.cursor, len(rows)-1))
	if len(rows) > 0 {
		b.selected = rows[b.cursor].ID
	}
	b.ensureVisible()
}

func (b *Board) listHeight() int {
	h := b.height - chrome - len(b.state.Derived.WeeklyChart)
	return max(1, h)
}

func (b *Board) ensureVisible() {
	h := b.listHeight()
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+h {
		b.offset = b.cursor - h + 1
	}
	b.offset = max(0, b.offset)
}

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	todayStyles = map[stats.Resolution]lipgloss.Style{
		stats.Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
		stats.Missed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		stats.Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		stats.Excluded:  dimStyle,
	}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// --- View rendering ---

func (b *Board) viewBoard() string {
	var s strings.Builder
	d := b.state.Derived

	s.WriteString(headerStyle.Render("TaskFlow  " + b.state.Today.String()))
	s.WriteString("\n")
	fmt.Fprintf(&s, "Week %s   Month %s\n", windowText(d.Weekly), windowText(d.Monthly))
	output.BadgeLine(&s, d.Streak, stats.BadgeFor(d.Streak))
	s.WriteString("\n")

	s.WriteString(b.renderList())
	s.WriteString("\n")
	output.ChartBars(&s, d.WeeklyChart)
	s.WriteString("\n")
	s.WriteString(b.renderStatusBar())
	return s.String()
}

func windowText(w stats.Window) string {
	return fmt.Sprintf("%d/%d %d%%", w.Completed, w.Total, w.Productivity)
}

func (b *Board) renderList() string {
	rows := b.rows()
	if len(rows) == 0 {
		return dimStyle.Render("  No tasks yet. Add one with 'taskflow add <title>'.") + "\n"
	}

	var s strings.Builder
	end := min(len(rows), b.offset+b.listHeight())
	for i := b.offset; i < end; i++ {
		s.WriteString(b.renderRow(rows[i], i == b.cursor))
		s.WriteString("\n")
	}
	return s.String()
}

func (b *Board) renderRow(t *task.Task, active bool) string {
	sum := board.Summarize(t, b.state.Today, b.historyDays)
	today := stats.Resolve(t, b.state.Today, b.state.Today)

	marker := "  "
	if active {
		marker = cursorStyle.Render("> ")
	}
	title := truncate(t.Title, maxTitleW)
	if !t.Active {
		title = pausedStyle.Render(title + " (paused)")
	}
	status := todayStyles[today].Render(fmt.Sprintf("%-9s", today.String()))

	return fmt.Sprintf("%s%s %s %s %-7s %s", marker, dimStyle.Render(t.ID), status,
		output.Strip(sum.Recent), t.Frequency, title)
}

func (b *Board) renderStatusBar() string {
	bar := b.help.View(b.keys)
	msg := b.state.Err
	if b.err != nil {
		msg = b.err.Error()
	}
	if msg != "" {
		return errorStyle.Render(truncate("Error: "+msg, max(b.width, 4))) + "\n" + bar
	}
	return bar
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %s: %s", b.deleteID, b.deleteTitle) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes))
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
