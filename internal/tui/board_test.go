package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Easwarasrisai789/TaskFlow/internal/config"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

const user = "ada"

func clock() time.Time { return time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC) }

func setup(t *testing.T, titles ...string) (*Board, *tracker.Tracker) {
	t.Helper()
	ctx := context.Background()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("t%07d", n)
	}
	s := store.NewMemory(store.WithClock(clock), store.WithIDs(ids))
	tr := tracker.New(s, user, tracker.WithClock(clock))
	for _, title := range titles {
		_, err := tr.Add(ctx, store.NewTask{Title: title})
		require.NoError(t, err)
	}

	b := NewBoard(ctx, tr, config.NewDefault())
	refresh(t, b, tr)
	b.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return b, tr
}

// refresh loads the latest snapshot and hands it to the model, as the tracker
// subscription would.
func refresh(t *testing.T, b *Board, tr *tracker.Tracker) {
	t.Helper()
	st, err := tr.Load(context.Background())
	require.NoError(t, err)
	b.Update(StateMsg{State: st})
}

func press(b *Board, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := b.Update(msg)
	return cmd
}

func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if em, ok := msg.(errMsg); ok {
		t.Fatalf("command failed: %v", em.err)
	}
}

func TestView_LoadingUntilSized(t *testing.T) {
	s := store.NewMemory(store.WithClock(clock))
	tr := tracker.New(s, user, tracker.WithClock(clock))
	b := NewBoard(context.Background(), tr, config.NewDefault())

	assert.Equal(t, "Loading...", b.View())
}

func TestView_ListsTasksAndStats(t *testing.T) {
	b, _ := setup(t, "Stretch", "Read")

	v := b.View()
	assert.Contains(t, v, "TaskFlow  2026-05-20")
	assert.Contains(t, v, "Stretch")
	assert.Contains(t, v, "Read")
	assert.Contains(t, v, "pending")
	assert.Contains(t, v, "Spark")
}

func TestView_Empty(t *testing.T) {
	b, _ := setup(t)
	assert.Contains(t, b.View(), "No tasks yet")
}

func TestCycleKey_MarksSelectedTask(t *testing.T) {
	b, tr := setup(t, "Stretch", "Read")

	press(b, "down")
	runCmd(t, press(b, " "))
	refresh(t, b, tr)

	st := tr.State()
	require.Len(t, st.Tasks, 2)
	_, ok := st.Tasks[0].StatusOn(st.Today)
	assert.False(t, ok)
	s, ok := st.Tasks[1].StatusOn(st.Today)
	assert.True(t, ok)
	assert.Equal(t, task.StatusCompleted, s)
	assert.Equal(t, 1, st.Derived.Weekly.Completed)
}

func TestDeleteKey_AsksForConfirmation(t *testing.T) {
	b, tr := setup(t, "Stretch")

	assert.Nil(t, press(b, "d"))
	assert.Contains(t, b.View(), "Delete task?")

	assert.Nil(t, press(b, "n"))
	assert.NotContains(t, b.View(), "Delete task?")

	press(b, "d")
	runCmd(t, press(b, "y"))
	refresh(t, b, tr)
	assert.Empty(t, tr.State().Tasks)
}

func TestPauseKey_TogglesAndBlocksCycle(t *testing.T) {
	b, tr := setup(t, "Stretch")

	runCmd(t, press(b, "p"))
	refresh(t, b, tr)
	require.False(t, tr.State().Tasks[0].Active)
	assert.Contains(t, b.View(), "(paused)")

	assert.Nil(t, press(b, " "))
	assert.Contains(t, b.View(), "is paused")

	press(b, "a")
	assert.NotContains(t, b.View(), "Stretch")
}

func TestCursorFollowsTaskAcrossSnapshots(t *testing.T) {
	b, tr := setup(t, "Stretch", "Read")
	press(b, "down")
	require.Equal(t, "Read", b.selectedTask().Title)

	first := tr.State().Tasks[0].ID
	require.NoError(t, tr.Delete(context.Background(), first))
	refresh(t, b, tr)

	assert.Equal(t, "Read", b.selectedTask().Title)
	assert.Equal(t, 0, b.cursor)
}

func TestErrorStateShown(t *testing.T) {
	b, _ := setup(t, "Stretch")
	b.Update(errMsg{err: assert.AnError})
	assert.Contains(t, b.View(), "Error: "+assert.AnError.Error())
}

func TestQuitKeys(t *testing.T) {
	b, _ := setup(t)
	cmd := press(b, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
