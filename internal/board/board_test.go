package board

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var today = date.New(2026, time.April, 10)

func mk(id, title string, freq task.Frequency, active bool, createdAgo int) *task.Task {
	return &task.Task{
		ID:          id,
		Title:       title,
		Frequency:   freq,
		Active:      active,
		Created:     today.AddDays(-createdAgo).Add(8 * time.Hour),
		Updated:     today.AddDays(-createdAgo).Add(8 * time.Hour),
		Completions: task.Record{},
	}
}

func fixture() []*task.Task {
	run := mk("a1", "Run", task.Daily, true, 10)
	run.Completions.Set(today, task.StatusCompleted)
	read := mk("b2", "read a book", task.Weekly, true, 5)
	read.Description = "Non-fiction only"
	clean := mk("c3", "Clean desk", task.Monthly, false, 20)
	water := mk("d4", "Water plants", task.Daily, true, 1)
	water.Completions.Set(today, task.StatusMissed)
	return []*task.Task{run, read, clean, water}
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestList_DefaultsToCreationOrder(t *testing.T) {
	got := List(fixture(), ListOptions{}, today)
	assert.Equal(t, []string{"c3", "a1", "b2", "d4"}, ids(got))
}

func TestList_Filters(t *testing.T) {
	active := true
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"active only", FilterOptions{Active: &active}, []string{"a1", "b2", "d4"}},
		{"frequency", FilterOptions{Frequencies: []task.Frequency{task.Daily}}, []string{"a1", "d4"}},
		{"search description", FilterOptions{Search: "FICTION"}, []string{"b2"}},
		{"today pending", FilterOptions{Today: []string{"pending"}, Active: &active}, []string{"b2"}},
		{"today done or missed", FilterOptions{Today: []string{"completed", "missed"}}, []string{"a1", "d4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := List(fixture(), ListOptions{Filter: tt.opts, SortBy: FieldTitle}, today)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestSort(t *testing.T) {
	tasks := fixture()
	Sort(tasks, FieldTitle, false)
	assert.Equal(t, []string{"c3", "b2", "a1", "d4"}, ids(tasks))

	Sort(tasks, FieldFrequency, false)
	assert.Equal(t, []string{"a1", "d4", "b2", "c3"}, ids(tasks))

	Sort(tasks, FieldCreated, true)
	assert.Equal(t, []string{"d4", "b2", "a1", "c3"}, ids(tasks))
}

func TestList_Limit(t *testing.T) {
	got := List(fixture(), ListOptions{Limit: 2}, today)
	assert.Len(t, got, 2)
}

func TestSummary(t *testing.T) {
	ov := Summary(fixture(), today)
	assert.Equal(t, 4, ov.TotalTasks)
	assert.Equal(t, 3, ov.Active)
	assert.Equal(t, 1, ov.Paused)
	assert.Equal(t, 1, ov.TodayCompleted)
	assert.Equal(t, 1, ov.TodayMissed)
	assert.Equal(t, 1, ov.TodayPending)
	assert.Equal(t, []FrequencyCount{
		{Frequency: task.Daily, Count: 2},
		{Frequency: task.Weekly, Count: 1},
		{Frequency: task.Monthly, Count: 1},
	}, ov.Frequencies)
}

func TestSummarize(t *testing.T) {
	water := fixture()[3]
	water.Completions.Set(today.AddDays(-1), task.StatusCompleted)

	s := Summarize(water, today, 3)
	assert.Equal(t, "missed", s.Today)
	require.Len(t, s.Recent, 3)
	assert.Equal(t, stats.Excluded, s.Recent[0].Resolution)
	assert.Equal(t, "completed", s.Recent[1].Status)
	assert.Equal(t, stats.Window{Total: 2, Completed: 1, Missed: 1, Productivity: 50}, s.Window)
}

func TestSummarize_PausedTaskHasStripButNoWindow(t *testing.T) {
	clean := fixture()[2]
	require.False(t, clean.Active)

	s := Summarize(clean, today, 7)
	assert.Len(t, s.Recent, 7)
	assert.Equal(t, stats.Window{}, s.Window)
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy(fixture(), "frequency", today)
	require.Len(t, groups, 3)
	assert.Equal(t, "daily", groups[0].Key)
	assert.Equal(t, 2, groups[0].Total)
	assert.Equal(t, "monthly", groups[2].Key)
	assert.Equal(t, stats.Window{}, groups[2].Weekly, "paused tasks never count")

	byState := GroupBy(fixture(), "state", today)
	require.Len(t, byState, 2)
	assert.Equal(t, "active", byState[0].Key)
	assert.Equal(t, 3, byState[0].Total)
}

func TestFindByID(t *testing.T) {
	got, err := FindByID(fixture(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "read a book", got.Title)

	_, err = FindByID(fixture(), "zz")
	assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))
}

func TestParseIDs(t *testing.T) {
	got, err := ParseIDs("a1, b2,a1,,c3")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2", "c3"}, got)

	_, err = ParseIDs(" , ")
	assert.Equal(t, clierr.InvalidTaskID, clierr.CodeOf(err))

	_, err = ParseIDs("a1,../etc")
	assert.Equal(t, clierr.InvalidTaskID, clierr.CodeOf(err))
}

func TestLog_AppendAndRead(t *testing.T) {
	dir := t.TempDir()
	LogMutation(dir, "ada", "create", "a1", "Run")
	LogFailure(dir, "ada", "mark", "a1", errors.New("disk full"))

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, LevelInfo, entries[0].Level)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, LevelError, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].Detail)

	last, err := ReadLog(dir, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "mark", last[0].Action)
}

func TestReadLog_Missing(t *testing.T) {
	entries, err := ReadLog(t.TempDir(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTruncateLog(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	for range maxLogEntries + 5 {
		sb.WriteString(`{"action":"old"}` + "\n")
	}
	require.NoError(t, os.WriteFile(LogPath(dir), []byte(sb.String()), logFileMode))

	LogMutation(dir, "ada", "new", "", "")

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	assert.Len(t, entries, maxLogEntries)
	assert.Equal(t, "new", entries[len(entries)-1].Action)
}
