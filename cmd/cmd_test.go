package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

func newEditCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "edit"}
	editFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestEditPatch_OnlyChangedFields(t *testing.T) {
	tk := &task.Task{ID: "a1", Title: "Run", Description: "5km"}

	p := editPatch(newEditCmd(t, "--title", "Jog", "--pause"), tk, time.Now())
	require.NotNil(t, p.Title)
	assert.Equal(t, "Jog", *p.Title)
	require.NotNil(t, p.Active)
	assert.False(t, *p.Active)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Frequency)
}

func TestEditPatch_DescAlias(t *testing.T) {
	tk := &task.Task{ID: "a1"}

	p := editPatch(newEditCmd(t, "--desc", "new text"), tk, time.Now())
	require.NotNil(t, p.Description)
	assert.Equal(t, "new text", *p.Description)
}

func TestEditPatch_AppendWithTimestamp(t *testing.T) {
	tk := &task.Task{ID: "a1", Description: "first\n"}
	now := time.Date(2026, time.March, 4, 7, 5, 0, 0, time.UTC)

	p := editPatch(newEditCmd(t, "-a", "second", "-t"), tk, now)
	require.NotNil(t, p.Description)
	assert.Equal(t, "first\n\n[2026-03-04 07:05]\nsecond", *p.Description)
}

func TestEditPatch_NothingSetIsEmpty(t *testing.T) {
	p := editPatch(newEditCmd(t), &task.Task{ID: "a1"}, time.Now())
	assert.True(t, p.Empty())
}

func TestAppendText(t *testing.T) {
	assert.Equal(t, "x", appendText("  ", "x"))
	assert.Equal(t, "a\n\nx", appendText("a\n\n", "x"))
}

func TestParseMarkStatus(t *testing.T) {
	s, err := parseMarkStatus("clear")
	require.NoError(t, err)
	assert.Equal(t, task.StatusNone, s)

	s, err = parseMarkStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, s)

	_, err = parseMarkStatus("done")
	assert.Equal(t, clierr.InvalidStatus, clierr.CodeOf(err))
}

func TestResolveTitle(t *testing.T) {
	c := &cobra.Command{Use: "add"}
	c.Flags().String("title", "", "")

	title, err := resolveTitle(c, []string{"Stretch"})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", title)

	require.NoError(t, c.Flags().Set("title", "Read"))
	_, err = resolveTitle(c, []string{"Stretch"})
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	title, err = resolveTitle(c, nil)
	require.NoError(t, err)
	assert.Equal(t, "Read", title)
}

func TestCheckExportable(t *testing.T) {
	err := checkExportable(nil)
	assert.Equal(t, clierr.NothingToExport, clierr.CodeOf(err))

	paused := &task.Task{ID: "a1", Title: "Stretch", Frequency: task.Daily, Active: false}
	assert.NoError(t, checkExportable([]*task.Task{paused}))
}

func TestSettings(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range settings {
		assert.False(t, seen[s.name], "duplicate %s", s.name)
		seen[s.name] = true
		assert.NotNil(t, s.get, s.name)
		assert.NotEmpty(t, s.doc, s.name)
	}

	s, err := lookupSetting("dir")
	require.NoError(t, err)
	assert.Nil(t, s.set)

	_, err = lookupSetting("colour")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}
