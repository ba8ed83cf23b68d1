package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const user = "ada"

// fakeClock advances one minute per reading.
func fakeClock() func() time.Time {
	t := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%04d", n)
	}
}

// stores runs fn against both implementations.
func stores(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory(WithClock(fakeClock()), WithIDs(seqIDs())))
	})
	t.Run("file", func(t *testing.T) {
		fn(t, NewFile(t.TempDir(), WithClock(fakeClock()), WithIDs(seqIDs())))
	})
}

func titles(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestStore_CreateDefaults(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		id, err := s.Create(ctx, user, NewTask{Title: "Meditate"})
		require.NoError(t, err)
		assert.Equal(t, "id0001", id)

		tasks, err := First(ctx, s, user)
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		got := tasks[0]
		assert.Equal(t, "Meditate", got.Title)
		assert.Equal(t, task.Daily, got.Frequency)
		assert.True(t, got.Active)
		assert.Empty(t, got.Completions)
		assert.Equal(t, 2026, got.Created.Year())
	})
}

func TestStore_SnapshotOrderedByCreation(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, title := range []string{"Zebra", "Apple", "Mango"} {
			_, err := s.Create(ctx, user, NewTask{Title: title, Frequency: task.Weekly})
			require.NoError(t, err)
		}

		tasks, err := First(ctx, s, user)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, titles(tasks))
	})
}

func TestStore_UpdatePatch(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		id, err := s.Create(ctx, user, NewTask{Title: "Read", Description: "fiction"})
		require.NoError(t, err)

		title := "Read 20 pages"
		paused := false
		require.NoError(t, s.Update(ctx, user, id, Patch{Title: &title, Active: &paused}))

		tasks, err := First(ctx, s, user)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Read 20 pages", tasks[0].Title)
		assert.Equal(t, "fiction", tasks[0].Description)
		assert.False(t, tasks[0].Active)
		assert.True(t, tasks[0].Updated.After(tasks[0].Created))
	})
}

func TestStore_SetCompletionAndClear(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		id, err := s.Create(ctx, user, NewTask{Title: "Walk"})
		require.NoError(t, err)
		d := date.New(2026, time.March, 1)

		require.NoError(t, s.SetCompletion(ctx, user, id, d, task.StatusCompleted))
		tasks, err := First(ctx, s, user)
		require.NoError(t, err)
		st, ok := tasks[0].StatusOn(d)
		assert.True(t, ok)
		assert.Equal(t, task.StatusCompleted, st)

		require.NoError(t, s.SetCompletion(ctx, user, id, d, task.StatusNone))
		tasks, err = First(ctx, s, user)
		require.NoError(t, err)
		_, ok = tasks[0].StatusOn(d)
		assert.False(t, ok)
	})
}

func TestStore_Delete(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		id, err := s.Create(ctx, user, NewTask{Title: "Walk"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, user, id))
		tasks, err := First(ctx, s, user)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		err = s.Delete(ctx, user, id)
		assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))
	})
}

func TestStore_UnknownTask(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		err := s.SetCompletion(ctx, user, "nope", date.New(2026, 1, 1), task.StatusMissed)
		assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))

		title := "x"
		err = s.Update(ctx, user, "nope", Patch{Title: &title})
		assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))
	})
}

func TestStore_UsersAreIsolated(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		_, err := s.Create(ctx, user, NewTask{Title: "Mine"})
		require.NoError(t, err)

		tasks, err := First(ctx, s, "grace")
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestStore_SubscriptionSeesMutations(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub, err := s.Subscribe(ctx, user)
		require.NoError(t, err)
		defer sub.Close()

		first := <-sub.Updates()
		require.NoError(t, first.Err)
		assert.Empty(t, first.Tasks)

		_, err = s.Create(ctx, user, NewTask{Title: "Journal"})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			select {
			case snap := <-sub.Updates():
				return len(snap.Tasks) == 1 && snap.Tasks[0].Title == "Journal"
			default:
				return false
			}
		}, 3*time.Second, 10*time.Millisecond)
	})
}

func TestStore_CancelClosesSubscription(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx, cancel := context.WithCancel(context.Background())
		sub, err := s.Subscribe(ctx, user)
		require.NoError(t, err)
		<-sub.Updates()

		cancel()
		require.Eventually(t, func() bool {
			select {
			case _, ok := <-sub.Updates():
				return !ok
			default:
				return false
			}
		}, 3*time.Second, 10*time.Millisecond)
		assert.NoError(t, sub.Close())
	})
}

func TestMemoryStore_SnapshotsAreCopies(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	id, err := s.Create(ctx, user, NewTask{Title: "Walk"})
	require.NoError(t, err)

	tasks, err := First(ctx, s, user)
	require.NoError(t, err)
	tasks[0].Title = "changed"
	tasks[0].Completions.Set(date.New(2026, 1, 1), task.StatusCompleted)

	again, err := First(ctx, s, user)
	require.NoError(t, err)
	assert.Equal(t, "Walk", again[0].Title)
	assert.Empty(t, again[0].Completions)
	assert.Len(t, id, 8)
}

func TestFeed_LatestWins(t *testing.T) {
	f := newFeed(nil)
	f.publish(Snapshot{Tasks: []*task.Task{{ID: "a"}}})
	f.publish(Snapshot{Tasks: []*task.Task{{ID: "b"}}})

	snap := <-f.Updates()
	assert.Equal(t, "b", snap.Tasks[0].ID)

	boom := errors.New("boom")
	f.fail(boom)
	snap, ok := <-f.Updates()
	assert.True(t, ok)
	assert.Equal(t, boom, snap.Err)
	_, ok = <-f.Updates()
	assert.False(t, ok)

	f.publish(Snapshot{})
	assert.NoError(t, f.Close())
}

func TestFileStore_Layout(t *testing.T) {
	root := t.TempDir()
	s := NewFile(root, WithIDs(seqIDs()))
	ctx := context.Background()

	id, err := s.Create(ctx, user, NewTask{Title: "Drink Water!"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, user, "tasks", id+"-drink-water.md"))
	assert.FileExists(t, filepath.Join(root, user, ".lock"))

	title := "Drink more water"
	require.NoError(t, s.Update(ctx, user, id, Patch{Title: &title}))
	assert.NoFileExists(t, filepath.Join(root, user, "tasks", id+"-drink-water.md"))
	assert.FileExists(t, filepath.Join(root, user, "tasks", id+"-drink-more-water.md"))
}

func TestFileStore_SkipsMalformedFiles(t *testing.T) {
	root := t.TempDir()
	var skipped []string
	s := NewFile(root).OnWarning(func(w task.ReadWarning) { skipped = append(skipped, w.File) })
	ctx := context.Background()

	_, err := s.Create(ctx, user, NewTask{Title: "Good"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.TasksDir(user), "bad-file.md"), []byte("junk"), 0o600))

	tasks, err := First(ctx, s, user)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, []string{"bad-file.md"}, skipped)
}

func TestFileStore_RejectsUnsafeUser(t *testing.T) {
	s := NewFile(t.TempDir())
	for _, u := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.Create(context.Background(), u, NewTask{Title: "x"})
		assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err), "user %q", u)
	}
}

func TestPatch_Empty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	on := true
	assert.False(t, Patch{Active: &on}.Empty())
}
