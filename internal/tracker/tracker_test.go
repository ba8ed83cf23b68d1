package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const user = "ada"

var now = time.Date(2026, time.May, 20, 18, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

// countingStore records calls and can be told to fail mutations.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingStore) hit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingStore) Create(ctx context.Context, u string, in store.NewTask) (string, error) {
	if err := c.hit(); err != nil {
		return "", err
	}
	return c.Store.Create(ctx, u, in)
}

func (c *countingStore) Update(ctx context.Context, u, id string, p store.Patch) error {
	if err := c.hit(); err != nil {
		return err
	}
	return c.Store.Update(ctx, u, id, p)
}

func (c *countingStore) Delete(ctx context.Context, u, id string) error {
	if err := c.hit(); err != nil {
		return err
	}
	return c.Store.Delete(ctx, u, id)
}

func (c *countingStore) SetCompletion(ctx context.Context, u, id string, d date.Date, s task.Status) error {
	if err := c.hit(); err != nil {
		return err
	}
	return c.Store.SetCompletion(ctx, u, id, d, s)
}

func newTracker(t *testing.T, opts ...Option) (*Tracker, *countingStore) {
	t.Helper()
	cs := &countingStore{Store: store.NewMemory(store.WithClock(clock))}
	opts = append([]Option{WithClock(clock)}, opts...)
	return New(cs, user, opts...), cs
}

func TestAdd_RejectsEmptyTitleWithoutStore(t *testing.T) {
	tr, cs := newTracker(t)

	_, err := tr.Add(context.Background(), store.NewTask{Title: "   "})
	assert.Equal(t, clierr.InvalidTitle, clierr.CodeOf(err))
	assert.Equal(t, 0, cs.calls)
	assert.Empty(t, tr.State().Err)
}

func TestAdd_TrimsAndDefaults(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	id, err := tr.Add(ctx, store.NewTask{Title: "  Yoga  "})
	require.NoError(t, err)

	st, err := tr.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, id, st.Tasks[0].ID)
	assert.Equal(t, "Yoga", st.Tasks[0].Title)
	assert.Equal(t, task.Daily, st.Tasks[0].Frequency)
	assert.True(t, st.Loaded)
	assert.Equal(t, date.New(2026, time.May, 20), st.Today)
}

func TestAdd_RejectsBadFrequency(t *testing.T) {
	tr, cs := newTracker(t)
	_, err := tr.Add(context.Background(), store.NewTask{Title: "x", Frequency: "hourly"})
	assert.Equal(t, clierr.InvalidFrequency, clierr.CodeOf(err))
	assert.Equal(t, 0, cs.calls)
}

func TestStoreFailureSetsAndClearsErrorState(t *testing.T) {
	tr, cs := newTracker(t)
	ctx := context.Background()
	id, err := tr.Add(ctx, store.NewTask{Title: "Walk"})
	require.NoError(t, err)

	cs.err = errors.New("permission denied")
	err = tr.Delete(ctx, id)
	require.Error(t, err)
	assert.Equal(t, "permission denied", tr.State().Err)

	cs.err = errors.New("quota exceeded")
	_, err = tr.Add(ctx, store.NewTask{Title: "Swim"})
	require.Error(t, err)
	assert.Equal(t, "quota exceeded", tr.State().Err, "newest error wins")

	cs.err = nil
	require.NoError(t, tr.Mark(ctx, id, task.StatusCompleted))
	assert.Empty(t, tr.State().Err)
}

func TestRefresh_KeepsErrorAndFollowsClock(t *testing.T) {
	current := now
	tr, cs := newTracker(t, WithClock(func() time.Time { return current }))
	ctx := context.Background()
	id, err := tr.Add(ctx, store.NewTask{Title: "Walk"})
	require.NoError(t, err)
	require.NoError(t, tr.Mark(ctx, id, task.StatusCompleted))
	_, err = tr.Load(ctx)
	require.NoError(t, err)

	cs.err = errors.New("permission denied")
	require.Error(t, tr.Delete(ctx, id))

	current = now.AddDate(0, 0, 1)
	tr.Refresh()

	st := tr.State()
	assert.Equal(t, "permission denied", st.Err)
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, date.New(2026, time.May, 21), st.Today)
	assert.Equal(t, 1, st.Derived.Weekly.Total, "today is pending and adds nothing")
	assert.Equal(t, 1, st.Derived.Weekly.Completed)
}

func TestCycleToday(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()
	id, err := tr.Add(ctx, store.NewTask{Title: "Floss"})
	require.NoError(t, err)

	want := []task.Status{task.StatusCompleted, task.StatusMissed, task.StatusNone, task.StatusCompleted}
	for _, w := range want {
		st, err := tr.Load(ctx)
		require.NoError(t, err)
		got, err := tr.CycleToday(ctx, st.Tasks[0])
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	st, err := tr.Load(ctx)
	require.NoError(t, err)
	s, ok := st.Tasks[0].StatusOn(tr.Today())
	assert.True(t, ok)
	assert.Equal(t, task.StatusCompleted, s)
	assert.Equal(t, 1, st.Derived.Streak)
	assert.Equal(t, id, st.Tasks[0].ID)
}

func TestUpdate(t *testing.T) {
	tr, cs := newTracker(t)
	ctx := context.Background()
	id, err := tr.Add(ctx, store.NewTask{Title: "Read"})
	require.NoError(t, err)

	err = tr.Update(ctx, id, store.Patch{})
	assert.Equal(t, clierr.NoChanges, clierr.CodeOf(err))

	blank := " "
	calls := cs.calls
	err = tr.Update(ctx, id, store.Patch{Title: &blank})
	assert.Equal(t, clierr.InvalidTitle, clierr.CodeOf(err))
	assert.Equal(t, calls, cs.calls)

	title, paused := " Read more ", false
	weekly := task.Weekly
	require.NoError(t, tr.Update(ctx, id, store.Patch{Title: &title, Active: &paused, Frequency: &weekly}))

	st, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Read more", st.Tasks[0].Title)
	assert.False(t, st.Tasks[0].Active)
	assert.Equal(t, task.Weekly, st.Tasks[0].Frequency)
}

func TestRun_RecomputesOnEverySnapshot(t *testing.T) {
	tr, _ := newTracker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := make(chan State, 16)
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx, func(s State) { states <- s }) }()

	first := <-states
	assert.True(t, first.Loaded)
	assert.Empty(t, first.Tasks)

	id, err := tr.Add(ctx, store.NewTask{Title: "Stretch"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(tr.State().Tasks) == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, tr.Mark(ctx, id, task.StatusCompleted))
	require.Eventually(t, func() bool {
		return tr.State().Derived.Weekly.Completed == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 100, tr.State().Derived.Weekly.Productivity)

	cancel()
	assert.NoError(t, <-done)
}

// brokenStore fails every subscription with a terminal snapshot.
type brokenStore struct{ store.Store }

type brokenSub struct{ ch chan store.Snapshot }

func (b brokenSub) Updates() <-chan store.Snapshot { return b.ch }
func (b brokenSub) Close() error                   { return nil }

func (brokenStore) Subscribe(context.Context, string) (store.Subscription, error) {
	ch := make(chan store.Snapshot, 1)
	ch <- store.Snapshot{Err: errors.New("connection lost")}
	close(ch)
	return brokenSub{ch: ch}, nil
}

func TestRun_StreamErrorBecomesErrorState(t *testing.T) {
	tr := New(brokenStore{}, user, WithClock(clock))
	err := tr.Run(context.Background(), nil)
	assert.EqualError(t, err, "connection lost")
	assert.Equal(t, "connection lost", tr.State().Err)
	assert.False(t, tr.State().Loaded)
}

func TestActivityLog(t *testing.T) {
	dir := t.TempDir()
	tr, cs := newTracker(t, WithActivityLog(dir))
	ctx := context.Background()

	id, err := tr.Add(ctx, store.NewTask{Title: "Plan week", Frequency: task.Weekly})
	require.NoError(t, err)
	require.NoError(t, tr.Mark(ctx, id, task.StatusNone))
	cs.err = errors.New("disk full")
	_ = tr.Delete(ctx, id)

	entries, err := board.ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, user, entries[0].User)
	assert.Equal(t, "2026-05-20 cleared", entries[1].Detail)
	assert.Equal(t, board.LevelError, entries[2].Level)
	assert.Equal(t, id, entries[2].TaskID)
}
