// Package tracker is the mutation layer between callers and a task store.
// It keeps the latest snapshot with its derived statistics and records the
// outcome of every mutation.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// State is an immutable view of the tracker. A new value replaces the old
// one on every snapshot or error change.
type State struct {
	Tasks   []*task.Task
	Derived stats.Derived
	Today   date.Date
	// Err is the message of the most recent failure, or "".
	Err string
	// Loaded is false until the first snapshot arrives.
	Loaded bool
}

// Tracker consumes a store subscription for one user.
type Tracker struct {
	store  store.Store
	user   string
	now    func() time.Time
	logDir string

	mu       sync.RWMutex
	state    State
	onChange func(State)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithActivityLog records every mutation in the activity log under dir.
func WithActivityLog(dir string) Option {
	return func(t *Tracker) { t.logDir = dir }
}

// New returns a Tracker for userID backed by s.
func New(s store.Store, userID string, opts ...Option) *Tracker {
	t := &Tracker{store: s, user: userID, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Today returns the current calendar date according to the tracker clock.
func (t *Tracker) Today() date.Date {
	return date.Today(t.now())
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Run follows the store until ctx is canceled or the stream fails. Each
// snapshot is recomputed and handed to onChange, which may be nil. A stream
// failure becomes the error state and is returned.
func (t *Tracker) Run(ctx context.Context, onChange func(State)) error {
	t.mu.Lock()
	t.onChange = onChange
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.onChange = nil
		t.mu.Unlock()
	}()

	sub, err := t.store.Subscribe(ctx, t.user)
	if err != nil {
		t.fail("subscribe", "", err)
		return err
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if snap.Err != nil {
				t.fail("subscribe", "", snap.Err)
				return snap.Err
			}
			t.apply(snap.Tasks)
		}
	}
}

// Load takes one snapshot into the state, for callers that do not Run.
func (t *Tracker) Load(ctx context.Context) (State, error) {
	tasks, err := store.First(ctx, t.store, t.user)
	if err != nil {
		t.fail("load", "", err)
		return t.State(), err
	}
	t.apply(tasks)
	return t.State(), nil
}

// Refresh recomputes the current snapshot against the clock, so derived
// values follow a change of day without a store event. Tasks and the error
// state are left as they are.
func (t *Tracker) Refresh() {
	today := t.Today()
	t.replace(func(s *State) {
		s.Today = today
		s.Derived = stats.Recompute(s.Tasks, today)
	})
}

func (t *Tracker) apply(tasks []*task.Task) {
	today := t.Today()
	t.replace(func(s *State) {
		s.Tasks = tasks
		s.Today = today
		s.Derived = stats.Recompute(tasks, today)
		s.Err = ""
		s.Loaded = true
	})
}

func (t *Tracker) replace(fn func(*State)) {
	t.mu.Lock()
	next := t.state
	fn(&next)
	t.state = next
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		notify(next)
	}
}

func (t *Tracker) clearErr() {
	if t.State().Err == "" {
		return
	}
	t.replace(func(s *State) { s.Err = "" })
}

// fail records err as the error state and logs it.
func (t *Tracker) fail(action, id string, err error) {
	t.replace(func(s *State) { s.Err = err.Error() })
	if t.logDir != "" {
		board.LogFailure(t.logDir, t.user, action, id, err)
	}
}

func (t *Tracker) logged(action, id, detail string) {
	if t.logDir != "" {
		board.LogMutation(t.logDir, t.user, action, id, detail)
	}
}

// Add validates and creates a task. An empty title is rejected before the
// store is contacted.
func (t *Tracker) Add(ctx context.Context, in store.NewTask) (string, error) {
	title, err := task.ValidateTitle(in.Title)
	if err != nil {
		return "", err
	}
	freq, err := task.ParseFrequency(string(in.Frequency))
	if err != nil {
		return "", err
	}
	in.Title, in.Frequency = title, freq

	t.clearErr()
	id, err := t.store.Create(ctx, t.user, in)
	if err != nil {
		t.fail("create", "", err)
		return "", err
	}
	t.logged("create", id, title)
	return id, nil
}

// Update applies a partial update. Title and frequency are validated when
// present.
func (t *Tracker) Update(ctx context.Context, id string, p store.Patch) error {
	if p.Empty() {
		return clierr.New(clierr.NoChanges, "no changes specified")
	}
	if p.Title != nil {
		title, err := task.ValidateTitle(*p.Title)
		if err != nil {
			return err
		}
		p.Title = &title
	}
	if p.Frequency != nil {
		freq, err := task.ParseFrequency(string(*p.Frequency))
		if err != nil {
			return err
		}
		p.Frequency = &freq
	}

	t.clearErr()
	if err := t.store.Update(ctx, t.user, id, p); err != nil {
		t.fail("update", id, err)
		return err
	}
	t.logged("update", id, describePatch(p))
	return nil
}

// Delete removes a task. Confirmation is the caller's concern.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.clearErr()
	if err := t.store.Delete(ctx, t.user, id); err != nil {
		t.fail("delete", id, err)
		return err
	}
	t.logged("delete", id, "")
	return nil
}

// Mark sets today's status for a task. task.StatusNone clears it.
func (t *Tracker) Mark(ctx context.Context, id string, s task.Status) error {
	today := t.Today()
	t.clearErr()
	if err := t.store.SetCompletion(ctx, t.user, id, today, s); err != nil {
		t.fail("mark", id, err)
		return err
	}
	detail := string(s)
	if s == task.StatusNone {
		detail = "cleared"
	}
	t.logged("mark", id, today.String()+" "+detail)
	return nil
}

// CycleToday advances tk's status for today through the today-cycle and
// returns the status written.
func (t *Tracker) CycleToday(ctx context.Context, tk *task.Task) (task.Status, error) {
	current, _ := tk.StatusOn(t.Today())
	next := task.NextTodayStatus(current)
	if err := t.Mark(ctx, tk.ID, next); err != nil {
		return current, err
	}
	return next, nil
}

func describePatch(p store.Patch) string {
	var parts []string
	if p.Title != nil {
		parts = append(parts, fmt.Sprintf("title=%q", *p.Title))
	}
	if p.Description != nil {
		parts = append(parts, "description")
	}
	if p.Frequency != nil {
		parts = append(parts, "frequency="+string(*p.Frequency))
	}
	if p.Active != nil {
		parts = append(parts, fmt.Sprintf("active=%t", *p.Active))
	}
	return strings.Join(parts, " ")
}
