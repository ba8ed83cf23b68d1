// Package store defines the task store contract the tracker consumes and
// provides file-backed and in-memory implementations of it.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// ErrClosed is returned by First when the subscription ends without
// delivering a snapshot.
var ErrClosed = errors.New("subscription closed")

// Store is a per-user reactive task collection.
type Store interface {
	// Subscribe streams the user's full task collection: once immediately
	// and again after every change. The stream ends when ctx is canceled,
	// the subscription is closed, or a snapshot carrying Err is sent.
	Subscribe(ctx context.Context, userID string) (Subscription, error)

	// Create adds a task and returns its store-assigned id.
	Create(ctx context.Context, userID string, in NewTask) (string, error)

	// Update applies the non-nil fields of p.
	Update(ctx context.Context, userID, id string, p Patch) error

	// Delete removes a task.
	Delete(ctx context.Context, userID, id string) error

	// SetCompletion records s for d. task.StatusNone clears the entry.
	SetCompletion(ctx context.Context, userID, id string, d date.Date, s task.Status) error
}

// Subscription is a handle on a live snapshot stream.
type Subscription interface {
	Updates() <-chan Snapshot
	Close() error
}

// Snapshot is the full task collection at one point in time, ordered by
// creation time then id. A snapshot with Err set is the last one.
type Snapshot struct {
	Tasks []*task.Task
	Err   error
}

// NewTask holds the fields a caller supplies on creation.
type NewTask struct {
	Title       string
	Description string
	Frequency   task.Frequency
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Frequency   *task.Frequency
	Active      *bool
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Frequency == nil && p.Active == nil
}

// Apply writes the non-nil fields of p onto t.
func (p Patch) Apply(t *task.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.Active != nil {
		t.Active = *p.Active
	}
}

// First takes a single snapshot from s for one-shot commands.
func First(ctx context.Context, s Store, userID string) ([]*task.Task, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub, err := s.Subscribe(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	select {
	case snap, ok := <-sub.Updates():
		if !ok {
			return nil, ErrClosed
		}
		return snap.Tasks, snap.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Option configures a store.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock sets the clock used to stamp created and updated times.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDs sets the id generator used by Create.
func WithIDs(next func() string) Option {
	return func(o *options) { o.newID = next }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: newID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newID returns the first eight hex digits of a random UUID.
func newID() string {
	return uuid.New().String()[:8]
}

func newRecord(id string, in NewTask, now time.Time) *task.Task {
	freq := in.Frequency
	if freq == "" {
		freq = task.Daily
	}
	return &task.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Frequency:   freq,
		Active:      true,
		Created:     now,
		Updated:     now,
		Completions: task.Record{},
	}
}

func sortTasks(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Created.Equal(tasks[j].Created) {
			return tasks[i].Created.Before(tasks[j].Created)
		}
		return tasks[i].ID < tasks[j].ID
	})
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return clierr.Wrap(clierr.StoreError, op, err)
}

// feed is a subscription whose channel holds at most one pending snapshot.
// A newer snapshot replaces an unread one.
type feed struct {
	mu     sync.Mutex
	ch     chan Snapshot
	closed bool
	done   chan struct{}
	onStop func()
}

func newFeed(onStop func()) *feed {
	return &feed{
		ch:     make(chan Snapshot, 1),
		done:   make(chan struct{}),
		onStop: onStop,
	}
}

func (f *feed) Updates() <-chan Snapshot { return f.ch }

// Done is closed once the feed stops.
func (f *feed) Done() <-chan struct{} { return f.done }

func (f *feed) publish(s Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- s:
	default:
		select {
		case <-f.ch:
		default:
		}
		f.ch <- s
	}
}

// fail sends a terminal error snapshot and stops the feed.
func (f *feed) fail(err error) {
	f.publish(Snapshot{Err: err})
	_ = f.Close()
}

func (f *feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.ch)
	close(f.done)
	stop := f.onStop
	f.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}
