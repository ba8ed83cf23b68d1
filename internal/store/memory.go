package store

import (
	"context"
	"sync"

	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// MemoryStore keeps tasks in process memory. Every mutation broadcasts a
// fresh snapshot to the affected user's subscribers.
type MemoryStore struct {
	opts options

	mu    sync.Mutex
	users map[string]*memUser
}

type memUser struct {
	tasks map[string]*task.Task
	subs  map[*feed]struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemory returns an empty MemoryStore.
func NewMemory(opts ...Option) *MemoryStore {
	return &MemoryStore{
		opts:  buildOptions(opts),
		users: make(map[string]*memUser),
	}
}

func (m *MemoryStore) user(id string) *memUser {
	u, ok := m.users[id]
	if !ok {
		u = &memUser{
			tasks: make(map[string]*task.Task),
			subs:  make(map[*feed]struct{}),
		}
		m.users[id] = u
	}
	return u
}

// Subscribe implements Store.
func (m *MemoryStore) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var f *feed
	f = newFeed(func() {
		m.mu.Lock()
		delete(m.user(userID).subs, f)
		m.mu.Unlock()
	})

	m.mu.Lock()
	u := m.user(userID)
	u.subs[f] = struct{}{}
	f.publish(Snapshot{Tasks: u.snapshot()})
	m.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			_ = f.Close()
		case <-f.Done():
		}
	}()
	return f, nil
}

// Create implements Store.
func (m *MemoryStore) Create(ctx context.Context, userID string, in NewTask) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.user(userID)
	id := m.opts.newID()
	for _, taken := u.tasks[id]; taken; _, taken = u.tasks[id] {
		id = m.opts.newID()
	}
	u.tasks[id] = newRecord(id, in, m.opts.now())
	u.broadcast()
	return id, nil
}

// Update implements Store.
func (m *MemoryStore) Update(ctx context.Context, userID, id string, p Patch) error {
	return m.mutate(ctx, userID, id, func(t *task.Task) {
		p.Apply(t)
	})
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.user(userID)
	if _, ok := u.tasks[id]; !ok {
		return task.NotFound(id)
	}
	delete(u.tasks, id)
	u.broadcast()
	return nil
}

// SetCompletion implements Store.
func (m *MemoryStore) SetCompletion(ctx context.Context, userID, id string, d date.Date, s task.Status) error {
	return m.mutate(ctx, userID, id, func(t *task.Task) {
		t.Completions.Set(d, s)
	})
}

func (m *MemoryStore) mutate(ctx context.Context, userID, id string, fn func(*task.Task)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.user(userID)
	t, ok := u.tasks[id]
	if !ok {
		return task.NotFound(id)
	}
	fn(t)
	t.Updated = m.opts.now()
	u.broadcast()
	return nil
}

// snapshot returns sorted deep copies so subscribers never share state
// with the store.
func (u *memUser) snapshot() []*task.Task {
	tasks := make([]*task.Task, 0, len(u.tasks))
	for _, t := range u.tasks {
		tasks = append(tasks, t.Clone())
	}
	sortTasks(tasks)
	return tasks
}

func (u *memUser) broadcast() {
	if len(u.subs) == 0 {
		return
	}
	for f := range u.subs {
		f.publish(Snapshot{Tasks: u.snapshot()})
	}
}
