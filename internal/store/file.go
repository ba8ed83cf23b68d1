package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/filelock"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/watcher"
)

const (
	tasksDirName = "tasks"
	lockFileName = ".lock"
	dirMode      = 0o750
)

// FileStore keeps each task in its own markdown file:
//
//	<root>/<user>/tasks/<id>-<slug>.md
//
// Mutations hold an exclusive lock on <root>/<user>/.lock and
// subscriptions follow the directory with a debounced file watcher, so
// changes made by other processes reach every subscriber.
type FileStore struct {
	root string
	opts options
	warn func(task.ReadWarning)
}

var _ Store = (*FileStore)(nil)

// NewFile returns a FileStore rooted at the users directory root.
func NewFile(root string, opts ...Option) *FileStore {
	return &FileStore{root: root, opts: buildOptions(opts)}
}

// OnWarning registers fn to receive files skipped as malformed.
func (s *FileStore) OnWarning(fn func(task.ReadWarning)) *FileStore {
	s.warn = fn
	return s
}

// UserDir returns the directory holding everything for userID.
func (s *FileStore) UserDir(userID string) string {
	return filepath.Join(s.root, userID)
}

// TasksDir returns the directory holding userID's task files.
func (s *FileStore) TasksDir(userID string) string {
	return filepath.Join(s.UserDir(userID), tasksDirName)
}

func (s *FileStore) lockPath(userID string) string {
	return filepath.Join(s.UserDir(userID), lockFileName)
}

// Subscribe implements Store.
func (s *FileStore) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	dir := s.TasksDir(userID)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, wrapErr("creating tasks directory", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	f := newFeed(cancel)

	var reloading sync.Mutex
	reload := func() {
		reloading.Lock()
		defer reloading.Unlock()
		tasks, err := s.load(userID)
		if err != nil {
			f.fail(err)
			return
		}
		f.publish(Snapshot{Tasks: tasks})
	}

	w, err := watcher.New([]string{dir}, reload)
	if err != nil {
		cancel()
		return nil, wrapErr("watching tasks directory", err)
	}

	reload()

	go func() {
		defer w.Close()
		w.Run(ctx, func(err error) {
			f.fail(wrapErr("watching tasks directory", err))
		})
		_ = f.Close()
	}()
	return f, nil
}

// Create implements Store.
func (s *FileStore) Create(ctx context.Context, userID string, in NewTask) (string, error) {
	if err := validateUser(userID); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var id string
	err := s.withLock(userID, func(dir string) error {
		id = s.opts.newID()
		for {
			if _, err := task.FindByID(dir, id); err != nil {
				break
			}
			id = s.opts.newID()
		}
		t := newRecord(id, in, s.opts.now())
		path := filepath.Join(dir, task.GenerateFilename(id, task.GenerateSlug(t.Title)))
		return writeAtomic(path, t)
	})
	if err != nil {
		return "", wrapErr("creating task", err)
	}
	return id, nil
}

// Update implements Store. A title change renames the file to match.
func (s *FileStore) Update(ctx context.Context, userID, id string, p Patch) error {
	return s.mutate(ctx, userID, id, "updating task", func(t *task.Task) {
		p.Apply(t)
	})
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, userID, id string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.withLock(userID, func(dir string) error {
		path, err := task.FindByID(dir, id)
		if err != nil {
			return err
		}
		return os.Remove(path)
	})
	return wrapErr("deleting task", err)
}

// SetCompletion implements Store.
func (s *FileStore) SetCompletion(ctx context.Context, userID, id string, d date.Date, st task.Status) error {
	return s.mutate(ctx, userID, id, "recording completion", func(t *task.Task) {
		t.Completions.Set(d, st)
	})
}

func (s *FileStore) mutate(ctx context.Context, userID, id, op string, fn func(*task.Task)) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.withLock(userID, func(dir string) error {
		path, err := task.FindByID(dir, id)
		if err != nil {
			return err
		}
		t, err := task.Read(path)
		if err != nil {
			return err
		}

		fn(t)
		t.Updated = s.opts.now()

		newPath := filepath.Join(dir, task.GenerateFilename(t.ID, task.GenerateSlug(t.Title)))
		if err := writeAtomic(newPath, t); err != nil {
			return err
		}
		if newPath != path {
			return os.Remove(path)
		}
		return nil
	})
	return wrapErr(op, err)
}

func (s *FileStore) withLock(userID string, fn func(dir string) error) error {
	dir := s.TasksDir(userID)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating tasks directory: %w", err)
	}
	return filelock.With(s.lockPath(userID), func() error {
		return fn(dir)
	})
}

func (s *FileStore) load(userID string) ([]*task.Task, error) {
	var (
		tasks    []*task.Task
		warnings []task.ReadWarning
	)
	err := filelock.WithShared(s.lockPath(userID), func() error {
		var err error
		tasks, warnings, err = task.ReadAllLenient(s.TasksDir(userID))
		return err
	})
	if err != nil {
		return nil, wrapErr("loading tasks", err)
	}
	if s.warn != nil {
		for _, w := range warnings {
			s.warn(w)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

// writeAtomic writes t next to path and renames it into place so readers
// never see a partial file.
func writeAtomic(path string, t *task.Task) error {
	tmp := path + ".tmp"
	if err := task.Write(tmp, t); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// validateUser rejects user ids that would escape the users directory.
func validateUser(userID string) error {
	if userID == "" || userID == "." || userID == ".." || strings.ContainsAny(userID, `/\`) {
		return clierr.Newf(clierr.InvalidInput, "invalid user id %q", userID).
			WithDetails(map[string]any{"user": userID})
	}
	return nil
}
