// Package watcher turns bursts of file system events in task directories
// into single debounced notifications.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits after the last relevant event
// before notifying.
const DefaultDelay = 100 * time.Millisecond

// Watcher reports changes to task files in a set of directories.
type Watcher struct {
	fsw    *fsnotify.Watcher
	delay  time.Duration
	filter func(name string) bool

	mu      sync.Mutex
	timer   *time.Timer
	changed func()
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay overrides the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// WithFilter restricts notifications to file names accepted by fn.
func WithFilter(fn func(name string) bool) Option {
	return func(w *Watcher) { w.filter = fn }
}

// MarkdownOnly accepts task files and ignores lock and temp files.
func MarkdownOnly(name string) bool {
	return filepath.Ext(name) == ".md"
}

// New watches dirs and calls changed once per burst of relevant events.
func New(dirs []string, changed func(), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   DefaultDelay,
		filter:  MarkdownOnly,
		changed: changed,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes events until ctx is canceled or the watcher is closed.
// Watch errors are passed to errFn when it is non-nil.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.filter != nil && !w.filter(filepath.Base(ev.Name)) {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsw.Close()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.changed)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
