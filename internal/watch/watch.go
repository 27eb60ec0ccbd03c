// Package watch reports changes to the Markdown file being previewed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the minimum interval between two reloads.
const Debounce = 300 * time.Millisecond

// FileWatcher watches a single file. It watches the parent directory so that
// editors which save by writing a new file and renaming it over the old one
// are still seen.
type FileWatcher struct {
	Path        string
	Started     bool
	Waiting     bool
	Events      chan struct{}
	Done        chan struct{}
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time

	mu   sync.Mutex
	logf func(string, ...any)
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, logf func(string, ...any)) *FileWatcher {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &FileWatcher{Path: abs, logf: logf}
}

// Start begins watching. It stops when ctx is cancelled or Stop is called.
func (w *FileWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.Started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.Path), err)
	}

	w.Started = true
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run(ctx)
	return nil
}

// Stop stops the watcher.
func (w *FileWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel unless a wait is already in flight.
func (w *FileWatcher) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *FileWatcher) ResetWaiting() {
	w.Waiting = false
}

// ShouldReload applies the debounce window.
func (w *FileWatcher) ShouldReload(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < Debounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of a change, dropping it if one is pending.
func (w *FileWatcher) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// Matches reports whether an event path refers to the watched file.
func (w *FileWatcher) Matches(name string) bool {
	if name == "" {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.Path
}

func (w *FileWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.debugf("%s: %s", event.Op, event.Name)
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("file watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
