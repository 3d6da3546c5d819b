// Package watch reruns a callback when any of a set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// ChangeCallback receives the path of the last changed file in a burst
type ChangeCallback func(path string) error

// Watcher watches files for changes and triggers a callback
type Watcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	callback       ChangeCallback
	debouncePeriod time.Duration

	mu            sync.Mutex
	debounceTimer *time.Timer
	runs          sync.WaitGroup
}

// New watches paths. The parent directories are watched rather than the files
// so that editors replacing a file by rename are still seen.
func New(paths []string, callback ChangeCallback) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:          make(map[string]bool, len(paths)),
		watcher:        fw,
		callback:       callback,
		debouncePeriod: DefaultDebounce,
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		dirs[dir] = true
	}

	return w, nil
}

// SetDebounce overrides DefaultDebounce. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debouncePeriod = d
}

// Start blocks until ctx is cancelled or the underlying watcher fails, then
// waits for a scheduled callback to finish
func (w *Watcher) Start(ctx context.Context) error {
	defer w.runs.Wait()
	defer w.stopTimer()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.ComponentLogger("watch").Debugw("Detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.ComponentLogger("watch").Warnw("fsnotify error",
				logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// schedule debounces rapid changes into a single callback
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil && w.debounceTimer.Stop() {
		w.runs.Done()
	}

	w.runs.Add(1)
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		defer w.runs.Done()
		if err := w.callback(path); err != nil {
			logger.ComponentLogger("watch").Errorw("Callback failed",
				logger.FieldFile, path,
				logger.FieldError, err)
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil && w.debounceTimer.Stop() {
		w.runs.Done()
	}
}
