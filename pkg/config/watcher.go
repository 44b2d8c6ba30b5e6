package config

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/wayneeseguin/debugkit/pkg/topics"
)

// Watcher keeps a topic mask in sync with the debug labels of a
// configuration file. Readers call Current on every emission; reloads swap
// the mask atomically.
type Watcher struct {
	mu       sync.Mutex
	fs       afero.Fs
	path     string
	registry *topics.Registry
	current  atomic.Pointer[topics.Set]

	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	done     chan struct{}
	onChange func(topics.Set)
	onError  func(error)
}

// NewWatcher loads the mask from path, resolving labels against reg.
// The file must exist and parse; later reload failures keep the last good mask.
//
// Parameters:
//   - path: The configuration file to watch
//   - reg: Registry used to resolve the debug labels
//
// Returns:
//   - *Watcher: The watcher, not yet started
//   - error: If the initial load fails
func NewWatcher(path string, reg *topics.Registry) (*Watcher, error) {
	w := &Watcher{
		fs:       afero.NewOsFs(),
		path:     filepath.Clean(path),
		registry: reg,
	}
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// Current returns the most recently loaded mask
func (w *Watcher) Current() topics.Set {
	return *w.current.Load()
}

// SetOnChange sets a function called after each successful reload
func (w *Watcher) SetOnChange(fn func(topics.Set)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// SetErrorHandler sets a function called when a reload fails
func (w *Watcher) SetErrorHandler(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Reload reads the file and swaps in the new mask
func (w *Watcher) Reload() error {
	f, err := Load(w.fs, w.path)
	if err != nil {
		return err
	}
	mask, err := f.Mask(w.registry)
	if err != nil {
		return errors.Wrapf(err, "reload %s", w.path)
	}

	w.current.Store(&mask)

	w.mu.Lock()
	onChange := w.onChange
	w.mu.Unlock()
	if onChange != nil {
		onChange(mask)
	}
	return nil
}

// Start begins watching the file's directory, so editors that replace the
// file by renaming are followed. Starting twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file system watcher")
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(w.path))
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.watch(ctx, watcher, w.done)
	return nil
}

// Stop stops watching and waits for the watch loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer func() {
		watcher.Close()
		w.mu.Lock()
		w.watcher = nil
		w.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.Reload(); err != nil {
				w.reportError(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.reportError(errors.Wrap(err, "file system watcher"))
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.mu.Lock()
	onError := w.onError
	w.mu.Unlock()
	if onError != nil {
		onError(err)
	}
}
