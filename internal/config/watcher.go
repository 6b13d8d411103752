package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the reload debounce used when none is given.
// Editors often write a file several times in quick succession.
const DefaultDebounce = 100 * time.Millisecond

// ReloadHandler receives the reloaded file, or the load error if the
// changed file no longer parses.
type ReloadHandler func(*File, error)

// Watcher watches one rule file and reloads it when it changes.
// The file's format is chosen by extension: ".lua" runs through the Lua
// loader, everything else through TOML.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  ReloadHandler

	fw *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts watching the rule file at path. A non-positive
// debounce uses DefaultDebounce. The watcher observes the parent
// directory so rename-and-replace saves are still seen.
func NewWatcher(path string, debounce time.Duration, handler ReloadHandler) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("nil reload handler")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		fw:       fw,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Close stops the watcher. Pending debounced reloads are cancelled and
// no handler call is in flight once Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.handler(nil, fmt.Errorf("watch error: %w", err))
		}
	}
}

// schedule arms the debounce timer, resetting it if already armed.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload runs on the debounce timer's goroutine. Registering with the
// WaitGroup under the mutex orders it against Close: either the reload
// is counted before Close's Wait, or it sees closed and backs out.
func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	w.handler(Load(w.path))
}

// Load reads a rule file, choosing the loader by extension.
func Load(path string) (*File, error) {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return LoadLua(path)
	}
	return LoadTOML(path)
}
