package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadHandler receives the freshly loaded configuration after the
// watched file changes. Load errors are delivered on err with the
// previous configuration intact.
type ReloadHandler func(cfg Config, err error)

// Watcher reloads the configuration when its file changes on disk.
//
// The parent directory is watched rather than the file itself, so the
// write-rename dance editors use when saving still produces events.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	handler ReloadHandler

	debounce time.Duration
	timerMu  sync.Mutex
	timer    *time.Timer

	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
}

// NewWatcher starts watching path and invokes handler on each change.
func NewWatcher(path string, handler ReloadHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		handler:  handler,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// scheduleReload coalesces the event bursts a single save produces into
// one reload.
func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		cfg, err := Load(w.path)
		w.handler(cfg, err)
	})
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	return w.fsw.Close()
}
