// Package app wires the editor, renderer, configuration and transform
// runner into a running terminal application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"hexad/internal/config"
	"hexad/internal/editor"
	"hexad/internal/engine/buffer"
	"hexad/internal/renderer"
	"hexad/internal/statefile"
	"hexad/internal/transform"
)

// Options configures application startup.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Files are opened at startup, the last one current. None opens a
	// scratch session.
	Files []string
}

// App owns the main event loop and every long-lived component.
type App struct {
	cfg config.Config
	log *Logger

	editor *editor.Editor
	render *renderer.Renderer
	screen tcell.Screen

	runner  *transform.Runner
	state   *statefile.File
	watcher *config.Watcher

	logFile io.Closer
}

// configEvent carries a reloaded configuration into the event loop.
type configEvent struct {
	when time.Time
	cfg  config.Config
	err  error
}

func (e *configEvent) When() time.Time { return e.when }

// New builds the application: configuration, logging, state, sessions.
// The screen is attached separately so tests can supply a simulated one.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		a.log = NewLogger(f, ParseLogLevel(level))
	} else {
		a.log = NewLogger(nil, ParseLogLevel(level))
	}

	a.state, err = statefile.Open(cfg.StatePath())
	if err != nil {
		a.log.Warnf("state file unreadable, starting fresh: %v", err)
		a.state, _ = statefile.Open("")
	}

	a.editor = editor.New()
	a.editor.SetBytesPerLine(int64(cfg.BytesPerLine))

	a.runner = transform.NewRunner()
	a.editor.SetFilter(a.runner.Filter)

	for _, file := range opts.Files {
		if err := a.editor.Open(file); err != nil {
			a.Shutdown()
			return nil, err
		}
		a.restoreOffset(a.editor.Current())
	}
	if a.editor.Current() == nil {
		a.editor.AddSession(editor.NewSession(buffer.New(), ""))
	}
	for _, s := range a.editor.Sessions() {
		s.History().SetLimit(cfg.HistoryLimit)
	}

	if path != "" {
		w, err := config.NewWatcher(path, a.onConfigChange)
		if err != nil {
			a.log.Warnf("config watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	a.log.Infof("started with %d session(s)", len(a.editor.Sessions()))
	return a, nil
}

// Editor exposes the command interpreter, mainly for tests.
func (a *App) Editor() *editor.Editor {
	return a.editor
}

// SetScreen attaches an initialized screen and builds the renderer.
func (a *App) SetScreen(screen tcell.Screen) {
	a.screen = screen
	a.render = renderer.New(screen, renderer.NewTheme(a.cfg.Theme))
}

// restoreOffset moves the caret to the file's last remembered position.
func (a *App) restoreOffset(s *editor.Session) {
	if s == nil || s.Path() == "" {
		return
	}
	off, ok := a.state.Offset(absPath(s.Path()))
	if !ok {
		return
	}
	bufLen := s.Buffer().Len()
	s.SetSelection(s.Selection().JumpTo(buffer.ByteOffset(off), false, bufLen))
}

// onConfigChange runs on the watcher goroutine; the loop applies it.
func (a *App) onConfigChange(cfg config.Config, err error) {
	if a.screen == nil {
		return
	}
	_ = a.screen.PostEvent(&configEvent{when: time.Now(), cfg: cfg, err: err})
}

// applyConfig applies a reloaded configuration in place.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.editor.SetBytesPerLine(int64(cfg.BytesPerLine))
	a.render.SetTheme(renderer.NewTheme(cfg.Theme))
	for _, s := range a.editor.Sessions() {
		s.History().SetLimit(cfg.HistoryLimit)
	}
	a.log.Infof("configuration reloaded")
}

// Run drives the event loop until the editor quits or the screen dies.
// A normal quit returns nil.
func (a *App) Run() error {
	if a.screen == nil {
		return errors.New("no screen attached")
	}

	a.render.Render(a.editor)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			ke := renderer.TranslateKey(ev)
			if err := a.editor.HandleKey(ke); err != nil {
				if errors.Is(err, editor.ErrQuit) {
					return nil
				}
				return err
			}

		case *tcell.EventResize:
			a.screen.Sync()

		case *configEvent:
			if ev.err != nil {
				a.editor.SetInfo(fmt.Sprintf("config reload failed: %v", ev.err))
				a.log.Errorf("config reload: %v", ev.err)
			} else {
				a.applyConfig(ev.cfg)
			}
		}

		a.render.Render(a.editor)
	}
}

// Shutdown releases every component and persists session state. Safe to
// call more than once.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.runner != nil {
		a.runner.Close()
		a.runner = nil
	}
	if a.editor != nil && a.state != nil {
		for _, s := range a.editor.Sessions() {
			if s.Path() == "" {
				continue
			}
			if err := a.state.Touch(absPath(s.Path()), int64(s.Selection().Main().Cursor)); err != nil {
				a.log.Warnf("recording state for %s: %v", s.Path(), err)
			}
		}
		if err := a.state.Save(); err != nil {
			a.log.Warnf("saving state: %v", err)
		}
		a.state = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
