package editor

import (
	"errors"

	"hexad/internal/engine/buffer"
	"hexad/internal/engine/register"
	"hexad/internal/input/key"
)

// DefaultBytesPerLine is the display row width used for vertical
// movement when no configuration overrides it.
const DefaultBytesPerLine = 16

// FilterFunc runs an external bytes-to-bytes transform script over one
// selection's content. Wired in by the application; nil disables :filter.
type FilterFunc func(script string, data []byte) ([]byte, error)

// mode is one state of the interpreter. handleKey may mutate the editor,
// switch modes and apply buffer/selection transformations.
type mode interface {
	name() string
	handleKey(ed *Editor, ev key.Event) error
}

// Editor is the modal command interpreter driving all open sessions.
// Not safe for concurrent use: the event loop feeds it one key at a time.
type Editor struct {
	sessions []*Session
	current  int

	regs  *register.Store
	mode  mode
	count countState

	perLine buffer.ByteOffset
	info    string
	filter  FilterFunc
}

// New creates an editor with no open sessions.
func New() *Editor {
	return &Editor{
		regs:    register.NewStore(),
		mode:    normalMode{},
		perLine: DefaultBytesPerLine,
	}
}

// SetBytesPerLine sets the display row width used for vertical movement.
func (ed *Editor) SetBytesPerLine(n int64) {
	if n > 0 {
		ed.perLine = buffer.ByteOffset(n)
	}
}

// BytesPerLine returns the display row width.
func (ed *Editor) BytesPerLine() int64 {
	return int64(ed.perLine)
}

// SetFilter wires in the transform runner used by :filter.
func (ed *Editor) SetFilter(f FilterFunc) {
	ed.filter = f
}

// AddSession appends a session and makes it current.
func (ed *Editor) AddSession(s *Session) {
	ed.sessions = append(ed.sessions, s)
	ed.current = len(ed.sessions) - 1
}

// Open loads path into a new session and makes it current.
func (ed *Editor) Open(path string) error {
	s, err := LoadSession(path)
	if err != nil {
		return err
	}
	ed.AddSession(s)
	return nil
}

// Current returns the current session, nil when none is open.
func (ed *Editor) Current() *Session {
	if len(ed.sessions) == 0 {
		return nil
	}
	return ed.sessions[ed.current]
}

// Sessions returns all open sessions in order.
func (ed *Editor) Sessions() []*Session {
	return ed.sessions
}

// Registers returns the shared register store.
func (ed *Editor) Registers() *register.Store {
	return ed.regs
}

// ModeName returns the current mode label with any pending count.
func (ed *Editor) ModeName() string {
	if _, ok := ed.mode.(normalMode); ok {
		return ed.mode.name() + ed.count.String()
	}
	return ed.mode.name()
}

// PendingInput returns the in-progress command line or pattern text for
// the status area, empty outside those modes.
func (ed *Editor) PendingInput() string {
	switch m := ed.mode.(type) {
	case *commandMode:
		return ":" + m.text
	case *patternMode:
		return m.render()
	}
	return ""
}

// Info returns the last status message.
func (ed *Editor) Info() string {
	return ed.info
}

// SetInfo replaces the status message.
func (ed *Editor) SetInfo(msg string) {
	ed.info = msg
}

// HandleKey processes one key event to completion. Recoverable failures
// become the status message; only ErrQuit is returned.
func (ed *Editor) HandleKey(ev key.Event) error {
	if ed.Current() == nil {
		return ErrQuit
	}
	ed.info = ""
	err := ed.mode.handleKey(ed, ev)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrQuit) {
		return ErrQuit
	}
	ed.info = err.Error()
	return nil
}

// toNormal resets to normal mode, discarding pending input.
func (ed *Editor) toNormal() {
	ed.mode = normalMode{}
	ed.count = countState{}
}

// closeCurrent closes the current session; ErrDirtyBuffer unless forced
// or clean, ErrQuit when the last session closes.
func (ed *Editor) closeCurrent(force bool) error {
	s := ed.Current()
	if s.Dirty() && !force {
		return ErrDirtyBuffer
	}
	ed.sessions = append(ed.sessions[:ed.current], ed.sessions[ed.current+1:]...)
	if len(ed.sessions) == 0 {
		return ErrQuit
	}
	if ed.current >= len(ed.sessions) {
		ed.current = len(ed.sessions) - 1
	}
	return nil
}
