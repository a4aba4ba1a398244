package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"hexad/internal/engine/buffer"
	"hexad/internal/engine/history"
	"hexad/internal/engine/selection"
)

// Session associates one buffer version with its selection set, dirty
// flag, undo history and optional backing file path. Sessions are
// independent; each has a stable identity for state tracking.
type Session struct {
	ID   uuid.UUID
	path string

	buf buffer.Buffer
	sel *selection.Set

	hist  *history.History
	dirty bool

	// Composite edits (an insert-mode stay, a change command) snapshot
	// their starting point and push a single history record on Commit.
	composing bool
	snapBuf   buffer.Buffer
	snapSel   *selection.Set
}

// NewSession creates a session over the given buffer. path may be empty
// for a scratch session.
func NewSession(buf buffer.Buffer, path string) *Session {
	return &Session{
		ID:   uuid.New(),
		path: path,
		buf:  buf,
		sel:  selection.NewSet(),
		hist: history.New(0),
	}
}

// LoadSession opens path and reads it fully into a new session. A
// missing file yields an empty session bound to the path, created on the
// first write.
func LoadSession(path string) (*Session, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSession(buffer.New(), path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := buffer.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewSession(buf, path), nil
}

// Path returns the backing file path, empty for a scratch session.
func (s *Session) Path() string {
	return s.path
}

// Name returns a short display name for the session.
func (s *Session) Name() string {
	if s.path == "" {
		return "[scratch]"
	}
	return filepath.Base(s.path)
}

// Buffer returns the current buffer version.
func (s *Session) Buffer() buffer.Buffer {
	return s.buf
}

// Selection returns the current selection set.
func (s *Session) Selection() *selection.Set {
	return s.sel
}

// Dirty reports unsaved buffer mutations relative to the backing file.
func (s *Session) Dirty() bool {
	return s.dirty
}

// History exposes the undo history, mainly for inspection.
func (s *Session) History() *history.History {
	return s.hist
}

// SetSelection replaces the selection set without touching the buffer or
// history. Selection-only commands are not undo steps.
func (s *Session) SetSelection(sel *selection.Set) {
	s.sel = sel
}

// Apply installs a new buffer version and selection as one atomic step,
// recording it for undo unless a composite edit is in progress.
func (s *Session) Apply(buf buffer.Buffer, sel *selection.Set) {
	if !s.composing {
		s.hist.Push(history.Record{
			Before:    s.buf,
			After:     buf,
			SelBefore: s.sel,
			SelAfter:  sel,
		})
	}
	s.buf = buf
	s.sel = sel
	s.dirty = true
}

// ApplyEdits applies a sorted, non-overlapping edit batch, carrying the
// selection through it. assocAfter controls whether cursors sitting at an
// insertion point land after the inserted bytes.
func (s *Session) ApplyEdits(edits []buffer.Edit, assocAfter bool) error {
	buf, err := s.buf.ApplyEdits(edits)
	if err != nil {
		return err
	}
	s.Apply(buf, s.sel.TransformThrough(edits, assocAfter))
	return nil
}

// BeginComposite starts grouping subsequent Apply calls into one undo
// record, closed by Commit.
func (s *Session) BeginComposite() {
	if s.composing {
		return
	}
	s.composing = true
	s.snapBuf = s.buf
	s.snapSel = s.sel
}

// Commit closes a composite edit, pushing a single history record if the
// buffer changed.
func (s *Session) Commit() {
	if !s.composing {
		return
	}
	s.composing = false
	if s.buf.Revision() == s.snapBuf.Revision() {
		return
	}
	s.hist.Push(history.Record{
		Before:    s.snapBuf,
		After:     s.buf,
		SelBefore: s.snapSel,
		SelAfter:  s.sel,
	})
}

// Undo restores the buffer and selection from before the latest record.
// Returns false when nothing is left to undo.
func (s *Session) Undo() bool {
	r, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.buf = r.Before
	s.sel = r.SelBefore
	s.dirty = true
	return true
}

// Redo reapplies the most recently undone record.
func (s *Session) Redo() bool {
	r, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.buf = r.After
	s.sel = r.SelAfter
	s.dirty = true
	return true
}

// Save writes the buffer to path, adopting it as the new backing file.
// An empty path reuses the current one; ErrNoPath if there is none. The
// buffer state is unaffected by a failed write.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := s.buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.path = path
	s.dirty = false
	return nil
}
