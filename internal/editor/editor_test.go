package editor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hexad/internal/engine/buffer"
	"hexad/internal/engine/register"
	"hexad/internal/input/key"
)

func newTestEditor(data []byte) *Editor {
	ed := New()
	ed.AddSession(NewSession(buffer.FromBytes(data), ""))
	return ed
}

func feed(t *testing.T, ed *Editor, evs ...key.Event) {
	t.Helper()
	for _, ev := range evs {
		if err := ed.HandleKey(ev); err != nil && !errors.Is(err, ErrQuit) {
			t.Fatalf("HandleKey(%v) failed: %v", ev, err)
		}
	}
}

func typeText(t *testing.T, ed *Editor, text string) {
	t.Helper()
	for _, r := range text {
		feed(t, ed, key.RuneEvent(r))
	}
}

func cursorAt(t *testing.T, ed *Editor, want buffer.ByteOffset) {
	t.Helper()
	got := ed.Current().Selection().Main().Cursor
	if got != want {
		t.Errorf("cursor = %d, want %d", got, want)
	}
}

func TestMovementWithCount(t *testing.T) {
	ed := newTestEditor(make([]byte, 64))

	typeText(t, ed, "12l")
	cursorAt(t, ed, 12)

	typeText(t, ed, "j") // one display row down
	cursorAt(t, ed, 12+DefaultBytesPerLine)

	typeText(t, ed, "hk")
	cursorAt(t, ed, 11)

	// Clamps at the edges instead of failing.
	typeText(t, ed, "99h")
	cursorAt(t, ed, 0)
}

func TestHexCountJump(t *testing.T) {
	ed := newTestEditor(make([]byte, 256))
	typeText(t, ed, "x2ag") // 0x2a, then g jumps to that offset
	cursorAt(t, ed, 0x2a)
}

func TestExtendSelectsRange(t *testing.T) {
	ed := newTestEditor(make([]byte, 16))
	typeText(t, ed, "3L")

	g := ed.Current().Selection().Main()
	if g.Start() != 0 || g.End() != 3 {
		t.Errorf("selection = %v, want 0..3", g)
	}

	// Collapse resets to the cursor.
	typeText(t, ed, ";")
	g = ed.Current().Selection().Main()
	if g.Len() != 1 || g.Cursor != 3 {
		t.Errorf("after collapse = %v", g)
	}
}

func TestJumpBoundaries(t *testing.T) {
	ed := newTestEditor(make([]byte, 64))
	typeText(t, ed, "20l")
	cursorAt(t, ed, 20)

	typeText(t, ed, "gh") // row start
	cursorAt(t, ed, 16)

	typeText(t, ed, "gl") // row end
	cursorAt(t, ed, 31)

	typeText(t, ed, "gj") // buffer end
	cursorAt(t, ed, 64)

	typeText(t, ed, "gk") // buffer start
	cursorAt(t, ed, 0)
}

func TestInsertHexAssembly(t *testing.T) {
	ed := newTestEditor(nil)

	typeText(t, ed, "Ideadbeef")
	feed(t, ed, key.Special(key.KeyEscape))

	got := ed.Current().Buffer().Bytes()
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(got, want) {
		t.Fatalf("buffer = %x, want %x", got, want)
	}
	if !ed.Current().Dirty() {
		t.Error("session should be dirty after insert")
	}

	// The whole insert stay is one undo step.
	typeText(t, ed, "u")
	if got := ed.Current().Buffer().Len(); got != 0 {
		t.Errorf("after undo len = %d, want 0", got)
	}
	typeText(t, ed, "U")
	if !bytes.Equal(ed.Current().Buffer().Bytes(), want) {
		t.Error("redo did not restore the insert")
	}
}

func TestInsertAsciiAndNull(t *testing.T) {
	ed := newTestEditor(nil)

	typeText(t, ed, "i")
	typeText(t, ed, "ab")
	feed(t, ed, key.Ctrl('n'))
	typeText(t, ed, "c")
	feed(t, ed, key.Special(key.KeyEscape))

	want := []byte{'a', 'b', 0x00, 'c'}
	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, want) {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestInsertBackspace(t *testing.T) {
	ed := newTestEditor(nil)

	typeText(t, ed, "iabc")
	feed(t, ed, key.Special(key.KeyBackspace))
	feed(t, ed, key.Special(key.KeyEscape))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte("ab")) {
		t.Errorf("buffer = %q, want ab", got)
	}
}

func TestInsertEncodingToggle(t *testing.T) {
	ed := newTestEditor(nil)

	typeText(t, ed, "iA") // ascii 'A'
	feed(t, ed, key.Ctrl('o'))
	typeText(t, ed, "ff") // hex ff
	feed(t, ed, key.Special(key.KeyEscape))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{'A', 0xff}) {
		t.Errorf("buffer = %x", got)
	}
}

func TestAppendInsertsAfterSelection(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3})

	typeText(t, ed, "2La") // select 0..2, append
	typeText(t, ed, "Z")
	feed(t, ed, key.Special(key.KeyEscape))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 'Z'}) {
		t.Errorf("buffer = %v", got)
	}
}

func TestYankThenPasteAtEnd(t *testing.T) {
	ed := newTestEditor([]byte{0xde, 0xad, 0xbe, 0xef})

	typeText(t, ed, "3Ly") // select [0,4), yank
	typeText(t, ed, "gj")  // cursor to end of buffer
	typeText(t, ed, "p")   // paste after

	got := ed.Current().Buffer().Bytes()
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(got, want) {
		t.Fatalf("buffer = %x, want %x", got, want)
	}

	// The paste selects what it inserted.
	g := ed.Current().Selection().Main()
	if g.Start() != 4 || g.End() != 7 {
		t.Errorf("pasted selection = %v, want 4..7", g)
	}
}

func TestPasteWithCountRepeats(t *testing.T) {
	ed := newTestEditor([]byte{0xaa})

	typeText(t, ed, "y3p")
	got := ed.Current().Buffer().Bytes()
	if len(got) != 4 {
		t.Errorf("len = %d, want 4 after pasting 3 copies", len(got))
	}
}

func TestPasteUnsetRegisterIsNoOp(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3})
	typeText(t, ed, "p")
	if got := ed.Current().Buffer().Len(); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
}

func TestDeleteYanksAndCollapses(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3, 4, 5})

	typeText(t, ed, "2Ld") // select 0..2, delete

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{4, 5}) {
		t.Fatalf("buffer = %v, want [4 5]", got)
	}
	entries, ok := ed.Registers().Get(register.Default)
	if !ok || len(entries) != 1 || !bytes.Equal(entries[0], []byte{1, 2, 3}) {
		t.Errorf("register = %v", entries)
	}

	g := ed.Current().Selection().Main()
	if g.Len() != 1 || g.Cursor != 0 {
		t.Errorf("selection after delete = %v", g)
	}
}

func TestDeleteUndoKeepsOldVersion(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	typeText(t, ed, "3Ld")
	if ed.Current().Buffer().Len() != 4 {
		t.Fatal("delete failed")
	}
	typeText(t, ed, "u")
	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("after undo = %v", got)
	}
}

func TestChangeIsOneUndoStep(t *testing.T) {
	ed := newTestEditor([]byte("hello"))

	typeText(t, ed, "4Lc") // select all 5 bytes, change
	typeText(t, ed, "hi")
	feed(t, ed, key.Special(key.KeyEscape))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte("hi")) {
		t.Fatalf("buffer = %q, want hi", got)
	}
	// Deleted content went to the register.
	entries, _ := ed.Registers().Get(register.Default)
	if len(entries) != 1 || !bytes.Equal(entries[0], []byte("hello")) {
		t.Errorf("register = %q", entries)
	}

	typeText(t, ed, "u")
	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte("hello")) {
		t.Errorf("after undo = %q, want hello", got)
	}
}

func TestReplaceAscii(t *testing.T) {
	ed := newTestEditor([]byte("abcd"))

	typeText(t, ed, "2Lr") // select 0..2
	typeText(t, ed, "z")

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte("zzzd")) {
		t.Errorf("buffer = %q, want zzzd", got)
	}
	// Length and selection are preserved.
	g := ed.Current().Selection().Main()
	if g.Start() != 0 || g.End() != 2 {
		t.Errorf("selection = %v", g)
	}
}

func TestReplaceHexAssemblesByte(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3})

	typeText(t, ed, "1LR00")
	feed(t, ed, key.Special(key.KeyEscape))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{0, 0, 3}) {
		t.Errorf("buffer = %v", got)
	}
}

func TestReplaceNull(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3})
	typeText(t, ed, "%r")
	feed(t, ed, key.Ctrl('n'))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{0, 0, 0}) {
		t.Errorf("buffer = %v", got)
	}
	if ed.ModeName() != "NORMAL" {
		t.Errorf("mode = %s, want NORMAL after null replace", ed.ModeName())
	}
}

func TestSelectAllAndSplitWidth(t *testing.T) {
	ed := newTestEditor(make([]byte, 8))

	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "w") // width 2

	sel := ed.Current().Selection()
	if sel.Count() != 4 {
		t.Fatalf("pieces = %d, want 4", sel.Count())
	}
	for i, g := range sel.Regions() {
		if g.Len() != 2 {
			t.Errorf("piece %d length = %d", i, g.Len())
		}
	}
}

func TestSplitWidthCountMultiplies(t *testing.T) {
	ed := newTestEditor(make([]byte, 16))

	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "2d") // count 2 x width 4 = 8

	if got := ed.Current().Selection().Count(); got != 2 {
		t.Errorf("pieces = %d, want 2", got)
	}
}

func TestSplitNullKeys(t *testing.T) {
	ed := newTestEditor([]byte{'a', 'b', 0, 0, 'c', 'd'})

	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "n")

	sel := ed.Current().Selection()
	if sel.Count() != 2 {
		t.Fatalf("runs = %d, want 2 (%v)", sel.Count(), sel.Regions())
	}
}

func TestSelectPatternInSelections(t *testing.T) {
	ed := newTestEditor([]byte("abcabc"))

	typeText(t, ed, "%s")
	typeText(t, ed, "bc")
	feed(t, ed, key.Special(key.KeyEnter))

	sel := ed.Current().Selection()
	if sel.Count() != 2 {
		t.Fatalf("matches = %d, want 2", sel.Count())
	}
	got := sel.Regions()
	if got[0].Start() != 1 || got[0].End() != 2 || got[1].Start() != 4 || got[1].End() != 5 {
		t.Errorf("matches = %v", got)
	}
}

func TestSelectPatternNoMatchReports(t *testing.T) {
	ed := newTestEditor([]byte("abc"))

	typeText(t, ed, "%s")
	typeText(t, ed, "zz")
	feed(t, ed, key.Special(key.KeyEnter))

	if ed.Info() == "" {
		t.Error("no-match should set the status message")
	}
	// Selection unchanged.
	if got := ed.Current().Selection().Main(); got.Start() != 0 || got.End() != 2 {
		t.Errorf("selection = %v", got)
	}
}

func TestSplitPatternViaPrefix(t *testing.T) {
	ed := newTestEditor([]byte{0xff, 0x10, 0x20, 0xff, 0x10, 0x20})

	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "/")
	typeText(t, ed, "1020")
	feed(t, ed, key.Special(key.KeyEnter))

	if got := ed.Current().Selection().Count(); got != 2 {
		t.Errorf("matches = %d, want 2", got)
	}
}

func TestPatternWildcardEntry(t *testing.T) {
	ed := newTestEditor([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x00, 0x55, 0x66})

	typeText(t, ed, "%S") // hex pattern entry
	typeText(t, ed, "00")
	feed(t, ed, key.Ctrl('w')) // wildcard
	typeText(t, ed, "22")
	feed(t, ed, key.Special(key.KeyEnter))

	sel := ed.Current().Selection()
	if sel.Count() != 1 {
		t.Fatalf("matches = %d, want 1", sel.Count())
	}
	if g := sel.Main(); g.Start() != 0 || g.End() != 2 {
		t.Errorf("match = %v, want 0..2", g)
	}
}

func TestMultiCursorTyping(t *testing.T) {
	ed := newTestEditor([]byte{0, 0, 0, 0, 0, 0})

	// Three two-byte pieces, then insert at each piece start.
	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "w")
	typeText(t, ed, "ix")
	feed(t, ed, key.Special(key.KeyEscape))

	want := []byte{'x', 0, 0, 'x', 0, 0, 'x', 0, 0}
	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, want) {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestKeepAndDropSelections(t *testing.T) {
	ed := newTestEditor(make([]byte, 6))

	typeText(t, ed, "%")
	feed(t, ed, key.Alt('s'))
	typeText(t, ed, "w") // three pieces
	typeText(t, ed, ")") // cycle main forward (wraps to first)

	feed(t, ed, key.Alt(' ')) // drop main
	if got := ed.Current().Selection().Count(); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}

	typeText(t, ed, " ") // keep only main
	if got := ed.Current().Selection().Count(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestMeasure(t *testing.T) {
	ed := newTestEditor(make([]byte, 32))
	typeText(t, ed, "16LM")
	if got := ed.Info(); got != "17 = 0x11 bytes" {
		t.Errorf("info = %q", got)
	}
}

func TestEscapeDiscardsPendingInput(t *testing.T) {
	ed := newTestEditor(make([]byte, 8))

	typeText(t, ed, "42")
	feed(t, ed, key.Special(key.KeyEscape))
	typeText(t, ed, "l")
	cursorAt(t, ed, 1) // count was discarded

	typeText(t, ed, ":qzz")
	feed(t, ed, key.Special(key.KeyEscape))
	if ed.ModeName() != "NORMAL" {
		t.Errorf("mode = %s", ed.ModeName())
	}
	if ed.Current().Buffer().Len() != 8 {
		t.Error("escape must not mutate the buffer")
	}
}

func TestCommandQuitDirtyRefuses(t *testing.T) {
	ed := newTestEditor(nil)
	typeText(t, ed, "iff")
	feed(t, ed, key.Special(key.KeyEscape))

	typeText(t, ed, ":q")
	if err := ed.HandleKey(key.Special(key.KeyEnter)); err != nil {
		t.Fatalf("dirty :q should not quit, got %v", err)
	}
	if !strings.Contains(ed.Info(), "unsaved") {
		t.Errorf("info = %q", ed.Info())
	}

	typeText(t, ed, ":q!")
	if err := ed.HandleKey(key.Special(key.KeyEnter)); !errors.Is(err, ErrQuit) {
		t.Errorf(":q! err = %v, want ErrQuit", err)
	}
}

func TestCommandWriteAndQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	ed := newTestEditor(nil)

	typeText(t, ed, "Icafe")
	feed(t, ed, key.Special(key.KeyEscape))

	typeText(t, ed, ":w "+path)
	feed(t, ed, key.Special(key.KeyEnter))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, []byte{0xca, 0xfe}) {
		t.Errorf("file = %x", data)
	}
	if ed.Current().Dirty() {
		t.Error("write should clear the dirty flag")
	}
	if ed.Current().Path() != path {
		t.Errorf("path = %q", ed.Current().Path())
	}

	typeText(t, ed, ":q")
	if err := ed.HandleKey(key.Special(key.KeyEnter)); !errors.Is(err, ErrQuit) {
		t.Errorf("clean :q err = %v, want ErrQuit", err)
	}
}

func TestCommandWriteNoPath(t *testing.T) {
	ed := newTestEditor([]byte{1})
	typeText(t, ed, ":w")
	feed(t, ed, key.Special(key.KeyEnter))
	if !strings.Contains(ed.Info(), "no path") {
		t.Errorf("info = %q", ed.Info())
	}
}

func TestCommandEditOpensSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte{9, 8, 7}, 0o644); err != nil {
		t.Fatal(err)
	}

	ed := newTestEditor(nil)
	typeText(t, ed, ":e "+path)
	feed(t, ed, key.Special(key.KeyEnter))

	if len(ed.Sessions()) != 2 {
		t.Fatalf("sessions = %d, want 2", len(ed.Sessions()))
	}
	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{9, 8, 7}) {
		t.Errorf("buffer = %v", got)
	}

	// db closes just this session, leaving the scratch one.
	typeText(t, ed, ":db")
	if err := ed.HandleKey(key.Special(key.KeyEnter)); err != nil {
		t.Fatalf("db: %v", err)
	}
	if len(ed.Sessions()) != 1 {
		t.Errorf("sessions = %d, want 1", len(ed.Sessions()))
	}
}

func TestCommandUnknown(t *testing.T) {
	ed := newTestEditor(nil)
	typeText(t, ed, ":frobnicate")
	feed(t, ed, key.Special(key.KeyEnter))
	if !strings.Contains(ed.Info(), "unknown command") {
		t.Errorf("info = %q", ed.Info())
	}
}

func TestFilterTransformsSelections(t *testing.T) {
	ed := newTestEditor([]byte{1, 2, 3, 4})
	ed.SetFilter(func(script string, data []byte) ([]byte, error) {
		out := make([]byte, len(data))
		for i, b := range data {
			out[i] = b + 0x10
		}
		return out, nil
	})

	typeText(t, ed, "%")
	typeText(t, ed, ":filter shift.lua")
	feed(t, ed, key.Special(key.KeyEnter))

	if got := ed.Current().Buffer().Bytes(); !bytes.Equal(got, []byte{0x11, 0x12, 0x13, 0x14}) {
		t.Errorf("buffer = %x", got)
	}
}

func TestFilterWithoutRunner(t *testing.T) {
	ed := newTestEditor([]byte{1})
	typeText(t, ed, ":filter x.lua")
	feed(t, ed, key.Special(key.KeyEnter))
	if !strings.Contains(ed.Info(), "no filter") {
		t.Errorf("info = %q", ed.Info())
	}
}

func TestWriteAllSkipsScratchSessions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	if err := os.WriteFile(path, []byte{1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}

	ed := newTestEditor([]byte{9}) // scratch, dirty after an edit
	typeText(t, ed, "r")
	feed(t, ed, key.RuneEvent('z'))
	feed(t, ed, key.Special(key.KeyEscape))
	if err := ed.Open(path); err != nil {
		t.Fatal(err)
	}

	typeText(t, ed, ":wa")
	feed(t, ed, key.Special(key.KeyEnter))
	if ed.Info() != "" {
		t.Errorf("wa reported %q, want silence", ed.Info())
	}
}
