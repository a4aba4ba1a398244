package renderer

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"hexad/internal/config"
	"hexad/internal/editor"
	"hexad/internal/engine/buffer"
	"hexad/internal/input/key"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestEditor(data []byte) *editor.Editor {
	ed := editor.New()
	ed.AddSession(editor.NewSession(buffer.FromBytes(data), ""))
	return ed
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	ch, _, _, _ := screen.GetContent(x, y)
	return ch
}

func rowText(screen tcell.SimulationScreen, y, from, to int) string {
	out := make([]rune, 0, to-from)
	for x := from; x < to; x++ {
		out = append(out, cellAt(screen, x, y))
	}
	return string(out)
}

func TestRenderHexAndAsciiPanes(t *testing.T) {
	screen := newTestScreen(t)
	ed := newTestEditor([]byte{0x48, 0x69, 0x00})

	New(screen, NewTheme(config.Default().Theme)).Render(ed)

	hexX := gutterWidth + paneGap
	if got := rowText(screen, 0, hexX, hexX+8); got != "48 69 00" {
		t.Errorf("hex row = %q, want \"48 69 00\"", got)
	}

	asciiX := hexX + 16*3 + paneGap
	if got := rowText(screen, 0, asciiX, asciiX+3); got != "Hi." {
		t.Errorf("ascii row = %q, want \"Hi.\"", got)
	}

	if got := rowText(screen, 0, 0, gutterWidth); got != "00000000" {
		t.Errorf("offset gutter = %q, want \"00000000\"", got)
	}
}

func TestRenderSecondRowOffset(t *testing.T) {
	screen := newTestScreen(t)
	ed := newTestEditor(make([]byte, 20))

	New(screen, NewTheme(config.Default().Theme)).Render(ed)

	if got := rowText(screen, 1, 0, gutterWidth); got != "00000010" {
		t.Errorf("second row offset = %q, want \"00000010\"", got)
	}
}

func TestRenderStatusLineShowsMode(t *testing.T) {
	screen := newTestScreen(t)
	ed := newTestEditor([]byte("abc"))

	New(screen, NewTheme(config.Default().Theme)).Render(ed)

	if got := rowText(screen, 23, 0, 8); got != " NORMAL " {
		t.Errorf("status left = %q, want \" NORMAL \"", got)
	}
}

func TestRenderScrollFollowsCursor(t *testing.T) {
	screen := newTestScreen(t)
	screen.SetSize(80, 4) // 3 content rows + status
	ed := newTestEditor(make([]byte, 16*10))

	// Jump the caret to the last byte.
	for _, ev := range []key.Event{
		key.RuneEvent('1'), key.RuneEvent('5'), key.RuneEvent('9'), key.RuneEvent('g'),
	} {
		if err := ed.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey: %v", err)
		}
	}

	New(screen, NewTheme(config.Default().Theme)).Render(ed)

	// The cursor row (row 9, offset 0x90) must be visible.
	found := false
	for y := 0; y < 3; y++ {
		if rowText(screen, y, 0, gutterWidth) == "00000090" {
			found = true
		}
	}
	if !found {
		t.Error("cursor row 0x90 not visible after scrolling")
	}
}

func TestRenderEmptyBuffer(t *testing.T) {
	screen := newTestScreen(t)
	ed := newTestEditor(nil)

	// Must not panic and must still show the status bar.
	New(screen, NewTheme(config.Default().Theme)).Render(ed)
	if got := rowText(screen, 23, 0, 7); got != " NORMAL" {
		t.Errorf("status = %q, want \" NORMAL\"", got)
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want key.Event
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), key.RuneEvent('j')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, ';', tcell.ModAlt), key.Alt(';')},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), key.Ctrl('n')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Special(key.KeyEscape)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace)},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), key.Special(key.KeyLeft)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateKey(tt.in); got != tt.want {
				t.Errorf("TranslateKey = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestThemeFallsBackOnBadColor(t *testing.T) {
	tc := config.Default().Theme
	tc.Background = "not-a-color"
	// Must not panic; the default background takes over.
	_ = NewTheme(tc)
}
