// Package renderer draws the editor onto a tcell screen.
//
// The layout is the classic three-column hex view: an offset gutter, a
// hex pane, and an ascii pane, with a one-row status bar at the bottom.
// The pane under the caret renders selections at full strength; the
// other pane renders them dimmed.
package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"hexad/internal/editor"
	"hexad/internal/engine/buffer"
	"hexad/internal/engine/selection"
)

const (
	gutterWidth = 8
	paneGap     = 2
)

const hexDigits = "0123456789abcdef"

// Renderer owns the scroll position and paints full frames.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	top    int64 // first visible hex row
}

// New creates a renderer for the given screen.
func New(screen tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// SetTheme replaces the palette; the next Render uses it.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// byteClass describes how one visible byte participates in the
// selection.
type byteClass uint8

const (
	classNone byteClass = iota
	classSelected
	classMain
)

// Render paints one complete frame.
func (r *Renderer) Render(ed *editor.Editor) {
	r.screen.Fill(' ', r.theme.Base)

	width, height := r.screen.Size()
	if height < 2 || width < gutterWidth+paneGap+3 {
		r.screen.Show()
		return
	}
	rows := int64(height - 1)

	s := ed.Current()
	if s == nil {
		r.drawStatus(ed, width, height-1)
		r.screen.Show()
		return
	}

	perLine := ed.BytesPerLine()
	bufLen := int64(s.Buffer().Len())
	cursor := int64(s.Selection().Main().Cursor)
	r.scrollTo(cursor/perLine, rows)

	start := r.top * perLine
	end := start + rows*perLine
	if end > bufLen {
		end = bufLen
	}
	var visible []byte
	if start < bufLen {
		visible = s.Buffer().SliceClamped(buffer.NewRange(buffer.ByteOffset(start), buffer.ByteOffset(end)))
	}
	classes := r.classify(s.Selection(), start, end)

	hexX := gutterWidth + paneGap
	asciiX := hexX + int(perLine)*3 + paneGap

	for row := int64(0); row < rows; row++ {
		off := start + row*perLine
		if off > bufLen {
			break
		}
		r.drawText(0, int(row), fmt.Sprintf("%0*x", gutterWidth, off), r.theme.OffsetColumn)

		for col := int64(0); col < perLine; col++ {
			o := off + col
			if o >= bufLen {
				break
			}
			b := visible[o-start]
			st := r.cellStyle(classes[o-start], o == cursor, b, false)
			x := hexX + int(col)*3
			r.screen.SetContent(x, int(row), rune(hexDigits[b>>4]), nil, st)
			r.screen.SetContent(x+1, int(row), rune(hexDigits[b&0x0f]), nil, st)

			ast := r.cellStyle(classes[o-start], o == cursor, b, true)
			r.screen.SetContent(asciiX+int(col), int(row), asciiRune(b), nil, ast)
		}

		// The caret may rest on the end-of-file position one past the
		// last byte.
		if cursor == bufLen && cursor >= off && cursor < off+perLine {
			col := int(cursor - off)
			r.screen.SetContent(hexX+col*3, int(row), ' ', nil, r.theme.Cursor)
			r.screen.SetContent(asciiX+col, int(row), ' ', nil, r.theme.Cursor)
		}
	}

	r.drawStatus(ed, width, height-1)
	r.screen.Show()
}

// scrollTo keeps cursorRow inside the viewport.
func (r *Renderer) scrollTo(cursorRow, rows int64) {
	if cursorRow < r.top {
		r.top = cursorRow
	}
	if cursorRow >= r.top+rows {
		r.top = cursorRow - rows + 1
	}
	if r.top < 0 {
		r.top = 0
	}
}

// classify marks each byte in [start, end) with its selection role.
func (r *Renderer) classify(sel *selection.Set, start, end int64) []byteClass {
	if end <= start {
		return nil
	}
	classes := make([]byteClass, end-start)
	mainIdx := sel.MainIndex()
	for i, g := range sel.Regions() {
		class := classSelected
		if i == mainIdx {
			class = classMain
		}
		lo, hi := int64(g.Start()), int64(g.End())
		if hi < start || lo >= end {
			continue
		}
		if lo < start {
			lo = start
		}
		if hi >= end {
			hi = end - 1
		}
		for o := lo; o <= hi; o++ {
			classes[o-start] = class
		}
	}
	return classes
}

func (r *Renderer) cellStyle(class byteClass, atCursor bool, b byte, asciiPane bool) tcell.Style {
	if atCursor {
		return r.theme.Cursor
	}
	switch class {
	case classMain:
		if asciiPane {
			return r.theme.MainSelectionDim
		}
		return r.theme.MainSelection
	case classSelected:
		if asciiPane {
			return r.theme.SelectionDim
		}
		return r.theme.Selection
	}
	switch {
	case b == 0:
		return r.theme.NullByte
	case b < 0x20 || b > 0x7e:
		if asciiPane {
			return r.theme.NonPrintable
		}
		return r.theme.Base
	}
	return r.theme.Base
}

func asciiRune(b byte) rune {
	if b >= 0x20 && b <= 0x7e {
		return rune(b)
	}
	return '.'
}

// drawStatus paints the bottom row: mode and pending input on the left,
// position and buffer identity on the right.
func (r *Renderer) drawStatus(ed *editor.Editor, width, y int) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.theme.StatusBar)
	}

	left := " " + ed.ModeName()
	if pi := ed.PendingInput(); pi != "" {
		left += "  " + pi
	}
	r.drawText(0, y, left, r.theme.StatusBar)

	if info := ed.Info(); info != "" {
		r.drawText(len(left)+2, y, info, r.theme.Error)
	}

	s := ed.Current()
	if s == nil {
		return
	}
	dirty := ""
	if s.Dirty() {
		dirty = " [+]"
	}
	sel := s.Selection()
	right := fmt.Sprintf("%s%s  %d/%d  0x%x/0x%x ",
		s.Name(), dirty,
		sel.MainIndex()+1, sel.Count(),
		int64(sel.Main().Cursor), int64(s.Buffer().Len()))
	r.drawText(width-len(right), y, right, r.theme.StatusBar)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
