package renderer

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"hexad/internal/config"
)

// Theme holds the resolved tcell styles for every screen element.
type Theme struct {
	Base          tcell.Style
	OffsetColumn  tcell.Style
	Selection     tcell.Style
	MainSelection tcell.Style
	Cursor        tcell.Style
	NullByte      tcell.Style
	NonPrintable  tcell.Style
	StatusBar     tcell.Style
	Error         tcell.Style

	// Dimmed variants render the pane that does not own the caret, so
	// the eye can tell the hex and ascii columns apart.
	SelectionDim     tcell.Style
	MainSelectionDim tcell.Style
}

// NewTheme resolves a color configuration into tcell styles. Unparsable
// colors fall back to their defaults rather than failing the render.
func NewTheme(tc config.ThemeConfig) Theme {
	def := config.Default().Theme

	bg := parseColor(tc.Background, def.Background)
	fg := parseColor(tc.Foreground, def.Foreground)
	sel := parseColor(tc.Selection, def.Selection)
	mainSel := parseColor(tc.MainSelection, def.MainSelection)
	cursor := parseColor(tc.Cursor, def.Cursor)
	statusBG := parseColor(tc.StatusBar, def.StatusBar)

	base := tcell.StyleDefault.
		Background(toTcell(bg)).
		Foreground(toTcell(fg))

	return Theme{
		Base:          base,
		OffsetColumn:  base.Foreground(toTcell(parseColor(tc.OffsetColumn, def.OffsetColumn))),
		Selection:     base.Background(toTcell(sel)),
		MainSelection: base.Background(toTcell(mainSel)),
		Cursor: tcell.StyleDefault.
			Background(toTcell(cursor)).
			Foreground(toTcell(bg)),
		NullByte:     base.Foreground(toTcell(parseColor(tc.NullByte, def.NullByte))),
		NonPrintable: base.Foreground(toTcell(parseColor(tc.NonPrintable, def.NonPrintable))),
		StatusBar: tcell.StyleDefault.
			Background(toTcell(statusBG)).
			Foreground(toTcell(parseColor(tc.StatusText, def.StatusText))),
		Error: tcell.StyleDefault.
			Background(toTcell(statusBG)).
			Foreground(toTcell(parseColor(tc.ErrorText, def.ErrorText))),
		SelectionDim:     base.Background(toTcell(sel.BlendRgb(bg, 0.4))),
		MainSelectionDim: base.Background(toTcell(mainSel.BlendRgb(bg, 0.4))),
	}
}

func parseColor(hex, fallback string) colorful.Color {
	if c, err := colorful.Hex(hex); err == nil {
		return c
	}
	c, err := colorful.Hex(fallback)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
