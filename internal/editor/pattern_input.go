package editor

import (
	"fmt"
	"strings"

	"hexad/internal/engine/pattern"
	"hexad/internal/input/key"
)

// acceptorFunc consumes a finished pattern entry. The pattern mode
// itself is agnostic about what the pattern is for.
type acceptorFunc func(ed *Editor, p pattern.Pattern) error

// patternMode edits a byte pattern token by token. Hex entry assembles
// literals from digit pairs; ascii entry takes each typed byte. Ctrl-W
// inserts a wildcard, Ctrl-N a null literal, Ctrl-O flips the entry
// encoding. Enter hands the pattern to the acceptor, escape discards it.
type patternMode struct {
	hex    bool
	prompt string
	accept acceptorFunc

	tokens   []pattern.Token
	cursor   int
	half     bool
	halfByte byte
}

func newPatternMode(hex bool, prompt string, accept acceptorFunc) *patternMode {
	return &patternMode{hex: hex, prompt: prompt, accept: accept}
}

func (m *patternMode) name() string {
	if m.hex {
		return m.prompt + " (hex)"
	}
	return m.prompt + " (ascii)"
}

// render returns the in-progress pattern for the status area.
func (m *patternMode) render() string {
	var b strings.Builder
	b.WriteString("/")
	for i, t := range m.tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.Wildcard {
			b.WriteString("??")
		} else {
			fmt.Fprintf(&b, "%02x", t.Byte)
		}
	}
	if m.half {
		if len(m.tokens) > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%x_", m.halfByte>>4)
	}
	return b.String()
}

func (m *patternMode) insertToken(t pattern.Token) {
	m.tokens = append(m.tokens, pattern.Token{})
	copy(m.tokens[m.cursor+1:], m.tokens[m.cursor:])
	m.tokens[m.cursor] = t
	m.cursor++
}

func (m *patternMode) removeToken(at int) {
	if at < 0 || at >= len(m.tokens) {
		return
	}
	m.tokens = append(m.tokens[:at], m.tokens[at+1:]...)
}

func (m *patternMode) handleKey(ed *Editor, ev key.Event) error {
	switch ev {
	case key.Special(key.KeyEscape):
		ed.toNormal()
		return nil

	case key.Special(key.KeyEnter):
		p := pattern.New(m.tokens...)
		ed.toNormal()
		return m.accept(ed, p)

	case key.Ctrl('w'):
		m.half = false
		m.insertToken(pattern.Wildcard())
		return nil

	case key.Ctrl('n'):
		m.half = false
		m.insertToken(pattern.Literal(0))
		return nil

	case key.Ctrl('o'):
		m.hex = !m.hex
		m.half = false
		return nil

	case key.Special(key.KeyBackspace):
		if m.half {
			m.half = false
			return nil
		}
		if m.cursor > 0 {
			m.removeToken(m.cursor - 1)
			m.cursor--
		}
		return nil

	case key.Special(key.KeyDelete):
		m.half = false
		m.removeToken(m.cursor)
		return nil

	case key.Special(key.KeyLeft):
		m.half = false
		if m.cursor > 0 {
			m.cursor--
		}
		return nil

	case key.Special(key.KeyRight):
		m.half = false
		if m.cursor < len(m.tokens) {
			m.cursor++
		}
		return nil
	}

	if !ev.IsPlainRune() {
		return nil
	}

	if m.hex {
		d, ok := hexDigitValue(ev.Rune)
		if !ok {
			return nil
		}
		if !m.half {
			m.half = true
			m.halfByte = d << 4
			return nil
		}
		m.half = false
		m.insertToken(pattern.Literal(m.halfByte | d))
		return nil
	}

	if ev.Rune == '?' {
		m.insertToken(pattern.Wildcard())
		return nil
	}
	for _, b := range []byte(string(ev.Rune)) {
		m.insertToken(pattern.Literal(b))
	}
	return nil
}

// acceptSelectInSelections narrows every selection to the pattern's
// matches inside it.
func acceptSelectInSelections(ed *Editor, p pattern.Pattern) error {
	s := ed.Current()
	next, err := s.Selection().SplitPattern(s.Buffer().Rope(), p)
	if err != nil {
		return err
	}
	s.SetSelection(next)
	return nil
}
