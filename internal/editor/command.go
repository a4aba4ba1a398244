package editor

import (
	"fmt"
	"strings"

	"hexad/internal/input/key"
)

// commandMode edits one line of command text entered after ':'.
type commandMode struct {
	text   string
	cursor int
}

func (m *commandMode) name() string { return "COMMAND" }

func (m *commandMode) handleKey(ed *Editor, ev key.Event) error {
	switch ev {
	case key.Special(key.KeyEscape):
		ed.toNormal()
		return nil

	case key.Special(key.KeyEnter):
		text := m.text
		ed.toNormal()
		return ed.runCommand(text)

	case key.Special(key.KeyBackspace):
		if m.cursor > 0 {
			m.text = m.text[:m.cursor-1] + m.text[m.cursor:]
			m.cursor--
		}
		return nil

	case key.Special(key.KeyDelete):
		if m.cursor < len(m.text) {
			m.text = m.text[:m.cursor] + m.text[m.cursor+1:]
		}
		return nil

	case key.Special(key.KeyLeft):
		if m.cursor > 0 {
			m.cursor--
		}
		return nil

	case key.Special(key.KeyRight):
		if m.cursor < len(m.text) {
			m.cursor++
		}
		return nil
	}

	if ev.IsPlainRune() {
		m.text = m.text[:m.cursor] + string(ev.Rune) + m.text[m.cursor:]
		m.cursor += len(string(ev.Rune))
	}
	return nil
}

// runCommand executes one command line. Verbs follow the usual editor
// conventions; a trailing ! forces past the dirty check.
func (ed *Editor) runCommand(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	verb, arg := text, ""
	if i := strings.IndexByte(text, ' '); i >= 0 {
		verb, arg = text[:i], strings.TrimSpace(text[i+1:])
	}

	s := ed.Current()
	switch verb {
	case "q", "quit", "db":
		if err := ed.closeCurrent(false); err != nil {
			if err == ErrQuit {
				return err
			}
			return fmt.Errorf("%w: use %s! to discard, or w to save", err, verb)
		}
		return nil

	case "q!", "quit!", "db!":
		return ed.closeCurrent(true)

	case "w", "write":
		return s.Save(arg)

	case "wq":
		if err := s.Save(arg); err != nil {
			return err
		}
		return ed.closeCurrent(false)

	case "wa":
		for _, sess := range ed.sessions {
			if sess.Path() == "" {
				continue
			}
			if err := sess.Save(""); err != nil {
				return err
			}
		}
		return nil

	case "e", "edit":
		if arg == "" {
			return fmt.Errorf("%w: e needs a path", ErrUnknownCommand)
		}
		return ed.Open(arg)

	case "filter":
		if arg == "" {
			return fmt.Errorf("%w: filter needs a script path", ErrUnknownCommand)
		}
		return ed.runFilter(arg)
	}

	return fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}
