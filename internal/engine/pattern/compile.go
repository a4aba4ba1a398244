package pattern

import "fmt"

// Compile parses pattern text in the given encoding.
func Compile(text string, encoding Encoding) (Pattern, error) {
	switch encoding {
	case EncodingHex:
		return compileHex(text)
	case EncodingLiteral:
		return compileLiteral(text)
	default:
		return Pattern{}, fmt.Errorf("%w: unknown encoding %d", ErrInvalidPattern, encoding)
	}
}

// compileHex parses hex digit pairs. Whitespace between pairs is ignored;
// "??" (or a pair of '.') matches any byte. Each byte needs exactly two
// digits, so "f" alone is malformed.
func compileHex(text string) (Pattern, error) {
	var tokens []Token

	i := 0
	for i < len(text) {
		c := text[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}

		if i+1 >= len(text) {
			return Pattern{}, fmt.Errorf("%w: dangling hex digit %q", ErrInvalidPattern, string(c))
		}
		next := text[i+1]

		if (c == '?' || c == '.') && (next == '?' || next == '.') {
			tokens = append(tokens, Wildcard())
			i += 2
			continue
		}

		hi, ok1 := hexDigit(c)
		lo, ok2 := hexDigit(next)
		if !ok1 || !ok2 {
			return Pattern{}, fmt.Errorf("%w: bad hex pair %q", ErrInvalidPattern, text[i:i+2])
		}
		tokens = append(tokens, Literal(hi<<4|lo))
		i += 2
	}

	return Pattern{tokens: tokens}, nil
}

// compileLiteral treats each input byte as a literal. '?' is the wildcard;
// "\?" and "\\" escape. A trailing bare backslash is malformed.
func compileLiteral(text string) (Pattern, error) {
	var tokens []Token

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i+1 >= len(text) {
				return Pattern{}, fmt.Errorf("%w: unterminated escape", ErrInvalidPattern)
			}
			i++
			tokens = append(tokens, Literal(text[i]))
		case '?':
			tokens = append(tokens, Wildcard())
		default:
			tokens = append(tokens, Literal(text[i]))
		}
	}

	return Pattern{tokens: tokens}, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
