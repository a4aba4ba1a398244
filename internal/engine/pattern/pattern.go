package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern reports malformed pattern text.
var ErrInvalidPattern = errors.New("invalid pattern")

// Encoding selects how pattern text is interpreted.
type Encoding uint8

const (
	// EncodingHex interprets the input as hex digit pairs with "??" wildcards.
	EncodingHex Encoding = iota

	// EncodingLiteral interprets each input byte as a literal, with "?" as
	// the wildcard and "\?" escaping a literal question mark.
	EncodingLiteral
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingHex:
		return "hex"
	case EncodingLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Token is one element of a pattern: a literal byte or a wildcard.
type Token struct {
	Byte     byte
	Wildcard bool
}

// Literal creates a literal token.
func Literal(b byte) Token {
	return Token{Byte: b}
}

// Wildcard creates a wildcard token.
func Wildcard() Token {
	return Token{Wildcard: true}
}

// Matches reports whether the token matches the given byte.
func (t Token) Matches(b byte) bool {
	return t.Wildcard || t.Byte == b
}

// Pattern is a compiled byte-matching template.
type Pattern struct {
	tokens []Token
}

// New creates a pattern from tokens.
func New(tokens ...Token) Pattern {
	return Pattern{tokens: tokens}
}

// NullRun creates a pattern of n literal null bytes.
func NullRun(n int) Pattern {
	tokens := make([]Token, n)
	return Pattern{tokens: tokens}
}

// Len returns the number of tokens.
func (p Pattern) Len() int {
	return len(p.tokens)
}

// IsEmpty returns true if the pattern has no tokens.
func (p Pattern) IsEmpty() bool {
	return len(p.tokens) == 0
}

// Tokens returns a copy of the pattern's tokens.
func (p Pattern) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// LiteralBytes returns the pattern as a plain byte slice if it contains no
// wildcards, enabling fast-path searching.
func (p Pattern) LiteralBytes() ([]byte, bool) {
	out := make([]byte, len(p.tokens))
	for i, tok := range p.tokens {
		if tok.Wildcard {
			return nil, false
		}
		out[i] = tok.Byte
	}
	return out, true
}

// String renders the pattern in hex notation with "??" for wildcards.
func (p Pattern) String() string {
	var sb strings.Builder
	for i, tok := range p.tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if tok.Wildcard {
			sb.WriteString("??")
		} else {
			fmt.Fprintf(&sb, "%02x", tok.Byte)
		}
	}
	return sb.String()
}

// matchAt tests the pattern token-by-token against window starting at i.
// The window must hold at least Len() bytes from position i.
func (p Pattern) matchAt(window []byte, i int) bool {
	for j, tok := range p.tokens {
		if !tok.Matches(window[i+j]) {
			return false
		}
	}
	return true
}
