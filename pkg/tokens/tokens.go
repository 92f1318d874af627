// Package tokens splits command lines into shell-style words.
// It reads from a buffer through its cursor, so repeated calls walk a
// line token by token, the way the renderer assembles filter commands.
package tokens

import (
	"github.com/arthur-debert/expando/pkg/buffer"
	"github.com/arthur-debert/expando/pkg/errors"
)

// Flags adjust which characters terminate or pass through a token.
type Flags int

const (
	// Space keeps whitespace as token text instead of ending the token
	Space Flags = 1 << iota
	// Quote passes quote characters through as literals
	Quote
	// Comment keeps '#' as token text instead of ending the line
	Comment
	// Semicolon keeps ';' as token text instead of ending the line
	Semicolon
	// Equal makes '=' end the token
	Equal
)

// Extract reads the next token from src into dest, starting at the src
// cursor and advancing it past the token and any trailing whitespace.
// The previous content of dest is replaced. Tokens honor single and
// double quoting; backslash escapes are interpreted except inside
// single quotes: \n \r \t \f \e, \cX for a control character, and
// three-digit octal. A backslash with nothing after it is a premature
// end of input.
func Extract(dest, src *buffer.Buffer, flags Flags) error {
	dest.Rewind()

	s := src.Rest()
	base := src.Offset()
	i := skipWS(s, 0)

	var qc byte
	for i < len(s) {
		ch := s[i]
		if qc == 0 {
			if (isSpace(ch) && flags&Space == 0) ||
				(ch == '#' && flags&Comment == 0) ||
				(ch == '=' && flags&Equal != 0) ||
				(ch == ';' && flags&Semicolon == 0) {
				break
			}
		}
		i++

		switch {
		case ch == qc:
			qc = 0
		case qc == 0 && (ch == '\'' || ch == '"') && flags&Quote == 0:
			qc = ch
		case ch == '\\' && qc != '\'':
			if i >= len(s) {
				src.Seek(base + i)
				return errors.New(errors.ErrInvalidInput, "premature end of token")
			}
			ch = s[i]
			i++
			switch ch {
			case 'c', 'C':
				if i >= len(s) {
					src.Seek(base + i)
					return errors.New(errors.ErrInvalidInput, "premature end of token")
				}
				dest.AddCh((upper(s[i]) - '@') & 0x7f)
				i++
			case 'r':
				dest.AddCh('\r')
			case 'n':
				dest.AddCh('\n')
			case 't':
				dest.AddCh('\t')
			case 'f':
				dest.AddCh('\f')
			case 'e':
				dest.AddCh('\x1b')
			default:
				if isDigit(ch) && i+1 < len(s) && isDigit(s[i]) && isDigit(s[i+1]) {
					dest.AddCh((ch-'0')<<6 + (s[i]-'0')<<3 + (s[i+1] - '0'))
					i += 2
				} else {
					dest.AddCh(ch)
				}
			}
		default:
			dest.AddCh(ch)
		}
	}
	dest.AddCh(0)

	i = skipWS(s, i)
	src.Seek(base + i)
	return nil
}

// More reports whether src still holds token material before the end
// of the line, a ';' or a '#'.
func More(src *buffer.Buffer) bool {
	r := src.Rest()
	return r != "" && r[0] != ';' && r[0] != '#'
}

func skipWS(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
