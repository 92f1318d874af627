// Package textwidth measures strings in terminal display columns.
// Byte counts and column counts are tracked separately throughout the
// renderer; this package is the single place that maps between them.
package textwidth

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// CharLen returns the byte length and display width of the first
// character of s. An empty string yields (0, 0). A byte sequence that
// is not valid UTF-8 yields (-1, 0); callers decide how to step over it.
func CharLen(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return -1, 0
	}
	return size, runewidth.RuneWidth(r)
}

// CharLenBytes is CharLen for a byte slice, sparing scan loops a string
// copy per character.
func CharLenBytes(b []byte) (int, int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size == 1 {
		return -1, 0
	}
	return size, runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s. Invalid bytes count one
// column each, matching how the renderer steps over them.
func StringWidth(s string) int {
	w := 0
	for i := 0; i < len(s); {
		bl, cw := CharLen(s[i:])
		if bl <= 0 {
			bl, cw = 1, 1
		}
		i += bl
		w += cw
	}
	return w
}

// Truncate returns the longest prefix of s that fits within maxBytes
// bytes and maxWidth columns, as a byte count and the width of that
// prefix. Characters are never split: a character that would cross
// either limit is excluded entirely.
func Truncate(s string, maxBytes, maxWidth int) (int, int) {
	n, w := 0, 0
	for n < len(s) {
		bl, cw := CharLen(s[n:])
		if bl <= 0 {
			bl, cw = 1, 1
		}
		if n+bl > maxBytes || w+cw > maxWidth {
			break
		}
		n += bl
		w += cw
	}
	return n, w
}
