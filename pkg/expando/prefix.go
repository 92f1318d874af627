package expando

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type justifyMode int

const (
	justifyRight justifyMode = iota
	justifyLeft
	justifyCenter
)

// FormatString applies a directive prefix of the form "[-|=]min[.max]"
// to s. The result is truncated to at most max display columns and
// space-padded to at least min, right-justified by default,
// left-justified after a leading '-', centered after a leading '='.
// Widths count display columns, not bytes, and truncation never splits
// a character. Non-printable characters are replaced with '?'. The
// caller still owns the byte budget; the renderer truncates on append.
func FormatString(prefix, s string) string {
	justify, minWidth, maxWidth := parseWidthPrefix(prefix)

	var b strings.Builder
	width := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsPrint(r) {
			r = '?'
		}
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth {
			break
		}
		b.WriteRune(r)
		width += w
		i += size
	}

	pad := minWidth - width
	if pad <= 0 {
		return b.String()
	}
	switch justify {
	case justifyLeft:
		return b.String() + strings.Repeat(" ", pad)
	case justifyCenter:
		// the left cushion takes the odd column
		left := (pad + 1) / 2
		return strings.Repeat(" ", left) + b.String() + strings.Repeat(" ", pad-left)
	default:
		return strings.Repeat(" ", pad) + b.String()
	}
}

// FormatNumber renders n under the directive prefix using printf width
// semantics, so "%-3d" style alignment comes out of "-3". A '='
// centering marker has no printf equivalent and is dropped.
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%"+strings.ReplaceAll(prefix, "=", "")+"d", n)
}

func parseWidthPrefix(prefix string) (justifyMode, int, int) {
	justify := justifyRight
	if strings.HasPrefix(prefix, "-") {
		prefix = prefix[1:]
		justify = justifyLeft
	} else if strings.HasPrefix(prefix, "=") {
		prefix = prefix[1:]
		justify = justifyCenter
	}
	minWidth := atoi(prefix)
	maxWidth := math.MaxInt
	if dot := strings.IndexByte(prefix, '.'); dot >= 0 {
		maxWidth = atoi(prefix[dot+1:])
	}
	return justify, minWidth, maxWidth
}

// atoi reads leading decimal digits and ignores the rest, like C atoi.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
