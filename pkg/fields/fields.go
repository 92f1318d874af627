// Package fields provides the production directive callback for the
// template engine: a Set maps directive characters to string or
// numeric values, and Expand resolves them with width-prefix handling,
// conditional presence, a %{...} clock, and terminal-column access.
package fields

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/expando/pkg/expando"
	"github.com/arthur-debert/expando/pkg/paths"
)

// Value is one field a directive character resolves to. Numeric values
// follow the numeric presence rule in conditionals (> 0); string
// values count as present when non-empty.
type Value struct {
	Str     string
	Num     int
	Numeric bool
}

// Set maps directive characters to values. The zero Set is not usable;
// construct with NewSet or Builtin.
type Set struct {
	vals map[byte]Value
	now  func() time.Time
}

// NewSet returns an empty Set with a real clock.
func NewSet() *Set {
	return &Set{
		vals: make(map[byte]Value),
		now:  time.Now,
	}
}

// Builtin returns a Set preloaded with the host fields: %h hostname,
// %H short hostname, %u user, %d working directory, %D the same with
// the home prefix collapsed, %v the given version string.
func Builtin(version string) *Set {
	s := NewSet()
	if host, err := os.Hostname(); err == nil {
		s.SetString('h', host)
		short, _, _ := strings.Cut(host, ".")
		s.SetString('H', short)
	}
	if u := os.Getenv("USER"); u != "" {
		s.SetString('u', u)
	} else if u := os.Getenv("LOGNAME"); u != "" {
		s.SetString('u', u)
	}
	if wd, err := os.Getwd(); err == nil {
		s.SetString('d', wd)
		s.SetString('D', paths.PrettyPath(wd))
	}
	s.SetString('v', version)
	return s
}

// SetString stores a string value for op.
func (s *Set) SetString(op byte, v string) {
	s.vals[op] = Value{Str: v}
}

// SetNumber stores a numeric value for op.
func (s *Set) SetNumber(op byte, n int) {
	s.vals[op] = Value{Num: n, Numeric: true}
}

// SetAuto stores v as a number when it parses as one, so the numeric
// presence rule applies to it in conditionals, and as a string
// otherwise.
func (s *Set) SetAuto(op byte, v string) {
	if n, err := strconv.Atoi(v); err == nil {
		s.SetNumber(op, n)
		return
	}
	s.SetString(op, v)
}

// Lookup returns the value stored for op.
func (s *Set) Lookup(op byte) (Value, bool) {
	v, ok := s.vals[op]
	return v, ok
}

// SetClock replaces the time source used by the %{...} directive.
func (s *Set) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Set) present(op byte, cols int) bool {
	if v, ok := s.vals[op]; ok {
		if v.Numeric {
			return v.Num > 0
		}
		return v.Str != ""
	}
	if op == 'C' {
		return cols > 0
	}
	return false
}

// Expand is the expando.FormatFunc over a *Set passed as data. In
// conditional mode it re-renders the branch the presence rule selects.
// %{...} consumes template text up to '}' and formats the current time
// with it; %C yields the column count unless the Set overrides it;
// unknown directives are re-emitted verbatim, prefix included.
func Expand(maxLen int, col, cols int, op byte, src, prefix, ifStr, elseStr string, data interface{}, flags expando.Flags) (string, string) {
	set, _ := data.(*Set)
	if set == nil {
		set = NewSet()
	}

	if flags&expando.FlagOptional != 0 {
		branch := elseStr
		if set.present(op, cols) {
			branch = ifStr
		}
		return expando.Format(branch, maxLen, col, cols, Expand, set, 0), src
	}

	if op == '{' {
		// a missing '}' makes the whole remainder the clock layout
		layout, rest := src, ""
		if end := strings.IndexByte(src, '}'); end >= 0 {
			layout, rest = src[:end], src[end+1:]
		}
		return strftime(layout, set.now()), rest
	}

	if v, ok := set.vals[op]; ok {
		if v.Numeric {
			return expando.FormatNumber(prefix, v.Num), src
		}
		return expando.FormatString(prefix, v.Str), src
	}

	if op == 'C' {
		return expando.FormatNumber(prefix, cols), src
	}

	return "%" + prefix + string(op), src
}

// strftime covers the conversions status-line clocks actually use.
// Unrecognized conversions pass through untouched.
func strftime(layout string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' || i+1 >= len(layout) {
			b.WriteByte(layout[i])
			continue
		}
		i++
		switch layout[i] {
		case 'a':
			b.WriteString(t.Format("Mon"))
		case 'A':
			b.WriteString(t.Format("Monday"))
		case 'b':
			b.WriteString(t.Format("Jan"))
		case 'B':
			b.WriteString(t.Format("January"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'e':
			b.WriteString(t.Format("_2"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'I':
			b.WriteString(t.Format("03"))
		case 'j':
			b.WriteString(pad3(t.YearDay()))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'p':
			b.WriteString(t.Format("PM"))
		case 'S':
			b.WriteString(t.Format("05"))
		case 'y':
			b.WriteString(t.Format("06"))
		case 'Y':
			b.WriteString(strconv.Itoa(t.Year()))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(layout[i])
		}
	}
	return b.String()
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
