package expando

import (
	"strings"

	"github.com/arthur-debert/expando/pkg/buffer"
	"github.com/arthur-debert/expando/pkg/filter"
	"github.com/arthur-debert/expando/pkg/logging"
	"github.com/arthur-debert/expando/pkg/textwidth"
	"github.com/arthur-debert/expando/pkg/tokens"
)

// Flags adjust how a template is rendered.
type Flags uint8

const (
	// FlagArrowCursor reserves three leading columns and bytes for the
	// selection marker the caller draws over the line.
	FlagArrowCursor Flags = 1 << iota
	// FlagOptional marks a conditional-branch render. It is set by the
	// scanner and passed through to the field callback; callers never
	// set it themselves.
	FlagOptional
	// FlagNoFilter disables the trailing-pipe shell delegation.
	FlagNoFilter
)

const (
	// ShortString bounds directive prefixes.
	ShortString = 128
	// LongString is the output capacity handed to field callbacks and
	// to justification sub-renders.
	LongString = 1024

	// arrowWidth is the room reserved by FlagArrowCursor.
	arrowWidth = 3
	// maxDepth bounds recursive sub-renders on adversarial input.
	maxDepth = 32
)

// FormatFunc resolves one directive character to its replacement text.
// It receives the output capacity to respect, the current and total
// columns, the directive character, the template remainder after the
// directive, the directive prefix, both conditional branches, the
// opaque data passed to Format, and the render flags. It returns the
// replacement and the new remainder, which must be a suffix of src:
// returning a shorter suffix consumes template text, as directives
// with bracketed arguments do.
type FormatFunc func(maxLen int, col, cols int, op byte, src, prefix, ifStr, elseStr string, data interface{}, flags Flags) (string, string)

// Format renders template into at most maxLen-1 bytes, tracking
// display columns from col toward cols. Directive characters are
// resolved through fn with data passed along opaquely. The scan
// truncates rather than overflow: output never exceeds the byte budget
// and never splits a multi-byte character.
func Format(template string, maxLen int, col, cols int, fn FormatFunc, data interface{}, flags Flags) string {
	return render(template, maxLen, col, cols, fn, data, flags, 0)
}

func render(src string, maxLen, col, cols int, fn FormatFunc, data interface{}, flags Flags, depth int) string {
	if maxLen <= 0 || depth > maxDepth {
		return ""
	}

	if flags&FlagNoFilter == 0 {
		if stripped, ok := pipeTemplate(src); ok {
			return renderPipe(stripped, maxLen, col, cols, fn, data, flags, depth)
		}
	}

	st := &renderState{
		budget: maxLen - 1,
		col:    col,
		cols:   cols,
		fn:     fn,
		data:   data,
		depth:  depth,
	}
	if flags&FlagArrowCursor != 0 {
		st.wlen = arrowWidth
		st.col += arrowWidth
	}
	st.scan([]byte(src), flags)
	return string(st.out)
}

// renderState carries one scan's output and budgets. wlen counts bytes
// against budget and col counts display columns against cols; the two
// run independently and either can cut a copy short.
type renderState struct {
	out    []byte
	wlen   int
	col    int
	budget int
	cols   int
	fn     FormatFunc
	data   interface{}
	depth  int
}

// scan walks the template left to right. It owns scratch and rewrites
// legacy conditional syntax in place as it encounters it. A malformed
// construct ends the scan, keeping whatever was already written.
func (st *renderState) scan(scratch []byte, flags Flags) {
scan:
	for i := 0; i < len(scratch) && st.wlen < st.budget; {
		switch scratch[i] {
		case '%':
			i++
			if i >= len(scratch) {
				break scan
			}
			if scratch[i] == '%' {
				st.out = append(st.out, '%')
				st.wlen++
				st.col++
				i++
				continue
			}

			if scratch[i] == '?' {
				normalizeLegacy(scratch, i)
			}

			optional := false
			dirFlags := flags &^ FlagOptional
			var op byte
			var prefix, ifStr, elseStr string

			if scratch[i] == '<' {
				optional = true
				i++
				if i >= len(scratch) {
					break scan
				}
				op = scratch[i]
				i++
				start := i
				for i < len(scratch) && scratch[i] != '?' && i-start < ShortString {
					i++
				}
				prefix = string(scratch[start:i])
			} else {
				start := i
				for i < len(scratch) && i-start < ShortString && isPrefixByte(scratch[i]) {
					i++
				}
				prefix = string(scratch[start:i])
				if i >= len(scratch) {
					break scan
				}
				op = scratch[i]
				i++
			}

			if optional {
				dirFlags |= FlagOptional
				if i >= len(scratch) || scratch[i] != '?' {
					break scan
				}
				i++
				var closed, hasElse bool
				ifStr, i, closed, hasElse = parseBranch(scratch, i)
				if !closed {
					break scan
				}
				if hasElse {
					elseStr, i, closed, _ = parseBranch(scratch, i)
					if !closed {
						break scan
					}
				}
			}

			switch op {
			case '>', '*':
				st.justify(string(scratch[i:]), op == '*', dirFlags)
				break scan
			case '|':
				st.padToEOL(string(scratch[i:]))
				break scan
			default:
				toLower, noDots := false, false
				for op == '_' || op == ':' {
					if op == '_' {
						toLower = true
					} else {
						noDots = true
					}
					if i >= len(scratch) {
						break scan
					}
					op = scratch[i]
					i++
				}

				rest := string(scratch[i:])
				expn, newRest := st.fn(LongString, st.col, st.cols, op, rest, prefix, ifStr, elseStr, st.data, dirFlags)
				if consumed := len(rest) - len(newRest); consumed > 0 {
					i += consumed
				}

				if toLower {
					expn = strings.ToLower(expn)
				}
				if noDots {
					expn = strings.ReplaceAll(expn, ".", "_")
				}

				keep := len(expn)
				if keep+st.wlen > st.budget {
					keep, _ = textwidth.Truncate(expn, st.budget-st.wlen, st.cols-st.col)
				}
				st.out = append(st.out, expn[:keep]...)
				st.wlen += keep
				// column accounting uses the full replacement width
				st.col += textwidth.StringWidth(expn)
			}

		case '\\':
			i++
			if i >= len(scratch) {
				break scan
			}
			c := scratch[i]
			switch c {
			case 'n':
				c = '\n'
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			case 'f':
				c = '\f'
			case 'v':
				c = '\v'
			}
			st.out = append(st.out, c)
			st.wlen++
			st.col++
			i++

		default:
			bl, cw := textwidth.CharLenBytes(scratch[i:])
			if bl <= 0 {
				bl, cw = 1, 1
			}
			if st.wlen+bl > st.budget {
				break scan
			}
			st.out = append(st.out, scratch[i:i+bl]...)
			i += bl
			st.wlen += bl
			st.col += cw
		}
	}
}

// justify renders everything after the fill character, then right-
// aligns it against the column budget. Hard justification (%>) gives
// the already-written left side precedence; soft (%*) truncates the
// left side to fit the remainder in. Either way the scan ends here.
func (st *renderState) justify(rest string, soft bool, flags Flags) {
	if rest == "" {
		return
	}
	pl, pw := textwidth.CharLen(rest)
	if pl <= 0 {
		pl, pw = 1, 1
	}
	fill := rest[:pl]

	if (st.col >= st.cols || st.wlen >= st.budget) && !soft {
		return
	}

	tmp := render(rest[pl:], LongString, 0, st.cols, st.fn, st.data, flags, st.depth+1)
	length := len(tmp)
	wid := textwidth.StringWidth(tmp)

	pad := (st.cols - st.col - wid) / pw
	switch {
	case pad >= 0:
		if st.wlen+pad*pl+length > st.budget {
			if st.budget > st.wlen+length {
				pad = (st.budget - st.wlen - length) / pl
			} else {
				pad = 0
			}
		} else {
			// single-column pre-spacing so multi-column fill characters
			// land flush against the remainder
			for st.col+pad*pw+wid < st.cols && st.wlen+pad*pl+length < st.budget {
				st.out = append(st.out, ' ')
				st.wlen++
				st.col++
			}
		}
		for ; pad > 0; pad-- {
			st.out = append(st.out, fill...)
			st.wlen += pl
			st.col += pw
		}
	case soft:
		offset := 0
		if flags&FlagArrowCursor != 0 {
			offset = arrowWidth
		}
		availCols := st.cols - offset
		if availCols < 0 {
			availCols = 0
		}
		// keep the remainder no wider than the display
		length, wid = textwidth.Truncate(tmp, st.budget, availCols)
		tmp = tmp[:length]
		// cut the left side down until the remainder fits completely
		st.wlen, st.col = textwidth.Truncate(string(st.out), st.budget-length, availCols-wid)
		st.out = st.out[:st.wlen]
		// a wide character cut in half leaves a gap; close it so the
		// remainder still ends flush at the edge
		for st.col+wid < availCols && st.wlen+length < st.budget {
			st.out = append(st.out, ' ')
			st.wlen++
			st.col++
		}
	default:
		// hard justify with no room contributes nothing
		return
	}

	if length+st.wlen > st.budget {
		length, _ = textwidth.Truncate(tmp, st.budget-st.wlen, st.cols-st.col)
	}
	st.out = append(st.out, tmp[:length]...)
	st.wlen += length
	st.col += wid
}

// padToEOL emits the fill character to the end of the line. The scan
// ends here; nothing after the fill character is processed.
func (st *renderState) padToEOL(rest string) {
	if rest == "" {
		return
	}
	pl, pw := textwidth.CharLen(rest)
	if pl <= 0 {
		pl, pw = 1, 1
	}
	fill := rest[:pl]

	if st.col >= st.cols || st.wlen >= st.budget {
		return
	}

	c := (st.cols - st.col) / pw
	if c > 0 && st.wlen+c*pl > st.budget {
		c = (st.budget - st.wlen) / pl
	}
	for ; c > 0; c-- {
		st.out = append(st.out, fill...)
		st.wlen += pl
		st.col += pw
	}
}

// renderPipe handles a pipe-terminated template: every token is itself
// rendered, then shell-quoted, and the joined command line runs through
// the filter. Output ending in a single unescaped % is recycled as a
// new template; %% ends filter output with a literal %.
func renderPipe(src string, maxLen, col, cols int, fn FormatFunc, data interface{}, flags Flags, depth int) string {
	logger := logging.GetLogger("format")
	logger.Debug().Str("template", src).Msg("Expanding format pipe")

	srcbuf := buffer.From(src)
	srcbuf.Rewind()
	word := buffer.New()
	command := buffer.New()

	for {
		// extraction errors leave a best-effort word; the shell gets to
		// complain about the rest
		_ = tokens.Extract(word, srcbuf, 0)
		expanded := render(word.String(), LongString, 0, cols, fn, data, flags|FlagNoFilter, depth+1)

		command.AddCh('\'')
		for j := 0; j < len(expanded); j++ {
			if expanded[j] == '\'' {
				// a single quote cannot be escaped inside single-quoted
				// material: close the span, emit a double-quoted quote,
				// and reopen
				command.AddStr(`'"'"'`)
			} else {
				command.AddCh(expanded[j])
			}
		}
		command.AddCh('\'')
		command.AddCh(' ')

		if !tokens.More(srcbuf) {
			break
		}
	}

	logger.Debug().Str("command", command.String()).Msg("Running format pipe")

	f, err := filter.Open(command.String())
	if err != nil {
		logger.Error().Err(err).Msg("Format pipe failed to start")
		return ""
	}
	raw, readErr := f.ReadAll()
	if rc := f.Wait(); rc != 0 {
		logger.Debug().Int("code", rc).Msg("Format pipe command exited nonzero")
	}
	if readErr != nil {
		logger.Error().Err(readErr).Msg("Error reading from format pipe")
		return ""
	}

	out := strings.TrimRight(string(raw), "\r\n")

	if n := len(out); n > 0 && out[n-1] == '%' {
		out = out[:n-1]
		n--
		if n > 0 && out[n-1] != '%' {
			return render(out, maxLen, col, cols, fn, data, flags, depth+1)
		}
	}

	if len(out) > maxLen-1 {
		keep, _ := textwidth.Truncate(out, maxLen-1, len(out))
		out = out[:keep]
	}
	return out
}

// pipeTemplate reports whether src ends in an unescaped pipe and, if
// so, returns it with the pipe stripped. An odd run of backslashes
// before the pipe escapes it.
func pipeTemplate(src string) (string, bool) {
	n := len(src)
	if n < 2 || src[n-1] != '|' {
		return "", false
	}
	off := n
	for off > 1 && src[off-2] == '\\' {
		off--
	}
	if (n-off)%2 != 0 {
		return "", false
	}
	return src[:n-1], true
}

// normalizeLegacy rewrites the old conditional spelling %?x?y&z? into
// %<x?y&z> in place. i points at the '?' right after the '%'.
func normalizeLegacy(scratch []byte, i int) {
	scratch[i] = '<'
	j := i + 1
	for j < len(scratch) && scratch[j] != '?' {
		j++
	}
	if j < len(scratch) {
		j++
	}
	for j < len(scratch) && scratch[j] != '?' {
		j++
	}
	if j < len(scratch) {
		scratch[j] = '>'
	}
}

// parseBranch copies one conditional branch starting at i, tracking
// nesting depth so conditionals can contain conditionals. It stops on
// the branch's closing '>', or on '&' at the top nesting level when an
// else branch follows; closed is false when the template ran out
// first. A backslash copies the next character verbatim, and a literal
// %> padding token passes through uninterpreted.
func parseBranch(scratch []byte, i int) (branch string, next int, closed, hasElse bool) {
	var sb []byte
	depth := 1
	for i < len(scratch) {
		if scratch[i] == '%' && i+1 < len(scratch) && scratch[i+1] == '>' {
			sb = append(sb, '%', '>')
			i += 2
			continue
		}
		if scratch[i] == '\\' {
			i++
			if i < len(scratch) {
				sb = append(sb, scratch[i])
				i++
			}
			continue
		}
		if scratch[i] == '%' && i+1 < len(scratch) && scratch[i+1] == '<' {
			depth++
		} else if scratch[i] == '>' {
			depth--
			if depth == 0 {
				return string(sb), i + 1, true, false
			}
		} else if depth == 1 && scratch[i] == '&' {
			return string(sb), i + 1, true, true
		}
		sb = append(sb, scratch[i])
		i++
	}
	return string(sb), i, false, false
}

func isPrefixByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '='
}
