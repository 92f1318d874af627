package expando

import (
	"github.com/arthur-debert/expando/pkg/buffer"
	"github.com/arthur-debert/expando/pkg/textwidth"
	"github.com/arthur-debert/expando/pkg/tokens"
)

// Problem describes one construct in a template that rendering would
// silently stop at or discard.
type Problem struct {
	// Offset is a byte position into the template. Positions inside
	// conditional branches and filter tokens are approximate, since
	// escapes collapse when those are extracted.
	Offset  int
	Message string
}

// Check parses template the way rendering would and reports every
// malformed construct it finds. Rendering itself never fails on these;
// it truncates at the first one. An empty result means the whole
// template would be consumed.
func Check(template string) []Problem {
	var probs []Problem
	checkTemplate(template, 0, true, 0, &probs)
	return probs
}

func checkTemplate(src string, base int, filterOK bool, depth int, probs *[]Problem) {
	if depth > maxDepth {
		return
	}
	if filterOK {
		if stripped, ok := pipeTemplate(src); ok {
			checkPipe(stripped, base, depth, probs)
			return
		}
	}

	scratch := []byte(src)
	for i := 0; i < len(scratch); {
		switch scratch[i] {
		case '%':
			dirPos := base + i
			i++
			if i >= len(scratch) {
				addProblem(probs, dirPos, "unfinished directive at end of template")
				return
			}
			if scratch[i] == '%' {
				i++
				continue
			}
			if scratch[i] == '?' {
				normalizeLegacy(scratch, i)
			}

			if scratch[i] == '<' {
				i++
				if i >= len(scratch) {
					addProblem(probs, dirPos, "conditional missing its directive character")
					return
				}
				i++
				start := i
				for i < len(scratch) && scratch[i] != '?' && i-start < ShortString {
					i++
				}
				if i >= len(scratch) || scratch[i] != '?' {
					addProblem(probs, dirPos, "conditional missing '?' after the directive character")
					return
				}
				i++
				branch, next, closed, hasElse := parseBranch(scratch, i)
				if !closed {
					addProblem(probs, dirPos, "conditional not closed with '>'")
					return
				}
				checkTemplate(branch, base+i, true, depth+1, probs)
				i = next
				if hasElse {
					branch, next, closed, _ = parseBranch(scratch, i)
					if !closed {
						addProblem(probs, dirPos, "conditional else branch not closed with '>'")
						return
					}
					checkTemplate(branch, base+i, true, depth+1, probs)
					i = next
				}
				continue
			}

			start := i
			for i < len(scratch) && i-start < ShortString && isPrefixByte(scratch[i]) {
				i++
			}
			if i >= len(scratch) {
				addProblem(probs, dirPos, "unfinished directive at end of template")
				return
			}
			op := scratch[i]
			i++

			switch op {
			case '>', '*', '|':
				if i >= len(scratch) {
					addProblem(probs, dirPos, "padding directive missing its fill character")
					return
				}
				pl, _ := textwidth.CharLenBytes(scratch[i:])
				if pl <= 0 {
					pl = 1
				}
				// the remainder after a justify is rendered; text after
				// a pad-to-EOL fill character never is
				if op != '|' {
					checkTemplate(string(scratch[i+pl:]), base+i+pl, filterOK, depth+1, probs)
				}
				return
			default:
				for op == '_' || op == ':' {
					if i >= len(scratch) {
						addProblem(probs, dirPos, "unfinished directive at end of template")
						return
					}
					op = scratch[i]
					i++
				}
			}

		case '\\':
			if i+1 >= len(scratch) {
				addProblem(probs, base+i, "trailing backslash")
				return
			}
			i += 2

		default:
			bl, _ := textwidth.CharLenBytes(scratch[i:])
			if bl <= 0 {
				bl = 1
			}
			i += bl
		}
	}
}

func checkPipe(src string, base int, depth int, probs *[]Problem) {
	srcbuf := buffer.From(src)
	srcbuf.Rewind()
	word := buffer.New()
	for {
		pos := srcbuf.Offset()
		if err := tokens.Extract(word, srcbuf, 0); err != nil {
			addProblem(probs, base+srcbuf.Offset(), "incomplete escape in filter command")
			return
		}
		checkTemplate(word.String(), base+pos, false, depth+1, probs)
		if !tokens.More(srcbuf) {
			return
		}
	}
}

func addProblem(probs *[]Problem, offset int, message string) {
	*probs = append(*probs, Problem{Offset: offset, Message: message})
}
