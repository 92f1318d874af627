package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

// maxTopicWidth keeps rendered markdown readable on very wide
// terminals.
const maxTopicWidth = 100

// GlamourRenderer renders markdown topics with glamour. Other formats
// pass through untouched.
type GlamourRenderer struct {
	// Style is a glamour style name or a path to a style file. Empty
	// or "auto" picks one for the terminal background.
	Style string
	// Width wraps output at the given column. 0 wraps at the terminal
	// width, capped at maxTopicWidth.
	Width int
}

// NewGlamourRenderer returns a renderer that adapts style and wrap
// width to the terminal it prints on.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts a markdown topic to styled terminal output. Content
// that is not markdown, or markdown that fails to render, comes back
// unchanged.
func (r *GlamourRenderer) Render(content, format string) string {
	if format != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(r.wrapWidth()),
	}
	if r.Style == "" || r.Style == "auto" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(r.Style))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *GlamourRenderer) wrapWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		if w > maxTopicWidth {
			return maxTopicWidth
		}
		return w
	}
	return 80
}
