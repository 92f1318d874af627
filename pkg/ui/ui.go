// Package ui provides a unified interface for rendering command
// results in different formats: terminal (rich), text (plain), and
// JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/expando/pkg/ui/json"
	"github.com/arthur-debert/expando/pkg/ui/terminal"
	"github.com/arthur-debert/expando/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result (render report, check
	// report, template list)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to output.
// FormatAuto resolves against the writer: an interactive terminal gets
// the rich renderer, pipes and plain writers get text, since rendered
// status lines are usually consumed by another program.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = FormatText
		if file, ok := output.(*os.File); ok {
			format = DetectFormat(file)
		}
	}

	switch format {
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
