// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/expando/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.RenderReport:
		_, err := fmt.Fprintln(r.output, v.Output)
		return err
	case *display.CheckReport:
		return r.renderCheckReport(v)
	case *display.TemplateList:
		return r.renderTemplateList(v)
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// renderCheckReport writes compiler style diagnostics, one problem per
// line, so the output stays easy to grep.
func (r *Renderer) renderCheckReport(v *display.CheckReport) error {
	label := v.Name
	if label == "" {
		label = v.Template
	}

	if v.Clean() {
		_, err := fmt.Fprintf(r.output, "%s: ok\n", label)
		return err
	}
	for _, p := range v.Problems {
		if _, err := fmt.Fprintf(r.output, "%s:%d: %s\n", label, p.Offset, p.Message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTemplateList(v *display.TemplateList) error {
	if len(v.Templates) == 0 {
		_, err := fmt.Fprintln(r.output, "No templates configured.")
		return err
	}
	for _, entry := range v.Templates {
		if _, err := fmt.Fprintf(r.output, "%s\t%s\n", entry.Name, entry.Template); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
