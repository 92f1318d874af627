// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/expando/pkg/ui/display"
	"github.com/arthur-debert/expando/pkg/ui/styles"
)

// Renderer provides rich terminal output using the styles registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.RenderReport:
		// The expanded line is meant to be consumed verbatim by a
		// status bar, so it is never styled.
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

func (r *Renderer) renderCheckReport(v *display.CheckReport) error {
	header := styles.GetStyle("TemplateBody").Render(v.Template)
	if v.Name != "" {
		header = styles.GetStyle("TemplateName").Render(v.Name) + " " + header
	}

	if v.Clean() {
		mark := styles.GetStyle("Success").Render("✓")
		_, err := fmt.Fprintf(r.output, "%s %s\n", mark, header)
		return err
	}

	mark := styles.GetStyle("Error").Render("✗")
	if _, err := fmt.Fprintf(r.output, "%s %s\n", mark, header); err != nil {
		return err
	}
	for _, p := range v.Problems {
		offset := styles.GetStyle("Offset").Render(fmt.Sprintf("offset %d:", p.Offset))
		if _, err := fmt.Fprintf(r.output, "    %s %s\n", offset, p.Message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTemplateList(v *display.TemplateList) error {
	if len(v.Templates) == 0 {
		_, err := fmt.Fprintln(r.output, styles.GetStyle("Muted").Render("No templates configured."))
		return err
	}
	for _, entry := range v.Templates {
		name := styles.GetStyle("TemplateName").Render(entry.Name)
		if _, err := fmt.Fprintf(r.output, "%s  %s\n", name, entry.Template); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	msg := styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err))
	_, werr := fmt.Fprintln(r.output, msg)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}
