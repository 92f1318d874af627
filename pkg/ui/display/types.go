// Package display defines the result types that commands hand to the
// output renderers. Keeping them in one place gives every output format
// (terminal, text, JSON) the same data to work from.
package display

import (
	"github.com/arthur-debert/expando/pkg/textwidth"
)

// RenderReport is the outcome of expanding a single template.
type RenderReport struct {
	// Name is the configured template name, empty when the template
	// was given verbatim on the command line.
	Name string `json:"name,omitempty"`

	// Template is the template source that was expanded.
	Template string `json:"template"`

	// Output is the expanded line.
	Output string `json:"output"`

	// Width is the number of display columns Output occupies.
	Width int `json:"width"`

	// Bytes is the length of Output in bytes.
	Bytes int `json:"bytes"`

	// Columns is the column budget the expansion was given.
	Columns int `json:"columns"`
}

// NewRenderReport builds a report for an expanded template, measuring
// the output as it will appear on screen.
func NewRenderReport(name, template, output string, columns int) *RenderReport {
	return &RenderReport{
		Name:     name,
		Template: template,
		Output:   output,
		Width:    textwidth.StringWidth(output),
		Bytes:    len(output),
		Columns:  columns,
	}
}

// Problem is a single defect found while checking a template.
type Problem struct {
	// Offset is the byte position the problem was detected at. Offsets
	// inside conditional branches and filter commands are relative to
	// the captured text, so they are approximate for display purposes.
	Offset int `json:"offset"`

	// Message describes what is wrong.
	Message string `json:"message"`
}

// CheckReport lists the problems found in one template.
type CheckReport struct {
	// Name is the configured template name, empty for command-line
	// templates.
	Name string `json:"name,omitempty"`

	// Template is the template source that was checked.
	Template string `json:"template"`

	// Problems holds one entry per defect, empty for a clean template.
	Problems []Problem `json:"problems"`
}

// Clean reports whether the template had no problems.
func (cr *CheckReport) Clean() bool {
	return len(cr.Problems) == 0
}

// TemplateEntry describes one configured template.
type TemplateEntry struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}

// TemplateList is the result of listing the configured templates.
type TemplateList struct {
	Templates []TemplateEntry `json:"templates"`
}
