// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/report"
	"github.com/arthur-debert/sfdelta/pkg/style"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *report.Summary:
		return r.write(renderSummary(v))
	case *report.Classification:
		return r.write(renderClassification(v))
	default:
		// unknown types are printed as is
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) write(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}

func renderSummary(s *report.Summary) string {
	var b strings.Builder

	title := style.SuccessStyle
	if len(s.Failures) > 0 {
		title = style.WarningStyle
	}
	b.WriteString(title.Render(s.Message))
	b.WriteString("\n")

	header := []string{
		fmt.Sprintf("%s %s", style.MutedStyle.Render("source"), style.PathStyle.Render(s.Source)),
		fmt.Sprintf("%s  %s", style.MutedStyle.Render("delta"), style.PathStyle.Render(s.Delta)),
	}
	key := s.Key
	if s.Marker != "" {
		key = fmt.Sprintf("%s %s", s.Key, style.MutedStyle.Render("@ "+s.Marker))
	}
	header = append(header, fmt.Sprintf("%s    %s", style.MutedStyle.Render("key"), key))
	b.WriteString(style.BoxStyle.Render(strings.Join(header, "\n")))
	b.WriteString("\n")

	if len(s.Units) > 0 {
		b.WriteString("\n")
		b.WriteString(renderUnits(s.Units, true))
	}

	parts := make([]string, 0, len(s.Counts))
	for _, name := range s.StatusNames() {
		parts = append(parts, fmt.Sprintf("%s %d", style.Indicator(name), s.Counts[name]))
	}
	footer := fmt.Sprintf("%s %d", style.Bold("Files copied:"), s.FilesCopied)
	if len(parts) > 0 {
		footer += "  " + strings.Join(parts, "  ")
	}
	b.WriteString("\n")
	b.WriteString(footer)
	if s.Manifest != "" {
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render("manifest ") + style.PathStyle.Render(s.Manifest))
	}
	return b.String()
}

func renderClassification(c *report.Classification) string {
	if len(c.Units) == 0 {
		return style.MutedStyle.Render("No paths to classify")
	}
	return strings.TrimRight(renderUnits(c.Units, false), "\n")
}

func renderUnits(units []report.Unit, withStatus bool) string {
	kindWidth := 0
	for _, u := range units {
		if len(u.Kind) > kindWidth {
			kindWidth = len(u.Kind)
		}
	}

	var b strings.Builder
	for _, u := range units {
		kind := style.KindStyle(u.Kind).Width(kindWidth).Render(u.Kind)
		line := kind + "  " + u.Path
		if withStatus {
			line = style.Indicator(u.Status) + " " + line
		}
		b.WriteString(line)
		b.WriteString("\n")

		if u.Root != "" {
			b.WriteString(style.Indent(style.PathStyle.Render("→ "+u.Root), 2))
			b.WriteString("\n")
		}
		for _, extra := range u.Extras {
			b.WriteString(style.Indent(style.PathStyle.Render("+ "+extra), 2))
			b.WriteString("\n")
		}
		if u.Message != "" {
			b.WriteString(style.Indent(style.MutedStyle.Render(u.Message), 2))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.write(style.RenderError(err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(style.InfoStyle.Render(msg))
}
