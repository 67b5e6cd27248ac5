// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/sfdelta/pkg/report"
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
	case *report.Summary:
		return r.renderSummary(v)
	case *report.Classification:
		return r.renderClassification(v)
	default:
		// unknown types are printed as is
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderSummary(s *report.Summary) error {
	var b strings.Builder
	fmt.Fprintln(&b, s.Message)
	fmt.Fprintf(&b, "Source: %s\n", s.Source)
	fmt.Fprintf(&b, "Delta:  %s\n", s.Delta)
	if s.Marker != "" {
		fmt.Fprintf(&b, "Key:    %s (%s)\n", s.Key, s.Marker)
	} else {
		fmt.Fprintf(&b, "Key:    %s\n", s.Key)
	}
	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}

	if len(s.Units) > 0 {
		if _, err := fmt.Fprintln(r.output); err != nil {
			return err
		}
		if err := writeUnits(r.output, s.Units, true); err != nil {
			return err
		}
	}

	counts := make([]string, 0, len(s.Counts))
	for _, name := range s.StatusNames() {
		counts = append(counts, fmt.Sprintf("%s: %d", name, s.Counts[name]))
	}
	line := fmt.Sprintf("\nFiles copied: %d", s.FilesCopied)
	if len(counts) > 0 {
		line += " (" + strings.Join(counts, ", ") + ")"
	}
	if s.Manifest != "" {
		line += "\nManifest: " + s.Manifest
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

func (r *Renderer) renderClassification(c *report.Classification) error {
	if len(c.Units) == 0 {
		_, err := fmt.Fprintln(r.output, "No paths to classify")
		return err
	}
	return writeUnits(r.output, c.Units, false)
}

func writeUnits(w io.Writer, units []report.Unit, withStatus bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, u := range units {
		target := u.Root
		if len(u.Extras) > 0 {
			target += " + " + strings.Join(u.Extras, ", ")
		}
		if u.Root == "" {
			target = u.Message
		}
		if withStatus {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Status, u.Kind, u.Path, target)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Kind, u.Path, target)
		}
	}
	return tw.Flush()
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
