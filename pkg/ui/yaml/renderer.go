// Package yaml renders results as YAML documents
package yaml

import (
	"io"

	"github.com/arthur-debert/sfdelta/pkg/report"
	"gopkg.in/yaml.v3"
)

// Renderer writes one YAML document per call
type Renderer struct {
	output io.Writer
}

// New creates a YAML renderer writing to output
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

func (r *Renderer) RenderError(err error) error {
	return r.encode(report.NewErrorView(err))
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(report.Message{Message: msg})
}
