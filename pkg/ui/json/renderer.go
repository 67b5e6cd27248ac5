// Package json renders results as indented JSON documents
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/sfdelta/pkg/report"
)

// Renderer writes one JSON document per call
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer writing to output
func New(output io.Writer) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &Renderer{encoder: encoder}, nil
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(report.NewErrorView(err))
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(report.Message{Message: msg})
}
