package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render takes raw content and the file extension it came from
	Render(content string, ext string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "auto", a glamour style name or a style file path
	Width int    // word wrap, 0 keeps glamour's default
}

// NewGlamourRenderer creates a markdown renderer with auto-detected style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
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
