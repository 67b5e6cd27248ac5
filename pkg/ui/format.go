package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format names an output format. The value is what --format and the
// output.format setting accept.
type Format string

const (
	FormatAuto     Format = "auto" // terminal or text, by inspecting stdout
	FormatTerminal Format = "term" // lipgloss styled
	FormatText     Format = "text" // plain, for pipes and logs
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

// Formats lists the canonical format names
var Formats = []Format{FormatAuto, FormatTerminal, FormatText, FormatJSON, FormatYAML}

func (f Format) String() string {
	if canonical, ok := formatAliases[string(f)]; ok && canonical == f {
		return string(f)
	}
	return "unknown"
}

// ParseFormat accepts a format name or alias, case-insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("unknown format: %s", s)
}

// DetectFormat picks terminal output for a color-capable tty and text
// otherwise. NO_COLOR forces text.
func DetectFormat(output *os.File) Format {
	if termenv.EnvNoColor() {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
