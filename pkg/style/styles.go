package style

import (
	"fmt"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

func fg(c lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var palette = DefaultPalette

// Text styles
var (
	TitleStyle   = fg(palette.Heading).Bold(true)
	NormalStyle  = fg(palette.Text)
	MutedStyle   = fg(palette.Muted)
	PathStyle    = fg(palette.Path).Italic(true)
	SuccessStyle = fg(palette.Copied).Bold(true)
	ErrorStyle   = fg(palette.Failed).Bold(true)
	WarningStyle = fg(palette.Missing).Bold(true)
	InfoStyle    = fg(palette.Present)

	// BoxStyle frames the run header
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Border).
			Padding(0, 1)
)

var kindStyles = map[types.ComponentKind]lipgloss.Style{
	types.KindBundle:                   fg(palette.Bundle).Bold(true),
	types.KindMetaDescriptorPair:       fg(palette.MetaPair).Bold(true),
	types.KindStaticResourceOrDocument: fg(palette.Resource).Bold(true),
	types.KindObjectTranslation:        fg(palette.Translation).Bold(true),
	types.KindExcluded:                 MutedStyle,
}

// KindStyle returns the style a component kind name is printed with
func KindStyle(kind string) lipgloss.Style {
	if s, ok := kindStyles[types.ComponentKind(kind)]; ok {
		return s
	}
	return NormalStyle
}

// Unit status indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	PendingIndicator = MutedStyle.Render("○")
)

var indicators = map[string]string{
	"copied":   SuccessIndicator,
	"present":  InfoIndicator,
	"excluded": PendingIndicator,
	"missing":  WarningIndicator,
	"failed":   ErrorIndicator,
}

// Indicator returns the marker shown in front of a unit with the given status
func Indicator(status string) string {
	if i, ok := indicators[status]; ok {
		return i
	}
	return InfoIndicator
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

// RenderError formats an error for stderr behind the pterm error prefix.
// Errors without a code are tagged [ERROR].
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if errors.GetErrorCode(err) == errors.ErrUnknown {
		msg = "[ERROR] " + msg
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(msg))
}
