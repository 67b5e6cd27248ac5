package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the adaptive colors of the terminal renderer. Each color
// has a light and a dark background variant.
type Palette struct {
	Heading lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Path    lipgloss.AdaptiveColor

	Copied  lipgloss.AdaptiveColor
	Failed  lipgloss.AdaptiveColor
	Missing lipgloss.AdaptiveColor
	Present lipgloss.AdaptiveColor

	// per component kind
	Bundle      lipgloss.AdaptiveColor
	MetaPair    lipgloss.AdaptiveColor
	Resource    lipgloss.AdaptiveColor
	Translation lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultPalette is the palette the package level styles are built from
var DefaultPalette = Palette{
	Heading: adaptive("#1F2328", "#F0F3F6"),
	Text:    adaptive("#424A53", "#D1D7E0"),
	Muted:   adaptive("#6E7781", "#9198A1"),
	Border:  adaptive("#D0D7DE", "#3D444D"),
	Path:    adaptive("#57606A", "#B7BDC8"),

	Copied:  adaptive("#1A7F37", "#3FB950"),
	Failed:  adaptive("#CF222E", "#F85149"),
	Missing: adaptive("#9A6700", "#D29922"),
	Present: adaptive("#0969DA", "#4493F8"),

	// Salesforce blue for bundles, the cloud's default accent
	Bundle:      adaptive("#0176D3", "#1B96FF"),
	MetaPair:    adaptive("#8250DF", "#AB7DF8"),
	Resource:    adaptive("#BC4C00", "#F0883E"),
	Translation: adaptive("#116329", "#56D364"),
}
