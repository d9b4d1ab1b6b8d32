package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Every color adapts to light and dark terminal backgrounds.
var (
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#5B6B7A", Dark: "#9FB3C8"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#7B8794", Dark: "#829AB1"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#1F8A4C", Dark: "#57D98C"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF7A7A"}

	// VersionColor is the icy blue used for toolchain versions
	VersionColor = lipgloss.AdaptiveColor{Light: "#0277BD", Dark: "#81D4FA"}
	// DefaultColor marks the toolchain behind the default alias
	DefaultColor = lipgloss.AdaptiveColor{Light: "#6A1B9A", Dark: "#CE93D8"}
	// CurrentColor marks the toolchain this shell resolves to
	CurrentColor = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#80DEEA"}
)
