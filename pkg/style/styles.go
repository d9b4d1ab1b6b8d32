// Package style holds the lipgloss styles of icicle's terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	MutedStyle   = lipgloss.NewStyle().Foreground(MutedColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	PathStyle    = lipgloss.NewStyle().Foreground(SecondaryColor).Italic(true)

	VersionStyle = lipgloss.NewStyle().Foreground(VersionColor).Bold(true)
	DefaultStyle = lipgloss.NewStyle().Foreground(DefaultColor)
	CurrentStyle = lipgloss.NewStyle().Foreground(CurrentColor).Bold(true)
)

// Line markers
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	CurrentIndicator = CurrentStyle.Render("→")
	ListIndicator    = MutedStyle.Render("*")
)

// Indent pads s by two spaces per level
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
