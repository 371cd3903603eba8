package cli

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for CLI output. Kept minimal: commands print plain
// text when piped (lipgloss degrades automatically via its renderer).
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	styleSection = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("208"))
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleFlag    = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// StatusGlyph renders a colored status marker for result listings.
func StatusGlyph(ok bool) string {
	if ok {
		return styleOK.Render("✓")
	}
	return styleError.Render("✗")
}

// WarnGlyph renders the marker used for advisory findings.
func WarnGlyph() string {
	return styleWarn.Render("!")
}
