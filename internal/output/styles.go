package output

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent   = "154"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorRed      = "196"
	ColorYellow   = "220"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header  lipgloss.Style
	Term    lipgloss.Style
	Source  lipgloss.Style
	Score   lipgloss.Style
	Context lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Term:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Source:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Score:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Context: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)).PaddingLeft(4),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
	}
}
