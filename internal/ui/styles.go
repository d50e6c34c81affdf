package ui

import "github.com/charmbracelet/lipgloss"

// ------- Lip Gloss styles shared by the TUI -------
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	PositiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	NegativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	AccentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle    = lipgloss.NewStyle().Faint(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("12"))

	buttonStyle         = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	focusedButtonStyle  = buttonStyle.Bold(true).Reverse(true)
	disabledButtonStyle = buttonStyle.Faint(true)

	// PanelStyle frames the whole interactive view.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
