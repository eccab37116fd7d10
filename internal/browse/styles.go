package browse

import "github.com/charmbracelet/lipgloss"

var (
	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Padding(0, 1)

	styleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	styleFaveMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
