package browser

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"}).
			Render

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455"))

	focusedPanelStyle = panelStyle.Copy().
				BorderForeground(lipgloss.Color("#0AF"))

	previewStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#334455"))

	inputLabelStyle = lipgloss.NewStyle().Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#0AF"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224"))

	requireStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	excludeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
	alternateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)
