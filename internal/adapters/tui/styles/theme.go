package styles

import (
	"github.com/charmbracelet/lipgloss"

	"gardenbook/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Record colors
	ClientColor = lipgloss.Color("#8B5CF6") // Violet
	PlantColor  = lipgloss.Color("#10B981") // Green
	JobColor    = lipgloss.Color("#60A5FA") // Blue
	MonthColor  = lipgloss.Color("#F97316") // Orange

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeClient = lipgloss.NewStyle().
			Foreground(ClientColor).
			Bold(true)

	NodePlant = lipgloss.NewStyle().
			Foreground(PlantColor)

	NodeJob = lipgloss.NewStyle().
		Foreground(JobColor)

	NodeMonth = lipgloss.NewStyle().
			Foreground(MonthColor).
			Italic(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Tabs
	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// KindColor returns the color for a record kind
func KindColor(kind domain.Kind) lipgloss.Color {
	switch kind {
	case domain.KindClient:
		return ClientColor
	case domain.KindPlant:
		return PlantColor
	case domain.KindJob:
		return JobColor
	case domain.KindMonth:
		return MonthColor
	default:
		return Primary
	}
}

// KindStyle returns the tree node style for a record kind
func KindStyle(kind domain.Kind) lipgloss.Style {
	switch kind {
	case domain.KindClient:
		return NodeClient
	case domain.KindPlant:
		return NodePlant
	case domain.KindJob:
		return NodeJob
	case domain.KindMonth:
		return NodeMonth
	default:
		return lipgloss.NewStyle()
	}
}
