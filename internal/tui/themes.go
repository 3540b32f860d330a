package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines a color scheme for reports and the dashboard
type Theme struct {
	Name            string
	PrimaryAccent   string // Titles, rules
	SecondaryAccent string // Rank numbers, champion line
	ValueText       string // Counts, scores
	LabelText       string // Labels, help text
	MutedText       string // Empty-state text
	Border          string // Box borders
	SelectedBg      string // Active mode tab background
}

// Available themes
var Themes = map[string]Theme{
	"default": {
		Name:            "Default",
		PrimaryAccent:   "#C73B3C", // Burgundy red accent
		SecondaryAccent: "#d7af5f", // Trophy gold
		ValueText:       "#5fafaf", // Teal/cyan
		LabelText:       "#6c6c6c", // Gray
		MutedText:       "#8a8a8a", // Light gray
		Border:          "#5f87d7", // Blue
		SelectedBg:      "#303030", // Dark gray
	},
	"gruvbox": {
		Name:            "Gruvbox",
		PrimaryAccent:   "#d65d0e", // Gruvbox orange
		SecondaryAccent: "#d79921", // Gruvbox yellow
		ValueText:       "#98971a", // Gruvbox green
		LabelText:       "#928374", // Gruvbox gray
		MutedText:       "#a89984", // Gruvbox light gray
		Border:          "#458588", // Gruvbox aqua
		SelectedBg:      "#3c3836", // Gruvbox bg1
	},
	"tokyonight": {
		Name:            "Tokyo Night",
		PrimaryAccent:   "#7aa2f7", // Tokyo Night blue
		SecondaryAccent: "#e0af68", // Tokyo Night yellow
		ValueText:       "#9ece6a", // Tokyo Night green
		LabelText:       "#565f89", // Tokyo Night comment
		MutedText:       "#9aa5ce", // Tokyo Night foreground dim
		Border:          "#7dcfff", // Tokyo Night cyan
		SelectedBg:      "#292e42", // Tokyo Night bg highlight
	},
	"catppuccin": {
		Name:            "Catppuccin",
		PrimaryAccent:   "#cba6f7", // Catppuccin Mauve
		SecondaryAccent: "#f9e2af", // Catppuccin Yellow
		ValueText:       "#a6e3a1", // Catppuccin Green
		LabelText:       "#6c7086", // Catppuccin Overlay0
		MutedText:       "#9399b2", // Catppuccin Overlay2
		Border:          "#89b4fa", // Catppuccin Blue
		SelectedBg:      "#313244", // Catppuccin Surface0
	},
}

// ThemeNames returns the list of available theme names
var ThemeNames = []string{"default", "gruvbox", "tokyonight", "catppuccin"}

// CurrentTheme holds the active theme
var CurrentTheme = Themes["default"]

var (
	titleStyle     lipgloss.Style
	headingStyle   lipgloss.Style
	championStyle  lipgloss.Style
	statLabelStyle lipgloss.Style
	statValueStyle lipgloss.Style
	mutedStyle     lipgloss.Style
	boxStyle       lipgloss.Style
	graphStyle     lipgloss.Style
	tabStyle       lipgloss.Style
	activeTabStyle lipgloss.Style
	helpStyle      lipgloss.Style
)

// SetTheme updates the current theme and regenerates all styles. It reports
// whether name was a known theme.
func SetTheme(name string) bool {
	theme, ok := Themes[name]
	if ok {
		CurrentTheme = theme
		regenerateStyles()
	}
	return ok
}

// regenerateStyles updates all lipgloss styles with current theme colors
func regenerateStyles() {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.PrimaryAccent))

	headingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.PrimaryAccent))

	championStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.SecondaryAccent))

	statLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.LabelText))

	statValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.ValueText))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.MutedText))

	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Padding(1, 2)

	graphStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.PrimaryAccent))

	tabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.MutedText)).
		Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.ValueText)).
		Background(lipgloss.Color(CurrentTheme.SelectedBg)).
		Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.LabelText)).
		MarginTop(1)
}

// Initialize styles with default theme
func init() {
	regenerateStyles()
}
