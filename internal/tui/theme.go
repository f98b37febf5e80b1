package tui

import "github.com/charmbracelet/lipgloss"

// Theme names accepted in config ui.theme.
const (
	ThemeNameDark  = "dark"
	ThemeNameLight = "light"
)

// palette holds the raw colors a theme variant is built from.
type palette struct {
	primary     lipgloss.Color
	text        lipgloss.Color
	muted       lipgloss.Color
	border      lipgloss.Color
	warning     lipgloss.Color
	critical    lipgloss.Color
	selectionFG lipgloss.Color
	selectionBG lipgloss.Color
}

var darkPalette = palette{
	primary:     lipgloss.Color("81"),
	text:        lipgloss.Color("252"),
	muted:       lipgloss.Color("241"),
	border:      lipgloss.Color("240"),
	warning:     lipgloss.Color("214"),
	critical:    lipgloss.Color("196"),
	selectionFG: lipgloss.Color("230"),
	selectionBG: lipgloss.Color("57"),
}

var lightPalette = palette{
	primary:     lipgloss.Color("25"),
	text:        lipgloss.Color("235"),
	muted:       lipgloss.Color("245"),
	border:      lipgloss.Color("250"),
	warning:     lipgloss.Color("130"),
	critical:    lipgloss.Color("124"),
	selectionFG: lipgloss.Color("16"),
	selectionBG: lipgloss.Color("153"),
}

// Shared styles. Every view renders through these so a theme switch
// restyles the whole program. ApplyTheme rebuilds them; call it once at
// startup, before the first render.
var (
	HeaderStyle        lipgloss.Style
	LabelStyle         lipgloss.Style
	ValueStyle         lipgloss.Style
	SubtleStyle        lipgloss.Style
	InfoStyle          lipgloss.Style
	WarningStyle       lipgloss.Style
	CriticalStyle      lipgloss.Style
	HelpStyle          lipgloss.Style
	BoxStyle           lipgloss.Style
	SpinnerStyle       lipgloss.Style
	TableHeaderStyle   lipgloss.Style
	TableSelectedStyle lipgloss.Style
	SidebarStyle       lipgloss.Style
	SidebarActiveStyle lipgloss.Style
	StatusBarStyle     lipgloss.Style
)

func init() {
	buildStyles(darkPalette)
}

// ApplyTheme switches the shared styles to the named variant. Unknown
// names fall back to dark.
func ApplyTheme(name string) {
	switch name {
	case ThemeNameLight:
		buildStyles(lightPalette)
	default:
		buildStyles(darkPalette)
	}
}

func buildStyles(p palette) {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	LabelStyle = lipgloss.NewStyle().Foreground(p.muted)
	ValueStyle = lipgloss.NewStyle().Foreground(p.text)
	SubtleStyle = lipgloss.NewStyle().Foreground(p.muted)
	InfoStyle = lipgloss.NewStyle().Foreground(p.primary)
	WarningStyle = lipgloss.NewStyle().Foreground(p.warning)
	CriticalStyle = lipgloss.NewStyle().Foreground(p.critical).Bold(true)
	HelpStyle = lipgloss.NewStyle().Foreground(p.muted).Italic(true)
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.primary)
	TableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(p.selectionFG).Background(p.selectionBG).Bold(true)
	SidebarStyle = lipgloss.NewStyle().Foreground(p.muted)
	SidebarActiveStyle = lipgloss.NewStyle().Foreground(p.primary).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.muted)
}
