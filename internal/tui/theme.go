package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the host draws with.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent = colorPink
	colorBrand  = colorPink
	colorFocus  = colorLavender
	colorPull   = colorTeal
	colorTrace  = colorPeach
	colorActive = colorGreen
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerRowStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerDimStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	stretchStyle = lipgloss.NewStyle().
			Foreground(colorPull).
			Background(colorMantle)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	rowStyle    = lipgloss.NewStyle().Foreground(colorSubtext1)
	rowAltStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	scrollStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	statusOnStyle = lipgloss.NewStyle().Foreground(colorActive).Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	traceLineStyle  = lipgloss.NewStyle().Foreground(colorTrace)
	traceAxisStyle  = lipgloss.NewStyle().Foreground(colorSurface2)
	traceLabelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	traceBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1)
	traceTitleStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
)
