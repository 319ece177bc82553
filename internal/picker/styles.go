package picker

import "github.com/charmbracelet/lipgloss"

// Monokai Pro, same palette as the rest of the UI.
var (
	colorForeground = lipgloss.Color("#fcfcfa")
	colorSelection  = lipgloss.Color("#403e41")
	colorCyan       = lipgloss.Color("#78dce8")
	colorYellow     = lipgloss.Color("#ffd866")
	colorMagenta    = lipgloss.Color("#ab9df2")
	colorGray       = lipgloss.Color("#727072")
	colorDimGray    = lipgloss.Color("#5b595c")
	colorRed        = lipgloss.Color("#ff6188")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorMagenta).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	queryStyle = lipgloss.NewStyle().
			Foreground(colorForeground).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(colorDimGray)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorForeground)

	matchStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorForeground).
				Background(colorSelection)

	selectedMatchStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSelection).
				Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Background(colorSelection).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	activeActionStyle = lipgloss.NewStyle().
				Foreground(colorCyan).
				Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(colorDimGray).
				Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)
