package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iammorganparry/rewind/internal/models"
)

// One Dark Pro color palette
var (
	ColorBgHighlight = lipgloss.Color("#2C313C")

	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	ColorBorder = lipgloss.Color("#3F4451")
)

// typeColors gives each entry type its badge color.
var typeColors = map[models.EntryType]lipgloss.Color{
	models.EntryTypeClipboard:  ColorBlue,
	models.EntryTypeFile:       ColorGreen,
	models.EntryTypeScreenshot: ColorMagenta,
	models.EntryTypeCode:       ColorOrange,
	models.EntryTypeNote:       ColorYellow,
}

func typeStyle(t models.EntryType) lipgloss.Style {
	c, ok := typeColors[t]
	if !ok {
		c = ColorFgSecondary
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	CategoryActiveStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	TimelineStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	DayHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	EntryTitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	EntrySelectedStyle = lipgloss.NewStyle().
				Background(ColorBgHighlight).
				Foreground(ColorFgPrimary).
				Bold(true)

	RelevanceStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputFocusedStyle = InputStyle.
				BorderForeground(ColorGreen)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
