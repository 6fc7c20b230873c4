package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// statusStyles maps every document status string, stored or derived, to a
// display style. Unknown statuses render dim rather than breaking.
var statusStyles = map[string]lipgloss.Style{
	"draft":       StyleDim,
	"sent":        StyleBlue,
	"viewed":      StylePurple,
	"accepted":    StyleGreen,
	"declined":    StyleRed,
	"expired":     StyleYellow,
	"scheduled":   StyleBlue,
	"in_progress": StyleYellow,
	"on_hold":     StylePurple,
	"completed":   StyleGreen,
	"cancelled":   StyleRed,
	"partial":     StyleYellow,
	"paid":        StyleGreen,
	"overdue":     StyleRed,
}

// Status renders a document status with its conventional color.
func Status(status string) string {
	style, ok := statusStyles[status]
	if !ok {
		style = StyleDim
	}
	return style.Render(strings.ReplaceAll(status, "_", " "))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
