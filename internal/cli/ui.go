package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleKey    = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	styleSwatch = lipgloss.NewStyle().Bold(true)
)

// keyValue renders one aligned "key  value" row.
func keyValue(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, styleKey.Render(key), StyleValue.Render(value))
}

// box wraps a title and rows in a rounded border.
func box(title string, rows ...string) string {
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{StyleTitle.Render(title), ""}, rows...)...)
	return styleBox.Render(body)
}
