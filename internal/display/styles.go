package display

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - labels

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "Success":
		return successStyle
	case "Failed":
		return failedStyle
	default:
		return errorStyle
	}
}
