package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	statusCountStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Error styles
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Event line styles
	seqStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	allocStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	zeroedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	reallocStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	deallocStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true)

	warnTextStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	addrStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Backtrace styles
	frameFuncStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	frameLocStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// verbStyle returns the rendering style for an event verb
func verbStyle(verb string) lipgloss.Style {
	switch verb {
	case verbAlloc:
		return allocStyle
	case verbAllocZeroed:
		return zeroedStyle
	case verbRealloc:
		return reallocStyle
	case verbDealloc:
		return deallocStyle
	default:
		return warnTextStyle
	}
}
