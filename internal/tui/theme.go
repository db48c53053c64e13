package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The storefront must stay readable on both light and dark terminal
// backgrounds, so every color is a lipgloss.AdaptiveColor and "faint"
// styling is only applied on dark backgrounds (faint text on light
// terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorPrice    lipgloss.TerminalColor = ac("22", "78") // green
	colorLiked    lipgloss.TerminalColor = ac("161", "204")
	colorSold     lipgloss.TerminalColor = ac("124", "167")
	colorError    lipgloss.TerminalColor = ac("196", "160")
	colorSelected lipgloss.TerminalColor = ac("232", "255")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	priceStyle  = lipgloss.NewStyle().Foreground(colorPrice)
	likedStyle  = lipgloss.NewStyle().Foreground(colorLiked)
	soldStyle   = lipgloss.NewStyle().Foreground(colorSold).Bold(true)
	brandStyle  = lipgloss.NewStyle().Foreground(colorAccent)
)
