package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorAccent = lipgloss.Color("86")  // cyan
	colorGood   = lipgloss.Color("42")  // green
	colorWarn   = lipgloss.Color("214") // amber
	colorBad    = lipgloss.Color("196") // red
	colorMuted  = lipgloss.Color("241") // gray
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleScoreGood = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	styleScoreWarn = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	styleScoreBad  = lipgloss.NewStyle().Bold(true).Foreground(colorBad)

	styleFeedback = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorAccent)

	stylePulse = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBad)

	styleDebug = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// scoreStyle picks a style band for a 0-100 score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 85:
		return styleScoreGood
	case score >= 60:
		return styleScoreWarn
	default:
		return styleScoreBad
	}
}
