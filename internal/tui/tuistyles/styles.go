// Package tuistyles holds the shared lipgloss palette and styles so the tui
// package and its components can both use them.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorWarning   = lipgloss.Color("#FFB454")
	ColorDanger    = lipgloss.Color("#FF5F87")
	ColorMuted     = lipgloss.Color("#626262")
	ColorBorder    = lipgloss.Color("#3C3C3C")
	ColorText      = lipgloss.Color("#FAFAFA")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	NegativeBarStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)
)

// Tone grades a metric for coloring.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

// ToneStyle returns the value style for a tone.
func ToneStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneGood:
		return MetricValueStyle.Foreground(ColorSuccess)
	case ToneWarn:
		return MetricValueStyle.Foreground(ColorWarning)
	case ToneBad:
		return MetricValueStyle.Foreground(ColorDanger)
	default:
		return MetricValueStyle
	}
}

// TrendIndicator returns an arrow for a change direction.
func TrendIndicator(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}
