package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/wealthpath/internal/tui/tuistyles"
)

// MetricCard displays a single plan metric with label, value and an optional
// change against the previous calculation.
type MetricCard struct {
	Label       string
	Value       string
	Tone        tuistyles.Tone
	Change      string
	Improved    bool
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// WithTone colors the value.
func (m *MetricCard) WithTone(t tuistyles.Tone) *MetricCard {
	m.Tone = t
	return m
}

// WithChange shows a delta such as "+$5,234"; improved picks the arrow.
func (m *MetricCard) WithChange(change string, improved bool) *MetricCard {
	m.Change = change
	m.Improved = improved
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.ToneStyle(m.Tone).Render(m.Value)

	if m.Change != "" {
		color := tuistyles.ColorDanger
		if m.Improved {
			color = tuistyles.ColorSuccess
		}
		content += "\n" + lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Improved), m.Change))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
