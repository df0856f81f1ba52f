package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/wealthpath/internal/tui/tuistyles"
	"github.com/stretchr/testify/assert"
)

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Sustainability", "85/100").
		WithTone(tuistyles.ToneGood).
		WithChange("+5 points", true).
		WithDescription("success 90%").
		WithWidth(30)

	out := card.Render()
	assert.Contains(t, out, "Sustainability")
	assert.Contains(t, out, "85/100")
	assert.Contains(t, out, "▲ +5 points")
	assert.Contains(t, out, "success 90%")
}

func TestMetricCard_NoChange(t *testing.T) {
	out := NewMetricCard("Savings", "$1,000").Render()
	assert.NotContains(t, out, "▲")
	assert.NotContains(t, out, "▼")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	oneRow := MetricGrid(cards, 3)
	twoRows := MetricGrid(cards, 2)
	assert.Greater(t, strings.Count(twoRows, "\n"), strings.Count(oneRow, "\n"), "wrapping adds rows")
	assert.NotEmpty(t, MetricGrid(cards, 0), "zero columns falls back to one")
}

func TestBarChart(t *testing.T) {
	assert.Contains(t, BarChart(nil, 20), "No data")

	out := BarChart([]Bar{
		{Label: "35", Value: 100, Display: "$100"},
		{Label: "65", Value: 400, Display: "$400"},
		{Label: "90", Value: -200, Display: "-$200"},
	}, 20)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 20, strings.Count(lines[1], "█"), "the peak fills the width")
	assert.Equal(t, 5, strings.Count(lines[0], "█"))
	assert.Equal(t, 10, strings.Count(lines[2], "█"), "negative bars scale by magnitude")
	assert.Contains(t, lines[2], "-$200")
}
