package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/wealthpath/internal/tui/tuistyles"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label   string
	Value   float64
	Display string
}

// BarChart renders bars scaled to the largest absolute value. Negative values
// are drawn in the danger color.
func BarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	if width < 10 {
		width = 10
	}

	var peak float64
	labelWidth := 0
	for _, b := range bars {
		peak = math.Max(peak, math.Abs(b.Value))
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}

	var sb strings.Builder
	for i, b := range bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(b.Value) / peak * float64(width)))
		}
		style := tuistyles.BarStyle
		if b.Value < 0 {
			style = tuistyles.NegativeBarStyle
		}
		bar := style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", width-n)
		fmt.Fprintf(&sb, "%-*s %s %s", labelWidth, b.Label, bar, b.Display)
		if i < len(bars)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
