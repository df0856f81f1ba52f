package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 92) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Input File: %s\n", compSet.ConfigPath))
	}
	mode := "stochastic"
	if compSet.Deterministic {
		mode = "deterministic"
	}
	sb.WriteString(fmt.Sprintf("Seed: %d (%s)\n", compSet.Seed, mode))
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Savings",
		numWidth, "Income/yr",
		numWidth, "Score",
		numWidth, "Lasts To",
		numWidth, "Final NW"))
	sb.WriteString(strings.Repeat("-", 92) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 92) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Retirement Savings: %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.SavingsDiffFromBase),
				tf.formatDecimal(alt.SavingsDiffFromBase),
				alt.SavingsPctFromBase.StringFixed(1)))

			if !alt.IncomeDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Annual Income:      %s$%s\n",
					tf.deltaSymbol(alt.IncomeDiffFromBase),
					tf.formatDecimal(alt.IncomeDiffFromBase)))
			}

			if alt.ScoreDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Sustainability:     %+d points\n", alt.ScoreDiff))
			}

			if alt.LongevityDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Longevity:          %+d years\n", alt.LongevityDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 92) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TotalRetirementSavings),
		numWidth, "$"+tf.formatDecimal(result.AnnualRetirementIncome),
		numWidth, fmt.Sprintf("%d/100", result.SustainabilityScore),
		numWidth, fmt.Sprintf("age %d", result.PortfolioLongevity),
		numWidth, "$"+tf.formatDecimal(result.FinalNetWorth))
}

// formatDecimal formats a decimal for display in thousands or millions.
// The sign is dropped; callers print it through deltaSymbol.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	d = d.Abs()
	if d.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix for a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.SavingsDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s$%s", tf.deltaSymbol(alt.SavingsDiffFromBase), tf.formatDecimal(alt.SavingsDiffFromBase))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
