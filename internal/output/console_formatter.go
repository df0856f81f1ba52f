package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Seed: %d (%s)\n", plan.Seed, runMode(plan.Deterministic))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Savings at Retirement: %s\n", FormatDollars(plan.TotalRetirementSavings))
	fmt.Fprintf(&buf, "Annual Income:         %s\n", FormatDollars(plan.EstimatedAnnualRetirementIncome))
	fmt.Fprintf(&buf, "Income Replacement:    %s\n", FormatPercentage(plan.IncomeReplacementRatio))
	fmt.Fprintf(&buf, "Social Security:       %s/mo\n", FormatCurrency(plan.MonthlySocialSecurity.Add(plan.SpouseMonthlySocialSecurity)))
	fmt.Fprintf(&buf, "Sustainability:        %d/100 (success %d%%)\n", plan.SustainabilityScore, plan.SuccessProbability)
	fmt.Fprintf(&buf, "Portfolio Lasts To:    age %d\n", plan.PortfolioLongevity)
	fmt.Fprintf(&buf, "Final Net Worth:       %s\n", FormatDollars(plan.FinalNetWorth()))
	if len(plan.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Top Recommendation: %s\n", plan.Recommendations[0])
	}
	return buf.Bytes(), nil
}
