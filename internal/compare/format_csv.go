package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Claiming Age",
		"Withdrawal Rate",
		"Retirement Savings",
		"Annual Income",
		"Sustainability Score",
		"Success Probability",
		"Portfolio Longevity",
		"Final Net Worth",
		"Savings Diff from Base",
		"Savings % Change",
		"Score Diff",
		"Longevity Diff",
		"Net Worth Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		strconv.Itoa(result.ClaimingAge),
		result.WithdrawalRate.StringFixed(2),
		result.TotalRetirementSavings.StringFixed(2),
		result.AnnualRetirementIncome.StringFixed(2),
		strconv.Itoa(result.SustainabilityScore),
		strconv.Itoa(result.SuccessProbability),
		strconv.Itoa(result.PortfolioLongevity),
		result.FinalNetWorth.StringFixed(2),
		result.SavingsDiffFromBase.StringFixed(2),
		result.SavingsPctFromBase.StringFixed(2),
		strconv.Itoa(result.ScoreDiff),
		strconv.Itoa(result.LongevityDiff),
		result.NetWorthDiffFromBase.StringFixed(2),
	}
}
