package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// CSVSummarizer writes the net worth projection, one row per year.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(plan *domain.RetirementPlan) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "Year", "Cash", "RetirementAccounts", "RothAccounts", "TaxableInvestments",
		"RealEstateValue", "RealEstateEquity", "MortgageBalance", "OtherDebt", "TotalNetWorth", "IsRetirementAge"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range plan.NetWorthProjection {
		row := []string{
			intToString(p.Age),
			intToString(p.Year),
			p.Cash.StringFixed(2),
			p.RetirementAccounts.StringFixed(2),
			p.RothAccounts.StringFixed(2),
			p.TaxableInvestments.StringFixed(2),
			p.RealEstateValue.StringFixed(2),
			p.RealEstateEquity.StringFixed(2),
			p.MortgageBalance.StringFixed(2),
			p.OtherDebt.StringFixed(2),
			p.TotalNetWorth.StringFixed(2),
			boolToString(p.IsRetirementAge),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
