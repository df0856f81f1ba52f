package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// CSVDetailedExporter writes every yearly series joined on age: net worth,
// income sources, withdrawal strategies, risk profiles and debt payoff.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Age", "Year", "IsRetirementAge",
		"Cash", "Investments", "RealEstateEquity", "MortgageBalance", "OtherDebt", "TotalNetWorth",
		"PrimaryIncome", "SpouseIncome", "SocialSecurity", "SpouseSocialSecurity", "Pension", "RMD",
		"RetirementWithdrawals", "TaxableWithdrawals", "TotalIncome",
		"WithdrawalConservative", "WithdrawalModerate", "WithdrawalAggressive",
		"RiskConservative", "RiskModerate", "RiskAggressive",
		"DebtMortgage", "DebtStudentLoan", "DebtAutoLoan", "DebtCreditCard", "TotalDebt",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	income := make(map[int]domain.IncomeSourcesPoint, len(plan.IncomeSources))
	for _, p := range plan.IncomeSources {
		income[p.Age] = p
	}
	withdrawals := make(map[int]domain.WithdrawalStrategyPoint, len(plan.WithdrawalStrategies))
	for _, p := range plan.WithdrawalStrategies {
		withdrawals[p.Age] = p
	}
	risk := make(map[int]domain.RiskProfilePoint, len(plan.RiskProfiles))
	for _, p := range plan.RiskProfiles {
		risk[p.Age] = p
	}
	debt := make(map[int]domain.DebtPayoffPoint, len(plan.DebtPayoff))
	for _, p := range plan.DebtPayoff {
		debt[p.Age] = p
	}

	for _, nw := range plan.NetWorthProjection {
		in, wd, rk, dt := income[nw.Age], withdrawals[nw.Age], risk[nw.Age], debt[nw.Age]
		row := []string{
			intToString(nw.Age), intToString(nw.Year), boolToString(nw.IsRetirementAge),
			nw.Cash.StringFixed(2), nw.Investments().StringFixed(2), nw.RealEstateEquity.StringFixed(2),
			nw.MortgageBalance.StringFixed(2), nw.OtherDebt.StringFixed(2), nw.TotalNetWorth.StringFixed(2),
			in.PrimaryIncome.StringFixed(2), in.SpouseIncome.StringFixed(2), in.SocialSecurity.StringFixed(2),
			in.SpouseSocialSecurity.StringFixed(2), in.Pension.StringFixed(2), in.RMD.StringFixed(2),
			in.RetirementWithdrawals.StringFixed(2), in.TaxableWithdrawals.StringFixed(2), in.TotalIncome.StringFixed(2),
			wd.Conservative.StringFixed(2), wd.Moderate.StringFixed(2), wd.Aggressive.StringFixed(2),
			rk.Conservative.StringFixed(2), rk.Moderate.StringFixed(2), rk.Aggressive.StringFixed(2),
			dt.Mortgage.StringFixed(2), dt.StudentLoan.StringFixed(2), dt.AutoLoan.StringFixed(2),
			dt.CreditCard.StringFixed(2), dt.TotalDebt.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
