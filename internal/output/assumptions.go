package output

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// Assumptions lists the modeling assumptions behind a plan, rendered in
// detailed outputs.
func Assumptions(plan *domain.RetirementPlan) []string {
	in := plan.Inputs
	profile := in.RiskProfile
	if profile == "" {
		profile = domain.RiskModerate
	}
	lines := []string{
		fmt.Sprintf("Investment return: %s annually (%s risk profile)", FormatPercentage(in.InvestmentReturnRate), profile),
		fmt.Sprintf("Inflation and Social Security COLA: %s annually", FormatPercentage(in.InflationRate)),
		fmt.Sprintf("Income growth: %s annually", FormatPercentage(in.IncomeGrowthRate)),
		fmt.Sprintf("Retirement withdrawals: %s of the portfolio per year", FormatPercentage(in.RetirementWithdrawalRate)),
		fmt.Sprintf("Social Security claimed at %d, projection runs to age %d", in.SocialSecurityClaimingAge, in.LifeExpectancy),
	}
	if plan.Deterministic {
		lines = append(lines, "Market volatility and cycles disabled (deterministic run)")
	} else {
		lines = append(lines, fmt.Sprintf("Market volatility sampled from seed %d", plan.Seed))
	}
	return lines
}

// milestones picks the projection rows worth showing in condensed tables:
// the first year, every fifth year, the retirement year and the final year.
func milestones(points []domain.NetWorthPoint) []domain.NetWorthPoint {
	var out []domain.NetWorthPoint
	for i, p := range points {
		if i == 0 || i == len(points)-1 || p.IsRetirementAge || i%5 == 0 {
			out = append(out, p)
		}
	}
	return out
}

// firstRetirementIncome returns the income point for the retirement year.
func firstRetirementIncome(plan *domain.RetirementPlan) (domain.IncomeSourcesPoint, bool) {
	for _, p := range plan.IncomeSources {
		if p.IsRetirementAge {
			return p, true
		}
	}
	return domain.IncomeSourcesPoint{}, false
}
