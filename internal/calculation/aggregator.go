package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	maxLongevityYears = 50

	recommendedMaxWithdrawalRate = 4.0
	minReplacementRatio          = 0.7
	recommendedSavingsRate       = 0.15
)

var twelve = decimal.NewFromInt(12)

// TotalRetirementSavings compounds today's investments and contributions to
// the retirement age at the base return, less life event costs incurred on
// the way.
func TotalRetirementSavings(in domain.CalculatorInputs) decimal.Decimal {
	years := in.YearsToRetirement()
	fv := FutureValue(in.TotalInvestments(), in.TotalContributions(), pct(in.InvestmentReturnRate), years)
	costs := LifeEventCosts(in, in.BaseYear, in.BaseYear+years)
	return money(fv.Sub(costs))
}

// EstimatedAnnualRetirementIncome is the first-year income at retirement:
// portfolio withdrawals at the household rate plus benefits and pension.
func EstimatedAnnualRetirementIncome(in domain.CalculatorInputs, savings decimal.Decimal) decimal.Decimal {
	income := savings.Mul(pct(in.RetirementWithdrawalRate)).
		Add(PrimaryMonthlyBenefit(in).Mul(twelve)).
		Add(SpouseMonthlyBenefit(in).Mul(twelve)).
		Add(in.AnnualPension)
	return income.Round(2)
}

// IncomeReplacementRatio is income over desired spending. With no spending
// target every plan replaces fully.
func IncomeReplacementRatio(income, desired decimal.Decimal) decimal.Decimal {
	if desired.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return income.Div(desired).Round(4)
}

// SustainabilityScore blends replacement ratio with withdrawal and return
// bonuses into 0..100. Rates are percentages.
func SustainabilityScore(ratio, withdrawalRate, returnRate decimal.Decimal) int {
	score := int(ratio.Mul(decimal.NewFromInt(50)).Round(0).IntPart())

	switch {
	case withdrawalRate.LessThanOrEqual(decimal.NewFromInt(4)):
		score += 30
	case withdrawalRate.LessThanOrEqual(decimal.NewFromInt(5)):
		score += 20
	default:
		score += 10
	}
	if returnRate.GreaterThanOrEqual(decimal.NewFromInt(5)) {
		score += 20
	} else {
		score += 10
	}
	return clampInt(score, 0, 100)
}

// SuccessProbability scales the score by 0.95 into 1..99.
func SuccessProbability(score int) int {
	return clampInt(int(math.Round(float64(score)*0.95)), 1, 99)
}

// PortfolioLongevity depletes the retirement portfolio with a constant real
// withdrawal against real growth and returns the last solvent age. A
// portfolio that survives 50 years reports retirement age + 50.
func PortfolioLongevity(in domain.CalculatorInputs, savings decimal.Decimal) int {
	if savings.LessThanOrEqual(decimal.Zero) {
		return in.RetirementAge
	}
	withdrawal := savings.Mul(pct(in.RetirementWithdrawalRate))
	horizon := in.RetirementAge + maxLongevityYears
	if withdrawal.LessThanOrEqual(decimal.Zero) {
		return horizon
	}

	growth := decimal.NewFromInt(1).Add(pct(in.InvestmentReturnRate)).Sub(pct(in.InflationRate))
	balance := savings
	for y := 0; y < maxLongevityYears; y++ {
		balance = balance.Mul(growth).Sub(withdrawal).Round(2)
		if balance.LessThanOrEqual(decimal.Zero) {
			return in.RetirementAge + y
		}
	}
	return horizon
}

// GenerateRecommendations returns rule-based advice for the summary metrics.
func GenerateRecommendations(in domain.CalculatorInputs, ratio decimal.Decimal, longevity int) []string {
	var recs []string

	wr := in.RetirementWithdrawalRate.InexactFloat64()
	if wr > recommendedMaxWithdrawalRate {
		recs = append(recs, fmt.Sprintf(
			"Consider lowering your withdrawal rate from %.1f%% to 4%% or less to reduce the risk of outliving your savings.", wr))
	}

	if ratio.LessThan(decimal.NewFromFloat(minReplacementRatio)) {
		recs = append(recs, fmt.Sprintf(
			"Projected retirement income covers only %s%% of desired spending. Increase savings or consider retiring later.",
			ratio.Mul(hundred).Round(0).String()))
	}

	if income := in.HouseholdIncome(); income.GreaterThan(decimal.Zero) {
		rate := in.TotalContributions().Div(income)
		if rate.LessThan(decimal.NewFromFloat(recommendedSavingsRate)) {
			recs = append(recs, fmt.Sprintf(
				"Increase your 401(k) and other retirement contributions toward 15%% of income (currently %s%%).",
				rate.Mul(hundred).Round(1).String()))
		}
	}

	if in.CreditCardDebt.GreaterThan(decimal.Zero) {
		recs = append(recs, fmt.Sprintf(
			"Pay off your credit card balance of $%s before increasing taxable investments.", in.CreditCardDebt.StringFixed(0)))
	}

	if longevity < in.LifeExpectancy {
		recs = append(recs, fmt.Sprintf(
			"Your portfolio is projected to last until age %d, short of your life expectancy of %d. Consider working longer or reducing planned spending.",
			longevity, in.LifeExpectancy))
	}

	if len(recs) == 0 {
		recs = append(recs, "Your plan is on track. Review it annually and after major life changes.")
	}
	return recs
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
