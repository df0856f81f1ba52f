package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	FullRetirementAge   = 67
	EarliestClaimingAge = 62
	LatestClaimingAge   = 70
)

var (
	ssWageBase      = decimal.NewFromInt(168600)
	firstBendPoint  = decimal.NewFromInt(1174)
	secondBendPoint = decimal.NewFromInt(7084)
	maxMonthlyPIA   = decimal.NewFromInt(4873)

	earlyReductionFirst36 = decimal.NewFromFloat(5.0 / 9.0 / 100.0)
	earlyReductionBeyond  = decimal.NewFromFloat(5.0 / 12.0 / 100.0)
	delayedCreditPerMonth = decimal.NewFromFloat(2.0 / 3.0 / 100.0)
)

// CalculateAIME converts annual covered earnings to average indexed monthly
// earnings, capped at the wage base.
func CalculateAIME(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(annualIncome, ssWageBase).Div(decimal.NewFromInt(12))
}

// CalculatePIA applies the 90/32/15 bend point formula, rounded to the dollar
// and capped at the maximum benefit.
func CalculatePIA(aime decimal.Decimal) decimal.Decimal {
	if aime.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pia := decimal.Min(aime, firstBendPoint).Mul(decimal.NewFromFloat(0.90))
	if aime.GreaterThan(firstBendPoint) {
		pia = pia.Add(decimal.Min(aime, secondBendPoint).Sub(firstBendPoint).Mul(decimal.NewFromFloat(0.32)))
	}
	if aime.GreaterThan(secondBendPoint) {
		pia = pia.Add(aime.Sub(secondBendPoint).Mul(decimal.NewFromFloat(0.15)))
	}
	return decimal.Min(pia.Round(0), maxMonthlyPIA)
}

// SocialSecurityCalculator computes one worker's benefit.
type SocialSecurityCalculator struct {
	PIA decimal.Decimal
}

// NewSocialSecurityCalculator derives PIA from annual income. A positive
// override is taken as the PIA directly.
func NewSocialSecurityCalculator(annualIncome, override decimal.Decimal) *SocialSecurityCalculator {
	if override.GreaterThan(decimal.Zero) {
		return &SocialSecurityCalculator{PIA: override}
	}
	return &SocialSecurityCalculator{PIA: CalculatePIA(CalculateAIME(annualIncome))}
}

// BenefitAtAge returns the monthly benefit when claiming at claimingAge. Ages
// outside 62..70 are clamped into range.
func (ssc *SocialSecurityCalculator) BenefitAtAge(claimingAge int) decimal.Decimal {
	claimingAge = ClampClaimingAge(claimingAge)
	factor := decimal.NewFromInt(1)

	switch {
	case claimingAge < FullRetirementAge:
		monthsEarly := (FullRetirementAge - claimingAge) * 12
		first := monthsEarly
		if first > 36 {
			first = 36
		}
		reduction := earlyReductionFirst36.Mul(decimal.NewFromInt(int64(first)))
		if monthsEarly > 36 {
			reduction = reduction.Add(earlyReductionBeyond.Mul(decimal.NewFromInt(int64(monthsEarly - 36))))
		}
		factor = factor.Sub(reduction)
	case claimingAge > FullRetirementAge:
		monthsDelayed := (claimingAge - FullRetirementAge) * 12
		factor = factor.Add(delayedCreditPerMonth.Mul(decimal.NewFromInt(int64(monthsDelayed))))
	}

	return ssc.PIA.Mul(factor).Round(2)
}

// ClampClaimingAge bounds a claiming age to 62..70; zero means full
// retirement age.
func ClampClaimingAge(age int) int {
	switch {
	case age == 0:
		return FullRetirementAge
	case age < EarliestClaimingAge:
		return EarliestClaimingAge
	case age > LatestClaimingAge:
		return LatestClaimingAge
	}
	return age
}

// PrimaryMonthlyBenefit is the household head's benefit at the chosen
// claiming age.
func PrimaryMonthlyBenefit(in domain.CalculatorInputs) decimal.Decimal {
	return NewSocialSecurityCalculator(in.AnnualIncome, in.SocialSecurityBenefit).BenefitAtAge(in.SocialSecurityClaimingAge)
}

// SpouseMonthlyBenefit is the spouse's benefit at the spouse claiming age, zero
// without a spouse.
func SpouseMonthlyBenefit(in domain.CalculatorInputs) decimal.Decimal {
	if !in.HasSpouse() {
		return decimal.Zero
	}
	return NewSocialSecurityCalculator(in.SpouseAnnualIncome, in.SpouseSocialSecurityBenefit).BenefitAtAge(in.SpouseClaimingAge)
}

// GenerateSocialSecurityData builds the 62/67/70 claiming comparison. Monthly
// benefit combines both spouses; lifetime totals run to life expectancy.
func GenerateSocialSecurityData(in domain.CalculatorInputs) []domain.SocialSecurityDataPoint {
	primary := NewSocialSecurityCalculator(in.AnnualIncome, in.SocialSecurityBenefit)
	var spouse *SocialSecurityCalculator
	if in.HasSpouse() {
		spouse = NewSocialSecurityCalculator(in.SpouseAnnualIncome, in.SpouseSocialSecurityBenefit)
	}

	ages := []int{EarliestClaimingAge, FullRetirementAge, LatestClaimingAge}
	points := make([]domain.SocialSecurityDataPoint, 0, len(ages))
	for _, age := range ages {
		p := domain.SocialSecurityDataPoint{
			ClaimingAge:    age,
			PrimaryMonthly: primary.BenefitAtAge(age),
			SpouseMonthly:  decimal.Zero,
		}
		if spouse != nil {
			p.SpouseMonthly = spouse.BenefitAtAge(age)
		}
		p.MonthlyBenefit = p.PrimaryMonthly.Add(p.SpouseMonthly)

		years := in.LifeExpectancy - age
		if years < 0 {
			years = 0
		}
		p.LifetimeTotal = p.MonthlyBenefit.Mul(decimal.NewFromInt(int64(12 * years)))
		points = append(points, p)
	}
	return points
}

// annualBenefitAt returns the yearly benefit at age for a worker who claims at
// claimAge, grown by COLA from the claim year. Before the claim age it is zero.
func annualBenefitAt(monthly decimal.Decimal, age, claimAge int, cola decimal.Decimal) decimal.Decimal {
	claimAge = ClampClaimingAge(claimAge)
	if age < claimAge || monthly.IsZero() {
		return decimal.Zero
	}
	return monthly.Mul(decimal.NewFromInt(12)).Mul(compound(cola, age-claimAge))
}

// compound returns (1+rate)^years for a non-negative number of years.
func compound(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
}
