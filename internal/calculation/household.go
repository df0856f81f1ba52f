package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

const minProjectionYears = 50

var (
	hundred         = decimal.NewFromInt(100)
	salaryCap       = decimal.NewFromInt(400000)
	inferredHomeLTV = decimal.NewFromFloat(0.80)
)

// pct converts a boundary percentage (7.0) to a fraction (0.07).
func pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// projectionYears is the number of simulated ages: through life expectancy,
// but never fewer than 50.
func projectionYears(in domain.CalculatorInputs) int {
	n := in.LifeExpectancy - in.CurrentAge + 1
	if n < minProjectionYears {
		n = minProjectionYears
	}
	return n
}

// timeline answers the per-age questions every projector asks of the inputs.
type timeline struct {
	in         domain.CalculatorInputs
	inflation  decimal.Decimal
	baseReturn decimal.Decimal
	primarySS  decimal.Decimal
	spouseSS   decimal.Decimal
}

func newTimeline(in domain.CalculatorInputs) timeline {
	return timeline{
		in:         in,
		inflation:  pct(in.InflationRate),
		baseReturn: pct(in.InvestmentReturnRate),
		primarySS:  PrimaryMonthlyBenefit(in),
		spouseSS:   SpouseMonthlyBenefit(in),
	}
}

func (t timeline) offset(age int) int { return age - t.in.CurrentAge }

func (t timeline) year(age int) int { return t.in.BaseYear + t.offset(age) }

func (t timeline) retired(age int) bool { return age >= t.in.RetirementAge }

// inflated grows a today's-dollars amount to the given age.
func (t timeline) inflated(amount decimal.Decimal, age int) decimal.Decimal {
	return amount.Mul(compound(t.inflation, t.offset(age)))
}

func (t timeline) primarySalary(age int) decimal.Decimal {
	if t.retired(age) {
		return decimal.Zero
	}
	grown := t.in.AnnualIncome.Mul(compound(pct(t.in.IncomeGrowthRate), t.offset(age))).Add(t.in.AnnualBonus)
	return decimal.Min(grown, salaryCap).Round(2)
}

func (t timeline) spouseAge(age int) int {
	return t.in.SpouseAge + t.offset(age)
}

func (t timeline) spouseSalary(age int) decimal.Decimal {
	if !t.in.HasSpouse() || t.in.SpouseAnnualIncome.IsZero() {
		return decimal.Zero
	}
	retireAt := t.in.SpouseRetirementAge
	if retireAt == 0 {
		retireAt = t.in.SpouseAge + t.in.YearsToRetirement()
	}
	if t.spouseAge(age) >= retireAt {
		return decimal.Zero
	}
	grown := t.in.SpouseAnnualIncome.Mul(compound(pct(t.in.SpouseIncomeGrowthRate), t.offset(age))).Add(t.in.SpouseAnnualBonus)
	return decimal.Min(grown, salaryCap).Round(2)
}

func (t timeline) socialSecurity(age int) decimal.Decimal {
	return annualBenefitAt(t.primarySS, age, t.in.SocialSecurityClaimingAge, t.inflation).Round(2)
}

func (t timeline) spouseSocialSecurity(age int) decimal.Decimal {
	if t.spouseSS.IsZero() {
		return decimal.Zero
	}
	return annualBenefitAt(t.spouseSS, t.spouseAge(age), t.in.SpouseClaimingAge, t.inflation).Round(2)
}

func (t timeline) pension(age int) decimal.Decimal {
	if !t.retired(age) {
		return decimal.Zero
	}
	return t.in.AnnualPension
}

// fixedIncome is what arrives in a retired year without touching investments.
func (t timeline) fixedIncome(age int) decimal.Decimal {
	return t.socialSecurity(age).Add(t.spouseSocialSecurity(age)).Add(t.pension(age)).Add(t.spouseSalary(age))
}

func (t timeline) spending(age int) decimal.Decimal {
	return t.inflated(t.in.DesiredRetirementSpending, age).Round(2)
}

func (t timeline) expenses(age int) decimal.Decimal {
	return t.inflated(t.in.AnnualExpenses, age).Round(2)
}

func (t timeline) contributions() Contributions {
	return Contributions{
		Retirement: t.in.Annual401kContribution,
		Roth:       t.in.AnnualRothContribution,
		Taxable:    t.in.AnnualTaxableContribution,
	}
}

// initialHomeValue is the stated home value, or the value implied by a
// mortgage at 80% loan-to-value when none is given.
func initialHomeValue(in domain.CalculatorInputs) decimal.Decimal {
	if in.HomeValue.GreaterThan(decimal.Zero) {
		return in.HomeValue
	}
	if in.MortgageBalance.GreaterThan(decimal.Zero) {
		return in.MortgageBalance.Div(inferredHomeLTV).Round(2)
	}
	return decimal.Zero
}

// FutureValue compounds a balance with end-of-year contributions:
// pv*(1+r)^n + c*((1+r)^n - 1)/r, and pv + c*n when r is zero.
func FutureValue(pv, contribution, rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return pv
	}
	if rate.IsZero() {
		return pv.Add(contribution.Mul(decimal.NewFromInt(int64(years))))
	}
	growth := compound(rate, years)
	annuity := growth.Sub(decimal.NewFromInt(1)).Div(rate)
	return pv.Mul(growth).Add(contribution.Mul(annuity))
}
