package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// RMDStartAge is the first age with a required distribution.
const RMDStartAge = 72

// IRS Uniform Lifetime Table divisors.
var uniformLifetimeTable = map[int]decimal.Decimal{
	72: decimal.NewFromFloat(27.4), 73: decimal.NewFromFloat(26.5), 74: decimal.NewFromFloat(25.5),
	75: decimal.NewFromFloat(24.6), 76: decimal.NewFromFloat(23.7), 77: decimal.NewFromFloat(22.9),
	78: decimal.NewFromFloat(22.0), 79: decimal.NewFromFloat(21.1), 80: decimal.NewFromFloat(20.2),
	81: decimal.NewFromFloat(19.4), 82: decimal.NewFromFloat(18.5), 83: decimal.NewFromFloat(17.7),
	84: decimal.NewFromFloat(16.8), 85: decimal.NewFromFloat(16.0), 86: decimal.NewFromFloat(15.2),
	87: decimal.NewFromFloat(14.4), 88: decimal.NewFromFloat(13.7), 89: decimal.NewFromFloat(12.9),
	90: decimal.NewFromFloat(12.2), 91: decimal.NewFromFloat(11.5), 92: decimal.NewFromFloat(10.8),
	93: decimal.NewFromFloat(10.1), 94: decimal.NewFromFloat(9.5), 95: decimal.NewFromFloat(8.9),
	96: decimal.NewFromFloat(8.4), 97: decimal.NewFromFloat(7.8), 98: decimal.NewFromFloat(7.3),
	99: decimal.NewFromFloat(6.8), 100: decimal.NewFromFloat(6.4), 101: decimal.NewFromFloat(6.0),
	102: decimal.NewFromFloat(5.6), 103: decimal.NewFromFloat(5.2), 104: decimal.NewFromFloat(4.9),
	105: decimal.NewFromFloat(4.6), 106: decimal.NewFromFloat(4.3), 107: decimal.NewFromFloat(4.1),
	108: decimal.NewFromFloat(3.9), 109: decimal.NewFromFloat(3.7), 110: decimal.NewFromFloat(3.5),
	111: decimal.NewFromFloat(3.4), 112: decimal.NewFromFloat(3.3), 113: decimal.NewFromFloat(3.1),
	114: decimal.NewFromFloat(3.0), 115: decimal.NewFromFloat(2.9), 116: decimal.NewFromFloat(2.8),
	117: decimal.NewFromFloat(2.7), 118: decimal.NewFromFloat(2.5), 119: decimal.NewFromFloat(2.3),
	120: decimal.NewFromFloat(2.0),
}

var minDistributionPeriod = decimal.NewFromFloat(2.0)

// RMDPercentage is the share of the tax-deferred balance that must come out
// at age. It rises every year from 72.
func RMDPercentage(age int) decimal.Decimal {
	if age < RMDStartAge {
		return decimal.Zero
	}
	period, ok := uniformLifetimeTable[age]
	if !ok {
		period = minDistributionPeriod
	}
	return decimal.NewFromInt(1).Div(period)
}

// CalculateRMD returns the required distribution for a balance at age.
func CalculateRMD(taxDeferred decimal.Decimal, age int) decimal.Decimal {
	if taxDeferred.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return taxDeferred.Mul(RMDPercentage(age)).Round(2)
}

var (
	retirementWithdrawalShare = decimal.NewFromFloat(0.6)
	taxableWithdrawalShare    = decimal.NewFromFloat(0.4)
)

// GenerateIncomeSourcesData breaks each age's income into salaries, benefits,
// pension, RMD and portfolio withdrawals. Balances grow at the base return
// with no randomness. After the RMD, the remaining need is split 60/40
// between retirement accounts and taxable investments.
func GenerateIncomeSourcesData(in domain.CalculatorInputs) []domain.IncomeSourcesPoint {
	t := newTimeline(in)
	years := projectionYears(in)
	points := make([]domain.IncomeSourcesPoint, 0, years)

	deferred := in.RetirementAccounts
	roth := in.RothAccounts
	taxable := in.TaxableInvestments
	growth := decimal.NewFromInt(1).Add(t.baseReturn)

	for i := 0; i < years; i++ {
		age := in.CurrentAge + i
		p := domain.IncomeSourcesPoint{
			Age:                  age,
			Year:                 t.year(age),
			PrimaryIncome:        t.primarySalary(age),
			SpouseIncome:         t.spouseSalary(age),
			SocialSecurity:       t.socialSecurity(age),
			SpouseSocialSecurity: t.spouseSocialSecurity(age),
			Pension:              t.pension(age),
			IsRetirementAge:      age == in.RetirementAge,
		}

		if t.retired(age) {
			p.RMD = CalculateRMD(deferred, age)
			deferred = deferred.Sub(p.RMD)

			need := t.spending(age).Sub(t.fixedIncome(age)).Sub(p.RMD)
			if need.GreaterThan(decimal.Zero) {
				retirementPool := deferred.Add(roth)
				p.RetirementWithdrawals = decimal.Min(need.Mul(retirementWithdrawalShare), retirementPool).Round(2)
				p.TaxableWithdrawals = decimal.Min(need.Mul(taxableWithdrawalShare), taxable).Round(2)

				fromDeferred := decimal.Min(p.RetirementWithdrawals, deferred)
				deferred = deferred.Sub(fromDeferred)
				roth = roth.Sub(p.RetirementWithdrawals.Sub(fromDeferred))
				taxable = taxable.Sub(p.TaxableWithdrawals)
			}
			deferred = money(deferred.Mul(growth))
			roth = money(roth.Mul(growth))
			taxable = money(taxable.Mul(growth))
		} else {
			c := t.contributions()
			deferred = money(deferred.Mul(growth).Add(c.Retirement))
			roth = money(roth.Mul(growth).Add(c.Roth))
			taxable = money(taxable.Mul(growth).Add(c.Taxable))
		}

		p.TotalIncome = p.PrimaryIncome.Add(p.SpouseIncome).Add(p.SocialSecurity).Add(p.SpouseSocialSecurity).
			Add(p.Pension).Add(p.RMD).Add(p.RetirementWithdrawals).Add(p.TaxableWithdrawals)
		points = append(points, p)
	}
	return points
}
