package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateNetWorthProjection runs the master year-by-year loop. Each point is
// the start-of-year state; the year's life events, account growth, mortgage
// payments, home appreciation and debt paydown are applied after it is
// recorded. A nil ctx draws from a fresh random seed.
func (ce *CalculationEngine) CalculateNetWorthProjection(in domain.CalculatorInputs, ctx *SimulationContext) []domain.NetWorthPoint {
	if ctx == nil {
		ctx = NewSimulationContext(nil, false)
	}
	t := newTimeline(in)
	growth := NewGrowthEngine(ce.Strategy)
	model := ce.debtModel()

	balances := AccountBalances{
		Cash:       in.CashSavings,
		Retirement: in.RetirementAccounts,
		Roth:       in.RothAccounts,
		Taxable:    in.TaxableInvestments,
	}
	home := initialHomeValue(in)
	term := in.MortgageYearsRemaining
	if term <= 0 {
		term = DefaultMortgageTermYears
	}
	mortgage := NewMortgage(in.MortgageBalance, pct(in.MortgageInterestRate), term)
	debts := NewDebtSchedule(in)
	otherDebt := in.OtherDebt()

	baseReturn := t.baseReturn.InexactFloat64()
	appreciation := pct(in.RealEstateAppreciation).InexactFloat64()

	years := projectionYears(in)
	points := make([]domain.NetWorthPoint, 0, years)
	for i := 0; i < years; i++ {
		age := in.CurrentAge + i
		year := t.year(age)
		points = append(points, netWorthPoint(age, year, in.RetirementAge, balances, home, mortgage.Balance, otherDebt))

		impact := ProjectLifeEvents(in, year, mortgage.Balance)
		if impact.HomePurchased {
			home = home.Add(impact.HomeValueDelta)
			mortgage = mortgage.Refinance(impact.NewMortgageBalance)
			ce.log().Debugf("home purchase in %d: value %s, mortgage %s, payment %s/mo",
				year, home.StringFixed(2), mortgage.Balance.StringFixed(2), mortgage.MonthlyPayment.StringFixed(2))
		}

		ret := decimal.NewFromFloat(ctx.InvestmentReturn(baseReturn, in.RiskProfile))
		if !t.retired(age) {
			balances = growth.Accumulate(balances, AccumulationYear{
				Return:        ret,
				Income:        t.primarySalary(age).Add(t.spouseSalary(age)),
				Expenses:      t.expenses(age),
				LifeEventCash: impact.CashImpact,
				Contributions: t.contributions(),
			})
		} else {
			var res DrawdownResult
			balances, res = growth.Drawdown(balances, DrawdownYear{
				Return:              ret,
				Spending:            t.spending(age),
				FixedIncome:         t.fixedIncome(age),
				LifeEventCash:       impact.CashImpact,
				YearsIntoRetirement: age - in.RetirementAge,
			})
			if res.UnmetNeed.GreaterThan(decimal.Zero) && ce.Debug {
				ce.log().Debugf("age %d: %s of spending unfunded", age, res.UnmetNeed.StringFixed(2))
			}
		}

		mortgage = mortgage.Advance()
		home = money(home.Mul(decimal.NewFromFloat(1 + ctx.RealEstateReturn(appreciation))))

		switch model {
		case DebtModelDecay:
			paid := decimal.NewFromFloat(ctx.OtherDebtPayoffFraction())
			otherDebt = money(otherDebt.Mul(decimal.NewFromInt(1).Sub(paid)))
		default:
			debts = debts.Advance()
			otherDebt = debts.Other()
		}

		if ce.Debug {
			ce.log().Debugf("age %d: return %s, cash %s, invested %s, home %s, mortgage %s, other debt %s",
				age, ret.StringFixed(4), balances.Cash.StringFixed(2), balances.Investments().StringFixed(2),
				home.StringFixed(2), mortgage.Balance.StringFixed(2), otherDebt.StringFixed(2))
		}
		ctx.AdvanceYear()
	}
	return points
}

// netWorthPoint snapshots the balance sheet. Home equity is floored at zero
// for display but the total nets the full mortgage against the home value.
func netWorthPoint(age, year, retirementAge int, b AccountBalances, home, mortgage, other decimal.Decimal) domain.NetWorthPoint {
	total := b.Cash.Add(b.Investments()).Add(home).Sub(mortgage).Sub(other)
	return domain.NetWorthPoint{
		Age:                age,
		Year:               year,
		Cash:               b.Cash,
		RetirementAccounts: b.Retirement,
		RothAccounts:       b.Roth,
		TaxableInvestments: b.Taxable,
		RealEstateValue:    home,
		RealEstateEquity:   money(home.Sub(mortgage)),
		MortgageBalance:    mortgage,
		OtherDebt:          other,
		TotalNetWorth:      total.Round(2),
		IsRetirementAge:    age == retirementAge,
	}
}
