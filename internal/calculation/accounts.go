package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/sequencing"
	"github.com/shopspring/decimal"
)

// AccountBalances is the liquid and invested side of the balance sheet.
type AccountBalances struct {
	Cash       decimal.Decimal
	Retirement decimal.Decimal
	Roth       decimal.Decimal
	Taxable    decimal.Decimal
}

// Investments excludes cash.
func (b AccountBalances) Investments() decimal.Decimal {
	return b.Retirement.Add(b.Roth).Add(b.Taxable)
}

func (b AccountBalances) floored() AccountBalances {
	return AccountBalances{
		Cash:       money(b.Cash),
		Retirement: money(b.Retirement),
		Roth:       money(b.Roth),
		Taxable:    money(b.Taxable),
	}
}

// Contributions are the yearly deposits made while working.
type Contributions struct {
	Retirement decimal.Decimal
	Roth       decimal.Decimal
	Taxable    decimal.Decimal
}

// Total is the combined deposit.
func (c Contributions) Total() decimal.Decimal {
	return c.Retirement.Add(c.Roth).Add(c.Taxable)
}

// AccumulationYear describes one working year.
type AccumulationYear struct {
	Return        decimal.Decimal // realized return, fraction
	Income        decimal.Decimal
	Expenses      decimal.Decimal
	LifeEventCash decimal.Decimal
	Contributions Contributions
}

// DrawdownYear describes one retired year.
type DrawdownYear struct {
	Return              decimal.Decimal // realized return, fraction
	Spending            decimal.Decimal
	FixedIncome         decimal.Decimal // social security, pension, spouse salary
	LifeEventCash       decimal.Decimal
	YearsIntoRetirement int
}

// DrawdownResult reports what a retired year actually withdrew.
type DrawdownResult struct {
	Need      decimal.Decimal
	Plan      sequencing.WithdrawalPlan
	FromCash  decimal.Decimal
	UnmetNeed decimal.Decimal
	Damping   decimal.Decimal
	Realized  decimal.Decimal
}

// GrowthEngine advances account balances one year at a time.
type GrowthEngine struct {
	Strategy sequencing.SequencingStrategy
}

// NewGrowthEngine uses the proportional withdrawal order. A nil strategy is
// replaced the same way.
func NewGrowthEngine(strategy sequencing.SequencingStrategy) *GrowthEngine {
	if strategy == nil {
		strategy = sequencing.NewProportionalStrategy()
	}
	return &GrowthEngine{Strategy: strategy}
}

// Accumulate grows each account and deposits contributions, then settles the
// year's cash flow into cash. Cash earns nothing and never goes negative.
func (ge *GrowthEngine) Accumulate(b AccountBalances, y AccumulationYear) AccountBalances {
	growth := decimal.NewFromInt(1).Add(y.Return)
	next := AccountBalances{
		Retirement: b.Retirement.Mul(growth).Add(y.Contributions.Retirement),
		Roth:       b.Roth.Mul(growth).Add(y.Contributions.Roth),
		Taxable:    b.Taxable.Mul(growth).Add(y.Contributions.Taxable),
		Cash:       b.Cash.Add(y.Income).Sub(y.Contributions.Total()).Sub(y.Expenses).Sub(y.LifeEventCash),
	}
	return next.floored()
}

// SequenceDamping scales positive returns early in retirement:
// min(1, (yearsIntoRetirement+5)/15).
func SequenceDamping(yearsIntoRetirement int) decimal.Decimal {
	if yearsIntoRetirement < 0 {
		yearsIntoRetirement = 0
	}
	f := decimal.NewFromInt(int64(yearsIntoRetirement + 5)).Div(decimal.NewFromInt(15))
	return decimal.Min(decimal.NewFromInt(1), f)
}

// Drawdown funds the year's spending gap from investments, falls back to cash
// for any shortfall, then grows what remains. Unmet need is reported, not an
// error.
func (ge *GrowthEngine) Drawdown(b AccountBalances, y DrawdownYear) (AccountBalances, DrawdownResult) {
	res := DrawdownResult{
		Need:    decimal.Max(decimal.Zero, y.Spending.Sub(y.FixedIncome)),
		Damping: SequenceDamping(y.YearsIntoRetirement),
	}

	sources := sequencing.CreateWithdrawalSources(b.Taxable, b.Retirement, b.Roth)
	res.Plan = ge.Strategy.Plan(sources, sequencing.StrategyContext{NeedAmount: res.Need})

	next := AccountBalances{
		Cash:       b.Cash.Sub(y.LifeEventCash),
		Retirement: b.Retirement.Sub(res.Plan.TraditionalUsed),
		Roth:       b.Roth.Sub(res.Plan.RothUsed),
		Taxable:    b.Taxable.Sub(res.Plan.TaxableUsed),
	}
	if surplus := y.FixedIncome.Sub(y.Spending); surplus.GreaterThan(decimal.Zero) {
		next.Cash = next.Cash.Add(surplus)
	}

	if shortfall := res.Plan.RemainingNeed; shortfall.GreaterThan(decimal.Zero) {
		res.FromCash = decimal.Min(shortfall, decimal.Max(decimal.Zero, next.Cash))
		next.Cash = next.Cash.Sub(res.FromCash)
		res.UnmetNeed = shortfall.Sub(res.FromCash)
	}

	res.Realized = y.Return
	if y.Return.GreaterThan(decimal.Zero) {
		res.Realized = y.Return.Mul(res.Damping)
	}
	growth := decimal.NewFromInt(1).Add(res.Realized)
	next.Retirement = next.Retirement.Mul(growth)
	next.Roth = next.Roth.Mul(growth)
	next.Taxable = next.Taxable.Mul(growth)

	return next.floored(), res
}

// money rounds to cents and floors at zero.
func money(d decimal.Decimal) decimal.Decimal {
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return d.Round(2)
}
