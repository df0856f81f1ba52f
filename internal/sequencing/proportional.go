package sequencing

import "github.com/shopspring/decimal"

// ProportionalStrategy takes from taxable first, limited to TaxableShareCap of
// all invested assets, then splits the rest between traditional and roth by
// their relative balances. No single withdrawal exceeds BalanceCap of its
// pool, so one year never fully depletes an account.
type ProportionalStrategy struct {
	TaxableShareCap decimal.Decimal
	BalanceCap      decimal.Decimal
}

// NewProportionalStrategy uses a 50% taxable share cap and a 90% balance cap.
func NewProportionalStrategy() *ProportionalStrategy {
	return &ProportionalStrategy{
		TaxableShareCap: decimal.NewFromFloat(0.5),
		BalanceCap:      decimal.NewFromFloat(0.9),
	}
}

func (s *ProportionalStrategy) Name() string { return "proportional" }

func (s *ProportionalStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	plan := newPlan(s.Name(), ctx.NeedAmount)
	if ctx.NeedAmount.LessThanOrEqual(decimal.Zero) {
		return plan.finish()
	}

	lookup := lookupSources(sources)
	total := totalBalance(sources)
	taxable := positive(lookup[SourceTaxable].Balance)
	traditional := positive(lookup[SourceTraditional].Balance)
	roth := positive(lookup[SourceRoth].Balance)

	fromTaxable := decimal.Min(ctx.NeedAmount, total.Mul(s.TaxableShareCap), taxable.Mul(s.BalanceCap))
	plan.take(SourceTaxable, fromTaxable)

	rest := ctx.NeedAmount.Sub(fromTaxable)
	deferred := traditional.Add(roth)
	if rest.GreaterThan(decimal.Zero) && deferred.GreaterThan(decimal.Zero) {
		tradShare := rest.Mul(traditional).Div(deferred)
		rothShare := rest.Sub(tradShare)
		plan.take(SourceTraditional, decimal.Min(tradShare, traditional.Mul(s.BalanceCap)))
		plan.take(SourceRoth, decimal.Min(rothShare, roth.Mul(s.BalanceCap)))
	}

	return plan.finish()
}

func positive(d decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, d)
}
