package sequencing

import "github.com/shopspring/decimal"

// StandardStrategy drains taxable, then traditional, then roth, each fully
// before moving on.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return "standard" }

func (s *StandardStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	return drainInOrder(s.Name(), []string{SourceTaxable, SourceTraditional, SourceRoth}, sources, ctx)
}

func drainInOrder(name string, order []string, sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	plan := newPlan(name, ctx.NeedAmount)
	remaining := ctx.NeedAmount
	lookup := lookupSources(sources)

	for _, src := range order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		s, ok := lookup[src]
		if !ok || s.Balance.LessThanOrEqual(decimal.Zero) {
			continue
		}
		withdraw := decimal.Min(s.Balance, remaining)
		plan.take(src, withdraw)
		remaining = remaining.Sub(withdraw)
	}
	return plan.finish()
}
