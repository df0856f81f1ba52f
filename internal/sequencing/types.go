package sequencing

import (
	"github.com/shopspring/decimal"
)

// Source names understood by every strategy.
const (
	SourceTaxable     = "taxable"
	SourceTraditional = "traditional"
	SourceRoth        = "roth"
)

// WithdrawalSource is one pool that can fund spending.
// Priority is used by ordered strategies; lower drains first.
type WithdrawalSource struct {
	Name     string
	Balance  decimal.Decimal
	Priority int
}

// WithdrawalAllocation is the amount taken from one source.
type WithdrawalAllocation struct {
	Source string
	Gross  decimal.Decimal
}

// WithdrawalPlan is a strategy's answer for one year's need.
// RemainingNeed is whatever the sources could not cover.
type WithdrawalPlan struct {
	Requested       decimal.Decimal
	Allocations     []WithdrawalAllocation
	TotalSourced    decimal.Decimal
	RemainingNeed   decimal.Decimal
	TaxableUsed     decimal.Decimal
	TraditionalUsed decimal.Decimal
	RothUsed        decimal.Decimal
	Notes           []string
	StrategyUsed    string
}

func newPlan(name string, need decimal.Decimal) WithdrawalPlan {
	return WithdrawalPlan{Requested: need, StrategyUsed: name, Allocations: []WithdrawalAllocation{}}
}

// take records a withdrawal against the plan. Non-positive amounts are ignored.
func (p *WithdrawalPlan) take(source string, amount decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}
	p.Allocations = append(p.Allocations, WithdrawalAllocation{Source: source, Gross: amount})
	p.TotalSourced = p.TotalSourced.Add(amount)
	switch source {
	case SourceTaxable:
		p.TaxableUsed = p.TaxableUsed.Add(amount)
	case SourceTraditional:
		p.TraditionalUsed = p.TraditionalUsed.Add(amount)
	case SourceRoth:
		p.RothUsed = p.RothUsed.Add(amount)
	}
}

func (p *WithdrawalPlan) finish() WithdrawalPlan {
	p.RemainingNeed = decimal.Max(decimal.Zero, p.Requested.Sub(p.TotalSourced))
	if p.RemainingNeed.GreaterThan(decimal.Zero) {
		p.Notes = append(p.Notes, "insufficient balances to meet request")
	}
	return *p
}

// StrategyContext carries the per-year request.
type StrategyContext struct {
	NeedAmount decimal.Decimal
}

// SequencingStrategy decides which pools fund a withdrawal need.
type SequencingStrategy interface {
	Name() string
	Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan
}

func lookupSources(sources []WithdrawalSource) map[string]WithdrawalSource {
	lookup := make(map[string]WithdrawalSource, len(sources))
	for _, s := range sources {
		lookup[s.Name] = s
	}
	return lookup
}

func totalBalance(sources []WithdrawalSource) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sources {
		if s.Balance.GreaterThan(decimal.Zero) {
			total = total.Add(s.Balance)
		}
	}
	return total
}
