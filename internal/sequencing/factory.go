package sequencing

import (
	"github.com/shopspring/decimal"
)

// StrategyNames lists the names CreateStrategy understands.
var StrategyNames = []string{"proportional", "standard", "custom"}

// CreateStrategy resolves a strategy by name. Unknown names and the empty name
// resolve to the proportional strategy.
func CreateStrategy(name string, customSequence []string) SequencingStrategy {
	switch name {
	case "standard":
		return NewStandardStrategy()
	case "custom":
		return NewCustomStrategy(customSequence)
	default:
		return NewProportionalStrategy()
	}
}

// CreateWithdrawalSources builds the three invested pools in standard
// priority order. Empty pools are omitted.
func CreateWithdrawalSources(taxable, traditional, roth decimal.Decimal) []WithdrawalSource {
	sources := []WithdrawalSource{}
	if taxable.GreaterThan(decimal.Zero) {
		sources = append(sources, WithdrawalSource{Name: SourceTaxable, Balance: taxable, Priority: 1})
	}
	if traditional.GreaterThan(decimal.Zero) {
		sources = append(sources, WithdrawalSource{Name: SourceTraditional, Balance: traditional, Priority: 2})
	}
	if roth.GreaterThan(decimal.Zero) {
		sources = append(sources, WithdrawalSource{Name: SourceRoth, Balance: roth, Priority: 3})
	}
	return sources
}
