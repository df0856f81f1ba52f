package tui

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// Tab selects the table shown under the summary.
type Tab int

const (
	TabNetWorth Tab = iota
	TabIncome
	TabDebt
	TabSocialSecurity
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabNetWorth:
		return "Net Worth"
	case TabIncome:
		return "Income Sources"
	case TabDebt:
		return "Debt Payoff"
	case TabSocialSecurity:
		return "Social Security"
	default:
		return "Unknown"
	}
}

// PlanCalculatedMsg carries a finished calculation. Gen identifies the
// request so results of superseded runs are dropped.
type PlanCalculatedMsg struct {
	Gen  int
	Plan *domain.RetirementPlan
	Err  error
}
