package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	childRearingYears = 18

	// A purchase assumes exactly 20% down: the home is worth five down
	// payments and four of them are financed.
	homeValueToDownPayment = 5
	financedToDownPayment  = 4
)

// LifeEventImpact is the effect of scheduled life events on one calendar year.
// CashImpact is an outflow. The mortgage and home fields are only meaningful
// when HomePurchased is set.
type LifeEventImpact struct {
	CashImpact         decimal.Decimal
	HomeValueDelta     decimal.Decimal
	NewMortgageBalance decimal.Decimal
	NewEquity          decimal.Decimal
	HomePurchased      bool
}

// IsZero reports whether the year carries no event at all.
func (li LifeEventImpact) IsZero() bool {
	return li.CashImpact.IsZero() && !li.HomePurchased
}

// ProjectLifeEvents evaluates the wedding, children and home purchase triggers
// for year. currentMortgage is the balance before any purchase that year.
func ProjectLifeEvents(in domain.CalculatorInputs, year int, currentMortgage decimal.Decimal) LifeEventImpact {
	impact := LifeEventImpact{}

	if in.WeddingYear != 0 && year == in.WeddingYear {
		impact.CashImpact = impact.CashImpact.Add(in.WeddingCost)
	}

	if in.NumberOfChildren > 0 && year > in.BaseYear && year <= in.BaseYear+childRearingYears {
		perYear := in.CostPerChild.Mul(decimal.NewFromInt(int64(in.NumberOfChildren)))
		impact.CashImpact = impact.CashImpact.Add(perYear)
	}

	if in.HomePurchaseYear != 0 && year == in.HomePurchaseYear && in.HomeDownPayment.GreaterThan(decimal.Zero) {
		down := in.HomeDownPayment
		impact.CashImpact = impact.CashImpact.Add(down)
		impact.HomeValueDelta = down.Mul(decimal.NewFromInt(homeValueToDownPayment))
		impact.NewMortgageBalance = currentMortgage.Add(down.Mul(decimal.NewFromInt(financedToDownPayment)))
		impact.NewEquity = impact.HomeValueDelta.Sub(impact.NewMortgageBalance.Sub(currentMortgage))
		impact.HomePurchased = true
	}

	return impact
}

// LifeEventCosts sums cash outflows for calendar years in [fromYear, toYear).
func LifeEventCosts(in domain.CalculatorInputs, fromYear, toYear int) decimal.Decimal {
	total := decimal.Zero
	for y := fromYear; y < toYear; y++ {
		total = total.Add(ProjectLifeEvents(in, y, decimal.Zero).CashImpact)
	}
	return total
}
