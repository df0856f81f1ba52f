package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultMortgageTermYears is used when no remaining term is supplied and for
// every newly purchased home.
const DefaultMortgageTermYears = 30

// fallbackPurchaseRate finances a home purchase when the household has no
// existing mortgage rate to reuse.
var fallbackPurchaseRate = decimal.NewFromFloat(0.065)

// CalculateMonthlyPayment returns the fixed monthly annuity payment for a loan.
// annualRate is a fraction. Non-positive balance or rate yields zero.
func CalculateMonthlyPayment(balance, annualRate decimal.Decimal, yearsRemaining int) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) || annualRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if yearsRemaining <= 0 {
		yearsRemaining = DefaultMortgageTermYears
	}

	c := annualRate.InexactFloat64() / 12
	n := float64(yearsRemaining * 12)
	growth := math.Pow(1+c, n)
	factor := c * growth / (growth - 1)
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return decimal.Zero
	}
	return balance.Mul(decimal.NewFromFloat(factor)).Round(2)
}

// ProcessAnnualPayment applies one year of payments: interest accrues on the
// opening balance and only the remainder reduces principal.
func ProcessAnnualPayment(balance, annualRate, annualPayment decimal.Decimal) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	interest := balance.Mul(annualRate)
	principal := decimal.Max(decimal.Zero, annualPayment.Sub(interest))
	return money(balance.Sub(principal))
}

// Mortgage tracks a home loan through the projection.
type Mortgage struct {
	Balance        decimal.Decimal
	Rate           decimal.Decimal
	MonthlyPayment decimal.Decimal
}

// NewMortgage prices a mortgage over the given term.
func NewMortgage(balance, rate decimal.Decimal, years int) Mortgage {
	return Mortgage{
		Balance:        balance,
		Rate:           rate,
		MonthlyPayment: CalculateMonthlyPayment(balance, rate, years),
	}
}

// Refinance replaces the balance and re-prices the payment over a fresh
// 30-year term, as happens on a home purchase.
func (m Mortgage) Refinance(balance decimal.Decimal) Mortgage {
	rate := m.Rate
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = fallbackPurchaseRate
	}
	return NewMortgage(balance, rate, DefaultMortgageTermYears)
}

// Advance pays one year of the fixed payment.
func (m Mortgage) Advance() Mortgage {
	m.Balance = ProcessAnnualPayment(m.Balance, m.Rate, m.MonthlyPayment.Mul(decimal.NewFromInt(12)))
	if m.Balance.IsZero() {
		m.MonthlyPayment = decimal.Zero
	}
	return m
}
