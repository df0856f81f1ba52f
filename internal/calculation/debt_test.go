package calculation

import (
	"testing"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoan(t *testing.T) {
	loan := NewLoan(dec(10000), dec(0.06), 10)
	assert.True(t, loan.Payment.Equal(dec(1300)), "got %s", loan.Payment)

	loan = loan.Advance()
	assert.True(t, loan.Balance.Equal(dec(9300)), "got %s", loan.Balance)
	assert.Equal(t, 1, loan.Elapsed)

	for i := 0; i < 9; i++ {
		loan = loan.Advance()
	}
	assert.True(t, loan.Balance.IsZero(), "paid off at term")

	zero := NewLoan(decimal.Zero, dec(0.2), 2)
	assert.True(t, zero.Payment.IsZero())
	assert.True(t, zero.Advance().Balance.IsZero())
}

func TestGenerateDebtPayoffData(t *testing.T) {
	in := domain.CalculatorInputs{
		CurrentAge:         30,
		RetirementAge:      65,
		LifeExpectancy:     90,
		BaseYear:           2025,
		StudentLoanBalance: dec(30000),
		StudentLoanRate:    dec(5),
		AutoLoanBalance:    dec(20000),
		AutoLoanRate:       dec(6),
		CreditCardDebt:     dec(5000),
		CreditCardRate:     dec(20),
	}

	points := GenerateDebtPayoffData(in)
	require.Len(t, points, 61)

	first := points[0]
	assert.Equal(t, 30, first.Age)
	assert.Equal(t, 2025, first.Year)
	assert.True(t, first.TotalDebt.Equal(dec(55000)))

	assert.True(t, points[1].CreditCard.GreaterThan(decimal.Zero))
	assert.True(t, points[2].CreditCard.IsZero(), "credit card clears in two years")
	assert.True(t, points[4].AutoLoan.GreaterThan(decimal.Zero))
	assert.True(t, points[5].AutoLoan.IsZero(), "auto loan clears in five years")
	assert.True(t, points[10].StudentLoan.IsZero(), "student loan clears in ten years")
	assert.True(t, points[10].TotalDebt.IsZero())

	for _, p := range points {
		assert.True(t, p.TotalDebt.GreaterThanOrEqual(decimal.Zero))
		assert.Equal(t, p.Age == 65, p.IsRetirementAge)
	}

	plan := domain.RetirementPlan{DebtPayoff: points}
	assert.Equal(t, 40, plan.DebtFreeAge())
}

func TestGenerateDebtPayoffData_HomePurchase(t *testing.T) {
	in := domain.CalculatorInputs{
		CurrentAge:       30,
		RetirementAge:    65,
		LifeExpectancy:   90,
		BaseYear:         2025,
		HomePurchaseYear: 2027,
		HomeDownPayment:  dec(50000),
	}

	points := GenerateDebtPayoffData(in)
	assert.True(t, points[2].Mortgage.IsZero(), "purchase is recorded after the start-of-year point")
	// 200000 financed at the fallback 6.5%: 213000 - 13166.67
	assert.True(t, points[3].Mortgage.Equal(dec(199833.33)), "got %s", points[3].Mortgage)
	assert.True(t, points[33].Mortgage.IsZero(), "new mortgage runs 30 years")
}
