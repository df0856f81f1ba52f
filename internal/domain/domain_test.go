package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskProfile_Valid(t *testing.T) {
	for _, rp := range []RiskProfile{"", RiskConservative, RiskModerate, RiskAggressive} {
		assert.True(t, rp.Valid(), "profile %q should be valid", rp)
	}
	assert.False(t, RiskProfile("yolo").Valid())
}

func TestCalculatorInputs_Aggregates(t *testing.T) {
	in := CalculatorInputs{
		CurrentAge:                35,
		RetirementAge:             65,
		AnnualIncome:              decimal.NewFromInt(100000),
		AnnualBonus:               decimal.NewFromInt(5000),
		SpouseAnnualIncome:        decimal.NewFromInt(60000),
		RetirementAccounts:        decimal.NewFromInt(150000),
		RothAccounts:              decimal.NewFromInt(50000),
		TaxableInvestments:        decimal.NewFromInt(75000),
		Annual401kContribution:    decimal.NewFromInt(19500),
		AnnualRothContribution:    decimal.NewFromInt(6000),
		AnnualTaxableContribution: decimal.NewFromInt(5000),
		StudentLoanBalance:        decimal.NewFromInt(10000),
		AutoLoanBalance:           decimal.NewFromInt(8000),
		CreditCardDebt:            decimal.NewFromInt(2000),
	}

	assert.True(t, in.TotalInvestments().Equal(decimal.NewFromInt(275000)))
	assert.True(t, in.TotalContributions().Equal(decimal.NewFromInt(30500)))
	assert.True(t, in.OtherDebt().Equal(decimal.NewFromInt(20000)))
	assert.True(t, in.HouseholdIncome().Equal(decimal.NewFromInt(165000)))
	assert.Equal(t, 30, in.YearsToRetirement())
	assert.True(t, in.HasSpouse())

	in.RetirementAge = 30
	assert.Equal(t, 0, in.YearsToRetirement())
}

func TestValidationError_WrapsSentinel(t *testing.T) {
	err := NewValidationError("retirement_age", "must be greater than current age (%d)", 40)

	assert.True(t, errors.Is(err, ErrInvalidInput))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "retirement_age", ve.Field)
	assert.Contains(t, err.Error(), "must be greater than current age (40)")
}

func TestRetirementPlan_Helpers(t *testing.T) {
	plan := RetirementPlan{
		NetWorthProjection: []NetWorthPoint{
			{Age: 60, TotalNetWorth: decimal.NewFromInt(100)},
			{Age: 61, TotalNetWorth: decimal.NewFromInt(300)},
			{Age: 62, TotalNetWorth: decimal.NewFromInt(200)},
		},
		DebtPayoff: []DebtPayoffPoint{
			{Age: 60, TotalDebt: decimal.NewFromInt(10)},
			{Age: 61, TotalDebt: decimal.Zero},
		},
	}

	p, ok := plan.NetWorthAt(61)
	require.True(t, ok)
	assert.True(t, p.TotalNetWorth.Equal(decimal.NewFromInt(300)))
	_, ok = plan.NetWorthAt(99)
	assert.False(t, ok)

	peak, age := plan.PeakNetWorth()
	assert.True(t, peak.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 61, age)
	assert.True(t, plan.FinalNetWorth().Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 61, plan.DebtFreeAge())

	assert.True(t, RetirementPlan{}.FinalNetWorth().IsZero())
	assert.Equal(t, 0, RetirementPlan{}.DebtFreeAge())
}
