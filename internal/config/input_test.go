package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser() *InputParser {
	return &InputParser{Now: func() time.Time { return time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC) }}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
	assert.NotNil(t, parser.Now)
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	inputs, err := NewInputParser().LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, inputs)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "invalid.yaml", "invalid: yaml: content: [unclosed")

	inputs, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, inputs)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeFile(t, "household.yaml", `
current_age: 40
retirement_age: 67
annual_income: 120000
cash_savings: 20000
retirement_accounts: 200000
mortgage_balance: 250000
mortgage_interest_rate: 5.25
inflation_rate: 0
`)

	inputs, err := fixedParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2030, inputs.BaseYear)
	assert.Equal(t, 90, inputs.LifeExpectancy)
	assert.Equal(t, domain.RiskModerate, inputs.RiskProfile)
	assert.Equal(t, 30, inputs.MortgageYearsRemaining)
	assert.Equal(t, 67, inputs.SocialSecurityClaimingAge)
	assert.True(t, inputs.IncomeGrowthRate.Equal(decimal.NewFromInt(3)))
	assert.True(t, inputs.InvestmentReturnRate.Equal(decimal.NewFromInt(7)))
	assert.True(t, inputs.RetirementWithdrawalRate.Equal(decimal.NewFromInt(4)))
	assert.True(t, inputs.RealEstateAppreciation.Equal(decimal.NewFromFloat(3.5)))
	assert.True(t, inputs.InflationRate.IsZero(), "explicit zero is kept")
	assert.True(t, inputs.AnnualExpenses.Equal(decimal.NewFromInt(72000)))
	assert.True(t, inputs.DesiredRetirementSpending.Equal(decimal.NewFromInt(96000)))
	assert.True(t, inputs.MortgageInterestRate.Equal(decimal.NewFromFloat(5.25)))
}

func TestInputParser_Parse_JSON(t *testing.T) {
	inputs, err := fixedParser().Parse([]byte(`{"current_age": 30, "retirement_age": 60, "annual_income": 90000, "risk_profile": "aggressive"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.RiskAggressive, inputs.RiskProfile)
	assert.True(t, inputs.AnnualIncome.Equal(decimal.NewFromInt(90000)))
}

func TestInputParser_Parse_ValidationFailure(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"retirement before current", "current_age: 50\nretirement_age: 45\n", "retirement_age"},
		{"negative savings", "current_age: 30\nretirement_age: 60\ncash_savings: -5\n", "cash_savings"},
		{"withdrawal rate out of range", "current_age: 30\nretirement_age: 60\nretirement_withdrawal_rate: 25\n", "retirement_withdrawal_rate"},
		{"claiming age out of range", "current_age: 30\nretirement_age: 60\nsocial_security_claiming_age: 75\n", "social_security_claiming_age"},
		{"spouse without age", "current_age: 30\nretirement_age: 60\nspouse_annual_income: 50000\n", "spouse_age"},
		{"life expectancy too high", "current_age: 30\nretirement_age: 60\nlife_expectancy: 130\n", "life_expectancy"},
		{"explicit zero life expectancy", "current_age: 30\nretirement_age: 60\nlife_expectancy: 0\n", "life_expectancy"},
		{"home purchase in the past", "current_age: 30\nretirement_age: 60\nhome_purchase_year: 2020\nhome_down_payment: 40000\n", "home_purchase_year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedParser().Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "input validation failed")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInputParser_Parse_NotAMapping(t *testing.T) {
	_, err := fixedParser().Parse([]byte("- 1\n- 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a mapping")

	_, err = fixedParser().Parse([]byte(""))
	require.Error(t, err)
}

func TestInputParser_ApplyDefaults_ZeroMeansUnset(t *testing.T) {
	in := domain.CalculatorInputs{
		CurrentAge:         45,
		RetirementAge:      65,
		AnnualIncome:       decimal.NewFromInt(80000),
		SpouseAge:          44,
		SpouseAnnualIncome: decimal.NewFromInt(20000),
	}
	fixedParser().ApplyDefaults(&in)

	assert.True(t, in.InflationRate.Equal(decimal.NewFromFloat(2.5)))
	assert.True(t, in.SpouseIncomeGrowthRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 67, in.SpouseClaimingAge)
	assert.True(t, in.AnnualExpenses.Equal(decimal.NewFromInt(60000)))
	assert.True(t, in.DesiredRetirementSpending.Equal(decimal.NewFromInt(80000)))
	assert.Zero(t, in.MortgageYearsRemaining, "no mortgage, no term")
}

func TestInputParser_SaveInputs_RoundTrip(t *testing.T) {
	parser := fixedParser()
	example := CreateExampleInputs()
	require.NoError(t, parser.ValidateInputs(&example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SaveInputs(&example, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, example.CurrentAge, loaded.CurrentAge)
	assert.Equal(t, example.RiskProfile, loaded.RiskProfile)
	assert.True(t, example.AnnualIncome.Equal(loaded.AnnualIncome))
	assert.True(t, example.CreditCardRate.Equal(loaded.CreditCardRate))
	assert.True(t, example.DesiredRetirementSpending.Equal(loaded.DesiredRetirementSpending))
	assert.Equal(t, example.NumberOfChildren, loaded.NumberOfChildren)
}

func TestInputParser_SaveInputs_BadPath(t *testing.T) {
	example := CreateExampleInputs()
	err := NewInputParser().SaveInputs(&example, filepath.Join(t.TempDir(), "missing", "dir", "x.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func TestInputParser_LoadBatchFile(t *testing.T) {
	path := writeFile(t, "batch.yaml", `
households:
  - name: alice
    inputs:
      current_age: 30
      retirement_age: 62
      annual_income: 95000
  - name: bob
    inputs:
      current_age: 50
      retirement_age: 67
      annual_income: 150000
      risk_profile: conservative
`)

	batch, err := fixedParser().LoadBatchFile(path)
	require.NoError(t, err)
	require.Len(t, batch.Households, 2)
	assert.Equal(t, "alice", batch.Households[0].Name)
	assert.Equal(t, 2030, batch.Households[0].Inputs.BaseYear)
	assert.Equal(t, domain.RiskConservative, batch.Households[1].Inputs.RiskProfile)
	assert.True(t, batch.Households[1].Inputs.DesiredRetirementSpending.Equal(decimal.NewFromInt(120000)))
}

func TestInputParser_LoadBatchFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		contains string
	}{
		{"empty", "households: []\n", "no households provided"},
		{"missing name", "households:\n  - inputs:\n      current_age: 30\n      retirement_age: 60\n", "name is required"},
		{"duplicate", "households:\n  - name: a\n    inputs: {current_age: 30, retirement_age: 60}\n  - name: a\n    inputs: {current_age: 31, retirement_age: 60}\n", "duplicate name"},
		{"invalid household", "households:\n  - name: a\n    inputs: {current_age: 30, retirement_age: 60}\n  - name: b\n    inputs: {current_age: 70, retirement_age: 60}\n", "household 1 (b) validation failed"},
		{"missing inputs", "households:\n  - name: a\n", "expected a mapping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedParser().LoadBatchFile(writeFile(t, "batch.yaml", tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
