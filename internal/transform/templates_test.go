package transform

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok, "Expected to find template")
	assert.Equal(t, "test_template", retrieved.Name)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "Expected case-insensitive lookup to work")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"postpone_1yr", "postpone_2yr", "postpone_3yr", "retire_early_2yr",
		"delay_ss_67", "delay_ss_70", "claim_ss_62",
		"save_more", "max_401k", "lower_withdrawal", "spend_less",
		"conservative", "aggressive", "postpone_1yr_delay_ss_70",
	}
	assert.ElementsMatch(t, expected, registry.List())

	for _, name := range expected {
		template, _ := registry.Get(name)
		assert.NotEmpty(t, template.Transforms, "template %s has no transforms", name)
		assert.NotEmpty(t, template.Description)
	}
}

func TestBuiltInTemplates_ApplyToHousehold(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := testInputs()

	tests := []struct {
		name  string
		check func(t *testing.T, in *domain.CalculatorInputs)
	}{
		{"postpone_2yr", func(t *testing.T, in *domain.CalculatorInputs) { assert.Equal(t, 67, in.RetirementAge) }},
		{"retire_early_2yr", func(t *testing.T, in *domain.CalculatorInputs) { assert.Equal(t, 63, in.RetirementAge) }},
		{"delay_ss_70", func(t *testing.T, in *domain.CalculatorInputs) { assert.Equal(t, 70, in.SocialSecurityClaimingAge) }},
		{"save_more", func(t *testing.T, in *domain.CalculatorInputs) {
			assert.True(t, in.Annual401kContribution.Equal(decimal.NewFromInt(24375)))
		}},
		{"max_401k", func(t *testing.T, in *domain.CalculatorInputs) {
			assert.True(t, in.Annual401kContribution.Equal(decimal.NewFromInt(24500)))
		}},
		{"spend_less", func(t *testing.T, in *domain.CalculatorInputs) {
			assert.True(t, in.DesiredRetirementSpending.Equal(decimal.NewFromInt(72000)))
		}},
		{"conservative", func(t *testing.T, in *domain.CalculatorInputs) {
			assert.Equal(t, domain.RiskConservative, in.RiskProfile)
			assert.True(t, in.RetirementWithdrawalRate.Equal(decimal.NewFromInt(3)))
		}},
		{"postpone_1yr_delay_ss_70", func(t *testing.T, in *domain.CalculatorInputs) {
			assert.Equal(t, 66, in.RetirementAge)
			assert.Equal(t, 70, in.SocialSecurityClaimingAge)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, ok := registry.Get(tt.name)
			require.True(t, ok)
			result, err := ApplyTemplate(base, template)
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
	assert.Equal(t, 65, base.RetirementAge, "templates never modify the base")
}

func TestRetireEarly_RejectsAgeBeforeCurrent(t *testing.T) {
	base := testInputs()
	base.RetirementAge = 36
	template, _ := CreateBuiltInTemplates().Get("retire_early_2yr")
	_, err := ApplyTemplate(base, template)
	assert.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"postpone_1yr", "delay_ss_70"}, ParseTemplateList(" postpone_1yr, ,delay_ss_70 "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Retirement Timing:")
	assert.Contains(t, help, "Social Security:")
	assert.Contains(t, help, "Savings & Spending:")
	assert.Contains(t, help, "Portfolio Strategies:")
	assert.Contains(t, help, "wealthpath compare")

	timing := help[strings.Index(help, "Retirement Timing:"):strings.Index(help, "Social Security:")]
	assert.NotContains(t, timing, "postpone_1yr_delay_ss_70")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
