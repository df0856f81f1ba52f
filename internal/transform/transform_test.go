package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInputs() *domain.CalculatorInputs {
	return &domain.CalculatorInputs{
		CurrentAge:                35,
		RetirementAge:             65,
		SpouseAge:                 33,
		SpouseRetirementAge:       63,
		LifeExpectancy:            90,
		AnnualIncome:              decimal.NewFromInt(100000),
		SpouseAnnualIncome:        decimal.NewFromInt(60000),
		Annual401kContribution:    decimal.NewFromInt(19500),
		AnnualRothContribution:    decimal.NewFromInt(6000),
		AnnualTaxableContribution: decimal.NewFromInt(5000),
		InvestmentReturnRate:      decimal.NewFromInt(7),
		RetirementWithdrawalRate:  decimal.NewFromInt(4),
		InflationRate:             decimal.NewFromFloat(2.5),
		RiskProfile:               domain.RiskModerate,
		SocialSecurityClaimingAge: 67,
		SpouseClaimingAge:         67,
		DesiredRetirementSpending: decimal.NewFromInt(80000),
	}
}

func TestApplyTransforms_NilBase(t *testing.T) {
	_, err := ApplyTransforms(nil, []InputTransform{&PostponeRetirement{Participant: Primary, Years: 1}})
	assert.Error(t, err, "Expected error for nil inputs")
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := testInputs()

	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotSame(t, base, result, "Expected a copy, got same instance")
	assert.Equal(t, *base, *result)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(testInputs(), []InputTransform{
		&PostponeRetirement{Participant: Primary, Years: 1},
		nil,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := testInputs()
	result, err := ApplyTransforms(base, []InputTransform{
		&PostponeRetirement{Participant: Primary, Years: 2},
		&DelaySSClaim{Participant: Primary, NewAge: 70},
		&SetWithdrawalRate{Rate: decimal.NewFromFloat(3.5)},
	})
	require.NoError(t, err)

	assert.Equal(t, 67, result.RetirementAge)
	assert.Equal(t, 70, result.SocialSecurityClaimingAge)
	assert.True(t, result.RetirementWithdrawalRate.Equal(decimal.NewFromFloat(3.5)))

	assert.Equal(t, 65, base.RetirementAge, "base must not be modified")
	assert.Equal(t, 67, base.SocialSecurityClaimingAge)
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(testInputs(), []InputTransform{
		&PostponeRetirement{Participant: Primary, Years: 30},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postpone_retirement validation failed")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var terr *TransformError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "validate", terr.Operation)
}

func TestPostponeRetirement(t *testing.T) {
	tests := []struct {
		name      string
		transform *PostponeRetirement
		wantErr   bool
		primary   int
		spouse    int
	}{
		{"primary one year", &PostponeRetirement{Participant: Primary, Years: 1}, false, 66, 63},
		{"spouse three years", &PostponeRetirement{Participant: Spouse, Years: 3}, false, 65, 66},
		{"zero years", &PostponeRetirement{Participant: Primary, Years: 0}, false, 65, 63},
		{"negative years", &PostponeRetirement{Participant: Primary, Years: -1}, true, 0, 0},
		{"unknown participant", &PostponeRetirement{Participant: "carol", Years: 1}, true, 0, 0},
		{"past life expectancy", &PostponeRetirement{Participant: Primary, Years: 26}, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := testInputs()
			err := tt.transform.Validate(base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			result, err := tt.transform.Apply(base)
			require.NoError(t, err)
			assert.Equal(t, tt.primary, result.RetirementAge)
			assert.Equal(t, tt.spouse, result.SpouseRetirementAge)
		})
	}
}

func TestPostponeRetirement_SpouseWithoutRetirementAge(t *testing.T) {
	base := testInputs()
	base.SpouseRetirementAge = 0
	err := (&PostponeRetirement{Participant: Spouse, Years: 1}).Validate(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spouse has no retirement age")
}

func TestSetRetirementAge(t *testing.T) {
	base := testInputs()
	tr := &SetRetirementAge{Participant: Primary, Age: 60}
	require.NoError(t, tr.Validate(base))
	result, _ := tr.Apply(base)
	assert.Equal(t, 60, result.RetirementAge)

	assert.Error(t, (&SetRetirementAge{Participant: Primary, Age: 30}).Validate(base), "before current age")

	single := testInputs()
	single.SpouseAge = 0
	single.SpouseAnnualIncome = decimal.Zero
	assert.Error(t, (&SetRetirementAge{Participant: Spouse, Age: 60}).Validate(single), "no spouse")
}

func TestDelaySSClaim(t *testing.T) {
	base := testInputs()

	tr := &DelaySSClaim{Participant: Spouse, NewAge: 70}
	require.NoError(t, tr.Validate(base))
	result, _ := tr.Apply(base)
	assert.Equal(t, 70, result.SpouseClaimingAge)
	assert.Equal(t, 67, result.SocialSecurityClaimingAge)

	assert.Error(t, (&DelaySSClaim{Participant: Primary, NewAge: 61}).Validate(base))
	assert.Error(t, (&DelaySSClaim{Participant: Primary, NewAge: 71}).Validate(base))
	assert.Equal(t, "Claim primary earner's Social Security at age 70", (&DelaySSClaim{Participant: Primary, NewAge: 70}).Description())
}

func TestAdjustContribution(t *testing.T) {
	base := testInputs()

	tr := &AdjustContribution{Account: Account401k, Delta: decimal.NewFromInt(1500)}
	require.NoError(t, tr.Validate(base))
	result, _ := tr.Apply(base)
	assert.True(t, result.Annual401kContribution.Equal(decimal.NewFromInt(21000)))
	assert.Equal(t, "Increase annual 401k contribution by $1500", tr.Description())

	lower := &AdjustContribution{Account: AccountRoth, Delta: decimal.NewFromInt(-10000)}
	result, _ = lower.Apply(base)
	assert.True(t, result.AnnualRothContribution.IsZero(), "contribution floors at zero")
	assert.True(t, strings.HasPrefix(lower.Description(), "Decrease"))

	assert.Error(t, (&AdjustContribution{Account: "hsa", Delta: decimal.NewFromInt(1)}).Validate(base))
}

func TestScaleContributions(t *testing.T) {
	base := testInputs()
	tr := &ScaleContributions{Factor: decimal.NewFromFloat(1.5)}
	require.NoError(t, tr.Validate(base))

	result, _ := tr.Apply(base)
	assert.True(t, result.Annual401kContribution.Equal(decimal.NewFromInt(29250)))
	assert.True(t, result.AnnualRothContribution.Equal(decimal.NewFromInt(9000)))
	assert.True(t, result.AnnualTaxableContribution.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, "Save 50% more each year", tr.Description())

	assert.Error(t, (&ScaleContributions{Factor: decimal.NewFromInt(-1)}).Validate(base))
}

func TestAssumptionTransforms(t *testing.T) {
	base := testInputs()

	result, err := ApplyTransforms(base, []InputTransform{
		&SetReturnRate{Rate: decimal.NewFromInt(5)},
		&SetInflationRate{Rate: decimal.NewFromInt(3)},
		&SetRiskProfile{Profile: domain.RiskAggressive},
		&SetRetirementSpending{Amount: decimal.NewFromInt(70000)},
	})
	require.NoError(t, err)
	assert.True(t, result.InvestmentReturnRate.Equal(decimal.NewFromInt(5)))
	assert.True(t, result.InflationRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, domain.RiskAggressive, result.RiskProfile)
	assert.True(t, result.DesiredRetirementSpending.Equal(decimal.NewFromInt(70000)))

	assert.Error(t, (&SetWithdrawalRate{Rate: decimal.NewFromInt(25)}).Validate(base))
	assert.Error(t, (&SetReturnRate{Rate: decimal.NewFromInt(60)}).Validate(base))
	assert.Error(t, (&SetInflationRate{Rate: decimal.NewFromInt(-11)}).Validate(base))
	assert.Error(t, (&SetRiskProfile{Profile: "yolo"}).Validate(base))
	assert.Error(t, (&SetRiskProfile{}).Validate(base))
	assert.Error(t, (&SetRetirementSpending{Amount: decimal.NewFromInt(-1)}).Validate(base))
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("set_inflation", "validate", "out of range", nil)
	assert.Equal(t, "transform set_inflation (validate): out of range", err.Error())

	wrapped := NewTransformError("set_inflation", "apply", "failed", domain.ErrInvalidInput)
	assert.Equal(t, "transform set_inflation (apply): failed: invalid input", wrapped.Error())
	assert.ErrorIs(t, wrapped, domain.ErrInvalidInput)
}

func TestDescribe(t *testing.T) {
	lines := Describe([]InputTransform{
		&PostponeRetirement{Participant: Primary, Years: 1},
		nil,
		&SetWithdrawalRate{Rate: decimal.NewFromFloat(3.5)},
	})
	assert.Equal(t, []string{"Postpone primary earner's retirement by 1 year", "Withdraw 3.5% per year in retirement"}, lines)
}
