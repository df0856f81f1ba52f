package calculation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/sequencing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, "proportional", engine.Strategy.Name())
	assert.Equal(t, DebtModelSchedule, engine.DebtModel)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *domain.CalculatorInputs)
		field  string
	}{
		{"retirement before current age", func(in *domain.CalculatorInputs) { in.RetirementAge = 30 }, "retirement_age"},
		{"retirement equal to current age", func(in *domain.CalculatorInputs) { in.RetirementAge = 35 }, "retirement_age"},
		{"life expectancy before retirement", func(in *domain.CalculatorInputs) { in.LifeExpectancy = 60 }, "life_expectancy"},
		{"negative cash", func(in *domain.CalculatorInputs) { in.CashSavings = dec(-1) }, "cash_savings"},
		{"negative contribution", func(in *domain.CalculatorInputs) { in.Annual401kContribution = dec(-100) }, "annual_401k_contribution"},
		{"unknown risk profile", func(in *domain.CalculatorInputs) { in.RiskProfile = "yolo" }, "risk_profile"},
		{"zero age", func(in *domain.CalculatorInputs) { in.CurrentAge = 0 }, "current_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInputs()
			tt.mutate(&in)

			err := ValidateInputs(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, ValidateInputs(sampleInputs()))
}

func TestCalculateRetirementPlan_InvalidInput(t *testing.T) {
	in := sampleInputs()
	in.LifeExpectancy = 50

	plan, err := NewCalculationEngine().CalculateRetirementPlan(in, Options{Seed: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, plan.NetWorthProjection)
}

func TestCalculateRetirementPlan_EndToEnd(t *testing.T) {
	in := sampleInputs()
	plan, err := NewCalculationEngine().CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)

	assert.True(t, plan.TotalRetirementSavings.GreaterThan(dec(2000000)), "got %s", plan.TotalRetirementSavings)
	assert.True(t, plan.TotalRetirementSavings.LessThan(dec(10000000)), "got %s", plan.TotalRetirementSavings)
	assert.GreaterOrEqual(t, plan.PortfolioLongevity, in.RetirementAge)
	assert.GreaterOrEqual(t, plan.PortfolioLongevity, in.LifeExpectancy)
	assert.Equal(t, 100, plan.SustainabilityScore)
	assert.Equal(t, 95, plan.SuccessProbability)
	assert.True(t, plan.MonthlySocialSecurity.Equal(dec(3135)))

	for _, rec := range plan.Recommendations {
		assert.NotContains(t, rec, "withdrawal rate")
		assert.NotContains(t, rec, "401(k)")
	}
	require.Len(t, plan.Recommendations, 1)
	assert.Contains(t, plan.Recommendations[0], "on track")

	assert.Len(t, plan.NetWorthProjection, 56)
	assert.Len(t, plan.IncomeSources, 56)
	assert.Len(t, plan.WithdrawalStrategies, 56)
	assert.Len(t, plan.RiskProfiles, 56)
	assert.Len(t, plan.DebtPayoff, 56)
	assert.Len(t, plan.SocialSecurity, 3)

	retirementPoints := 0
	for _, p := range plan.NetWorthProjection {
		if p.IsRetirementAge {
			retirementPoints++
			assert.Equal(t, 65, p.Age)
		}
	}
	assert.Equal(t, 1, retirementPoints)

	first := plan.NetWorthProjection[0]
	assert.True(t, first.Cash.Equal(in.CashSavings))
	assert.True(t, first.RealEstateValue.Equal(dec(375000)), "inferred from the mortgage at 80 percent LTV")
	assert.True(t, first.TotalNetWorth.Equal(dec(25000+275000+375000-300000)), "got %s", first.TotalNetWorth)
}

func TestCalculateRetirementPlan_ShortProjectionRunsFiftyYears(t *testing.T) {
	in := sampleInputs()
	in.CurrentAge = 60
	in.RetirementAge = 65
	in.LifeExpectancy = 85

	plan, err := NewCalculationEngine().CalculateRetirementPlan(in, Options{Deterministic: true, Seed: 3})
	require.NoError(t, err)
	assert.Len(t, plan.NetWorthProjection, 50)
	assert.Equal(t, 109, plan.NetWorthProjection[49].Age)
}

func TestCalculateRetirementPlan_FixedSeedIsIdempotent(t *testing.T) {
	engine := NewCalculationEngine()
	in := sampleInputs()
	in.RiskProfile = domain.RiskAggressive

	a, err := engine.CalculateRetirementPlan(in, Options{Seed: 12345})
	require.NoError(t, err)
	b, err := engine.CalculateRetirementPlan(in, Options{Seed: 12345})
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
	assert.Equal(t, int64(12345), a.Seed)

	c, err := engine.CalculateRetirementPlan(in, Options{Seed: 54321})
	require.NoError(t, err)
	assert.NotEqual(t, a.FinalNetWorth().String(), c.FinalNetWorth().String(), "different seeds walk different paths")
}

func TestCalculateRetirementPlan_RecordsGeneratedSeed(t *testing.T) {
	SetSeedFunc(func() int64 { return 777 })
	defer SetSeedFunc(func() int64 { return time.Now().UnixNano() })

	plan, err := NewCalculationEngine().CalculateRetirementPlan(sampleInputs(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(777), plan.Seed)

	replay, err := NewCalculationEngine().CalculateRetirementPlan(sampleInputs(), Options{Seed: plan.Seed})
	require.NoError(t, err)
	assert.True(t, plan.FinalNetWorth().Equal(replay.FinalNetWorth()))
}

func TestCalculateRetirementPlan_DefaultBaseYear(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) })
	defer SetNowFunc(time.Now)

	in := sampleInputs()
	in.BaseYear = 0
	plan, err := NewCalculationEngine().CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)
	assert.Equal(t, 2031, plan.Inputs.BaseYear)
	assert.Equal(t, 2031, plan.NetWorthProjection[0].Year)
}

func TestCalculateRetirementPlan_ContributionMonotonicity(t *testing.T) {
	engine := NewCalculationEngine()
	previous := decimal.Zero
	for _, c := range []float64{0, 1000, 5000, 19500, 23000, 40000} {
		in := sampleInputs()
		in.Annual401kContribution = dec(c)

		plan, err := engine.CalculateRetirementPlan(in, Options{Seed: 9, Deterministic: true})
		require.NoError(t, err)
		assert.True(t, plan.TotalRetirementSavings.GreaterThanOrEqual(previous),
			"contribution %v lowered savings to %s", c, plan.TotalRetirementSavings)
		previous = plan.TotalRetirementSavings
	}
}

func TestCalculateRetirementPlan_BalancesNeverNegative(t *testing.T) {
	engine := NewCalculationEngine()
	in := sampleInputs()
	in.RiskProfile = domain.RiskAggressive
	in.DesiredRetirementSpending = dec(250000)
	in.AnnualExpenses = dec(120000)
	in.CreditCardDebt = dec(15000)
	in.CreditCardRate = dec(22)
	in.HomePurchaseYear = 2030
	in.HomeDownPayment = dec(80000)
	in.NumberOfChildren = 2
	in.CostPerChild = dec(15000)

	nonNegative := func(label string, age int, values ...decimal.Decimal) {
		for _, v := range values {
			assert.True(t, v.GreaterThanOrEqual(decimal.Zero), "%s at age %d: %s", label, age, v)
		}
	}

	for _, model := range []DebtModel{DebtModelSchedule, DebtModelDecay} {
		for seed := int64(1); seed <= 10; seed++ {
			plan, err := engine.CalculateRetirementPlan(in, Options{Seed: seed, DebtModel: model})
			require.NoError(t, err)

			for _, p := range plan.NetWorthProjection {
				nonNegative("net worth", p.Age, p.Cash, p.RetirementAccounts, p.RothAccounts, p.TaxableInvestments,
					p.RealEstateValue, p.RealEstateEquity, p.MortgageBalance, p.OtherDebt)
			}
			for _, p := range plan.IncomeSources {
				nonNegative("income", p.Age, p.RMD, p.RetirementWithdrawals, p.TaxableWithdrawals, p.TotalIncome)
			}
			for _, p := range plan.WithdrawalStrategies {
				nonNegative("withdrawal", p.Age, p.Conservative, p.Moderate, p.Aggressive)
			}
			for _, p := range plan.RiskProfiles {
				nonNegative("risk", p.Age, p.Conservative, p.Moderate, p.Aggressive)
			}
			for _, p := range plan.DebtPayoff {
				nonNegative("debt", p.Age, p.Mortgage, p.StudentLoan, p.AutoLoan, p.CreditCard, p.TotalDebt)
			}
		}
	}
}

func TestCalculateRetirementPlan_Depletion(t *testing.T) {
	in := sampleInputs()
	in.RetirementWithdrawalRate = dec(8)
	in.InvestmentReturnRate = dec(5)
	in.InflationRate = dec(3)
	in.LifeExpectancy = 100

	plan, err := NewCalculationEngine().CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)

	assert.Less(t, plan.PortfolioLongevity, in.LifeExpectancy)
	assert.Greater(t, plan.PortfolioLongevity, in.RetirementAge)

	joined := strings.Join(plan.Recommendations, "\n")
	assert.Contains(t, joined, "withdrawal rate")
	assert.Contains(t, joined, "projected to last until age")
}

func TestCalculateRetirementPlan_DebtModels(t *testing.T) {
	in := sampleInputs()
	in.StudentLoanBalance = dec(10000)
	in.StudentLoanRate = dec(5)

	engine := NewCalculationEngine()
	decay, err := engine.CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true, DebtModel: DebtModelDecay})
	require.NoError(t, err)
	assert.True(t, decay.NetWorthProjection[1].OtherDebt.Equal(dec(8000)), "deterministic decay pays 20 percent")
	assert.Equal(t, DebtModelSchedule, engine.DebtModel, "per-run override leaves the engine untouched")

	schedule, err := engine.CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)
	// 10000 * 1.05 - 1250
	assert.True(t, schedule.NetWorthProjection[1].OtherDebt.Equal(dec(9250)), "got %s", schedule.NetWorthProjection[1].OtherDebt)
	assert.True(t, schedule.NetWorthProjection[10].OtherDebt.IsZero())
	assert.True(t, schedule.NetWorthProjection[10].OtherDebt.Equal(schedule.DebtPayoff[10].StudentLoan))
}

func retiredHousehold() domain.CalculatorInputs {
	in := sampleInputs()
	in.CurrentAge = 65
	in.RetirementAge = 65
	in.CashSavings = decimal.Zero
	in.MortgageBalance = decimal.Zero
	in.TaxableInvestments = dec(100000)
	in.RetirementAccounts = dec(500000)
	in.RothAccounts = dec(100000)
	in.DesiredRetirementSpending = dec(40000)
	in.SocialSecurityClaimingAge = 70
	return in
}

func TestCalculateNetWorthProjection_WithdrawalStrategies(t *testing.T) {
	in := retiredHousehold()
	project := func(strategy sequencing.SequencingStrategy) domain.NetWorthPoint {
		engine := NewCalculationEngine()
		engine.Strategy = strategy
		points := engine.CalculateNetWorthProjection(in, NewSimulationContext(NewRandomSource(1), true))
		return points[1]
	}

	proportional := project(sequencing.CreateStrategy("proportional", nil))
	standard := project(sequencing.CreateStrategy("standard", nil))
	rothFirst := project(sequencing.CreateStrategy("custom", []string{"roth", "taxable", "traditional"}))

	// Standard covers the whole year from taxable, so the other pools only grow.
	growth := standard.RothAccounts.Div(in.RothAccounts).InexactFloat64()
	assert.InDelta(t, growth, standard.RetirementAccounts.Div(in.RetirementAccounts).InexactFloat64(), 1e-6)
	assert.True(t, standard.TaxableInvestments.LessThan(proportional.TaxableInvestments))
	assert.True(t, standard.RetirementAccounts.GreaterThan(proportional.RetirementAccounts))
	assert.True(t, standard.RothAccounts.GreaterThan(proportional.RothAccounts))

	assert.True(t, rothFirst.RothAccounts.LessThan(standard.RothAccounts))
	assert.True(t, rothFirst.TaxableInvestments.GreaterThan(standard.TaxableInvestments))
	assert.True(t, rothFirst.TotalNetWorth.Sub(standard.TotalNetWorth).Abs().LessThan(dec(1)), "order moves money between pools only")
}

func TestCalculateRetirementPlan_StrategyOverride(t *testing.T) {
	in := retiredHousehold()
	in.CurrentAge = 64
	engine := NewCalculationEngine()

	plan, err := engine.CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true, Strategy: sequencing.NewStandardStrategy()})
	require.NoError(t, err)
	assert.Equal(t, "proportional", engine.Strategy.Name(), "per-run override leaves the engine untouched")

	base, err := engine.CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)
	// Index 2 is the first year after a drawdown.
	assert.True(t, plan.NetWorthProjection[1].RetirementAccounts.Equal(base.NetWorthProjection[1].RetirementAccounts))
	assert.True(t, plan.NetWorthProjection[2].RetirementAccounts.GreaterThan(base.NetWorthProjection[2].RetirementAccounts))
	assert.True(t, plan.NetWorthProjection[2].TaxableInvestments.LessThan(base.NetWorthProjection[2].TaxableInvestments))
}

func TestCalculateRetirementPlan_HomePurchase(t *testing.T) {
	in := sampleInputs()
	in.MortgageBalance = decimal.Zero
	in.MortgageInterestRate = decimal.Zero
	in.HomePurchaseYear = 2028
	in.HomeDownPayment = dec(60000)
	in.CashSavings = dec(100000)

	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	plan, err := engine.CalculateRetirementPlan(in, Options{Seed: 1, Deterministic: true})
	require.NoError(t, err)

	before := plan.NetWorthProjection[3]
	after := plan.NetWorthProjection[4]
	assert.True(t, before.RealEstateValue.IsZero())
	assert.True(t, after.RealEstateValue.GreaterThanOrEqual(dec(300000)))
	assert.True(t, after.MortgageBalance.GreaterThan(dec(230000)))
	assert.True(t, after.MortgageBalance.LessThan(dec(240000)))

	found := false
	for _, line := range logger.Lines() {
		if strings.Contains(line, "home purchase in 2028") {
			found = true
		}
	}
	assert.True(t, found, "purchase is logged")
}

func TestCalculateRetirementPlan_DebugLogging(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.CalculateRetirementPlan(sampleInputs(), Options{Seed: 5})
	require.NoError(t, err)

	perYear := 0
	for _, line := range logger.Lines() {
		if strings.HasPrefix(line, "debug: age ") {
			perYear++
		}
	}
	assert.GreaterOrEqual(t, perYear, 56)
}

func TestCalculateBatch(t *testing.T) {
	bad := sampleInputs()
	bad.RetirementAge = 20

	households := []domain.NamedInputs{
		{Name: "first", Inputs: sampleInputs()},
		{Name: "broken", Inputs: bad},
		{Name: "third", Inputs: sampleInputs()},
	}

	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	results := engine.CalculateBatch(households, Options{Seed: 11})
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrInvalidInput)
	assert.NoError(t, results[2].Err)
	assert.True(t, results[0].Plan.FinalNetWorth().Equal(results[2].Plan.FinalNetWorth()), "shared seed, same inputs")

	errorsLogged := 0
	for _, line := range logger.Lines() {
		if strings.HasPrefix(line, "error:") {
			errorsLogged++
		}
	}
	assert.Equal(t, 1, errorsLogged)
}
