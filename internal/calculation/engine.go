package calculation

import (
	"sync"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/sequencing"
	"github.com/shopspring/decimal"
)

// maxParallelPlans bounds concurrent batch calculations.
const maxParallelPlans = 8

// CalculationEngine orchestrates the projectors into a RetirementPlan.
// An engine holds no per-run state and may be shared between goroutines.
type CalculationEngine struct {
	Logger    Logger
	Debug     bool // log every simulated year
	Strategy  sequencing.SequencingStrategy
	DebtModel DebtModel
}

// NewCalculationEngine creates an engine with proportional withdrawals and
// scheduled debt payoff.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger:    NopLogger{},
		Strategy:  sequencing.NewProportionalStrategy(),
		DebtModel: DebtModelSchedule,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Options control the randomness of a single run.
type Options struct {
	// Seed replays a path. Zero picks a fresh seed, which is reported back
	// in RetirementPlan.Seed.
	Seed int64
	// Deterministic turns off volatility and market cycles.
	Deterministic bool
	// Random overrides the seeded source; Seed is then only recorded.
	Random RandomSource
	// DebtModel overrides the engine's model for this run.
	DebtModel DebtModel
	// Strategy overrides the engine's withdrawal sequencing for this run.
	Strategy sequencing.SequencingStrategy
}

func (ce *CalculationEngine) log() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// WithOptions returns ce, or a copy of it when opts override the debt model
// or the withdrawal strategy.
func (ce *CalculationEngine) WithOptions(opts Options) *CalculationEngine {
	overrideDebt := opts.DebtModel != "" && opts.DebtModel != ce.DebtModel
	if !overrideDebt && opts.Strategy == nil {
		return ce
	}
	clone := *ce
	if overrideDebt {
		clone.DebtModel = opts.DebtModel
	}
	if opts.Strategy != nil {
		clone.Strategy = opts.Strategy
	}
	return &clone
}

func (ce *CalculationEngine) debtModel() DebtModel {
	if ce.DebtModel == "" {
		return DebtModelSchedule
	}
	return ce.DebtModel
}

// CalculateRetirementPlan validates inputs, runs every projector and
// assembles the summary. The returned plan shares no state with the engine.
func (ce *CalculationEngine) CalculateRetirementPlan(in domain.CalculatorInputs, opts Options) (domain.RetirementPlan, error) {
	in = ce.resolve(in)
	if err := ValidateInputs(in); err != nil {
		return domain.RetirementPlan{}, err
	}

	seed := opts.Seed
	src := opts.Random
	if src == nil {
		if seed == 0 {
			seed = seedFunc()
		}
		src = NewRandomSource(seed)
	}
	ctx := NewSimulationContext(src, opts.Deterministic)

	runner := ce.WithOptions(opts)

	ce.log().Debugf("calculating plan: age %d -> %d, life expectancy %d, seed %d, deterministic %t",
		in.CurrentAge, in.RetirementAge, in.LifeExpectancy, seed, opts.Deterministic)

	savings := TotalRetirementSavings(in)
	income := EstimatedAnnualRetirementIncome(in, savings)
	if in.DesiredRetirementSpending.LessThanOrEqual(decimal.Zero) {
		ce.log().Warnf("desired retirement spending is zero; income replacement ratio fixed at 1")
	}
	if in.InvestmentReturnRate.IsZero() {
		ce.log().Warnf("investment return rate is zero; balances grow by contributions only")
	}
	ratio := IncomeReplacementRatio(income, in.DesiredRetirementSpending)
	score := SustainabilityScore(ratio, in.RetirementWithdrawalRate, in.InvestmentReturnRate)
	longevity := PortfolioLongevity(in, savings)

	plan := domain.RetirementPlan{
		Seed:                            seed,
		Deterministic:                   opts.Deterministic,
		TotalRetirementSavings:          savings,
		EstimatedAnnualRetirementIncome: income,
		IncomeReplacementRatio:          ratio,
		MonthlySocialSecurity:           PrimaryMonthlyBenefit(in),
		SpouseMonthlySocialSecurity:     SpouseMonthlyBenefit(in),
		SustainabilityScore:             score,
		SuccessProbability:              SuccessProbability(score),
		PortfolioLongevity:              longevity,
		NetWorthProjection:              runner.CalculateNetWorthProjection(in, ctx),
		IncomeSources:                   GenerateIncomeSourcesData(in),
		WithdrawalStrategies:            GenerateWithdrawalStrategyData(in),
		RiskProfiles:                    GenerateRiskProfileData(in),
		SocialSecurity:                  GenerateSocialSecurityData(in),
		DebtPayoff:                      GenerateDebtPayoffData(in),
		Recommendations:                 GenerateRecommendations(in, ratio, longevity),
		Inputs:                          in,
	}

	ce.log().Infof("plan complete: savings %s, score %d, longevity %d",
		savings.StringFixed(0), score, longevity)
	return plan, nil
}

// resolve fills the structural fields the projectors cannot run without.
// Economic defaults belong to the config layer.
func (ce *CalculationEngine) resolve(in domain.CalculatorInputs) domain.CalculatorInputs {
	if in.BaseYear == 0 {
		in.BaseYear = nowFunc().Year()
		ce.log().Debugf("base year defaulted to %d", in.BaseYear)
	}
	if in.RiskProfile == "" {
		in.RiskProfile = domain.RiskModerate
	}
	if in.MortgageYearsRemaining <= 0 && in.MortgageBalance.GreaterThan(decimal.Zero) {
		in.MortgageYearsRemaining = DefaultMortgageTermYears
	}
	in.SocialSecurityClaimingAge = ClampClaimingAge(in.SocialSecurityClaimingAge)
	if in.HasSpouse() {
		in.SpouseClaimingAge = ClampClaimingAge(in.SpouseClaimingAge)
	}
	return in
}

// ValidateInputs rejects inputs the projection cannot model.
func ValidateInputs(in domain.CalculatorInputs) error {
	if in.CurrentAge <= 0 {
		return domain.NewValidationError("current_age", "must be positive, got %d", in.CurrentAge)
	}
	if in.RetirementAge <= in.CurrentAge {
		return domain.NewValidationError("retirement_age", "must be greater than current age %d, got %d", in.CurrentAge, in.RetirementAge)
	}
	if in.LifeExpectancy < in.RetirementAge {
		return domain.NewValidationError("life_expectancy", "must be at least retirement age %d, got %d", in.RetirementAge, in.LifeExpectancy)
	}
	if !in.RiskProfile.Valid() {
		return domain.NewValidationError("risk_profile", "unknown profile %q", in.RiskProfile)
	}
	if in.NumberOfChildren < 0 {
		return domain.NewValidationError("number_of_children", "must not be negative")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"annual_income", in.AnnualIncome},
		{"annual_bonus", in.AnnualBonus},
		{"spouse_annual_income", in.SpouseAnnualIncome},
		{"spouse_annual_bonus", in.SpouseAnnualBonus},
		{"annual_expenses", in.AnnualExpenses},
		{"cash_savings", in.CashSavings},
		{"retirement_accounts", in.RetirementAccounts},
		{"roth_accounts", in.RothAccounts},
		{"taxable_investments", in.TaxableInvestments},
		{"annual_401k_contribution", in.Annual401kContribution},
		{"annual_roth_contribution", in.AnnualRothContribution},
		{"annual_taxable_contribution", in.AnnualTaxableContribution},
		{"home_value", in.HomeValue},
		{"mortgage_balance", in.MortgageBalance},
		{"student_loan_balance", in.StudentLoanBalance},
		{"auto_loan_balance", in.AutoLoanBalance},
		{"credit_card_debt", in.CreditCardDebt},
		{"wedding_cost", in.WeddingCost},
		{"cost_per_child", in.CostPerChild},
		{"home_down_payment", in.HomeDownPayment},
		{"social_security_benefit", in.SocialSecurityBenefit},
		{"spouse_social_security_benefit", in.SpouseSocialSecurityBenefit},
		{"annual_pension", in.AnnualPension},
		{"desired_retirement_spending", in.DesiredRetirementSpending},
		{"retirement_withdrawal_rate", in.RetirementWithdrawalRate},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return domain.NewValidationError(a.field, "must not be negative, got %s", a.value.String())
		}
	}
	return nil
}

// BatchResult is one household's outcome from CalculateBatch.
type BatchResult struct {
	Name string
	Plan domain.RetirementPlan
	Err  error
}

// CalculateBatch runs every household in parallel with its own simulation
// context. Results keep input order. A non-zero seed is shared by all runs.
func (ce *CalculationEngine) CalculateBatch(households []domain.NamedInputs, opts Options) []BatchResult {
	results := make([]BatchResult, len(households))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallelPlans)

	for i, h := range households {
		wg.Add(1)
		go func(idx int, h domain.NamedInputs) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			runOpts := opts
			runOpts.Random = nil
			plan, err := ce.CalculateRetirementPlan(h.Inputs, runOpts)
			if err != nil {
				ce.log().Errorf("household %q failed: %v", h.Name, err)
			}
			results[idx] = BatchResult{Name: h.Name, Plan: plan, Err: err}
		}(i, h)
	}

	wg.Wait()
	return results
}
