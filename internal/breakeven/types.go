package breakeven

import (
	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/transform"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeWithdrawalRate OptimizationTarget = "withdrawal_rate"
	OptimizeRetirementAge  OptimizationTarget = "retirement_age"
	OptimizeSSAge          OptimizationTarget = "ss_age"
	OptimizeAll            OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchIncome       OptimizationGoal = "match_income"       // first-year income closest to a target
	GoalMaximizeIncome    OptimizationGoal = "maximize_income"    // most lifetime retirement income
	GoalMaximizeLongevity OptimizationGoal = "maximize_longevity" // portfolio lasts longest
	GoalMaximizeScore     OptimizationGoal = "maximize_score"     // highest sustainability score
)

// ParseGoal returns the goal named s.
func ParseGoal(s string) (OptimizationGoal, bool) {
	switch g := OptimizationGoal(s); g {
	case GoalMatchIncome, GoalMaximizeIncome, GoalMaximizeLongevity, GoalMaximizeScore:
		return g, true
	}
	return "", false
}

// ParseTarget returns the target named s.
func ParseTarget(s string) (OptimizationTarget, bool) {
	switch t := OptimizationTarget(s); t {
	case OptimizeWithdrawalRate, OptimizeRetirementAge, OptimizeSSAge, OptimizeAll:
		return t, true
	}
	return "", false
}

// Constraints define bounds for optimization parameters. Rates are
// percentages (4 means 4%).
type Constraints struct {
	MinWithdrawalRate *decimal.Decimal `json:"min_withdrawal_rate,omitempty"`
	MaxWithdrawalRate *decimal.Decimal `json:"max_withdrawal_rate,omitempty"`

	MinRetirementAge *int `json:"min_retirement_age,omitempty"`
	MaxRetirementAge *int `json:"max_retirement_age,omitempty"`

	MinSSAge *int `json:"min_ss_age,omitempty"`
	MaxSSAge *int `json:"max_ss_age,omitempty"`

	// TargetIncome for match_income; defaults to desired retirement spending.
	TargetIncome *decimal.Decimal `json:"target_income,omitempty"`

	// Participant whose claiming age is searched. Empty means primary.
	Participant transform.Participant `json:"participant,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minRate := decimal.NewFromInt(2)
	maxRate := decimal.NewFromInt(10)
	minSSAge := calculation.EarliestClaimingAge
	maxSSAge := calculation.LatestClaimingAge

	return Constraints{
		MinWithdrawalRate: &minRate,
		MaxWithdrawalRate: &maxRate,
		MinSSAge:          &minSSAge,
		MaxSSAge:          &maxSSAge,
		Participant:       transform.Primary,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Base          *domain.CalculatorInputs
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // income tolerance for match_income

	// Every candidate replays this market path.
	Seed          int64
	Deterministic bool
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	Goal            OptimizationGoal   `json:"goal"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Optimized parameters
	OptimalWithdrawalRate *decimal.Decimal `json:"optimal_withdrawal_rate,omitempty"`
	OptimalRetirementAge  *int             `json:"optimal_retirement_age,omitempty"`
	OptimalSSAge          *int             `json:"optimal_ss_age,omitempty"`

	// Results at optimal parameters
	Plan                *domain.RetirementPlan `json:"-"`
	TargetIncome        decimal.Decimal        `json:"target_income,omitempty"`
	AnnualIncome        decimal.Decimal        `json:"annual_income"`
	LifetimeIncome      decimal.Decimal        `json:"lifetime_income"`
	PortfolioLongevity  int                    `json:"portfolio_longevity"`
	SustainabilityScore int                    `json:"sustainability_score"`
	LastsLifetime       bool                   `json:"lasts_lifetime"`

	// Comparison to base
	IncomeDiffFromBase    decimal.Decimal `json:"income_diff_from_base"`
	LongevityDiffFromBase int             `json:"longevity_diff_from_base"`
	ScoreDiffFromBase     int             `json:"score_diff_from_base"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	BestByIncome    *OptimizationResult  `json:"best_by_income,omitempty"`
	BestByLongevity *OptimizationResult  `json:"best_by_longevity,omitempty"`
	BestByScore     *OptimizationResult  `json:"best_by_score,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // income tolerance for match_income
	RatePrecision decimal.Decimal // binary search stops below this rate gap
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(500),
		RatePrecision: decimal.NewFromFloat(0.01),
		MaxIterations: 50,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.Participant != "" && c.Participant != transform.Primary && c.Participant != transform.Spouse {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "participant must be primary or spouse",
			Cause:     domain.ErrInvalidInput,
		}
	}

	if c.MinWithdrawalRate != nil && c.MaxWithdrawalRate != nil {
		if c.MinWithdrawalRate.GreaterThan(*c.MaxWithdrawalRate) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_withdrawal_rate cannot be greater than max_withdrawal_rate",
				Cause:     domain.ErrInvalidInput,
			}
		}
	}
	for _, r := range []*decimal.Decimal{c.MinWithdrawalRate, c.MaxWithdrawalRate} {
		if r != nil && (r.LessThanOrEqual(decimal.Zero) || r.GreaterThan(decimal.NewFromInt(20))) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "withdrawal rate bounds must be within (0, 20]",
				Cause:     domain.ErrInvalidInput,
			}
		}
	}

	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil && *c.MinRetirementAge > *c.MaxRetirementAge {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_retirement_age cannot be greater than max_retirement_age",
			Cause:     domain.ErrInvalidInput,
		}
	}

	if c.MinSSAge != nil && c.MaxSSAge != nil {
		if *c.MinSSAge > *c.MaxSSAge {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_ss_age cannot be greater than max_ss_age",
				Cause:     domain.ErrInvalidInput,
			}
		}
		if *c.MinSSAge < calculation.EarliestClaimingAge || *c.MaxSSAge > calculation.LatestClaimingAge {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "ss_age must be between 62 and 70",
				Cause:     domain.ErrInvalidInput,
			}
		}
	}

	if c.TargetIncome != nil && c.TargetIncome.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_income must not be negative",
			Cause:     domain.ErrInvalidInput,
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
