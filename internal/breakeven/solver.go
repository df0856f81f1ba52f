package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/transform"
	"github.com/shopspring/decimal"
)

// retirementAgeWindow is the default search distance around the planned
// retirement age.
const retirementAgeWindow = 5

var two = decimal.NewFromInt(2)

// Solver searches one input at a time for the value that best meets a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request. A zero Seed is
// resolved by the base run and then shared by every candidate.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base inputs are required", Cause: domain.ErrInvalidInput}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Goal == "" {
		req.Goal = GoalMaximizeIncome
	}

	base, err := s.evaluate(req, nil)
	if err != nil {
		return nil, err
	}
	req.Seed = base.Plan.Seed

	var result *OptimizationResult
	switch req.Target {
	case OptimizeWithdrawalRate:
		result, err = s.optimizeWithdrawalRate(ctx, req)
	case OptimizeRetirementAge:
		result, err = s.optimizeRetirementAge(ctx, req)
	case OptimizeSSAge:
		result, err = s.optimizeSSAge(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}

	result.IncomeDiffFromBase = result.LifetimeIncome.Sub(base.LifetimeIncome)
	result.LongevityDiffFromBase = result.PortfolioLongevity - base.PortfolioLongevity
	result.ScoreDiffFromBase = result.SustainabilityScore - base.SustainabilityScore
	return result, nil
}

// optimizeWithdrawalRate binary searches the withdrawal rate. For
// match_income it converges on the target first-year income; for every other
// goal it finds the highest rate whose portfolio lasts to life expectancy.
func (s *Solver) optimizeWithdrawalRate(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	minRate := decimal.NewFromInt(1)
	maxRate := decimal.NewFromInt(15)
	if req.Constraints.MinWithdrawalRate != nil {
		minRate = *req.Constraints.MinWithdrawalRate
	}
	if req.Constraints.MaxWithdrawalRate != nil {
		maxRate = *req.Constraints.MaxWithdrawalRate
	}
	precision := s.Options.RatePrecision
	if precision.LessThanOrEqual(decimal.Zero) {
		precision = DefaultSolverOptions().RatePrecision
	}

	matching := req.Goal == GoalMatchIncome
	target := targetIncome(req)

	var best *OptimizationResult
	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		testRate := minRate.Add(maxRate).Div(two).Round(4)
		result, err := s.evaluate(req, &transform.SetWithdrawalRate{Rate: testRate})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "optimize_withdrawal_rate",
				Message:   "failed to calculate plan",
				Cause:     err,
			}
		}
		result.OptimalWithdrawalRate = &testRate
		result.Iterations = iterations

		if matching {
			diff := result.AnnualIncome.Sub(target)
			if best == nil || s.isBetter(result, best, req.Goal) {
				best = result
			}
			if diff.Abs().LessThan(req.Tolerance) {
				best.Success = true
				best.ConvergenceInfo = fmt.Sprintf("Converged to target income within $%s", req.Tolerance.StringFixed(0))
				return best, nil
			}
			if diff.IsNegative() {
				minRate = testRate
			} else {
				maxRate = testRate
			}
		} else {
			if result.LastsLifetime {
				best = result
				minRate = testRate
			} else {
				maxRate = testRate
			}
		}

		if maxRate.Sub(minRate).LessThan(precision) {
			break
		}
	}

	if best == nil {
		// Nothing tested lasted, so report the lower bound.
		result, err := s.evaluate(req, &transform.SetWithdrawalRate{Rate: minRate})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_withdrawal_rate", Message: "failed to calculate plan", Cause: err}
		}
		rate := minRate
		result.OptimalWithdrawalRate = &rate
		result.Iterations = iterations
		result.Success = result.LastsLifetime
		result.ConvergenceInfo = fmt.Sprintf("No rate above %s%% lasts to life expectancy", minRate.StringFixed(2))
		return result, nil
	}

	best.Iterations = iterations
	best.Success = !matching
	if matching {
		best.ConvergenceInfo = fmt.Sprintf("Closest income after %d iterations", iterations)
	} else {
		best.ConvergenceInfo = fmt.Sprintf("Binary search converged after %d iterations", iterations)
	}
	return best, nil
}

// optimizeRetirementAge grid searches the primary earner's retirement age
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	in := req.Base
	minAge := max(in.CurrentAge+1, in.RetirementAge-retirementAgeWindow)
	maxAge := in.RetirementAge + retirementAgeWindow
	if in.LifeExpectancy > 0 {
		maxAge = min(maxAge, in.LifeExpectancy)
	}
	if req.Constraints.MinRetirementAge != nil {
		minAge = *req.Constraints.MinRetirementAge
	}
	if req.Constraints.MaxRetirementAge != nil {
		maxAge = *req.Constraints.MaxRetirementAge
	}

	var best *OptimizationResult
	iterations := 0
	for age := minAge; age <= maxAge && iterations < req.MaxIterations; age++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := s.evaluate(req, &transform.SetRetirementAge{Participant: transform.Primary, Age: age})
		if err != nil {
			continue // ages the household cannot retire at are skipped
		}
		a := age
		result.OptimalRetirementAge = &a

		if best == nil || s.isBetter(result, best, req.Goal) {
			best = result
		}
	}

	if best == nil {
		return nil, &BreakEvenError{
			Operation: "optimize_retirement_age",
			Message:   fmt.Sprintf("no valid retirement ages between %d and %d", minAge, maxAge),
		}
	}
	best.Iterations = iterations
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d retirement ages", iterations)
	return best, nil
}

// optimizeSSAge grid searches the Social Security claiming age
func (s *Solver) optimizeSSAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	minAge := calculation.EarliestClaimingAge
	maxAge := calculation.LatestClaimingAge
	if req.Constraints.MinSSAge != nil {
		minAge = *req.Constraints.MinSSAge
	}
	if req.Constraints.MaxSSAge != nil {
		maxAge = *req.Constraints.MaxSSAge
	}
	participant := req.Constraints.Participant
	if participant == "" {
		participant = transform.Primary
	}

	var best *OptimizationResult
	iterations := 0
	for age := minAge; age <= maxAge; age++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := s.evaluate(req, &transform.DelaySSClaim{Participant: participant, NewAge: age})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "optimize_ss_age",
				Message:   fmt.Sprintf("failed to evaluate claiming age %d", age),
				Cause:     err,
			}
		}
		a := age
		result.OptimalSSAge = &a

		if best == nil || s.isBetter(result, best, req.Goal) {
			best = result
		}
	}

	best.Iterations = iterations
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d Social Security ages", iterations)
	return best, nil
}

// evaluate runs the plan for base with t applied (nil for the base itself).
func (s *Solver) evaluate(req OptimizationRequest, t transform.InputTransform) (*OptimizationResult, error) {
	inputs := req.Base
	if t != nil {
		modified, err := transform.ApplyTransforms(req.Base, []transform.InputTransform{t})
		if err != nil {
			return nil, err
		}
		inputs = modified
	}

	plan, err := s.CalcEngine.CalculateRetirementPlan(*inputs, calculation.Options{
		Seed:          req.Seed,
		Deterministic: req.Deterministic,
	})
	if err != nil {
		return nil, err
	}

	result := &OptimizationResult{
		Target:              req.Target,
		Goal:                req.Goal,
		Plan:                &plan,
		AnnualIncome:        plan.EstimatedAnnualRetirementIncome,
		LifetimeIncome:      lifetimeIncome(&plan),
		PortfolioLongevity:  plan.PortfolioLongevity,
		SustainabilityScore: plan.SustainabilityScore,
		LastsLifetime:       plan.PortfolioLongevity >= plan.Inputs.LifeExpectancy,
	}
	if req.Goal == GoalMatchIncome {
		result.TargetIncome = targetIncome(req)
	}
	return result, nil
}

// isBetter compares two results based on optimization goal. For income and
// score, a plan that lasts to life expectancy beats one that does not.
func (s *Solver) isBetter(a, b *OptimizationResult, goal OptimizationGoal) bool {
	switch goal {
	case GoalMaximizeIncome:
		if a.LastsLifetime != b.LastsLifetime {
			return a.LastsLifetime
		}
		return a.LifetimeIncome.GreaterThan(b.LifetimeIncome)
	case GoalMaximizeLongevity:
		return a.PortfolioLongevity > b.PortfolioLongevity
	case GoalMaximizeScore:
		if a.LastsLifetime != b.LastsLifetime {
			return a.LastsLifetime
		}
		return a.SustainabilityScore > b.SustainabilityScore
	case GoalMatchIncome:
		aDiff := a.AnnualIncome.Sub(a.TargetIncome).Abs()
		bDiff := b.AnnualIncome.Sub(b.TargetIncome).Abs()
		return aDiff.LessThan(bDiff)
	default:
		return false
	}
}

// lifetimeIncome sums household income from retirement through the end of
// the projection.
func lifetimeIncome(plan *domain.RetirementPlan) decimal.Decimal {
	total := decimal.Zero
	for _, p := range plan.IncomeSources {
		if p.Age >= plan.Inputs.RetirementAge {
			total = total.Add(p.TotalIncome)
		}
	}
	return total
}

func targetIncome(req OptimizationRequest) decimal.Decimal {
	if req.Constraints.TargetIncome != nil {
		return *req.Constraints.TargetIncome
	}
	return req.Base.DesiredRetirementSpending
}
