package breakeven

import (
	"context"
	"fmt"
)

// OptimizeMultiDimensional runs every target against every goal on the same
// market path and compares the results. Failed optimizations are skipped.
func (s *Solver) OptimizeMultiDimensional(ctx context.Context, req OptimizationRequest, goals []OptimizationGoal) (*MultiDimensionalResult, error) {
	if req.Base == nil {
		return nil, &BreakEvenError{Operation: "optimize_multi_dimensional", Message: "base inputs are required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		goals = []OptimizationGoal{GoalMaximizeIncome}
	}

	// Pin the seed so every target sees one path.
	if req.Seed == 0 {
		base, err := s.evaluate(req, nil)
		if err != nil {
			return nil, err
		}
		req.Seed = base.Plan.Seed
	}

	targets := []OptimizationTarget{
		OptimizeWithdrawalRate,
		OptimizeRetirementAge,
		OptimizeSSAge,
	}

	var results []OptimizationResult
	for _, target := range targets {
		for _, goal := range goals {
			r := req
			r.Target = target
			r.Goal = goal

			result, err := s.Optimize(ctx, r)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				s.CalcEngine.Logger.Warnf("optimize %s/%s failed: %v", target, goal, err)
				continue
			}
			if result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	md := &MultiDimensionalResult{Results: results}
	for i := range results {
		r := &results[i]
		if md.BestByIncome == nil || r.LifetimeIncome.GreaterThan(md.BestByIncome.LifetimeIncome) {
			md.BestByIncome = r
		}
		if md.BestByLongevity == nil || r.PortfolioLongevity > md.BestByLongevity.PortfolioLongevity {
			md.BestByLongevity = r
		}
		if md.BestByScore == nil || r.SustainabilityScore > md.BestByScore.SustainabilityScore {
			md.BestByScore = r
		}
	}
	md.Recommendations = generateMultiDimensionalRecommendations(md)
	return md, nil
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(ctx context.Context, req OptimizationRequest, goal OptimizationGoal) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, req, []OptimizationGoal{goal})
}

func generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recs []string

	if b := result.BestByIncome; b != nil {
		recs = append(recs, fmt.Sprintf("To maximize lifetime income: adjust %s%s", b.Target, parameterLabel(b)))
	}
	if b := result.BestByLongevity; b != nil {
		recs = append(recs, fmt.Sprintf("To make the portfolio last longest (to age %d): adjust %s%s",
			b.PortfolioLongevity, b.Target, parameterLabel(b)))
	}
	if b := result.BestByScore; b != nil {
		recs = append(recs, fmt.Sprintf("For the highest sustainability score (%d/100): adjust %s%s",
			b.SustainabilityScore, b.Target, parameterLabel(b)))
	}

	if result.BestByIncome != nil && result.BestByLongevity != nil &&
		result.BestByIncome.Target == result.BestByLongevity.Target {
		recs = append(recs, fmt.Sprintf("Adjusting %s improves both income and longevity", result.BestByIncome.Target))
	}
	return recs
}

func parameterLabel(r *OptimizationResult) string {
	switch {
	case r.OptimalWithdrawalRate != nil:
		return fmt.Sprintf(" (%s%% withdrawal rate)", r.OptimalWithdrawalRate.StringFixed(2))
	case r.OptimalRetirementAge != nil:
		return fmt.Sprintf(" (retire at %d)", *r.OptimalRetirementAge)
	case r.OptimalSSAge != nil:
		return fmt.Sprintf(" (claim Social Security at %d)", *r.OptimalSSAge)
	}
	return ""
}
