package compare

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if run with its key metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Changes      []string               `json:"changes,omitempty"`
	Plan         *domain.RetirementPlan `json:"-"`

	// Key Metrics
	RetirementAge          int             `json:"retirementAge"`
	ClaimingAge            int             `json:"claimingAge"`
	WithdrawalRate         decimal.Decimal `json:"withdrawalRate"`
	TotalRetirementSavings decimal.Decimal `json:"totalRetirementSavings"`
	AnnualRetirementIncome decimal.Decimal `json:"annualRetirementIncome"`
	SustainabilityScore    int             `json:"sustainabilityScore"`
	SuccessProbability     int             `json:"successProbability"`
	PortfolioLongevity     int             `json:"portfolioLongevity"`
	FinalNetWorth          decimal.Decimal `json:"finalNetWorth"`

	// Comparison to Base
	SavingsDiffFromBase  decimal.Decimal `json:"savingsDiffFromBase"`
	SavingsPctFromBase   decimal.Decimal `json:"savingsPctFromBase"`
	IncomeDiffFromBase   decimal.Decimal `json:"incomeDiffFromBase"`
	ScoreDiff            int             `json:"scoreDiff"`
	LongevityDiff        int             `json:"longevityDiff"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
}

// ComparisonSet represents a base plan and its what-if alternatives. Every
// plan in the set was computed with Seed.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	Seed               int64              `json:"seed"`
	Deterministic      bool               `json:"deterministic"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from retirement plans
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a plan
func (mc *MetricsCalculator) CalculateMetrics(name string, plan *domain.RetirementPlan) ComparisonResult {
	return ComparisonResult{
		ScenarioName:           name,
		Plan:                   plan,
		RetirementAge:          plan.Inputs.RetirementAge,
		ClaimingAge:            plan.Inputs.SocialSecurityClaimingAge,
		WithdrawalRate:         plan.Inputs.RetirementWithdrawalRate,
		TotalRetirementSavings: plan.TotalRetirementSavings,
		AnnualRetirementIncome: plan.EstimatedAnnualRetirementIncome,
		SustainabilityScore:    plan.SustainabilityScore,
		SuccessProbability:     plan.SuccessProbability,
		PortfolioLongevity:     plan.PortfolioLongevity,
		FinalNetWorth:          plan.FinalNetWorth(),
	}
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SavingsDiffFromBase = scenario.TotalRetirementSavings.Sub(base.TotalRetirementSavings)
	if !base.TotalRetirementSavings.IsZero() {
		scenario.SavingsPctFromBase = scenario.SavingsDiffFromBase.
			Div(base.TotalRetirementSavings).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.IncomeDiffFromBase = scenario.AnnualRetirementIncome.Sub(base.AnnualRetirementIncome)
	scenario.ScoreDiff = scenario.SustainabilityScore - base.SustainabilityScore
	scenario.LongevityDiff = scenario.PortfolioLongevity - base.PortfolioLongevity
	scenario.NetWorthDiffFromBase = scenario.FinalNetWorth.Sub(base.FinalNetWorth)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	best := func(better func(a, b *ComparisonResult) bool) *ComparisonResult {
		winner := base
		for i := range compSet.AlternativeResults {
			if better(&compSet.AlternativeResults[i], winner) {
				winner = &compSet.AlternativeResults[i]
			}
		}
		return winner
	}

	if w := best(func(a, b *ComparisonResult) bool {
		return a.TotalRetirementSavings.GreaterThan(b.TotalRetirementSavings)
	}); w != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Savings: %s builds $%s more by retirement than the base plan",
			w.ScenarioName, w.SavingsDiffFromBase.StringFixed(0)))
	}

	if w := best(func(a, b *ComparisonResult) bool {
		return a.PortfolioLongevity > b.PortfolioLongevity
	}); w != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Longevity: %s extends the portfolio by %d years, to age %d",
			w.ScenarioName, w.LongevityDiff, w.PortfolioLongevity))
	}

	if w := best(func(a, b *ComparisonResult) bool {
		return a.SustainabilityScore > b.SustainabilityScore
	}); w != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest Score: %s raises the sustainability score by %d points to %d",
			w.ScenarioName, w.ScoreDiff, w.SustainabilityScore))
	}

	if w := best(func(a, b *ComparisonResult) bool {
		return a.FinalNetWorth.GreaterThan(b.FinalNetWorth)
	}); w != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest Estate: %s leaves $%s more at life expectancy",
			w.ScenarioName, w.NetWorthDiffFromBase.StringFixed(0)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "No alternative improves on the base plan.")
	}
	return recommendations
}
