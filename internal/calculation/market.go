package calculation

import (
	"math"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

const (
	minMarketReturn         = -0.25
	marketRegimeShiftChance = 0.15
	marketCycleDecay        = 0.8
	cycleVolatilityWeight   = 0.5

	realEstateVolatility    = 0.08
	realEstateCycleWeight   = 0.03
	realEstateCycleDecay    = 0.9
	realEstateMinRegime     = 3
	realEstateRegimeSpread  = 8 // regimes last 3..10 years
	minRealEstateReturn     = -0.05
	maxRealEstateReturn     = 0.15
	defaultOtherDebtPayoff  = 0.20
	otherDebtPayoffMin      = 0.15
	otherDebtPayoffSpread   = 0.10
	boxMullerUniformEpsilon = 1e-12
)

// VolatilityFor maps a risk profile tag to annual return volatility.
func VolatilityFor(profile domain.RiskProfile) float64 {
	switch profile {
	case domain.RiskConservative:
		return 0.05
	case domain.RiskAggressive:
		return 0.15
	default:
		return 0.10
	}
}

// standardNormal draws one N(0,1) sample with the Box-Muller transform.
func standardNormal(src RandomSource) float64 {
	u1 := src.Float64()
	if u1 < boxMullerUniformEpsilon {
		u1 = boxMullerUniformEpsilon
	}
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// GenerateMarketReturn returns baseReturn perturbed by normal noise scaled by
// volatility, floored at -25%. Zero volatility returns baseReturn without
// consuming draws.
func GenerateMarketReturn(src RandomSource, baseReturn, volatility float64) float64 {
	if volatility == 0 {
		return math.Max(baseReturn, minMarketReturn)
	}
	r := baseReturn + standardNormal(src)*volatility
	return math.Max(r, minMarketReturn)
}

// UpdateMarketCycle shifts regime with 15% probability, otherwise decays the
// cycle toward neutral.
func UpdateMarketCycle(src RandomSource, current float64) float64 {
	if src.Float64() < marketRegimeShiftChance {
		return src.Float64()*2 - 1
	}
	return current * marketCycleDecay
}

// RealEstateCycle is the slower housing regime. Remaining counts the years
// left in the current regime.
type RealEstateCycle struct {
	Value     float64
	Remaining int
}

// UpdateRealEstateCycle starts a new 3 to 10 year regime when the current one
// has run out, otherwise decays the value.
func UpdateRealEstateCycle(src RandomSource, c RealEstateCycle) RealEstateCycle {
	if c.Remaining <= 0 {
		return RealEstateCycle{
			Value:     src.Float64()*2 - 1,
			Remaining: realEstateMinRegime + int(src.Float64()*realEstateRegimeSpread),
		}
	}
	return RealEstateCycle{Value: c.Value * realEstateCycleDecay, Remaining: c.Remaining - 1}
}

// GenerateRealEstateReturn applies noise and the housing cycle to the base
// appreciation rate, clamped to [-5%, +15%].
func GenerateRealEstateReturn(src RandomSource, baseReturn, cycle float64, stochastic bool) float64 {
	r := baseReturn
	if stochastic {
		r += standardNormal(src)*realEstateVolatility + cycle*realEstateCycleWeight
	}
	return math.Min(math.Max(r, minRealEstateReturn), maxRealEstateReturn)
}

// SimulationContext owns the random source and regime state for one
// projection run. It must not be shared between runs.
type SimulationContext struct {
	rng           RandomSource
	deterministic bool

	MarketCycle     float64
	RealEstateCycle RealEstateCycle
}

// NewSimulationContext creates a context. Deterministic contexts never draw:
// volatility is zero and both cycles stay neutral.
func NewSimulationContext(src RandomSource, deterministic bool) *SimulationContext {
	if src == nil {
		src = NewRandomSource(seedFunc())
	}
	return &SimulationContext{rng: src, deterministic: deterministic}
}

// Deterministic reports whether the context runs without randomness.
func (sc *SimulationContext) Deterministic() bool { return sc.deterministic }

// AdvanceYear moves both market regimes forward one step.
func (sc *SimulationContext) AdvanceYear() {
	if sc.deterministic {
		return
	}
	sc.MarketCycle = UpdateMarketCycle(sc.rng, sc.MarketCycle)
	sc.RealEstateCycle = UpdateRealEstateCycle(sc.rng, sc.RealEstateCycle)
}

// InvestmentReturn draws this year's portfolio return for the profile.
func (sc *SimulationContext) InvestmentReturn(baseReturn float64, profile domain.RiskProfile) float64 {
	if sc.deterministic {
		return GenerateMarketReturn(sc.rng, baseReturn, 0)
	}
	vol := VolatilityFor(profile) * (1 + sc.MarketCycle*cycleVolatilityWeight)
	return GenerateMarketReturn(sc.rng, baseReturn, vol)
}

// RealEstateReturn draws this year's home appreciation.
func (sc *SimulationContext) RealEstateReturn(baseReturn float64) float64 {
	return GenerateRealEstateReturn(sc.rng, baseReturn, sc.RealEstateCycle.Value, !sc.deterministic)
}

// OtherDebtPayoffFraction is the share of non-mortgage debt retired this year
// under the decay model: 15-25%, or exactly 20% when deterministic.
func (sc *SimulationContext) OtherDebtPayoffFraction() float64 {
	if sc.deterministic {
		return defaultOtherDebtPayoff
	}
	return otherDebtPayoffMin + sc.rng.Float64()*otherDebtPayoffSpread
}
