package calculation

import (
	"testing"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVolatilityFor(t *testing.T) {
	tests := []struct {
		profile  domain.RiskProfile
		expected float64
	}{
		{domain.RiskConservative, 0.05},
		{domain.RiskModerate, 0.10},
		{domain.RiskAggressive, 0.15},
		{"", 0.10},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			assert.Equal(t, tt.expected, VolatilityFor(tt.profile))
		})
	}
}

func TestGenerateMarketReturn(t *testing.T) {
	t.Run("zero volatility consumes no draws", func(t *testing.T) {
		src := NewSequenceSource(0.3, 0.7)
		assert.Equal(t, 0.07, GenerateMarketReturn(src, 0.07, 0))
		assert.Equal(t, 0, src.Draws())
	})

	t.Run("neutral draw returns base", func(t *testing.T) {
		// cos(2*pi*0.25) is zero
		r := GenerateMarketReturn(NewSequenceSource(0.5, 0.25), 0.07, 0.15)
		assert.InDelta(t, 0.07, r, 1e-9)
	})

	t.Run("floored at minus 25 percent", func(t *testing.T) {
		r := GenerateMarketReturn(NewSequenceSource(0, 0.5), 0.07, 0.15)
		assert.Equal(t, -0.25, r)
	})

	t.Run("upside is not capped", func(t *testing.T) {
		r := GenerateMarketReturn(NewSequenceSource(0.01, 0), 0.07, 0.15)
		assert.Greater(t, r, 0.5)
	})
}

func TestUpdateMarketCycle(t *testing.T) {
	t.Run("regime shift redraws", func(t *testing.T) {
		assert.InDelta(t, 0.5, UpdateMarketCycle(NewSequenceSource(0.1, 0.75), -0.9), 1e-12)
	})
	t.Run("otherwise decays", func(t *testing.T) {
		assert.InDelta(t, 0.32, UpdateMarketCycle(NewSequenceSource(0.9), 0.4), 1e-12)
	})
}

func TestUpdateRealEstateCycle(t *testing.T) {
	next := UpdateRealEstateCycle(NewSequenceSource(0.25, 0.99), RealEstateCycle{})
	assert.InDelta(t, -0.5, next.Value, 1e-12)
	assert.Equal(t, 10, next.Remaining)

	next = UpdateRealEstateCycle(NewSequenceSource(0.5, 0), RealEstateCycle{})
	assert.Equal(t, 3, next.Remaining, "shortest regime is three years")

	decayed := UpdateRealEstateCycle(NewSequenceSource(), RealEstateCycle{Value: 0.5, Remaining: 2})
	assert.InDelta(t, 0.45, decayed.Value, 1e-12)
	assert.Equal(t, 1, decayed.Remaining)
}

func TestGenerateRealEstateReturn(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		expected float64
	}{
		{"within range", 0.035, 0.035},
		{"capped", 0.20, 0.15},
		{"floored", -0.10, -0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, GenerateRealEstateReturn(NewSequenceSource(), tt.base, 0, false), 1e-12)
		})
	}

	crash := GenerateRealEstateReturn(NewSequenceSource(0, 0.5), 0.035, -1, true)
	assert.Equal(t, -0.05, crash)
}

func TestSimulationContext_Deterministic(t *testing.T) {
	src := NewSequenceSource(0.01, 0.02, 0.03)
	ctx := NewSimulationContext(src, true)

	for i := 0; i < 5; i++ {
		ctx.AdvanceYear()
		assert.Equal(t, 0.07, ctx.InvestmentReturn(0.07, domain.RiskAggressive))
		assert.InDelta(t, 0.035, ctx.RealEstateReturn(0.035), 1e-12)
		assert.Equal(t, 0.20, ctx.OtherDebtPayoffFraction())
	}
	assert.True(t, ctx.Deterministic())
	assert.Equal(t, 0, src.Draws(), "deterministic runs never draw")
	assert.Zero(t, ctx.MarketCycle)
}

func TestSimulationContext_SeedReplays(t *testing.T) {
	run := func() []float64 {
		ctx := NewSimulationContext(NewRandomSource(42), false)
		var out []float64
		for i := 0; i < 20; i++ {
			out = append(out, ctx.InvestmentReturn(0.07, domain.RiskModerate), ctx.RealEstateReturn(0.035))
			ctx.AdvanceYear()
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSimulationContext_OtherDebtPayoffBounds(t *testing.T) {
	ctx := NewSimulationContext(NewRandomSource(7), false)
	for i := 0; i < 200; i++ {
		f := ctx.OtherDebtPayoffFraction()
		assert.GreaterOrEqual(t, f, 0.15)
		assert.Less(t, f, 0.25)
	}
}
