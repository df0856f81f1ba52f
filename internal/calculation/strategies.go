package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// Fixed assumptions for the three-track comparison projections.
var (
	WithdrawalRates = [3]decimal.Decimal{
		decimal.NewFromFloat(0.03),
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.05),
	}
	RiskProfileReturns = [3]decimal.Decimal{
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.06),
		decimal.NewFromFloat(0.08),
	}
)

// track is one independently compounding portfolio.
type track struct {
	balance    decimal.Decimal
	growth     decimal.Decimal // 1 + return
	rate       decimal.Decimal // withdrawal rate
	withdrawal decimal.Decimal // first-year withdrawal, fixed at retirement
	drawing    bool
}

// step advances the track one year. Before retirement it compounds and
// deposits; from retirement on it withdraws the inflation-adjusted amount
// set at retirement, then compounds what is left.
func (tr *track) step(t timeline, age int, contributions decimal.Decimal) {
	if !t.retired(age) {
		tr.balance = money(tr.balance.Mul(tr.growth).Add(contributions))
		return
	}
	if !tr.drawing {
		tr.withdrawal = tr.balance.Mul(tr.rate)
		tr.drawing = true
	}
	draw := tr.withdrawal.Mul(compound(t.inflation, age-t.in.RetirementAge))
	tr.balance = money(tr.balance.Sub(draw).Mul(tr.growth))
}

// runTracks drives three tracks over the projection horizon and records each
// start-of-year balance.
func runTracks(in domain.CalculatorInputs, tracks [3]*track, record func(age, year int, b [3]decimal.Decimal)) {
	t := newTimeline(in)
	contributions := t.contributions().Total()
	for i := 0; i < projectionYears(in); i++ {
		age := in.CurrentAge + i
		record(age, t.year(age), [3]decimal.Decimal{tracks[0].balance, tracks[1].balance, tracks[2].balance})
		for _, tr := range tracks {
			tr.step(t, age, contributions)
		}
	}
}

// GenerateWithdrawalStrategyData compares 3%, 4% and 5% withdrawal rules on a
// portfolio grown at the base return.
func GenerateWithdrawalStrategyData(in domain.CalculatorInputs) []domain.WithdrawalStrategyPoint {
	growth := decimal.NewFromInt(1).Add(pct(in.InvestmentReturnRate))
	var tracks [3]*track
	for i := range tracks {
		tracks[i] = &track{balance: in.TotalInvestments(), growth: growth, rate: WithdrawalRates[i]}
	}

	points := make([]domain.WithdrawalStrategyPoint, 0, projectionYears(in))
	runTracks(in, tracks, func(age, year int, b [3]decimal.Decimal) {
		points = append(points, domain.WithdrawalStrategyPoint{
			Age:             age,
			Year:            year,
			Conservative:    b[0],
			Moderate:        b[1],
			Aggressive:      b[2],
			IsRetirementAge: age == in.RetirementAge,
		})
	})
	return points
}

// GenerateRiskProfileData compares 4%, 6% and 8% annual returns, all drawn
// down at the household's withdrawal rate.
func GenerateRiskProfileData(in domain.CalculatorInputs) []domain.RiskProfilePoint {
	rate := pct(in.RetirementWithdrawalRate)
	var tracks [3]*track
	for i := range tracks {
		tracks[i] = &track{
			balance: in.TotalInvestments(),
			growth:  decimal.NewFromInt(1).Add(RiskProfileReturns[i]),
			rate:    rate,
		}
	}

	points := make([]domain.RiskProfilePoint, 0, projectionYears(in))
	runTracks(in, tracks, func(age, year int, b [3]decimal.Decimal) {
		points = append(points, domain.RiskProfilePoint{
			Age:             age,
			Year:            year,
			Conservative:    b[0],
			Moderate:        b[1],
			Aggressive:      b[2],
			IsRetirementAge: age == in.RetirementAge,
		})
	})
	return points
}
