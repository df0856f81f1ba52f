package transform

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// Rate transforms take percentages, matching the input file (4.0 means 4%).

// SetWithdrawalRate changes the planned retirement withdrawal rate.
type SetWithdrawalRate struct {
	Rate decimal.Decimal
}

func (swr *SetWithdrawalRate) Name() string {
	return "set_withdrawal_rate"
}

func (swr *SetWithdrawalRate) Description() string {
	return fmt.Sprintf("Withdraw %s%% per year in retirement", swr.Rate.StringFixed(1))
}

func (swr *SetWithdrawalRate) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(swr.Name(), base); err != nil {
		return err
	}
	return checkRate(swr.Name(), "withdrawal rate", swr.Rate, 0, 20)
}

func (swr *SetWithdrawalRate) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.RetirementWithdrawalRate = swr.Rate
	return modified, nil
}

// SetReturnRate changes the expected investment return.
type SetReturnRate struct {
	Rate decimal.Decimal
}

func (srr *SetReturnRate) Name() string {
	return "set_return_rate"
}

func (srr *SetReturnRate) Description() string {
	return fmt.Sprintf("Assume a %s%% investment return", srr.Rate.StringFixed(1))
}

func (srr *SetReturnRate) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(srr.Name(), base); err != nil {
		return err
	}
	return checkRate(srr.Name(), "return rate", srr.Rate, -50, 50)
}

func (srr *SetReturnRate) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.InvestmentReturnRate = srr.Rate
	return modified, nil
}

// SetInflationRate changes the general inflation assumption.
type SetInflationRate struct {
	Rate decimal.Decimal
}

func (sir *SetInflationRate) Name() string {
	return "set_inflation"
}

func (sir *SetInflationRate) Description() string {
	return fmt.Sprintf("Assume %s%% inflation", sir.Rate.StringFixed(1))
}

func (sir *SetInflationRate) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(sir.Name(), base); err != nil {
		return err
	}
	return checkRate(sir.Name(), "inflation rate", sir.Rate, -10, 20)
}

func (sir *SetInflationRate) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.InflationRate = sir.Rate
	return modified, nil
}

// SetRiskProfile switches the investment posture, which changes market
// volatility in the stochastic projection.
type SetRiskProfile struct {
	Profile domain.RiskProfile
}

func (srp *SetRiskProfile) Name() string {
	return "set_risk_profile"
}

func (srp *SetRiskProfile) Description() string {
	return fmt.Sprintf("Switch to a %s risk profile", srp.Profile)
}

func (srp *SetRiskProfile) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(srp.Name(), base); err != nil {
		return err
	}
	if srp.Profile == "" || !srp.Profile.Valid() {
		return validationFailed(srp.Name(), fmt.Sprintf("unknown risk profile %q", srp.Profile))
	}
	return nil
}

func (srp *SetRiskProfile) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.RiskProfile = srp.Profile
	return modified, nil
}

// SetRetirementSpending changes the desired annual retirement spending.
type SetRetirementSpending struct {
	Amount decimal.Decimal
}

func (srs *SetRetirementSpending) Name() string {
	return "set_spending"
}

func (srs *SetRetirementSpending) Description() string {
	return fmt.Sprintf("Plan to spend $%s per year in retirement", srs.Amount.StringFixed(0))
}

func (srs *SetRetirementSpending) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(srs.Name(), base); err != nil {
		return err
	}
	if srs.Amount.IsNegative() {
		return validationFailed(srs.Name(), fmt.Sprintf("spending must not be negative, got %s", srs.Amount.String()))
	}
	return nil
}

func (srs *SetRetirementSpending) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.DesiredRetirementSpending = srs.Amount
	return modified, nil
}

func checkRate(name, what string, rate decimal.Decimal, lo, hi int64) error {
	if rate.LessThan(decimal.NewFromInt(lo)) || rate.GreaterThan(decimal.NewFromInt(hi)) {
		return validationFailed(name, fmt.Sprintf("%s must be between %d%% and %d%%, got %s%%", what, lo, hi, rate.String()))
	}
	return nil
}
