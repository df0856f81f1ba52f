package transform

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// Account names accepted by AdjustContribution.
const (
	Account401k    = "401k"
	AccountRoth    = "roth"
	AccountTaxable = "taxable"
)

// AdjustContribution changes one account's annual contribution by Delta
// dollars. A negative delta lowers the contribution but never below zero.
type AdjustContribution struct {
	Account string
	Delta   decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	verb := "Increase"
	if ac.Delta.IsNegative() {
		verb = "Decrease"
	}
	return fmt.Sprintf("%s annual %s contribution by $%s", verb, ac.Account, ac.Delta.Abs().StringFixed(0))
}

func (ac *AdjustContribution) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(ac.Name(), base); err != nil {
		return err
	}
	switch ac.Account {
	case Account401k, AccountRoth, AccountTaxable:
		return nil
	}
	return validationFailed(ac.Name(), fmt.Sprintf("unknown account %q, expected 401k, roth or taxable", ac.Account))
}

func (ac *AdjustContribution) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	var target *decimal.Decimal
	switch ac.Account {
	case Account401k:
		target = &modified.Annual401kContribution
	case AccountRoth:
		target = &modified.AnnualRothContribution
	default:
		target = &modified.AnnualTaxableContribution
	}
	*target = decimal.Max(decimal.Zero, target.Add(ac.Delta))
	return modified, nil
}

// ScaleContributions multiplies every annual contribution by Factor.
type ScaleContributions struct {
	Factor decimal.Decimal
}

func (sc *ScaleContributions) Name() string {
	return "scale_contributions"
}

func (sc *ScaleContributions) Description() string {
	pct := sc.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	if pct.IsNegative() {
		return fmt.Sprintf("Save %s%% less each year", pct.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Save %s%% more each year", pct.StringFixed(0))
}

func (sc *ScaleContributions) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(sc.Name(), base); err != nil {
		return err
	}
	if sc.Factor.IsNegative() || sc.Factor.GreaterThan(decimal.NewFromInt(10)) {
		return validationFailed(sc.Name(), fmt.Sprintf("factor must be between 0 and 10, got %s", sc.Factor.String()))
	}
	return nil
}

func (sc *ScaleContributions) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.Annual401kContribution = modified.Annual401kContribution.Mul(sc.Factor).Round(2)
	modified.AnnualRothContribution = modified.AnnualRothContribution.Mul(sc.Factor).Round(2)
	modified.AnnualTaxableContribution = modified.AnnualTaxableContribution.Mul(sc.Factor).Round(2)
	return modified, nil
}
