package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults applied to fields missing from an input file.
var (
	DefaultIncomeGrowthRate       = decimal.NewFromInt(3)
	DefaultInvestmentReturnRate   = decimal.NewFromInt(7)
	DefaultWithdrawalRate         = decimal.NewFromInt(4)
	DefaultInflationRate          = decimal.NewFromFloat(2.5)
	DefaultRealEstateAppreciation = decimal.NewFromFloat(3.5)
	DefaultExpenseShare           = decimal.NewFromFloat(0.60)
	DefaultSpendingShare          = decimal.NewFromFloat(0.80)
)

const (
	DefaultLifeExpectancy = 90
	DefaultClaimingAge    = calculation.FullRetirementAge
	MaxLifeExpectancy     = 120
)

// InputParser handles parsing of input files
type InputParser struct {
	// Now supplies the default base year.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// LoadFromFile loads household inputs from a YAML or JSON file, applies
// defaults for missing fields and validates the result.
func (ip *InputParser) LoadFromFile(filename string) (*domain.CalculatorInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates one household document.
func (ip *InputParser) Parse(data []byte) (*domain.CalculatorInputs, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("failed to parse YAML: empty document")
	}

	inputs, err := ip.decodeInputs(doc.Content[0])
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateInputs(inputs); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return inputs, nil
}

// decodeInputs decodes a mapping node and defaults every key it lacks, so an
// explicit zero in the file is kept.
func (ip *InputParser) decodeInputs(node *yaml.Node) (*domain.CalculatorInputs, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML: expected a mapping at line %d", node.Line)
	}
	var inputs domain.CalculatorInputs
	if err := node.Decode(&inputs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.applyDefaults(&inputs, presentKeys(node))
	return &inputs, nil
}

func presentKeys(node *yaml.Node) map[string]bool {
	keys := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys[node.Content[i].Value] = true
	}
	return keys
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
func (ip *InputParser) ApplyDefaults(inputs *domain.CalculatorInputs) {
	ip.applyDefaults(inputs, nil)
}

// applyDefaults sets a default when the key is absent from present, or, when
// present is nil, when the field is zero.
func (ip *InputParser) applyDefaults(in *domain.CalculatorInputs, present map[string]bool) {
	missing := func(key string, zero bool) bool {
		if present != nil {
			return !present[key]
		}
		return zero
	}

	if missing("income_growth_rate", in.IncomeGrowthRate.IsZero()) {
		in.IncomeGrowthRate = DefaultIncomeGrowthRate
	}
	if in.HasSpouse() && missing("spouse_income_growth_rate", in.SpouseIncomeGrowthRate.IsZero()) {
		in.SpouseIncomeGrowthRate = in.IncomeGrowthRate
	}
	if missing("investment_return_rate", in.InvestmentReturnRate.IsZero()) {
		in.InvestmentReturnRate = DefaultInvestmentReturnRate
	}
	if missing("retirement_withdrawal_rate", in.RetirementWithdrawalRate.IsZero()) {
		in.RetirementWithdrawalRate = DefaultWithdrawalRate
	}
	if missing("inflation_rate", in.InflationRate.IsZero()) {
		in.InflationRate = DefaultInflationRate
	}
	if missing("real_estate_appreciation_rate", in.RealEstateAppreciation.IsZero()) {
		in.RealEstateAppreciation = DefaultRealEstateAppreciation
	}
	if missing("life_expectancy", in.LifeExpectancy == 0) {
		in.LifeExpectancy = DefaultLifeExpectancy
	}
	if in.RiskProfile == "" {
		in.RiskProfile = domain.RiskModerate
	}
	if in.MortgageYearsRemaining == 0 && in.MortgageBalance.GreaterThan(decimal.Zero) {
		in.MortgageYearsRemaining = calculation.DefaultMortgageTermYears
	}
	if in.SocialSecurityClaimingAge == 0 {
		in.SocialSecurityClaimingAge = DefaultClaimingAge
	}
	if in.HasSpouse() && in.SpouseClaimingAge == 0 {
		in.SpouseClaimingAge = DefaultClaimingAge
	}
	if in.BaseYear == 0 {
		now := time.Now
		if ip.Now != nil {
			now = ip.Now
		}
		in.BaseYear = now().Year()
	}

	income := in.HouseholdIncome()
	if missing("annual_expenses", in.AnnualExpenses.IsZero()) {
		in.AnnualExpenses = income.Mul(DefaultExpenseShare).Round(2)
	}
	if missing("desired_retirement_spending", in.DesiredRetirementSpending.IsZero()) {
		in.DesiredRetirementSpending = income.Mul(DefaultSpendingShare).Round(2)
	}
}

// ValidateInputs applies the engine's structural checks plus range checks on
// the assumptions.
func (ip *InputParser) ValidateInputs(in *domain.CalculatorInputs) error {
	if in == nil {
		return fmt.Errorf("inputs are required")
	}
	if err := calculation.ValidateInputs(*in); err != nil {
		return err
	}
	if in.LifeExpectancy > MaxLifeExpectancy {
		return domain.NewValidationError("life_expectancy", "must be at most %d, got %d", MaxLifeExpectancy, in.LifeExpectancy)
	}
	if in.HasSpouse() && in.SpouseAge <= 0 {
		return domain.NewValidationError("spouse_age", "is required when spouse income or benefits are given")
	}
	if in.SpouseRetirementAge != 0 && in.SpouseRetirementAge <= in.SpouseAge {
		return domain.NewValidationError("spouse_retirement_age", "must be greater than spouse age %d", in.SpouseAge)
	}

	ranges := []struct {
		field    string
		value    decimal.Decimal
		min, max float64
	}{
		{"investment_return_rate", in.InvestmentReturnRate, -50, 50},
		{"inflation_rate", in.InflationRate, -10, 20},
		{"retirement_withdrawal_rate", in.RetirementWithdrawalRate, 0, 20},
		{"income_growth_rate", in.IncomeGrowthRate, -20, 50},
		{"real_estate_appreciation_rate", in.RealEstateAppreciation, -20, 30},
		{"mortgage_interest_rate", in.MortgageInterestRate, 0, 30},
		{"student_loan_rate", in.StudentLoanRate, 0, 40},
		{"auto_loan_rate", in.AutoLoanRate, 0, 40},
		{"credit_card_rate", in.CreditCardRate, 0, 40},
	}
	for _, r := range ranges {
		if r.value.LessThan(decimal.NewFromFloat(r.min)) || r.value.GreaterThan(decimal.NewFromFloat(r.max)) {
			return domain.NewValidationError(r.field, "must be between %g%% and %g%%, got %s%%", r.min, r.max, r.value.String())
		}
	}

	claims := []struct {
		field string
		age   int
	}{
		{"social_security_claiming_age", in.SocialSecurityClaimingAge},
		{"spouse_claiming_age", in.SpouseClaimingAge},
	}
	for _, c := range claims {
		if c.age != 0 && (c.age < calculation.EarliestClaimingAge || c.age > calculation.LatestClaimingAge) {
			return domain.NewValidationError(c.field, "must be between %d and %d, got %d",
				calculation.EarliestClaimingAge, calculation.LatestClaimingAge, c.age)
		}
	}

	if in.HomePurchaseYear != 0 && in.HomePurchaseYear < in.BaseYear {
		return domain.NewValidationError("home_purchase_year", "must not be before base year %d", in.BaseYear)
	}
	if in.WeddingYear != 0 && in.WeddingYear < in.BaseYear {
		return domain.NewValidationError("wedding_year", "must not be before base year %d", in.BaseYear)
	}
	return nil
}

// LoadBatchFile loads a households file. Every household is defaulted and
// validated; names must be present and unique.
func (ip *InputParser) LoadBatchFile(filename string) (*domain.BatchFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var raw struct {
		Households []struct {
			Name   string    `yaml:"name"`
			Inputs yaml.Node `yaml:"inputs"`
		} `yaml:"households"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(raw.Households) == 0 {
		return nil, fmt.Errorf("no households provided")
	}

	batch := &domain.BatchFile{Households: make([]domain.NamedInputs, 0, len(raw.Households))}
	seen := make(map[string]bool, len(raw.Households))
	for i, h := range raw.Households {
		if h.Name == "" {
			return nil, fmt.Errorf("household %d: name is required", i)
		}
		if seen[h.Name] {
			return nil, fmt.Errorf("household %d: duplicate name %q", i, h.Name)
		}
		seen[h.Name] = true

		inputs, err := ip.decodeInputs(&h.Inputs)
		if err != nil {
			return nil, fmt.Errorf("household %d (%s): %w", i, h.Name, err)
		}
		if err := ip.ValidateInputs(inputs); err != nil {
			return nil, fmt.Errorf("household %d (%s) validation failed: %w", i, h.Name, err)
		}
		batch.Households = append(batch.Households, domain.NamedInputs{Name: h.Name, Inputs: *inputs})
	}
	return batch, nil
}

// SaveInputs writes inputs as YAML.
func (ip *InputParser) SaveInputs(inputs *domain.CalculatorInputs, filename string) error {
	data, err := yaml.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleInputs returns a complete two-earner household used by the
// example command and documentation.
func CreateExampleInputs() domain.CalculatorInputs {
	return domain.CalculatorInputs{
		CurrentAge:                  35,
		RetirementAge:               65,
		SpouseAge:                   33,
		SpouseRetirementAge:         63,
		State:                       "VA",
		BaseYear:                    time.Now().Year(),
		AnnualIncome:                decimal.NewFromInt(100000),
		IncomeGrowthRate:            DefaultIncomeGrowthRate,
		AnnualBonus:                 decimal.NewFromInt(5000),
		SpouseAnnualIncome:          decimal.NewFromInt(65000),
		SpouseIncomeGrowthRate:      decimal.NewFromFloat(2.5),
		AnnualExpenses:              decimal.NewFromInt(95000),
		CashSavings:                 decimal.NewFromInt(25000),
		RetirementAccounts:          decimal.NewFromInt(150000),
		RothAccounts:                decimal.NewFromInt(50000),
		TaxableInvestments:          decimal.NewFromInt(75000),
		Annual401kContribution:      decimal.NewFromInt(19500),
		AnnualRothContribution:      decimal.NewFromInt(6000),
		AnnualTaxableContribution:   decimal.NewFromInt(5000),
		InvestmentReturnRate:        DefaultInvestmentReturnRate,
		RiskProfile:                 domain.RiskModerate,
		HomeValue:                   decimal.NewFromInt(400000),
		RealEstateAppreciation:      DefaultRealEstateAppreciation,
		MortgageBalance:             decimal.NewFromInt(300000),
		MortgageInterestRate:        decimal.NewFromInt(4),
		MortgageYearsRemaining:      27,
		StudentLoanBalance:          decimal.NewFromInt(18000),
		StudentLoanRate:             decimal.NewFromFloat(5.5),
		AutoLoanBalance:             decimal.NewFromInt(12000),
		AutoLoanRate:                decimal.NewFromFloat(6.9),
		CreditCardDebt:              decimal.NewFromInt(3500),
		CreditCardRate:              decimal.NewFromFloat(21.9),
		NumberOfChildren:            2,
		CostPerChild:                decimal.NewFromInt(12000),
		InflationRate:               DefaultInflationRate,
		RetirementWithdrawalRate:    DefaultWithdrawalRate,
		LifeExpectancy:              DefaultLifeExpectancy,
		SocialSecurityClaimingAge:   DefaultClaimingAge,
		SpouseClaimingAge:           DefaultClaimingAge,
		DesiredRetirementSpending:   decimal.NewFromInt(110000),
	}
}
