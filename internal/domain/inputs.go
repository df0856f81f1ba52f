package domain

import (
	"github.com/shopspring/decimal"
)

// RiskProfile tags the household's investment posture. It selects market
// volatility in the stochastic projection.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// Valid reports whether the profile is one of the known tags. The empty
// profile is accepted and treated as moderate.
func (rp RiskProfile) Valid() bool {
	switch rp {
	case "", RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// CalculatorInputs is the flat input record consumed by the projection engine.
// Rates are percentages (7.0 means 7%) and are converted to fractions inside
// the engine. Life event years are calendar years.
type CalculatorInputs struct {
	// Personal
	CurrentAge          int    `yaml:"current_age" json:"current_age"`
	RetirementAge       int    `yaml:"retirement_age" json:"retirement_age"`
	SpouseAge           int    `yaml:"spouse_age,omitempty" json:"spouse_age,omitempty"`
	SpouseRetirementAge int    `yaml:"spouse_retirement_age,omitempty" json:"spouse_retirement_age,omitempty"`
	State               string `yaml:"state,omitempty" json:"state,omitempty"`
	BaseYear            int    `yaml:"base_year,omitempty" json:"base_year,omitempty"`

	// Income
	AnnualIncome           decimal.Decimal `yaml:"annual_income" json:"annual_income"`
	IncomeGrowthRate       decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	AnnualBonus            decimal.Decimal `yaml:"annual_bonus,omitempty" json:"annual_bonus,omitempty"`
	SpouseAnnualIncome     decimal.Decimal `yaml:"spouse_annual_income,omitempty" json:"spouse_annual_income,omitempty"`
	SpouseIncomeGrowthRate decimal.Decimal `yaml:"spouse_income_growth_rate,omitempty" json:"spouse_income_growth_rate,omitempty"`
	SpouseAnnualBonus      decimal.Decimal `yaml:"spouse_annual_bonus,omitempty" json:"spouse_annual_bonus,omitempty"`
	AnnualExpenses         decimal.Decimal `yaml:"annual_expenses" json:"annual_expenses"`

	// Assets
	CashSavings               decimal.Decimal `yaml:"cash_savings" json:"cash_savings"`
	RetirementAccounts        decimal.Decimal `yaml:"retirement_accounts" json:"retirement_accounts"`
	RothAccounts              decimal.Decimal `yaml:"roth_accounts" json:"roth_accounts"`
	TaxableInvestments        decimal.Decimal `yaml:"taxable_investments" json:"taxable_investments"`
	Annual401kContribution    decimal.Decimal `yaml:"annual_401k_contribution" json:"annual_401k_contribution"`
	AnnualRothContribution    decimal.Decimal `yaml:"annual_roth_contribution" json:"annual_roth_contribution"`
	AnnualTaxableContribution decimal.Decimal `yaml:"annual_taxable_contribution" json:"annual_taxable_contribution"`
	InvestmentReturnRate      decimal.Decimal `yaml:"investment_return_rate" json:"investment_return_rate"`
	RiskProfile               RiskProfile     `yaml:"risk_profile,omitempty" json:"risk_profile,omitempty"`
	HomeValue                 decimal.Decimal `yaml:"home_value,omitempty" json:"home_value,omitempty"`
	RealEstateAppreciation    decimal.Decimal `yaml:"real_estate_appreciation_rate,omitempty" json:"real_estate_appreciation_rate,omitempty"`

	// Liabilities
	MortgageBalance        decimal.Decimal `yaml:"mortgage_balance" json:"mortgage_balance"`
	MortgageInterestRate   decimal.Decimal `yaml:"mortgage_interest_rate" json:"mortgage_interest_rate"`
	MortgageYearsRemaining int             `yaml:"mortgage_years_remaining,omitempty" json:"mortgage_years_remaining,omitempty"`
	StudentLoanBalance     decimal.Decimal `yaml:"student_loan_balance,omitempty" json:"student_loan_balance,omitempty"`
	StudentLoanRate        decimal.Decimal `yaml:"student_loan_rate,omitempty" json:"student_loan_rate,omitempty"`
	AutoLoanBalance        decimal.Decimal `yaml:"auto_loan_balance,omitempty" json:"auto_loan_balance,omitempty"`
	AutoLoanRate           decimal.Decimal `yaml:"auto_loan_rate,omitempty" json:"auto_loan_rate,omitempty"`
	CreditCardDebt         decimal.Decimal `yaml:"credit_card_debt,omitempty" json:"credit_card_debt,omitempty"`
	CreditCardRate         decimal.Decimal `yaml:"credit_card_rate,omitempty" json:"credit_card_rate,omitempty"`

	// Life events. A zero year disables the event.
	WeddingYear      int             `yaml:"wedding_year,omitempty" json:"wedding_year,omitempty"`
	WeddingCost      decimal.Decimal `yaml:"wedding_cost,omitempty" json:"wedding_cost,omitempty"`
	NumberOfChildren int             `yaml:"number_of_children,omitempty" json:"number_of_children,omitempty"`
	CostPerChild     decimal.Decimal `yaml:"cost_per_child,omitempty" json:"cost_per_child,omitempty"`
	HomePurchaseYear int             `yaml:"home_purchase_year,omitempty" json:"home_purchase_year,omitempty"`
	HomeDownPayment  decimal.Decimal `yaml:"home_down_payment,omitempty" json:"home_down_payment,omitempty"`

	// Assumptions
	InflationRate               decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	RetirementWithdrawalRate    decimal.Decimal `yaml:"retirement_withdrawal_rate" json:"retirement_withdrawal_rate"`
	LifeExpectancy              int             `yaml:"life_expectancy" json:"life_expectancy"`
	SocialSecurityBenefit       decimal.Decimal `yaml:"social_security_benefit,omitempty" json:"social_security_benefit,omitempty"`
	SpouseSocialSecurityBenefit decimal.Decimal `yaml:"spouse_social_security_benefit,omitempty" json:"spouse_social_security_benefit,omitempty"`
	SocialSecurityClaimingAge   int             `yaml:"social_security_claiming_age,omitempty" json:"social_security_claiming_age,omitempty"`
	SpouseClaimingAge           int             `yaml:"spouse_claiming_age,omitempty" json:"spouse_claiming_age,omitempty"`
	AnnualPension               decimal.Decimal `yaml:"annual_pension,omitempty" json:"annual_pension,omitempty"`
	DesiredRetirementSpending   decimal.Decimal `yaml:"desired_retirement_spending" json:"desired_retirement_spending"`
}

// HasSpouse reports whether spouse fields participate in the projection.
func (ci CalculatorInputs) HasSpouse() bool {
	return ci.SpouseAge > 0 || ci.SpouseAnnualIncome.GreaterThan(decimal.Zero) ||
		ci.SpouseSocialSecurityBenefit.GreaterThan(decimal.Zero)
}

// OtherDebt is the combined student, auto and credit card balance.
func (ci CalculatorInputs) OtherDebt() decimal.Decimal {
	return ci.StudentLoanBalance.Add(ci.AutoLoanBalance).Add(ci.CreditCardDebt)
}

// TotalInvestments is the sum of the three invested account classes.
func (ci CalculatorInputs) TotalInvestments() decimal.Decimal {
	return ci.RetirementAccounts.Add(ci.RothAccounts).Add(ci.TaxableInvestments)
}

// TotalContributions is the yearly amount saved into invested accounts.
func (ci CalculatorInputs) TotalContributions() decimal.Decimal {
	return ci.Annual401kContribution.Add(ci.AnnualRothContribution).Add(ci.AnnualTaxableContribution)
}

// YearsToRetirement is the accumulation horizon, never negative.
func (ci CalculatorInputs) YearsToRetirement() int {
	if ci.RetirementAge < ci.CurrentAge {
		return 0
	}
	return ci.RetirementAge - ci.CurrentAge
}

// HouseholdIncome is the gross salary and bonus of both earners.
func (ci CalculatorInputs) HouseholdIncome() decimal.Decimal {
	return ci.AnnualIncome.Add(ci.AnnualBonus).Add(ci.SpouseAnnualIncome).Add(ci.SpouseAnnualBonus)
}

// BatchFile holds several named households for batch runs.
type BatchFile struct {
	Households []NamedInputs `yaml:"households" json:"households"`
}

// NamedInputs labels one household in a batch.
type NamedInputs struct {
	Name   string           `yaml:"name" json:"name"`
	Inputs CalculatorInputs `yaml:"inputs" json:"inputs"`
}
