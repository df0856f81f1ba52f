package domain

import (
	"github.com/shopspring/decimal"
)

// NetWorthPoint is the start-of-year household balance sheet for one age.
type NetWorthPoint struct {
	Age                int             `json:"age"`
	Year               int             `json:"year"`
	Cash               decimal.Decimal `json:"cash"`
	RetirementAccounts decimal.Decimal `json:"retirementAccounts"`
	RothAccounts       decimal.Decimal `json:"rothAccounts"`
	TaxableInvestments decimal.Decimal `json:"taxableInvestments"`
	RealEstateValue    decimal.Decimal `json:"realEstateValue"`
	RealEstateEquity   decimal.Decimal `json:"realEstateEquity"`
	MortgageBalance    decimal.Decimal `json:"mortgageBalance"`
	OtherDebt          decimal.Decimal `json:"otherDebt"`
	TotalNetWorth      decimal.Decimal `json:"totalNetWorth"`
	IsRetirementAge    bool            `json:"isRetirementAge"`
}

// Investments is the sum of the three invested account classes.
func (p NetWorthPoint) Investments() decimal.Decimal {
	return p.RetirementAccounts.Add(p.RothAccounts).Add(p.TaxableInvestments)
}

// IncomeSourcesPoint breaks one year's household income into its sources.
type IncomeSourcesPoint struct {
	Age                   int             `json:"age"`
	Year                  int             `json:"year"`
	PrimaryIncome         decimal.Decimal `json:"primaryIncome"`
	SpouseIncome          decimal.Decimal `json:"spouseIncome"`
	SocialSecurity        decimal.Decimal `json:"socialSecurity"`
	SpouseSocialSecurity  decimal.Decimal `json:"spouseSocialSecurity"`
	Pension               decimal.Decimal `json:"pension"`
	RMD                   decimal.Decimal `json:"rmd"`
	RetirementWithdrawals decimal.Decimal `json:"retirementWithdrawals"`
	TaxableWithdrawals    decimal.Decimal `json:"taxableWithdrawals"`
	TotalIncome           decimal.Decimal `json:"totalIncome"`
	IsRetirementAge       bool            `json:"isRetirementAge"`
}

// WithdrawalStrategyPoint tracks portfolio balances under the 3%, 4% and 5%
// withdrawal rules.
type WithdrawalStrategyPoint struct {
	Age             int             `json:"age"`
	Year            int             `json:"year"`
	Conservative    decimal.Decimal `json:"conservative"`
	Moderate        decimal.Decimal `json:"moderate"`
	Aggressive      decimal.Decimal `json:"aggressive"`
	IsRetirementAge bool            `json:"isRetirementAge"`
}

// RiskProfilePoint tracks portfolio balances under 4%, 6% and 8% returns.
type RiskProfilePoint struct {
	Age             int             `json:"age"`
	Year            int             `json:"year"`
	Conservative    decimal.Decimal `json:"conservative"`
	Moderate        decimal.Decimal `json:"moderate"`
	Aggressive      decimal.Decimal `json:"aggressive"`
	IsRetirementAge bool            `json:"isRetirementAge"`
}

// DebtPayoffPoint holds the remaining loan balances at the start of a year.
type DebtPayoffPoint struct {
	Age             int             `json:"age"`
	Year            int             `json:"year"`
	Mortgage        decimal.Decimal `json:"mortgage"`
	StudentLoan     decimal.Decimal `json:"studentLoan"`
	AutoLoan        decimal.Decimal `json:"autoLoan"`
	CreditCard      decimal.Decimal `json:"creditCard"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	IsRetirementAge bool            `json:"isRetirementAge"`
}

// SocialSecurityDataPoint is one row of the claiming-age comparison.
// MonthlyBenefit combines primary and spouse benefits.
type SocialSecurityDataPoint struct {
	ClaimingAge    int             `json:"claimingAge"`
	PrimaryMonthly decimal.Decimal `json:"primaryMonthly"`
	SpouseMonthly  decimal.Decimal `json:"spouseMonthly"`
	MonthlyBenefit decimal.Decimal `json:"monthlyBenefit"`
	LifetimeTotal  decimal.Decimal `json:"lifetimeTotal"`
}

// RetirementPlan is the complete result of one calculation. It is built from
// scratch on every run and carries no references to engine state.
type RetirementPlan struct {
	Seed          int64 `json:"seed"`
	Deterministic bool  `json:"deterministic"`

	TotalRetirementSavings          decimal.Decimal `json:"totalRetirementSavings"`
	EstimatedAnnualRetirementIncome decimal.Decimal `json:"estimatedAnnualRetirementIncome"`
	IncomeReplacementRatio          decimal.Decimal `json:"incomeReplacementRatio"`
	MonthlySocialSecurity           decimal.Decimal `json:"monthlySocialSecurity"`
	SpouseMonthlySocialSecurity     decimal.Decimal `json:"spouseMonthlySocialSecurity"`
	SustainabilityScore             int             `json:"sustainabilityScore"`
	SuccessProbability              int             `json:"successProbability"`
	PortfolioLongevity              int             `json:"portfolioLongevity"`

	NetWorthProjection   []NetWorthPoint           `json:"netWorthProjection"`
	IncomeSources        []IncomeSourcesPoint      `json:"incomeSources"`
	WithdrawalStrategies []WithdrawalStrategyPoint `json:"withdrawalStrategies"`
	RiskProfiles         []RiskProfilePoint        `json:"riskProfiles"`
	SocialSecurity       []SocialSecurityDataPoint `json:"socialSecurity"`
	DebtPayoff           []DebtPayoffPoint         `json:"debtPayoff"`
	Recommendations      []string                  `json:"recommendations"`

	Inputs CalculatorInputs `json:"inputs"`
}

// NetWorthAt returns the net worth point for an age.
func (rp RetirementPlan) NetWorthAt(age int) (NetWorthPoint, bool) {
	for _, p := range rp.NetWorthProjection {
		if p.Age == age {
			return p, true
		}
	}
	return NetWorthPoint{}, false
}

// FinalNetWorth is the last projected total, zero for an empty projection.
func (rp RetirementPlan) FinalNetWorth() decimal.Decimal {
	if len(rp.NetWorthProjection) == 0 {
		return decimal.Zero
	}
	return rp.NetWorthProjection[len(rp.NetWorthProjection)-1].TotalNetWorth
}

// PeakNetWorth returns the highest total and the age it occurs at.
func (rp RetirementPlan) PeakNetWorth() (decimal.Decimal, int) {
	peak, age := decimal.Zero, 0
	for i, p := range rp.NetWorthProjection {
		if i == 0 || p.TotalNetWorth.GreaterThan(peak) {
			peak, age = p.TotalNetWorth, p.Age
		}
	}
	return peak, age
}

// DebtFreeAge is the first age with no outstanding debt, or 0 if debt never
// clears inside the projection.
func (rp RetirementPlan) DebtFreeAge() int {
	for _, p := range rp.DebtPayoff {
		if p.TotalDebt.LessThanOrEqual(decimal.Zero) {
			return p.Age
		}
	}
	return 0
}
