package compare

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleResultSet() *ComparisonSet {
	base := ComparisonResult{
		ScenarioName:           "household",
		Description:            "Current plan",
		RetirementAge:          65,
		ClaimingAge:            67,
		WithdrawalRate:         decimal.NewFromInt(4),
		TotalRetirementSavings: decimal.NewFromInt(2500000),
		AnnualRetirementIncome: decimal.NewFromInt(130000),
		SustainabilityScore:    90,
		SuccessProbability:     86,
		PortfolioLongevity:     95,
		FinalNetWorth:          decimal.NewFromInt(4000000),
	}
	alt := ComparisonResult{
		ScenarioName:           "postpone_2yr",
		Description:            "Work 2 more year(s) before retiring",
		RetirementAge:          67,
		ClaimingAge:            67,
		WithdrawalRate:         decimal.NewFromInt(4),
		TotalRetirementSavings: decimal.NewFromInt(2900000),
		AnnualRetirementIncome: decimal.NewFromInt(146000),
		SustainabilityScore:    95,
		SuccessProbability:     90,
		PortfolioLongevity:     97,
		FinalNetWorth:          decimal.NewFromInt(4600000),
	}
	mc := NewMetricsCalculator()
	alt = mc.CalculateComparison(alt, base)

	set := &ComparisonSet{
		BaseScenarioName:   "household",
		Seed:               42,
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
		ConfigPath:         "/path/to/household.yaml",
	}
	set.Recommendations = GenerateRecommendations(set)
	return set
}

func testHousehold() *domain.CalculatorInputs {
	return &domain.CalculatorInputs{
		CurrentAge:                35,
		RetirementAge:             65,
		BaseYear:                  2025,
		AnnualIncome:              decimal.NewFromInt(100000),
		IncomeGrowthRate:          decimal.NewFromInt(3),
		AnnualExpenses:            decimal.NewFromInt(45000),
		CashSavings:               decimal.NewFromInt(25000),
		RetirementAccounts:        decimal.NewFromInt(150000),
		RothAccounts:              decimal.NewFromInt(50000),
		TaxableInvestments:        decimal.NewFromInt(75000),
		Annual401kContribution:    decimal.NewFromInt(19500),
		AnnualRothContribution:    decimal.NewFromInt(6000),
		AnnualTaxableContribution: decimal.NewFromInt(5000),
		InvestmentReturnRate:      decimal.NewFromInt(7),
		RiskProfile:               domain.RiskModerate,
		RealEstateAppreciation:    decimal.NewFromFloat(3.5),
		MortgageBalance:           decimal.NewFromInt(300000),
		MortgageInterestRate:      decimal.NewFromInt(4),
		MortgageYearsRemaining:    30,
		InflationRate:             decimal.NewFromFloat(2.5),
		RetirementWithdrawalRate:  decimal.NewFromInt(4),
		LifeExpectancy:            90,
		SocialSecurityClaimingAge: 67,
		DesiredRetirementSpending: decimal.NewFromInt(80000),
	}
}
