package output

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// buildTestPlan is a small hand-built plan: three projection years around a
// retirement at 65.
func buildTestPlan() *domain.RetirementPlan {
	return &domain.RetirementPlan{
		Seed:                            42,
		Deterministic:                   true,
		TotalRetirementSavings:          d(1000000),
		EstimatedAnnualRetirementIncome: d(64000),
		IncomeReplacementRatio:          d(80),
		MonthlySocialSecurity:           decimal.NewFromFloat(2500.5),
		SustainabilityScore:             85,
		SuccessProbability:              90,
		PortfolioLongevity:              95,
		NetWorthProjection: []domain.NetWorthPoint{
			{Age: 64, Year: 2049, Cash: d(20000), RetirementAccounts: d(600000), RothAccounts: d(150000), TaxableInvestments: d(150000),
				RealEstateValue: d(500000), RealEstateEquity: d(480000), MortgageBalance: d(20000), TotalNetWorth: d(1400000)},
			{Age: 65, Year: 2050, Cash: d(20000), RetirementAccounts: d(650000), RothAccounts: d(175000), TaxableInvestments: d(175000),
				RealEstateValue: d(510000), RealEstateEquity: d(510000), TotalNetWorth: d(1530000), IsRetirementAge: true},
			{Age: 66, Year: 2051, Cash: d(20000), RetirementAccounts: d(640000), RothAccounts: d(172000), TaxableInvestments: d(170000),
				RealEstateValue: d(520000), RealEstateEquity: d(520000), TotalNetWorth: d(1522000)},
		},
		IncomeSources: []domain.IncomeSourcesPoint{
			{Age: 64, Year: 2049, PrimaryIncome: d(150000), TotalIncome: d(150000)},
			{Age: 65, Year: 2050, SocialSecurity: d(30006), RetirementWithdrawals: d(40000), TotalIncome: d(70006), IsRetirementAge: true},
			{Age: 66, Year: 2051, SocialSecurity: d(30756), RetirementWithdrawals: d(40000), TotalIncome: d(70756)},
		},
		WithdrawalStrategies: []domain.WithdrawalStrategyPoint{
			{Age: 65, Year: 2050, Conservative: d(30000), Moderate: d(40000), Aggressive: d(50000), IsRetirementAge: true},
		},
		RiskProfiles: []domain.RiskProfilePoint{
			{Age: 64, Year: 2049, Conservative: d(700000), Moderate: d(900000), Aggressive: d(1100000)},
		},
		SocialSecurity: []domain.SocialSecurityDataPoint{
			{ClaimingAge: 62, PrimaryMonthly: d(1750), MonthlyBenefit: d(1750), LifetimeTotal: d(588000)},
			{ClaimingAge: 67, PrimaryMonthly: d(2500), MonthlyBenefit: d(2500), LifetimeTotal: d(690000)},
			{ClaimingAge: 70, PrimaryMonthly: d(3100), MonthlyBenefit: d(3100), LifetimeTotal: d(744000)},
		},
		DebtPayoff: []domain.DebtPayoffPoint{
			{Age: 64, Year: 2049, Mortgage: d(20000), TotalDebt: d(20000)},
			{Age: 65, Year: 2050, IsRetirementAge: true},
			{Age: 66, Year: 2051},
		},
		Recommendations: []string{"Your plan is on track. Review it annually."},
		Inputs: domain.CalculatorInputs{
			CurrentAge:                64,
			RetirementAge:             65,
			LifeExpectancy:            90,
			AnnualIncome:              d(150000),
			AnnualExpenses:            d(70000),
			InvestmentReturnRate:      d(7),
			InflationRate:             decimal.NewFromFloat(2.5),
			IncomeGrowthRate:          d(3),
			RetirementWithdrawalRate:  d(4),
			SocialSecurityClaimingAge: 67,
			DesiredRetirementSpending: d(80000),
		},
	}
}
