package calculation

import (
	"fmt"
	"sync"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// sampleInputs is a 35 year old saving toward retirement at 65 with a
// mortgage, the reference household used across these tests.
func sampleInputs() domain.CalculatorInputs {
	return domain.CalculatorInputs{
		CurrentAge:                35,
		RetirementAge:             65,
		BaseYear:                  2025,
		AnnualIncome:              dec(100000),
		IncomeGrowthRate:          dec(3),
		AnnualExpenses:            dec(45000),
		CashSavings:               dec(25000),
		RetirementAccounts:        dec(150000),
		RothAccounts:              dec(50000),
		TaxableInvestments:        dec(75000),
		Annual401kContribution:    dec(19500),
		AnnualRothContribution:    dec(6000),
		AnnualTaxableContribution: dec(5000),
		InvestmentReturnRate:      dec(7),
		RiskProfile:               domain.RiskModerate,
		RealEstateAppreciation:    dec(3.5),
		MortgageBalance:           dec(300000),
		MortgageInterestRate:      dec(4),
		MortgageYearsRemaining:    30,
		InflationRate:             dec(2.5),
		RetirementWithdrawalRate:  dec(4),
		LifeExpectancy:            90,
		DesiredRetirementSpending: dec(80000),
	}
}

// TestLogger records every message it receives.
type TestLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *TestLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *TestLogger) Debugf(format string, args ...any) { l.add("debug", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.add("info", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.add("warn", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.add("error", format, args...) }

func (l *TestLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
