package calculation

import (
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// Payoff horizons for the simplified debt schedule.
const (
	StudentLoanTermYears = 10
	AutoLoanTermYears    = 5
	CreditCardTermYears  = 2
)

// DebtModel selects how non-mortgage debt shrinks in the net worth projection.
type DebtModel string

const (
	// DebtModelSchedule retires each loan on its fixed term. Default.
	DebtModelSchedule DebtModel = "schedule"
	// DebtModelDecay pays off a random 15-25% of the combined balance each year.
	DebtModelDecay DebtModel = "decay"
)

// Loan is one liability on the simplified fixed-term schedule. The level
// payment approximates interest with a flat markup of half the term's simple
// interest, and the balance is forced to zero once the term elapses.
type Loan struct {
	Balance   decimal.Decimal
	Rate      decimal.Decimal
	Payment   decimal.Decimal
	TermYears int
	Elapsed   int
}

// NewLoan prices a loan with payment = P * (1 + rate*term/2) / term.
func NewLoan(balance, rate decimal.Decimal, termYears int) Loan {
	if termYears <= 0 {
		termYears = 1
	}
	l := Loan{Balance: money(balance), Rate: rate, TermYears: termYears}
	if l.Balance.IsZero() {
		return l
	}
	term := decimal.NewFromInt(int64(termYears))
	markup := decimal.NewFromInt(1).Add(rate.Mul(term).Div(decimal.NewFromInt(2)))
	l.Payment = l.Balance.Mul(markup).Div(term).Round(2)
	return l
}

// Advance accrues a year of interest and applies one payment.
func (l Loan) Advance() Loan {
	if l.Balance.IsZero() {
		return l
	}
	l.Elapsed++
	if l.Elapsed >= l.TermYears {
		l.Balance = decimal.Zero
		return l
	}
	grown := l.Balance.Mul(decimal.NewFromInt(1).Add(l.Rate))
	l.Balance = money(grown.Sub(l.Payment))
	return l
}

// DebtSchedule holds the four household liabilities.
type DebtSchedule struct {
	Mortgage    Loan
	StudentLoan Loan
	AutoLoan    Loan
	CreditCard  Loan
}

// NewDebtSchedule builds the schedule from inputs.
func NewDebtSchedule(in domain.CalculatorInputs) DebtSchedule {
	mortgageTerm := in.MortgageYearsRemaining
	if mortgageTerm <= 0 {
		mortgageTerm = DefaultMortgageTermYears
	}
	return DebtSchedule{
		Mortgage:    NewLoan(in.MortgageBalance, pct(in.MortgageInterestRate), mortgageTerm),
		StudentLoan: NewLoan(in.StudentLoanBalance, pct(in.StudentLoanRate), StudentLoanTermYears),
		AutoLoan:    NewLoan(in.AutoLoanBalance, pct(in.AutoLoanRate), AutoLoanTermYears),
		CreditCard:  NewLoan(in.CreditCardDebt, pct(in.CreditCardRate), CreditCardTermYears),
	}
}

// Advance moves every loan forward one year.
func (ds DebtSchedule) Advance() DebtSchedule {
	return DebtSchedule{
		Mortgage:    ds.Mortgage.Advance(),
		StudentLoan: ds.StudentLoan.Advance(),
		AutoLoan:    ds.AutoLoan.Advance(),
		CreditCard:  ds.CreditCard.Advance(),
	}
}

// AddMortgage folds newly financed principal into the mortgage and restarts
// it on a 30-year term.
func (ds DebtSchedule) AddMortgage(principal decimal.Decimal, fallbackRate decimal.Decimal) DebtSchedule {
	rate := ds.Mortgage.Rate
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = fallbackRate
	}
	ds.Mortgage = NewLoan(ds.Mortgage.Balance.Add(principal), rate, DefaultMortgageTermYears)
	return ds
}

// Other is the combined non-mortgage balance.
func (ds DebtSchedule) Other() decimal.Decimal {
	return ds.StudentLoan.Balance.Add(ds.AutoLoan.Balance).Add(ds.CreditCard.Balance)
}

// Total is every outstanding balance.
func (ds DebtSchedule) Total() decimal.Decimal {
	return ds.Mortgage.Balance.Add(ds.Other())
}

// GenerateDebtPayoffData projects the four liabilities from current age
// through the projection horizon, injecting any planned home purchase.
func GenerateDebtPayoffData(in domain.CalculatorInputs) []domain.DebtPayoffPoint {
	schedule := NewDebtSchedule(in)
	years := projectionYears(in)
	points := make([]domain.DebtPayoffPoint, 0, years)

	for i := 0; i < years; i++ {
		age := in.CurrentAge + i
		year := in.BaseYear + i
		points = append(points, domain.DebtPayoffPoint{
			Age:             age,
			Year:            year,
			Mortgage:        schedule.Mortgage.Balance,
			StudentLoan:     schedule.StudentLoan.Balance,
			AutoLoan:        schedule.AutoLoan.Balance,
			CreditCard:      schedule.CreditCard.Balance,
			TotalDebt:       schedule.Total(),
			IsRetirementAge: age == in.RetirementAge,
		})

		if impact := ProjectLifeEvents(in, year, schedule.Mortgage.Balance); impact.HomePurchased {
			schedule = schedule.AddMortgage(impact.NewMortgageBalance.Sub(schedule.Mortgage.Balance), purchaseRate(in))
		}
		schedule = schedule.Advance()
	}
	return points
}

// purchaseRate is the rate a new home loan is written at.
func purchaseRate(in domain.CalculatorInputs) decimal.Decimal {
	if in.MortgageInterestRate.GreaterThan(decimal.Zero) {
		return pct(in.MortgageInterestRate)
	}
	return fallbackPurchaseRate
}
