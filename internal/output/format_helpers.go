package output

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var dollars = money.NewFormatter(0, ".", ",", "$", "$1")

// FormatCurrency formats a decimal as USD with cents and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.New(amount.Round(2).Shift(2).IntPart(), money.USD).Display()
}

// FormatDollars formats a decimal as whole USD.
func FormatDollars(amount decimal.Decimal) string {
	return dollars.Format(amount.Round(0).IntPart())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }

func ageLabel(v int) string {
	if v <= 0 {
		return "n/a"
	}
	return intToString(v)
}

func runMode(deterministic bool) string {
	if deterministic {
		return "deterministic"
	}
	return "stochastic"
}
