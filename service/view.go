package service

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"proforma-tool/domain"
)

const ResultViewTitle = "Pro Forma Results"

// exactDigits is enough fractional digits that rounding to cents never sees
// a tie the binary value does not have.
const exactDigits = 40

// FormatAmount renders v to two decimals from its exact binary value, ties
// away from zero, keeping the sign of any negative input ("-0.00"). Rounding
// happens here and nowhere in the calculation.
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	exact := new(big.Rat).SetFloat64(v).FloatString(exactDigits)
	return sign + decimal.RequireFromString(exact).StringFixed(2)
}

// FormatCurrency is FormatAmount with a dollar sign.
func FormatCurrency(v float64) string {
	return "$" + FormatAmount(v)
}

// BuildResultView lays out results the way the results panel shows them.
func BuildResultView(results domain.ResultSet) domain.ResultView {
	rows := []struct {
		label string
		value float64
	}{
		{"Gross Revenue", results.GrossRevenue},
		{"Vacancy Loss", results.VacancyLoss},
		{"Effective Revenue", results.EffectiveRevenue},
		{"Operating Expenses", results.Opex},
		{"Net Operating Income (NOI)", results.NOI},
		{"Debt Service", results.DebtService},
		{"Cash Flow", results.CashFlow},
	}

	view := domain.ResultView{
		Title: ResultViewTitle,
		Rows:  make([]domain.ViewRow, 0, len(rows)),
	}
	for _, r := range rows {
		view.Rows = append(view.Rows, domain.ViewRow{
			Label: r.label,
			Value: r.value,
			Text:  FormatCurrency(r.value),
		})
	}
	return view
}
