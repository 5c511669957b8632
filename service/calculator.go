package service

import (
	"math"

	"proforma-tool/domain"
)

// LoanPayment returns the level monthly payment for the inputs' loan.
// A zero interest rate divides 0 by 0 and yields NaN.
func LoanPayment(inputs domain.InputState) float64 {
	monthlyRate := inputs.InterestRate / 100 / 12
	months := inputs.AmortizationYears * 12

	return (inputs.LoanAmount * monthlyRate) /
		(1 - math.Pow(1+monthlyRate, -months))
}

// Compute derives the pro forma results from a single inputs snapshot.
// It never fails; invalid inputs propagate as NaN or Inf.
func Compute(inputs domain.InputState) domain.ResultSet {
	factor := inputs.PeriodType.Factor()

	grossRevenue := inputs.Rent * inputs.UnitCount * factor
	vacancyLoss := grossRevenue * inputs.VacancyRate
	effectiveRevenue := grossRevenue - vacancyLoss
	opex := effectiveRevenue * inputs.OpexRate
	noi := effectiveRevenue - opex

	// debt service scales by the same factor as rent
	debtService := LoanPayment(inputs) * factor

	return domain.ResultSet{
		GrossRevenue:     grossRevenue,
		VacancyLoss:      vacancyLoss,
		EffectiveRevenue: effectiveRevenue,
		Opex:             opex,
		NOI:              noi,
		DebtService:      debtService,
		CashFlow:         noi - debtService,
	}
}
