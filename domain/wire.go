package domain

import (
	"math"
	"strconv"
)

// Number encodes NaN and ±Inf as null, which JSON has no literal for.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// InputsWire is InputState as sent over JSON.
type InputsWire struct {
	AcquisitionCost   Number     `json:"acquisitionCost"`
	LoanAmount        Number     `json:"loanAmount"`
	InterestRate      Number     `json:"interestRate"`
	AmortizationYears Number     `json:"amortizationYears"`
	Rent              Number     `json:"rent"`
	UnitCount         Number     `json:"unitCount"`
	VacancyRate       Number     `json:"vacancyRate"`
	OpexRate          Number     `json:"opexRate"`
	PeriodType        PeriodType `json:"periodType"`
}

// ResultsWire is ResultSet as sent over JSON.
type ResultsWire struct {
	GrossRevenue     Number `json:"grossRevenue"`
	VacancyLoss      Number `json:"vacancyLoss"`
	EffectiveRevenue Number `json:"effectiveRevenue"`
	Opex             Number `json:"opex"`
	NOI              Number `json:"noi"`
	DebtService      Number `json:"debtService"`
	CashFlow         Number `json:"cashFlow"`
}

func (in InputState) Wire() InputsWire {
	return InputsWire{
		AcquisitionCost:   Number(in.AcquisitionCost),
		LoanAmount:        Number(in.LoanAmount),
		InterestRate:      Number(in.InterestRate),
		AmortizationYears: Number(in.AmortizationYears),
		Rent:              Number(in.Rent),
		UnitCount:         Number(in.UnitCount),
		VacancyRate:       Number(in.VacancyRate),
		OpexRate:          Number(in.OpexRate),
		PeriodType:        in.PeriodType,
	}
}

func (r ResultSet) Wire() ResultsWire {
	return ResultsWire{
		GrossRevenue:     Number(r.GrossRevenue),
		VacancyLoss:      Number(r.VacancyLoss),
		EffectiveRevenue: Number(r.EffectiveRevenue),
		Opex:             Number(r.Opex),
		NOI:              Number(r.NOI),
		DebtService:      Number(r.DebtService),
		CashFlow:         Number(r.CashFlow),
	}
}
