package domain

// PeriodType selects how many months of rent and debt service a result covers.
type PeriodType string

const (
	PeriodYearly    PeriodType = "yearly"
	PeriodQuarterly PeriodType = "quarterly"
)

// Factor returns the month multiplier for the period. Anything that is not
// "yearly" is treated as quarterly.
func (p PeriodType) Factor() float64 {
	if p == PeriodYearly {
		return 12
	}
	return 3
}

// InputState holds the assumptions entered by the user.
type InputState struct {
	AcquisitionCost   float64    `json:"acquisitionCost"`
	LoanAmount        float64    `json:"loanAmount"`
	InterestRate      float64    `json:"interestRate"` // annual nominal percent
	AmortizationYears float64    `json:"amortizationYears"`
	Rent              float64    `json:"rent"`
	UnitCount         float64    `json:"unitCount"`
	VacancyRate       float64    `json:"vacancyRate"`
	OpexRate          float64    `json:"opexRate"`
	PeriodType        PeriodType `json:"periodType"`
}

// DefaultInputState returns the assumptions a new session starts with.
func DefaultInputState() InputState {
	return InputState{
		InterestRate:      6.5,
		AmortizationYears: 10,
		VacancyRate:       0.1,
		OpexRate:          0.3,
		PeriodType:        PeriodYearly,
	}
}

// ResultSet is derived from exactly one InputState snapshot.
type ResultSet struct {
	GrossRevenue     float64 `json:"grossRevenue"`
	VacancyLoss      float64 `json:"vacancyLoss"`
	EffectiveRevenue float64 `json:"effectiveRevenue"`
	Opex             float64 `json:"opex"`
	NOI              float64 `json:"noi"`
	DebtService      float64 `json:"debtService"`
	CashFlow         float64 `json:"cashFlow"`
}
