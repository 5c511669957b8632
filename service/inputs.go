package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"proforma-tool/domain"
)

var ErrUnknownField = errors.New("unknown input field")

// numericPrefix matches the longest leading decimal literal, as a browser's
// parseFloat would accept it.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads raw the way a form field is read: leading whitespace is
// skipped and the longest numeric prefix wins. Text with no numeric prefix
// gives NaN rather than an error.
func ParseNumber(raw string) float64 {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1)
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1)
	}

	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range literals come back as ±Inf with ErrRange
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// SetField parses raw and replaces the named numeric field, leaving the rest
// of the state untouched.
func SetField(state domain.InputState, name, raw string) (domain.InputState, error) {
	v := ParseNumber(raw)

	switch name {
	case "acquisitionCost":
		state.AcquisitionCost = v
	case "loanAmount":
		state.LoanAmount = v
	case "interestRate":
		state.InterestRate = v
	case "amortizationYears":
		state.AmortizationYears = v
	case "rent":
		state.Rent = v
	case "unitCount":
		state.UnitCount = v
	case "vacancyRate":
		state.VacancyRate = v
	case "opexRate":
		state.OpexRate = v
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return state, nil
}

// SetPeriodType stores value verbatim.
func SetPeriodType(state domain.InputState, value string) domain.InputState {
	state.PeriodType = domain.PeriodType(value)
	return state
}
