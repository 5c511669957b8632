package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proforma-tool/domain"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"42":        42,
		"  3.5":     3.5,
		"-0.25":     -0.25,
		".5":        0.5,
		"1e3":       1000,
		"12abc":     12,
		"7.":        7,
		"1e":        1,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e999":     math.Inf(1),
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseNumber(raw), raw)
	}

	for _, raw := range []string{"", "abc", "-", ".", "$100"} {
		assert.True(t, math.IsNaN(ParseNumber(raw)), raw)
	}
}

func TestSetField_ReplacesOnlyNamedField(t *testing.T) {
	before := domain.DefaultInputState()

	after, err := SetField(before, "rent", "1500")
	require.NoError(t, err)

	assert.Equal(t, 1500.0, after.Rent)
	after.Rent = before.Rent
	assert.Equal(t, before, after)
}

func TestSetField_AllNumericFields(t *testing.T) {
	fields := []string{
		"acquisitionCost", "loanAmount", "interestRate", "amortizationYears",
		"rent", "unitCount", "vacancyRate", "opexRate",
	}
	state := domain.DefaultInputState()
	for i, name := range fields {
		var err error
		state, err = SetField(state, name, "1"+string(rune('0'+i)))
		require.NoError(t, err, name)
	}

	assert.Equal(t, domain.InputState{
		AcquisitionCost:   10,
		LoanAmount:        11,
		InterestRate:      12,
		AmortizationYears: 13,
		Rent:              14,
		UnitCount:         15,
		VacancyRate:       16,
		OpexRate:          17,
		PeriodType:        domain.PeriodYearly,
	}, state)
}

func TestSetField_GarbageBecomesNaN(t *testing.T) {
	state, err := SetField(domain.DefaultInputState(), "unitCount", "ten")

	require.NoError(t, err)
	assert.True(t, math.IsNaN(state.UnitCount))
}

func TestSetField_UnknownField(t *testing.T) {
	before := domain.DefaultInputState()

	after, err := SetField(before, "capRate", "5")

	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, before, after)
}

func TestSetPeriodType_StoresLiteral(t *testing.T) {
	state := SetPeriodType(domain.DefaultInputState(), "quarterly")
	assert.Equal(t, domain.PeriodQuarterly, state.PeriodType)

	state = SetPeriodType(state, "12")
	assert.Equal(t, domain.PeriodType("12"), state.PeriodType)
}
