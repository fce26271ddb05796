package service

import (
	"math"

	"naija-tax/domain"
)

// DefaultDeductions derives the default deductions for an annual gross
// income. Without income there is nothing to default, so all fields are zero.
func DefaultDeductions(annualGrossIncome float64) domain.Deductions {
	gross := sanitize(annualGrossIncome)
	if gross <= 0 {
		return domain.Deductions{}
	}

	return domain.Deductions{
		Mortgage:  gross * DefaultMortgageRate,
		Pension:   gross * DefaultPensionRate,
		Rent:      math.Min(gross*DefaultRentRate, RentCap),
		Insurance: DefaultInsuranceFlat,
	}
}

// ResolveDeductions fills every field not present in overrides with its
// default. Rent is capped even when entered manually.
func ResolveDeductions(annualGrossIncome float64, overrides domain.DeductionOverrides) domain.Deductions {
	d := DefaultDeductions(annualGrossIncome)
	for field, value := range overrides {
		d.Set(field, sanitize(value))
	}
	d.Rent = math.Min(d.Rent, RentCap)
	return d
}

// DeductionSheet tracks deduction values across edits. A field set with
// Override keeps its value through Recompute until Reset.
type DeductionSheet struct {
	values domain.Deductions
	manual map[domain.DeductionField]bool
}

func NewDeductionSheet() *DeductionSheet {
	return &DeductionSheet{
		manual: make(map[domain.DeductionField]bool),
	}
}

func (s *DeductionSheet) Override(field domain.DeductionField, value float64) {
	value = sanitize(value)
	if field == domain.FieldRent {
		value = math.Min(value, RentCap)
	}
	s.values.Set(field, value)
	s.manual[field] = true
}

// Reset hands the field back to its default on the next Recompute.
func (s *DeductionSheet) Reset(field domain.DeductionField) {
	delete(s.manual, field)
}

func (s *DeductionSheet) IsManual(field domain.DeductionField) bool {
	return s.manual[field]
}

// Overrides returns the manually set fields and their values.
func (s *DeductionSheet) Overrides() domain.DeductionOverrides {
	out := make(domain.DeductionOverrides, len(s.manual))
	for field := range s.manual {
		out[field] = s.values.Get(field)
	}
	return out
}

// Recompute refreshes every non-manual field from the defaults for
// annualGrossIncome and returns the current values.
func (s *DeductionSheet) Recompute(annualGrossIncome float64) domain.Deductions {
	defaults := DefaultDeductions(annualGrossIncome)
	for _, field := range domain.DeductionFields {
		if s.manual[field] {
			continue
		}
		s.values.Set(field, defaults.Get(field))
	}
	return s.values
}

func (s *DeductionSheet) Values() domain.Deductions {
	return s.values
}
