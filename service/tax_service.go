package service

import (
	"errors"
	"fmt"
	"log"

	"naija-tax/domain"
	"naija-tax/repository"
)

var ErrInvalidPeriod = errors.New("period must be annual or monthly")

type TaxService struct {
	repo repository.CalculationRepository
}

// NewTaxService creates a TaxService that records calculations in repo.
func NewTaxService(repo repository.CalculationRepository) *TaxService {
	return &TaxService{repo: repo}
}

// NormalizePeriod defaults an empty period to annual and rejects anything
// other than annual or monthly.
func NormalizePeriod(p domain.Period) (domain.Period, error) {
	switch p {
	case "":
		return domain.PeriodAnnual, nil
	case domain.PeriodAnnual, domain.PeriodMonthly:
		return p, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidPeriod, p)
}

// Calculate normalises the input to an annual figure, resolves deductions
// and runs the tax computation. The returned result is on an annual basis.
func (s *TaxService) Calculate(
	input domain.TaxInput,
) (domain.TaxResult, domain.Deductions, error) {

	period, err := NormalizePeriod(input.Period)
	if err != nil {
		return domain.TaxResult{}, domain.Deductions{}, err
	}
	input.Period = period

	annualGross := AnnualIncome(input.GrossIncome, period)
	deductions := ResolveDeductions(annualGross, input.Overrides)
	result := ComputeTax(annualGross, deductions)

	// Recording is best effort
	if s.repo != nil {
		if err := s.repo.Save(input, result); err != nil {
			log.Printf("Warning: failed to save tax calculation: %v", err)
		}
	}

	return result, deductions, nil
}

// BuildReportData assembles the record handed to the report sender.
func BuildReportData(
	firstName, email string,
	period domain.Period,
	result domain.TaxResult,
	deductions domain.Deductions,
) domain.TaxReportData {
	return SanitizeReportData(domain.TaxReportData{
		FirstName:       firstName,
		Email:           email,
		GrossIncome:     result.GrossIncome,
		TotalDeductions: result.TotalDeductions,
		TaxableIncome:   result.TaxableIncome,
		TotalTax:        result.TotalTax,
		NetIncome:       result.NetIncome,
		EffectiveRate:   result.EffectiveRate,
		Period:          period,
		Mortgage:        deductions.Mortgage,
		Pension:         deductions.Pension,
		Rent:            deductions.Rent,
		Insurance:       deductions.Insurance,
	})
}

// SanitizeReportData replaces non-finite numbers with zero.
func SanitizeReportData(d domain.TaxReportData) domain.TaxReportData {
	d.GrossIncome = finite(d.GrossIncome)
	d.TotalDeductions = finite(d.TotalDeductions)
	d.TaxableIncome = finite(d.TaxableIncome)
	d.TotalTax = finite(d.TotalTax)
	d.NetIncome = finite(d.NetIncome)
	d.EffectiveRate = finite(d.EffectiveRate)
	d.Mortgage = finite(d.Mortgage)
	d.Pension = finite(d.Pension)
	d.Rent = finite(d.Rent)
	d.Insurance = finite(d.Insurance)
	if d.Period != domain.PeriodMonthly {
		d.Period = domain.PeriodAnnual
	}
	return d
}
