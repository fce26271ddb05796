package service

import (
	"errors"
	"math"
	"testing"

	"naija-tax/domain"
)

type MockCalculationRepository struct {
	SaveCalled bool
	ForceError bool
	LastInput  domain.TaxInput
}

func (m *MockCalculationRepository) Save(
	input domain.TaxInput,
	result domain.TaxResult,
) error {
	m.SaveCalled = true
	m.LastInput = input
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

func TestCalculate_AnnualWithDefaults(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service := NewTaxService(mockRepo)

	input := domain.TaxInput{
		GrossIncome: 4_000_000,
		Period:      domain.PeriodAnnual,
	}

	result, deductions, err := service.Calculate(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 320k pension + 400k mortgage + 500k rent + 300k insurance
	assertMoney(t, "total deductions", 1_520_000, result.TotalDeductions)
	assertMoney(t, "taxable", 2_480_000, result.TaxableIncome)
	// 1,679,999 at 15%
	assertMoney(t, "tax", 251_999.85, result.TotalTax)

	if deductions.Rent != RentCap {
		t.Errorf("expected default rent at cap, got %.2f", deductions.Rent)
	}

	if !mockRepo.SaveCalled {
		t.Errorf("expected repository Save to be called")
	}
}

func TestCalculate_MonthlyIsAnnualised(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service := NewTaxService(mockRepo)

	zero := domain.DeductionOverrides{
		domain.FieldMortgage:  0,
		domain.FieldPension:   0,
		domain.FieldRent:      0,
		domain.FieldInsurance: 0,
	}

	monthly, _, err := service.Calculate(domain.TaxInput{
		GrossIncome: 400_000,
		Period:      domain.PeriodMonthly,
		Overrides:   zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	annual, _, err := service.Calculate(domain.TaxInput{
		GrossIncome: 4_800_000,
		Period:      domain.PeriodAnnual,
		Overrides:   zero,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if monthly.TotalTax != annual.TotalTax || monthly.GrossIncome != 4_800_000 {
		t.Errorf("expected monthly input to match annual: %+v vs %+v", monthly, annual)
	}
}

func TestCalculate_EmptyPeriodDefaultsToAnnual(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service := NewTaxService(mockRepo)

	_, _, err := service.Calculate(domain.TaxInput{GrossIncome: 1_000_000})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mockRepo.LastInput.Period != domain.PeriodAnnual {
		t.Errorf("expected annual, got %q", mockRepo.LastInput.Period)
	}
}

func TestCalculate_InvalidPeriod(t *testing.T) {

	mockRepo := &MockCalculationRepository{}
	service := NewTaxService(mockRepo)

	_, _, err := service.Calculate(domain.TaxInput{GrossIncome: 1000, Period: "weekly"})

	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	if mockRepo.SaveCalled {
		t.Errorf("repository Save should NOT be called")
	}
}

func TestCalculate_RepositoryFailureIsNotFatal(t *testing.T) {

	mockRepo := &MockCalculationRepository{ForceError: true}
	service := NewTaxService(mockRepo)

	result, _, err := service.Calculate(domain.TaxInput{GrossIncome: 4_000_000})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalTax <= 0 {
		t.Errorf("expected a tax result despite the save failure")
	}
}

func TestBuildReportData_SanitizesNumbers(t *testing.T) {

	result := ComputeTax(4_000_000, domain.Deductions{})
	result.EffectiveRate = math.NaN()

	data := BuildReportData("Ada", "ada@example.com", "", result, domain.Deductions{Rent: 100})

	if data.EffectiveRate != 0 {
		t.Errorf("expected NaN rate to become 0, got %v", data.EffectiveRate)
	}
	if data.Period != domain.PeriodAnnual {
		t.Errorf("expected annual period, got %q", data.Period)
	}
	if data.Rent != 100 || data.TotalTax != result.TotalTax {
		t.Errorf("unexpected report data %+v", data)
	}
}
