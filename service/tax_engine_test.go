package service

import (
	"math"
	"reflect"
	"testing"

	"naija-tax/domain"
)

const moneyTolerance = 0.005

func assertMoney(t *testing.T, label string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > moneyTolerance {
		t.Errorf("%s: expected %.2f, got %.2f", label, expected, actual)
	}
}

func TestComputeTax_FourMillionNoDeductions(t *testing.T) {

	result := ComputeTax(4_000_000, domain.Deductions{})

	assertMoney(t, "taxable", 4_000_000, result.TaxableIncome)
	assertMoney(t, "total tax", 509_999.82, result.TotalTax)
	assertMoney(t, "net", 3_490_000.18, result.NetIncome)
	assertMoney(t, "effective rate", 12.75, result.EffectiveRate)

	// Quoted as roughly 510,000 for this income.
	if math.Abs(result.TotalTax-510_000) > 1 {
		t.Errorf("expected tax of about 510000, got %.2f", result.TotalTax)
	}

	if len(result.Breakdown) != 3 {
		t.Fatalf("expected 3 brackets, got %d", len(result.Breakdown))
	}

	expected := []domain.BracketTax{
		{Bracket: "First ₦800,000", Amount: 800_001, Tax: 0},
		{Bracket: "₦800,001 - ₦3,000,000", Amount: 2_200_000, Tax: 330_000},
		{Bracket: "₦3,000,001 - ₦12,000,000", Amount: 999_999, Tax: 179_999.82},
	}
	for i, want := range expected {
		got := result.Breakdown[i]
		if got.Bracket != want.Bracket {
			t.Errorf("bracket %d: expected %q, got %q", i, want.Bracket, got.Bracket)
		}
		assertMoney(t, want.Bracket+" amount", want.Amount, got.Amount)
		assertMoney(t, want.Bracket+" tax", want.Tax, got.Tax)
	}
}

func TestComputeTax_AtTaxFreeThreshold(t *testing.T) {

	result := ComputeTax(800_000, domain.Deductions{})

	if result.TotalTax != 0 {
		t.Errorf("expected no tax, got %.2f", result.TotalTax)
	}
	if result.TaxableIncome != 800_000 {
		t.Errorf("expected taxable 800000, got %.2f", result.TaxableIncome)
	}
	if len(result.Breakdown) != 1 || result.Breakdown[0].Amount != 800_000 {
		t.Errorf("expected only the tax-free bracket, got %+v", result.Breakdown)
	}
}

func TestComputeTax_FirstBracketHoldsBothBounds(t *testing.T) {

	result := ComputeTax(800_001, domain.Deductions{})

	if result.TotalTax != 0 {
		t.Errorf("expected no tax, got %.2f", result.TotalTax)
	}
	if len(result.Breakdown) != 1 || result.Breakdown[0].Amount != 800_001 {
		t.Errorf("expected 800001 in the tax-free bracket, got %+v", result.Breakdown)
	}
	if ZeroTaxReason(result) == "" {
		t.Errorf("expected a zero-tax reason")
	}

	next := ComputeTax(800_002, domain.Deductions{})
	assertMoney(t, "tax on the first taxed naira", 0.15, next.TotalTax)
}

func TestComputeTax_ZeroIncome(t *testing.T) {

	result := ComputeTax(0, domain.Deductions{})

	if result.TaxableIncome != 0 || result.TotalTax != 0 || result.EffectiveRate != 0 {
		t.Errorf("expected all zero, got %+v", result)
	}
	if len(result.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %+v", result.Breakdown)
	}
}

func TestComputeTax_DeductionsExceedIncome(t *testing.T) {

	result := ComputeTax(500_000, domain.Deductions{Rent: 400_000, Insurance: 300_000})

	if result.TotalDeductions != 700_000 {
		t.Errorf("expected deductions 700000, got %.2f", result.TotalDeductions)
	}
	if result.TaxableIncome != 0 {
		t.Errorf("expected taxable 0, got %.2f", result.TaxableIncome)
	}
	if result.TotalTax != 0 {
		t.Errorf("expected tax 0, got %.2f", result.TotalTax)
	}
	if result.NetIncome != 500_000 {
		t.Errorf("expected net 500000, got %.2f", result.NetIncome)
	}
}

func TestComputeTax_TopBracketUnbounded(t *testing.T) {

	result := ComputeTax(100_000_000, domain.Deductions{})

	if len(result.Breakdown) != 6 {
		t.Fatalf("expected all 6 brackets, got %d", len(result.Breakdown))
	}
	top := result.Breakdown[5]
	assertMoney(t, "top bracket amount", 49_999_999, top.Amount)
	assertMoney(t, "top bracket tax", 12_499_999.75, top.Tax)

	// 0 + 330,000 + 1,620,000 + 2,730,000 + 5,750,000 + 12,499,999.75
	assertMoney(t, "total tax", 22_929_999.75, result.TotalTax)
}

func TestComputeTax_MalformedInputsTreatedAsZero(t *testing.T) {

	nan := math.NaN()
	inf := math.Inf(1)

	result := ComputeTax(nan, domain.Deductions{Mortgage: -5, Pension: inf})
	if result.GrossIncome != 0 || result.TotalTax != 0 || result.TotalDeductions != 0 {
		t.Errorf("expected zeroed result, got %+v", result)
	}

	result = ComputeTax(4_000_000, domain.Deductions{Mortgage: nan, Pension: -100, Rent: math.Inf(-1)})
	assertMoney(t, "total tax", 509_999.82, result.TotalTax)
}

func TestComputeTax_Invariants(t *testing.T) {

	incomes := []float64{0, 1, 799_999, 800_000, 800_001, 2_999_999.5, 3_000_000,
		12_000_000, 25_000_001, 49_999_999, 50_000_000, 73_456_789.12, 1e10}
	deductions := []domain.Deductions{
		{},
		{Mortgage: 100_000, Pension: 80_000, Rent: 200_000, Insurance: 300_000},
		{Insurance: 1e9},
	}

	for _, income := range incomes {
		for _, d := range deductions {
			r := ComputeTax(income, d)

			wantTaxable := math.Max(0, income-d.Total())
			if r.TaxableIncome != wantTaxable {
				t.Errorf("income %.2f: taxable %.2f, want %.2f", income, r.TaxableIncome, wantTaxable)
			}

			sum := 0.0
			allocated := 0.0
			for _, b := range r.Breakdown {
				sum += b.Tax
				allocated += b.Amount
			}
			if sum != r.TotalTax {
				t.Errorf("income %.2f: bracket taxes %.6f != total %.6f", income, sum, r.TotalTax)
			}
			if math.Abs(allocated-r.TaxableIncome) > 1e-6 {
				t.Errorf("income %.2f: allocated %.2f of taxable %.2f", income, allocated, r.TaxableIncome)
			}
			if r.NetIncome != income-r.TotalTax || r.NetIncome > income {
				t.Errorf("income %.2f: bad net %.2f", income, r.NetIncome)
			}
			if r.TotalTax < 0 {
				t.Errorf("income %.2f: negative tax", income)
			}
			for i, b := range r.Breakdown {
				if b.Bracket != taxBrackets[i].Label {
					t.Errorf("income %.2f: breakdown %d is %q, want %q", income, i, b.Bracket, taxBrackets[i].Label)
				}
			}
		}
	}
}

func TestComputeTax_Monotonic(t *testing.T) {

	d := domain.Deductions{Pension: 50_000, Insurance: 300_000}
	prev := -1.0
	for income := 0.0; income <= 80_000_000; income += 250_000 {
		tax := ComputeTax(income, d).TotalTax
		if tax < prev {
			t.Fatalf("tax decreased at income %.0f: %.2f < %.2f", income, tax, prev)
		}
		prev = tax
	}
}

func TestComputeTax_Idempotent(t *testing.T) {

	d := domain.Deductions{Mortgage: 1_234_567.89, Pension: 98_765.43, Rent: 500_000, Insurance: 300_000}

	a := ComputeTax(31_415_926.53, d)
	b := ComputeTax(31_415_926.53, d)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical results:\n%+v\n%+v", a, b)
	}
}

func TestTaxBrackets_TableShape(t *testing.T) {

	brackets := TaxBrackets()
	if len(brackets) != 6 {
		t.Fatalf("expected 6 brackets, got %d", len(brackets))
	}

	for i := 1; i < len(brackets); i++ {
		if brackets[i].Lower != brackets[i-1].Upper+1 {
			t.Errorf("bracket %d not contiguous with %d", i, i-1)
		}
		if brackets[i].Rate < brackets[i-1].Rate {
			t.Errorf("bracket %d rate decreases", i)
		}
	}
	if !math.IsInf(brackets[5].Upper, 1) {
		t.Errorf("top bracket should be unbounded")
	}

	brackets[1].Rate = 0.99
	if TaxBrackets()[1].Rate != 0.15 {
		t.Errorf("mutating the returned table changed the shared table")
	}
}

func TestProject_MonthlyDividesMoneyOnly(t *testing.T) {

	annual := ComputeTax(4_800_000, domain.Deductions{})
	annual.TotalTax = 600_000

	monthly := annual.Project(domain.PeriodMonthly)

	if monthly.TotalTax != 50_000 {
		t.Errorf("expected monthly tax 50000, got %.2f", monthly.TotalTax)
	}
	if monthly.GrossIncome != 400_000 {
		t.Errorf("expected monthly gross 400000, got %.2f", monthly.GrossIncome)
	}
	if monthly.EffectiveRate != annual.EffectiveRate {
		t.Errorf("effective rate should not change")
	}
	if monthly.Breakdown[1].Amount != annual.Breakdown[1].Amount/12 {
		t.Errorf("breakdown amounts should be projected")
	}
	if annual.TotalTax != 600_000 || annual.Breakdown[1].Amount != 2_200_000 {
		t.Errorf("projection mutated the annual result")
	}

	same := annual.Project(domain.PeriodAnnual)
	if !reflect.DeepEqual(same, annual) {
		t.Errorf("annual projection should be an identical copy")
	}
}

func TestZeroTaxReason(t *testing.T) {

	if got := ZeroTaxReason(ComputeTax(700_000, domain.Deductions{})); got == "" {
		t.Errorf("expected a reason for income under the threshold")
	}
	if got := ZeroTaxReason(ComputeTax(4_000_000, domain.Deductions{})); got != "" {
		t.Errorf("expected no reason when tax is owed, got %q", got)
	}
	if got := ZeroTaxReason(ComputeTax(0, domain.Deductions{})); got != "" {
		t.Errorf("expected no reason without income, got %q", got)
	}
}

func TestAnnualIncome(t *testing.T) {

	if got := AnnualIncome(250_000, domain.PeriodMonthly); got != 3_000_000 {
		t.Errorf("expected 3000000, got %.2f", got)
	}
	if got := AnnualIncome(250_000, domain.PeriodAnnual); got != 250_000 {
		t.Errorf("expected 250000, got %.2f", got)
	}
	if got := AnnualIncome(-1, domain.PeriodMonthly); got != 0 {
		t.Errorf("expected 0 for negative income, got %.2f", got)
	}
}
