package service

import (
	"math"

	"naija-tax/domain"
)

// taxBrackets is the personal income tax table. Bounds are whole naira and
// contiguous; the top bracket is unbounded.
var taxBrackets = [...]domain.TaxBracket{
	{Lower: 0, Upper: 800_000, Rate: 0, Label: "First ₦800,000"},
	{Lower: 800_001, Upper: 3_000_000, Rate: 0.15, Label: "₦800,001 - ₦3,000,000"},
	{Lower: 3_000_001, Upper: 12_000_000, Rate: 0.18, Label: "₦3,000,001 - ₦12,000,000"},
	{Lower: 12_000_001, Upper: 25_000_000, Rate: 0.21, Label: "₦12,000,001 - ₦25,000,000"},
	{Lower: 25_000_001, Upper: 50_000_000, Rate: 0.23, Label: "₦25,000,001 - ₦50,000,000"},
	{Lower: 50_000_001, Upper: math.Inf(1), Rate: 0.25, Label: "Above ₦50,000,000"},
}

// TaxBrackets returns a copy of the bracket table in ascending order.
func TaxBrackets() []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(taxBrackets))
	copy(out, taxBrackets[:])
	return out
}

// capacity is the number of naira a bracket holds, counting both bounds.
func capacity(b domain.TaxBracket) float64 {
	return b.Upper - b.Lower + 1
}

// sanitize maps NaN, infinities and negative values to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// finite maps NaN and infinities to zero but keeps the sign.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func sanitizeDeductions(d domain.Deductions) domain.Deductions {
	return domain.Deductions{
		Mortgage:  sanitize(d.Mortgage),
		Pension:   sanitize(d.Pension),
		Rent:      sanitize(d.Rent),
		Insurance: sanitize(d.Insurance),
	}
}

// ComputeTax applies the progressive bracket table to annual gross income
// less deductions. It never fails: malformed inputs are treated as zero.
func ComputeTax(annualGrossIncome float64, deductions domain.Deductions) domain.TaxResult {
	gross := sanitize(annualGrossIncome)
	d := sanitizeDeductions(deductions)

	totalDeductions := d.Total()
	taxableIncome := math.Max(0, gross-totalDeductions)

	remainingIncome := taxableIncome
	totalTax := 0.0
	breakdown := []domain.BracketTax{}

	for _, bracket := range taxBrackets {
		if remainingIncome <= 0 {
			break
		}

		amountInBracket := math.Min(remainingIncome, capacity(bracket))
		if amountInBracket <= 0 {
			continue
		}

		tax := amountInBracket * bracket.Rate
		breakdown = append(breakdown, domain.BracketTax{
			Bracket: bracket.Label,
			Amount:  amountInBracket,
			Tax:     tax,
		})
		totalTax += tax
		remainingIncome -= amountInBracket
	}

	effectiveRate := 0.0
	if gross > 0 {
		effectiveRate = (totalTax / gross) * 100
	}

	return domain.TaxResult{
		GrossIncome:     gross,
		TotalDeductions: totalDeductions,
		TaxableIncome:   taxableIncome,
		Breakdown:       breakdown,
		TotalTax:        totalTax,
		NetIncome:       gross - totalTax,
		EffectiveRate:   effectiveRate,
	}
}

// AnnualIncome normalises an income figure for the given period.
func AnnualIncome(amount float64, period domain.Period) float64 {
	amount = sanitize(amount)
	if period == domain.PeriodMonthly {
		return amount * MonthsPerYear
	}
	return amount
}

// ZeroTaxReason explains a zero tax bill, or returns "" when tax is owed.
func ZeroTaxReason(result domain.TaxResult) string {
	if result.GrossIncome <= 0 || result.TotalTax > 0 {
		return ""
	}
	if result.TaxableIncome <= TaxFreeThreshold {
		return "Your taxable income is within the first ₦800,000 bracket which is tax-free under Nigerian tax law."
	}
	return "Your deductions have reduced your taxable income to the tax-free threshold."
}
