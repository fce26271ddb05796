package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"naija-tax/domain"
)

// FormatNaira renders an amount as two-decimal naira, e.g. ₦1,234,567.89.
func FormatNaira(amount float64) string {
	return formatMoney("₦", amount)
}

// FormatNGN is FormatNaira with an ASCII currency code, for outputs whose
// fonts lack the naira sign.
func FormatNGN(amount float64) string {
	return formatMoney("NGN ", amount)
}

func formatMoney(symbol string, amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	return sign + symbol + groupThousands(fixed[:dot]) + fixed[dot:]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}
	return decimal.NewFromFloat(rate).StringFixed(2) + "%"
}

func formatRate(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).String() + "%"
}

// PeriodLabel is the capitalised period name used in headings.
func PeriodLabel(period domain.Period) string {
	if period == domain.PeriodMonthly {
		return "Monthly"
	}
	return "Annual"
}

// ExplainBreakdown describes each taxed bracket in words, with amounts
// projected to the given period.
func ExplainBreakdown(result domain.TaxResult, period domain.Period) []string {
	projected := result.Project(period)
	lines := make([]string, 0, len(projected.Breakdown))

	for i, b := range projected.Breakdown {
		rate := taxBrackets[i].Rate
		if rate == 0 {
			lines = append(lines, fmt.Sprintf("%s at 0%%", b.Bracket))
			continue
		}
		lines = append(lines, fmt.Sprintf("Next %s at %s = %s",
			FormatNaira(b.Amount), formatRate(rate), FormatNaira(b.Tax)))
	}

	return lines
}
