package domain

type Period string

const (
	PeriodAnnual  Period = "annual"
	PeriodMonthly Period = "monthly"
)

type DeductionField string

const (
	FieldMortgage  DeductionField = "mortgage"
	FieldPension   DeductionField = "pension"
	FieldRent      DeductionField = "rent"
	FieldInsurance DeductionField = "insurance"
)

// DeductionFields lists the deduction fields in display order.
var DeductionFields = []DeductionField{FieldMortgage, FieldPension, FieldRent, FieldInsurance}

// DeductionOverrides maps a manually entered field to its value. Fields
// absent from the map take their default.
type DeductionOverrides map[DeductionField]float64

type Deductions struct {
	Mortgage  float64 `json:"mortgage"`
	Pension   float64 `json:"pension"`
	Rent      float64 `json:"rent"`
	Insurance float64 `json:"insurance"`
}

func (d Deductions) Total() float64 {
	return d.Mortgage + d.Pension + d.Rent + d.Insurance
}

func (d Deductions) Get(field DeductionField) float64 {
	switch field {
	case FieldMortgage:
		return d.Mortgage
	case FieldPension:
		return d.Pension
	case FieldRent:
		return d.Rent
	case FieldInsurance:
		return d.Insurance
	}
	return 0
}

func (d *Deductions) Set(field DeductionField, value float64) {
	switch field {
	case FieldMortgage:
		d.Mortgage = value
	case FieldPension:
		d.Pension = value
	case FieldRent:
		d.Rent = value
	case FieldInsurance:
		d.Insurance = value
	}
}

type TaxBracket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"-"` // +Inf for the top bracket
	Rate  float64 `json:"rate"`
	Label string  `json:"label"`
}

type BracketTax struct {
	Bracket string  `json:"bracket"`
	Amount  float64 `json:"amount"`
	Tax     float64 `json:"tax"`
}

type TaxInput struct {
	GrossIncome float64            `json:"grossIncome"`
	Period      Period             `json:"period"`
	Overrides   DeductionOverrides `json:"deductions,omitempty"`
}

type TaxResult struct {
	GrossIncome     float64      `json:"grossIncome"`
	TotalDeductions float64      `json:"totalDeductions"`
	TaxableIncome   float64      `json:"taxableIncome"`
	Breakdown       []BracketTax `json:"taxBreakdown"`
	TotalTax        float64      `json:"totalTax"`
	NetIncome       float64      `json:"netIncome"`
	EffectiveRate   float64      `json:"effectiveRate"` // percent
}

// Project returns a copy of r expressed for the given period. Money values
// are divided by 12 for monthly display; the effective rate is unchanged.
func (r TaxResult) Project(period Period) TaxResult {
	divisor := 1.0
	if period == PeriodMonthly {
		divisor = 12
	}

	out := r
	out.GrossIncome = r.GrossIncome / divisor
	out.TotalDeductions = r.TotalDeductions / divisor
	out.TaxableIncome = r.TaxableIncome / divisor
	out.TotalTax = r.TotalTax / divisor
	out.NetIncome = r.NetIncome / divisor

	out.Breakdown = make([]BracketTax, len(r.Breakdown))
	for i, b := range r.Breakdown {
		out.Breakdown[i] = BracketTax{
			Bracket: b.Bracket,
			Amount:  b.Amount / divisor,
			Tax:     b.Tax / divisor,
		}
	}

	return out
}
