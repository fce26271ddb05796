package domain

import "time"

type TaxReportData struct {
	FirstName       string  `json:"firstName"`
	Email           string  `json:"email"`
	GrossIncome     float64 `json:"grossIncome"`
	TotalDeductions float64 `json:"totalDeductions"`
	TaxableIncome   float64 `json:"taxableIncome"`
	TotalTax        float64 `json:"totalTax"`
	NetIncome       float64 `json:"netIncome"`
	EffectiveRate   float64 `json:"effectiveRate"`
	Period          Period  `json:"period"`
	Mortgage        float64 `json:"mortgage"`
	Pension         float64 `json:"pension"`
	Rent            float64 `json:"rent"`
	Insurance       float64 `json:"insurance"`
}

type ReportOutcome struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	UserCount int64  `json:"userCount,omitempty"`
}

type Submission struct {
	FirstName   string
	Email       string
	Period      Period
	GrossIncome float64
	TotalTax    float64
	NetIncome   float64
	UserNumber  int64
	SubmittedAt time.Time
}
