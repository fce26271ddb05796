package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"naija-tax/domain"
)

const userReportHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Tax Report</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5; padding: 20px;">
      <tr>
        <td align="center">
          <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px;">
            <tr>
              <td style="background: linear-gradient(135deg, #BAF0FF 0%, #FFD2A8 100%); padding: 40px 30px; text-align: center; border-radius: 8px 8px 0 0;">
                <h1 style="margin: 0; color: #000211; font-size: 28px;">Your Tax Report</h1>
                <p style="margin: 10px 0 0 0; color: #000211; font-size: 14px;">Nigeria Personal Income Tax Calculator</p>
              </td>
            </tr>
            <tr>
              <td style="padding: 30px 30px 20px 30px;">
                <p style="margin: 0; color: #333; font-size: 16px;">Hi {{.FirstName}},</p>
                <p style="margin: 15px 0; color: #666; font-size: 14px; line-height: 1.6;">
                  Thank you for using our Nigeria Tax Calculator. Below is your {{.PeriodLower}} tax calculation breakdown:
                </p>
              </td>
            </tr>
            <tr>
              <td style="padding: 0 30px 30px 30px;">
                <table width="100%" cellpadding="0" cellspacing="0" style="border: 1px solid #e5e5e5;">
                  <tr style="background-color: #f9f9f9;">
                    <td colspan="2" style="padding: 15px; border-bottom: 2px solid #BAF0FF;">
                      <h2 style="margin: 0; color: #000211; font-size: 18px;">Tax Summary ({{.PeriodLabel}})</h2>
                    </td>
                  </tr>
                  {{range .Summary}}
                  <tr{{if .Highlight}} style="background-color: {{.Highlight}};"{{end}}>
                    <td style="padding: 12px 15px; border-bottom: 1px solid #f0f0f0; color: #666; font-size: 14px;">{{.Label}}</td>
                    <td style="padding: 12px 15px; border-bottom: 1px solid #f0f0f0; text-align: right; color: #333; font-weight: bold; font-size: 14px;">{{.Value}}</td>
                  </tr>
                  {{end}}
                </table>
              </td>
            </tr>
            {{if .Brackets}}
            <tr>
              <td style="padding: 0 30px 30px 30px;">
                <h3 style="margin: 0 0 15px 0; color: #000211; font-size: 16px;">Tax by Bracket ({{.PeriodLabel}})</h3>
                <table width="100%" cellpadding="0" cellspacing="0" style="border: 1px solid #e5e5e5;">
                  {{range .Brackets}}
                  <tr>
                    <td style="padding: 10px 15px; border-bottom: 1px solid #f0f0f0; color: #666; font-size: 13px;">{{.Label}}</td>
                    <td style="padding: 10px 15px; border-bottom: 1px solid #f0f0f0; text-align: right; color: #333; font-size: 13px;">{{.Amount}}</td>
                    <td style="padding: 10px 15px; border-bottom: 1px solid #f0f0f0; text-align: right; color: #333; font-size: 13px;">{{.Tax}}</td>
                  </tr>
                  {{end}}
                </table>
              </td>
            </tr>
            {{end}}
            <tr>
              <td style="padding: 0 30px 30px 30px;">
                <h3 style="margin: 0 0 15px 0; color: #000211; font-size: 16px;">Deduction Breakdown (Annual)</h3>
                <table width="100%" cellpadding="0" cellspacing="0" style="border: 1px solid #e5e5e5;">
                  {{range .Deductions}}
                  <tr>
                    <td style="padding: 10px 15px; border-bottom: 1px solid #f0f0f0; color: #666; font-size: 13px;">{{.Label}}</td>
                    <td style="padding: 10px 15px; border-bottom: 1px solid #f0f0f0; text-align: right; color: #333; font-size: 13px;">{{.Value}}</td>
                  </tr>
                  {{end}}
                </table>
              </td>
            </tr>
            <tr>
              <td style="padding: 20px 30px 30px 30px; border-top: 1px solid #e5e5e5;">
                <p style="margin: 0; color: #999; font-size: 12px; line-height: 1.6;">
                  This is an automated tax calculation based on Nigerian tax laws. Please consult with a tax professional for personalized advice.
                </p>
                <p style="margin: 15px 0 0 0; color: #999; font-size: 12px;">&copy; {{.Year}} Oduko Tax Calculator. All rights reserved.</p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`

const adminReportHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>New Tax Report Submission</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
    <table width="600" cellpadding="0" cellspacing="0" align="center" style="background-color: #ffffff;">
      <tr>
        <td style="background-color: #000211; padding: 30px; text-align: center;">
          <h1 style="margin: 0; color: #BAF0FF; font-size: 24px;">New User Submission</h1>
          <p style="margin: 10px 0 0 0; color: #FFD2A8; font-size: 14px;">Tax Calculator Report</p>
        </td>
      </tr>
      <tr>
        <td style="padding: 30px;">
          <h2 style="margin: 0 0 20px 0; color: #000211; font-size: 18px;">User Details</h2>
          <table width="100%" cellpadding="0" cellspacing="0" style="border: 1px solid #e5e5e5; margin-bottom: 25px;">
            <tr><td style="padding: 12px 15px; width: 40%;">First Name</td><td style="padding: 12px 15px; font-weight: bold;">{{.FirstName}}</td></tr>
            <tr><td style="padding: 12px 15px;">Email</td><td style="padding: 12px 15px; font-weight: bold;">{{.Email}}</td></tr>
            <tr><td style="padding: 12px 15px;">Submission Time</td><td style="padding: 12px 15px; font-weight: bold;">{{.SubmittedAt}}</td></tr>
          </table>
          <h2 style="margin: 0 0 20px 0; color: #000211; font-size: 18px;">Tax Calculation Summary</h2>
          <table width="100%" cellpadding="0" cellspacing="0" style="border: 1px solid #e5e5e5; margin-bottom: 25px;">
            <tr><td style="padding: 12px 15px; width: 40%;">View Mode</td><td style="padding: 12px 15px; font-weight: bold;">{{.PeriodLabel}}</td></tr>
            <tr><td style="padding: 12px 15px;">Annual Gross Income</td><td style="padding: 12px 15px; font-weight: bold;">{{.GrossIncome}}</td></tr>
            <tr><td style="padding: 12px 15px;">Annual Tax</td><td style="padding: 12px 15px; font-weight: bold;">{{.TotalTax}}</td></tr>
            <tr><td style="padding: 12px 15px;">Annual Net Income</td><td style="padding: 12px 15px; font-weight: bold;">{{.NetIncome}}</td></tr>
          </table>
          <div style="background-color: #BAF0FF; padding: 20px; text-align: center;">
            <p style="margin: 0; color: #000211; font-size: 14px;">Total User Count</p>
            <p style="margin: 10px 0 0 0; color: #000211; font-size: 32px; font-weight: bold;">{{.UserCount}}</p>
          </div>
        </td>
      </tr>
      <tr>
        <td style="padding: 20px 30px 30px 30px; border-top: 1px solid #e5e5e5;">
          <p style="margin: 0; color: #999; font-size: 12px;">This is an automated notification from Oduko Tax Calculator.</p>
        </td>
      </tr>
    </table>
  </body>
</html>
`

const digestHTML = `<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><title>Tax Calculator Digest</title></head>
  <body style="font-family: Arial, sans-serif;">
    <h1 style="color: #000211; font-size: 22px;">Tax Calculator Digest</h1>
    <p style="color: #666; font-size: 14px;">As of {{.AsOf}}, {{.UserCount}} tax reports have been delivered.</p>
    {{if .Recent}}
    <h2 style="color: #000211; font-size: 16px;">Latest submissions</h2>
    <table style="border-collapse: collapse; font-size: 14px;">
      <tr><th style="padding: 6px 10px; text-align: left;">#</th><th style="padding: 6px 10px; text-align: left;">Name</th><th style="padding: 6px 10px; text-align: left;">Email</th><th style="padding: 6px 10px; text-align: left;">Period</th><th style="padding: 6px 10px; text-align: right;">Tax</th><th style="padding: 6px 10px; text-align: left;">Submitted</th></tr>
      {{range .Recent}}
      <tr><td style="padding: 6px 10px;">{{.UserNumber}}</td><td style="padding: 6px 10px;">{{.FirstName}}</td><td style="padding: 6px 10px;">{{.Email}}</td><td style="padding: 6px 10px;">{{.Period}}</td><td style="padding: 6px 10px; text-align: right;">{{.TotalTax}}</td><td style="padding: 6px 10px;">{{.SubmittedAt}}</td></tr>
      {{end}}
    </table>
    {{end}}
  </body>
</html>
`

var (
	userReportTmpl  = template.Must(template.New("user-report").Parse(userReportHTML))
	adminReportTmpl = template.Must(template.New("admin-report").Parse(adminReportHTML))
	digestTmpl      = template.Must(template.New("digest").Parse(digestHTML))
)

type reportRow struct {
	Label     string
	Value     string
	Highlight string
}

type bracketRow struct {
	Label  string
	Amount string
	Tax    string
}

type userReportView struct {
	FirstName   string
	PeriodLabel string
	PeriodLower string
	Summary     []reportRow
	Brackets    []bracketRow
	Deductions  []reportRow
	Year        int
}

type adminReportView struct {
	FirstName   string
	Email       string
	SubmittedAt string
	PeriodLabel string
	GrossIncome string
	TotalTax    string
	NetIncome   string
	UserCount   int64
}

// reportBreakdown derives the per-bracket figures from the report's
// taxable income.
func reportBreakdown(data domain.TaxReportData) []domain.BracketTax {
	return ComputeTax(data.TaxableIncome, domain.Deductions{}).Breakdown
}

// projectedSummary returns the report's money values for its period.
func projectedSummary(data domain.TaxReportData) domain.TaxResult {
	return domain.TaxResult{
		GrossIncome:     data.GrossIncome,
		TotalDeductions: data.TotalDeductions,
		TaxableIncome:   data.TaxableIncome,
		Breakdown:       reportBreakdown(data),
		TotalTax:        data.TotalTax,
		NetIncome:       data.NetIncome,
		EffectiveRate:   data.EffectiveRate,
	}.Project(data.Period)
}

func deductionRows(data domain.TaxReportData) []reportRow {
	return []reportRow{
		{Label: "Mortgage", Value: FormatNaira(data.Mortgage)},
		{Label: "Pension (Pencom)", Value: FormatNaira(data.Pension)},
		{Label: "Annual Rent", Value: FormatNaira(data.Rent)},
		{Label: "Life Insurance", Value: FormatNaira(data.Insurance)},
	}
}

// RenderUserReport renders the email sent to the person who ran the
// calculation. Money values follow the report period; deductions stay annual.
func RenderUserReport(data domain.TaxReportData, now time.Time) (string, error) {
	p := projectedSummary(data)
	label := PeriodLabel(data.Period)

	view := userReportView{
		FirstName:   data.FirstName,
		PeriodLabel: label,
		PeriodLower: string(data.Period),
		Summary: []reportRow{
			{Label: "Gross Income", Value: FormatNaira(p.GrossIncome)},
			{Label: "Total Deductions", Value: FormatNaira(p.TotalDeductions)},
			{Label: "Taxable Income", Value: FormatNaira(p.TaxableIncome)},
			{Label: "Total Tax", Value: FormatNaira(p.TotalTax), Highlight: "#BAF0FF"},
			{Label: "Net Income", Value: FormatNaira(p.NetIncome), Highlight: "#FFD2A8"},
			{Label: "Effective Tax Rate", Value: FormatPercent(data.EffectiveRate)},
		},
		Deductions: deductionRows(data),
		Year:       now.Year(),
	}
	for _, b := range p.Breakdown {
		view.Brackets = append(view.Brackets, bracketRow{
			Label:  b.Bracket,
			Amount: FormatNaira(b.Amount),
			Tax:    FormatNaira(b.Tax),
		})
	}

	var buf bytes.Buffer
	if err := userReportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render user report: %w", err)
	}
	return buf.String(), nil
}

// RenderAdminReport renders the notification for the site owner. Figures
// are always annual.
func RenderAdminReport(data domain.TaxReportData, userCount int64, submittedAt time.Time) (string, error) {
	view := adminReportView{
		FirstName:   data.FirstName,
		Email:       data.Email,
		SubmittedAt: submittedAt.Format("02/01/2006, 15:04:05"),
		PeriodLabel: PeriodLabel(data.Period),
		GrossIncome: FormatNaira(data.GrossIncome),
		TotalTax:    FormatNaira(data.TotalTax),
		NetIncome:   FormatNaira(data.NetIncome),
		UserCount:   userCount,
	}

	var buf bytes.Buffer
	if err := adminReportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render admin report: %w", err)
	}
	return buf.String(), nil
}

type digestRow struct {
	UserNumber  int64
	FirstName   string
	Email       string
	Period      string
	TotalTax    string
	SubmittedAt string
}

// RenderDigest renders the admin digest. Times are shown in asOf's location.
func RenderDigest(userCount int64, asOf time.Time, recent []domain.Submission) (string, error) {
	rows := make([]digestRow, 0, len(recent))
	for _, s := range recent {
		rows = append(rows, digestRow{
			UserNumber:  s.UserNumber,
			FirstName:   s.FirstName,
			Email:       s.Email,
			Period:      PeriodLabel(s.Period),
			TotalTax:    FormatNaira(s.TotalTax),
			SubmittedAt: s.SubmittedAt.In(asOf.Location()).Format("02/01/2006 15:04"),
		})
	}

	var buf bytes.Buffer
	err := digestTmpl.Execute(&buf, struct {
		AsOf      string
		UserCount int64
		Recent    []digestRow
	}{
		AsOf:      asOf.Format("02/01/2006 15:04"),
		UserCount: userCount,
		Recent:    rows,
	})
	if err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
