package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"naija-tax/domain"
	"naija-tax/repository"
	"naija-tax/service"
)

var deductionFlags = []struct {
	name  string
	field domain.DeductionField
}{
	{"mortgage", domain.FieldMortgage},
	{"pension", domain.FieldPension},
	{"rent", domain.FieldRent},
	{"insurance", domain.FieldInsurance},
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	periodFlag := &cli.StringFlag{
		Name:  "period",
		Value: string(domain.PeriodAnnual),
		Usage: "period of --income: annual or monthly",
	}

	computeFlags := []cli.Flag{
		&cli.Float64Flag{Name: "income", Aliases: []string{"i"}, Usage: "gross income", Required: true},
		periodFlag,
		&cli.StringFlag{Name: "display", Usage: "period to display results in (defaults to --period)"},
		&cli.StringFlag{Name: "pdf", Usage: "also write the report as a PDF to `FILE`"},
	}
	for _, f := range deductionFlags {
		computeFlags = append(computeFlags, &cli.Float64Flag{
			Name:  f.name,
			Usage: fmt.Sprintf("annual %s deduction (default derived from income)", f.name),
		})
	}

	return &cli.App{
		Name:      "taxcalc",
		Usage:     "Nigerian personal income tax calculator",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			{
				Name:   "compute",
				Usage:  "compute tax for an income",
				Flags:  computeFlags,
				Action: compute,
			},
			{
				Name:   "brackets",
				Usage:  "print the progressive tax table",
				Action: brackets,
			},
			{
				Name:  "defaults",
				Usage: "print the default deductions for an income",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "income", Aliases: []string{"i"}, Usage: "gross income", Required: true},
					periodFlag,
				},
				Action: defaults,
			},
		},
	}
}

func compute(c *cli.Context) error {
	period, err := service.NormalizePeriod(domain.Period(c.String("period")))
	if err != nil {
		return err
	}

	display := period
	if c.IsSet("display") {
		if display, err = service.NormalizePeriod(domain.Period(c.String("display"))); err != nil {
			return err
		}
	}

	overrides := domain.DeductionOverrides{}
	for _, f := range deductionFlags {
		if c.IsSet(f.name) {
			overrides[f.field] = c.Float64(f.name)
		}
	}

	taxService := service.NewTaxService(repository.NewCalculationRepositoryMemory(1))
	result, deductions, err := taxService.Calculate(domain.TaxInput{
		GrossIncome: c.Float64("income"),
		Period:      period,
		Overrides:   overrides,
	})
	if err != nil {
		return err
	}

	out := c.App.Writer
	shown := result.Project(display)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Gross income (%s)\t%s\n", service.PeriodLabel(display), service.FormatNaira(shown.GrossIncome))
	fmt.Fprintf(w, "Total deductions\t%s\n", service.FormatNaira(shown.TotalDeductions))
	fmt.Fprintf(w, "Taxable income\t%s\n", service.FormatNaira(shown.TaxableIncome))
	fmt.Fprintf(w, "Total tax\t%s\n", service.FormatNaira(shown.TotalTax))
	fmt.Fprintf(w, "Net income\t%s\n", service.FormatNaira(shown.NetIncome))
	fmt.Fprintf(w, "Effective rate\t%s\n", service.FormatPercent(shown.EffectiveRate))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, line := range service.ExplainBreakdown(result, display) {
		fmt.Fprintln(out, line)
	}
	if reason := service.ZeroTaxReason(result); reason != "" {
		fmt.Fprintln(out, reason)
	}

	if path := c.String("pdf"); path != "" {
		data := service.BuildReportData("", "", display, result, deductions)
		pdf, err := service.RenderReportPDF(data, time.Now())
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Fprintf(out, "\nReport written to %s\n", path)
	}

	return nil
}

func brackets(c *cli.Context) error {
	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BRACKET\tRATE")
	for _, b := range service.TaxBrackets() {
		fmt.Fprintf(w, "%s\t%s%%\n", b.Label, decimal.NewFromFloat(b.Rate).Shift(2).String())
	}
	return w.Flush()
}

func defaults(c *cli.Context) error {
	period, err := service.NormalizePeriod(domain.Period(c.String("period")))
	if err != nil {
		return err
	}

	d := service.DefaultDeductions(service.AnnualIncome(c.Float64("income"), period))

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Mortgage\t%s\n", service.FormatNaira(d.Mortgage))
	fmt.Fprintf(w, "Pension\t%s\n", service.FormatNaira(d.Pension))
	fmt.Fprintf(w, "Rent\t%s\n", service.FormatNaira(d.Rent))
	fmt.Fprintf(w, "Insurance\t%s\n", service.FormatNaira(d.Insurance))
	fmt.Fprintf(w, "Total\t%s\n", service.FormatNaira(d.Total()))
	return w.Flush()
}
