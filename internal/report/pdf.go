package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	sizing "solarcalc/internal/sizing/domain"
)

// BuildPDF renders the sizing report as a PDF document.
func BuildPDF(in Input) ([]byte, error) {
	recommended, err := in.validate()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Photovoltaic Sizing Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	// Inputs
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Inputs")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Module power: %.0f Wp", in.ModulePowerW))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Irradiation: %.2f kWh/m2/day", in.Irradiation))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Mean monthly consumption: %.1f kWh", in.Summary.TotalConsumptionKWh/sizing.MonthsPerYear))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Derating coefficient: %.3f", in.Sizing.DeratingCoefficient))
	pdf.Ln(8)

	// Sizing results
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Sizing")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Recommended modules: %d", in.Sizing.RecommendedModuleCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Installed DC power: %.0f Wp", recommended.InstalledPowerW))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Inverter power: %.0f W", in.Sizing.InverterPowerW))
	pdf.Ln(8)

	// Monthly analysis table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(25, 6, "Month", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Consumption (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Generation (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Balance (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Coverage (%)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i := 0; i < sizing.MonthsPerYear; i++ {
		pdf.CellFormat(25, 6, sizing.MonthNames[i], "1", 0, "C", false, 0, "")
		pdf.CellFormat(38, 6, fmt.Sprintf("%.1f", in.Consumption[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(38, 6, fmt.Sprintf("%.1f", recommended.MonthlyGeneration[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(38, 6, fmt.Sprintf("%.1f", recommended.MonthlyBalance[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, fmt.Sprintf("%.1f", recommended.MonthlyCoveragePct[i]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Annual summary
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Annual Summary")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total consumption: %.1f kWh/year", in.Summary.TotalConsumptionKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total generation: %.1f kWh/year", in.Summary.TotalGenerationKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual balance: %.1f kWh", in.Summary.AnnualBalanceKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Mean coverage: %.1f%%", in.Summary.MeanCoveragePct))
	pdf.Ln(8)

	if in.Payback != nil && in.Params != nil {
		writePaybackSection(pdf, in)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePaybackSection(pdf *gofpdf.Fpdf, in Input) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Investment Return")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Installation cost: %.2f", in.Params.InstallationCost))
	pdf.Ln(5)
	if recommended, ok := in.Sizing.Recommended(); ok && recommended.InstalledPowerW > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Cost per installed kWp: %.2f", in.Params.InstallationCost/(recommended.InstalledPowerW/1000)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Energy tariff: %.4f / kWh", in.Params.TariffPerKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual savings: %.2f", in.Payback.AnnualSavings))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Mean monthly savings: %.2f", in.Payback.MeanMonthlySavings))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Simple payback: %s", paybackLabel(in.Payback.SimplePaybackMonths)))
	pdf.Ln(5)
	if in.Params.DiscountRatePct > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Discounted payback (%.1f%%/year): %s", in.Params.DiscountRatePct, paybackLabel(in.Payback.DiscountedPaybackMonths)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Savings over 25 years: %.2f", in.Payback.LifetimeSavings))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net profit over 25 years: %.2f", in.Payback.LifetimeNetProfit))
	pdf.Ln(8)

	// Monthly savings table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, "Month", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Savings", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i := 0; i < sizing.MonthsPerYear; i++ {
		pdf.CellFormat(30, 6, sizing.MonthNames[i], "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", in.Payback.MonthlySavings[i]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}
