package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	sizing "solarcalc/internal/sizing/domain"
)

// BuildXLSX renders the sizing report as a workbook with summary, monthly,
// and scenario sheets.
func BuildXLSX(in Input) ([]byte, error) {
	recommended, err := in.validate()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	summarySheet := "summary"
	monthlySheet := "monthly"
	scenariosSheet := "scenarios"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(monthlySheet)
	f.NewSheet(scenariosSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Photovoltaic Sizing Report")
	_ = f.SetCellValue(summarySheet, "A3", "Module power (Wp)")
	_ = f.SetCellValue(summarySheet, "B3", in.ModulePowerW)
	_ = f.SetCellValue(summarySheet, "A4", "Irradiation (kWh/m2/day)")
	_ = f.SetCellValue(summarySheet, "B4", in.Irradiation)
	_ = f.SetCellValue(summarySheet, "A5", "Derating coefficient")
	_ = f.SetCellValue(summarySheet, "B5", in.Sizing.DeratingCoefficient)
	_ = f.SetCellValue(summarySheet, "A6", "Recommended modules")
	_ = f.SetCellValue(summarySheet, "B6", in.Sizing.RecommendedModuleCount)
	_ = f.SetCellValue(summarySheet, "A7", "Installed DC power (Wp)")
	_ = f.SetCellValue(summarySheet, "B7", recommended.InstalledPowerW)
	_ = f.SetCellValue(summarySheet, "A8", "Inverter power (W)")
	_ = f.SetCellValue(summarySheet, "B8", in.Sizing.InverterPowerW)
	_ = f.SetCellValue(summarySheet, "A9", "Total consumption (kWh/year)")
	_ = f.SetCellValue(summarySheet, "B9", in.Summary.TotalConsumptionKWh)
	_ = f.SetCellValue(summarySheet, "A10", "Total generation (kWh/year)")
	_ = f.SetCellValue(summarySheet, "B10", in.Summary.TotalGenerationKWh)
	_ = f.SetCellValue(summarySheet, "A11", "Annual balance (kWh)")
	_ = f.SetCellValue(summarySheet, "B11", in.Summary.AnnualBalanceKWh)
	_ = f.SetCellValue(summarySheet, "A12", "Mean coverage (%)")
	_ = f.SetCellValue(summarySheet, "B12", in.Summary.MeanCoveragePct)
	if in.Payback != nil && in.Params != nil {
		_ = f.SetCellValue(summarySheet, "A14", "Installation cost")
		_ = f.SetCellValue(summarySheet, "B14", in.Params.InstallationCost)
		_ = f.SetCellValue(summarySheet, "A15", "Annual savings")
		_ = f.SetCellValue(summarySheet, "B15", in.Payback.AnnualSavings)
		_ = f.SetCellValue(summarySheet, "A16", "Simple payback")
		_ = f.SetCellValue(summarySheet, "B16", paybackLabel(in.Payback.SimplePaybackMonths))
		_ = f.SetCellValue(summarySheet, "A17", "Discounted payback")
		_ = f.SetCellValue(summarySheet, "B17", paybackLabel(in.Payback.DiscountedPaybackMonths))
		if recommended.InstalledPowerW > 0 {
			_ = f.SetCellValue(summarySheet, "A18", "Cost per installed kWp")
			_ = f.SetCellValue(summarySheet, "B18", in.Params.InstallationCost/(recommended.InstalledPowerW/1000))
		}
	}

	_ = f.SetCellValue(monthlySheet, "A1", "Month")
	_ = f.SetCellValue(monthlySheet, "B1", "Consumption (kWh)")
	_ = f.SetCellValue(monthlySheet, "C1", "Generation (kWh)")
	_ = f.SetCellValue(monthlySheet, "D1", "Balance (kWh)")
	_ = f.SetCellValue(monthlySheet, "E1", "Coverage (%)")
	for i := 0; i < sizing.MonthsPerYear; i++ {
		row := i + 2
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), sizing.MonthNames[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), in.Consumption[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), recommended.MonthlyGeneration[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("D%d", row), recommended.MonthlyBalance[i])
		_ = f.SetCellValue(monthlySheet, fmt.Sprintf("E%d", row), recommended.MonthlyCoveragePct[i])
	}

	_ = f.SetCellValue(scenariosSheet, "A1", "Modules")
	_ = f.SetCellValue(scenariosSheet, "B1", "Installed power (Wp)")
	_ = f.SetCellValue(scenariosSheet, "C1", "Mean generation (kWh/month)")
	for i, scenario := range in.Sizing.Scenarios {
		row := i + 2
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("A%d", row), scenario.ModuleCount)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("B%d", row), scenario.InstalledPowerW)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("C%d", row), scenario.MeanGeneration)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
