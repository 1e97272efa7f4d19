package sizing

// Scenario is one candidate module count with its monthly generation table.
// Balance is generation minus consumption; coverage is generation as a
// percentage of consumption (0 when the month consumed nothing).
type Scenario struct {
	ModuleCount        int       `json:"module_count"`
	InstalledPowerW    float64   `json:"installed_power_w"`
	MonthlyGeneration  []float64 `json:"monthly_generation_kwh"`
	MonthlyBalance     []float64 `json:"monthly_balance_kwh"`
	MonthlyCoveragePct []float64 `json:"monthly_coverage_pct"`
	MeanGeneration     float64   `json:"mean_generation_kwh"`
}

// SizingResult is the outcome of one scenario evaluation: every computed
// scenario ordered by ascending module count, plus the recommendation.
// InverterPowerW is filled in by the inverter sizing step.
type SizingResult struct {
	RecommendedModuleCount int        `json:"recommended_module_count"`
	Scenarios              []Scenario `json:"scenarios"`
	InverterPowerW         float64    `json:"inverter_power_w"`
	DeratingCoefficient    float64    `json:"derating_coefficient"`
}

// Scenario returns the scenario for a module count, when present.
func (r SizingResult) Scenario(moduleCount int) (Scenario, bool) {
	for _, s := range r.Scenarios {
		if s.ModuleCount == moduleCount {
			return s, true
		}
	}
	return Scenario{}, false
}

// Recommended returns the scenario for the recommended module count.
func (r SizingResult) Recommended() (Scenario, bool) {
	return r.Scenario(r.RecommendedModuleCount)
}

// AnnualSummary aggregates a scenario against the consumption profile.
type AnnualSummary struct {
	TotalConsumptionKWh float64 `json:"total_consumption_kwh"`
	TotalGenerationKWh  float64 `json:"total_generation_kwh"`
	AnnualBalanceKWh    float64 `json:"annual_balance_kwh"`
	MeanCoveragePct     float64 `json:"mean_coverage_pct"`
}

// Summarize computes the annual totals for one scenario.
func Summarize(profile ConsumptionProfile, scenario Scenario) AnnualSummary {
	var generation, coverage float64
	for i := 0; i < MonthsPerYear; i++ {
		generation += scenario.MonthlyGeneration[i]
		coverage += scenario.MonthlyCoveragePct[i]
	}
	return AnnualSummary{
		TotalConsumptionKWh: profile.Total(),
		TotalGenerationKWh:  generation,
		AnnualBalanceKWh:    generation - profile.Total(),
		MeanCoveragePct:     coverage / MonthsPerYear,
	}
}
