package sizing

import "fmt"

// DefaultDaysInMonth is the fixed calendar used for monthly generation.
// Every month counts 30 days so that all scenarios in a run stay comparable.
const DefaultDaysInMonth = 30

// MonthlyGeneration estimates energy produced by moduleCount modules over one
// month, in kWh. Irradiation is the daily plane-of-array value in kWh/m²/day
// under the convention that multiplying by rated kW and days yields kWh
// directly. The coefficient is the derating from LossFactors.
func MonthlyGeneration(moduleCount int, module ModuleSpec, irradiation float64, daysInMonth int, coefficient float64) (float64, error) {
	if moduleCount <= 0 {
		return 0, fmt.Errorf("%w: module count must be positive, got %d", ErrInvalidParameter, moduleCount)
	}
	if module.RatedPowerW <= 0 {
		return 0, fmt.Errorf("%w: module rated power must be positive, got %.1f", ErrInvalidParameter, module.RatedPowerW)
	}
	if irradiation <= 0 {
		return 0, fmt.Errorf("%w: irradiation must be positive, got %.3f", ErrInvalidParameter, irradiation)
	}
	if daysInMonth <= 0 {
		return 0, fmt.Errorf("%w: days in month must be positive, got %d", ErrInvalidParameter, daysInMonth)
	}
	if coefficient <= 0 || coefficient > 1 {
		return 0, fmt.Errorf("%w: derating coefficient must be in (0,1], got %.4f", ErrInvalidParameter, coefficient)
	}
	return float64(moduleCount) * module.RatedPowerKW() * irradiation * float64(daysInMonth) * coefficient, nil
}
