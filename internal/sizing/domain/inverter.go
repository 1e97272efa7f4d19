package sizing

import "fmt"

// DefaultOversizingMarginPct is the stock DC/AC oversizing margin: the
// inverter is sized at 85% of array DC power.
const DefaultOversizingMarginPct = 15.0

// SizeInverter derives the nominal AC inverter power in watts from the
// installed DC capacity. The margin convention is multiplicative:
//
//	inverterW = moduleCount * ratedPowerW * (1 - marginPct/100)
//
// so margin 0 sizes the inverter at full DC power and the result is strictly
// increasing in module count for a fixed margin.
func SizeInverter(moduleCount int, module ModuleSpec, marginPct float64) (float64, error) {
	if moduleCount <= 0 {
		return 0, fmt.Errorf("%w: module count must be positive, got %d", ErrInvalidParameter, moduleCount)
	}
	if module.RatedPowerW <= 0 {
		return 0, fmt.Errorf("%w: module rated power must be positive, got %.1f", ErrInvalidParameter, module.RatedPowerW)
	}
	if marginPct < 0 || marginPct >= 100 {
		return 0, fmt.Errorf("%w: oversizing margin must be in [0,100), got %.2f", ErrInvalidParameter, marginPct)
	}
	installedDC := float64(moduleCount) * module.RatedPowerW
	return installedDC * (1 - marginPct/100), nil
}
