package sizing

import "fmt"

// ModuleSpec describes one photovoltaic module model.
type ModuleSpec struct {
	// RatedPowerW is the nameplate DC power in watt-peak.
	RatedPowerW float64
}

// NewModuleSpec validates the module rating.
func NewModuleSpec(ratedPowerW float64) (ModuleSpec, error) {
	if ratedPowerW <= 0 {
		return ModuleSpec{}, fmt.Errorf("%w: module rated power must be positive, got %.1f", ErrInvalidParameter, ratedPowerW)
	}
	return ModuleSpec{RatedPowerW: ratedPowerW}, nil
}

// RatedPowerKW returns the rating in kilowatts.
func (m ModuleSpec) RatedPowerKW() float64 {
	return m.RatedPowerW / 1000
}
