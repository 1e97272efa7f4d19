package sizing

import "fmt"

// LossFactors holds the generation loss percentages applied to the array.
// Each factor must be in [0, 100); they combine multiplicatively into one
// derating coefficient. InverterPct captures inverter conversion efficiency
// loss and may be left at zero when the inverter is modeled separately.
type LossFactors struct {
	TemperaturePct float64 `json:"temperature_pct" yaml:"temperature_pct"`
	ShadingPct     float64 `json:"shading_pct" yaml:"shading_pct"`
	ConversionPct  float64 `json:"conversion_pct" yaml:"conversion_pct"`
	InverterPct    float64 `json:"inverter_pct" yaml:"inverter_pct"`
}

// DefaultLossFactors returns the stock loss assumptions for a residential
// rooftop array: 15% temperature, 5% shading, 8% conversion, 4% inverter
// (coefficient 0.85 * 0.95 * 0.92 * 0.96).
func DefaultLossFactors() LossFactors {
	return LossFactors{
		TemperaturePct: 15,
		ShadingPct:     5,
		ConversionPct:  8,
		InverterPct:    4,
	}
}

// DeratingCoefficient combines the loss factors into a multiplicative
// coefficient in (0, 1]. A factor at or above 100% would mean the array
// produces nothing and is rejected.
func (f LossFactors) DeratingCoefficient() (float64, error) {
	factors := []struct {
		name string
		pct  float64
	}{
		{"temperature", f.TemperaturePct},
		{"shading", f.ShadingPct},
		{"conversion", f.ConversionPct},
		{"inverter", f.InverterPct},
	}
	coefficient := 1.0
	for _, factor := range factors {
		if factor.pct < 0 || factor.pct >= 100 {
			return 0, fmt.Errorf("%w: %s loss must be in [0,100), got %.2f", ErrInvalidParameter, factor.name, factor.pct)
		}
		coefficient *= 1 - factor.pct/100
	}
	return coefficient, nil
}
