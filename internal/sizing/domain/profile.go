package sizing

import "fmt"

// MonthsPerYear is the length of every monthly series in a sizing run.
const MonthsPerYear = 12

// MonthNames labels monthly series in reports, January first.
var MonthNames = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ConsumptionProfile is a household's energy demand per calendar month in kWh,
// January through December.
type ConsumptionProfile struct {
	monthly [MonthsPerYear]float64
}

// NewConsumptionProfile builds a profile from exactly 12 non-negative values.
func NewConsumptionProfile(values []float64) (ConsumptionProfile, error) {
	var p ConsumptionProfile
	if len(values) != MonthsPerYear {
		return p, fmt.Errorf("%w: consumption profile needs %d values, got %d", ErrInvalidParameter, MonthsPerYear, len(values))
	}
	for i, v := range values {
		if v < 0 {
			return p, fmt.Errorf("%w: negative consumption %.3f for %s", ErrInvalidParameter, v, MonthNames[i])
		}
		p.monthly[i] = v
	}
	return p, nil
}

// Month returns consumption for month index 0..11.
func (p ConsumptionProfile) Month(i int) float64 {
	return p.monthly[i]
}

// Values returns a copy of the 12 monthly values.
func (p ConsumptionProfile) Values() []float64 {
	out := make([]float64, MonthsPerYear)
	copy(out, p.monthly[:])
	return out
}

// Total returns annual consumption in kWh.
func (p ConsumptionProfile) Total() float64 {
	var sum float64
	for _, v := range p.monthly {
		sum += v
	}
	return sum
}

// Mean returns average monthly consumption in kWh.
func (p ConsumptionProfile) Mean() float64 {
	return p.Total() / MonthsPerYear
}
