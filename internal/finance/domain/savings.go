package finance

import "fmt"

// Params are the financial inputs of one calculation run.
type Params struct {
	// InstallationCost is the total system cost.
	InstallationCost float64 `json:"installation_cost" yaml:"installation_cost"`
	// TariffPerKWh is the grid price of the energy the array offsets.
	TariffPerKWh float64 `json:"tariff_per_kwh" yaml:"tariff_per_kwh"`
	// SurplusCreditPerKWh is paid for generation beyond consumption.
	// Zero means surplus earns nothing.
	SurplusCreditPerKWh float64 `json:"surplus_credit_per_kwh" yaml:"surplus_credit_per_kwh"`
	// DiscountRatePct is the annual discount rate for discounted payback.
	DiscountRatePct float64 `json:"discount_rate_pct" yaml:"discount_rate_pct"`
}

// Validate checks the run parameters.
func (p Params) Validate() error {
	if p.InstallationCost < 0 {
		return fmt.Errorf("%w: installation cost must not be negative, got %.2f", ErrInvalidParameter, p.InstallationCost)
	}
	if p.TariffPerKWh < 0 {
		return fmt.Errorf("%w: tariff must not be negative, got %.4f", ErrInvalidParameter, p.TariffPerKWh)
	}
	if p.SurplusCreditPerKWh < 0 {
		return fmt.Errorf("%w: surplus credit must not be negative, got %.4f", ErrInvalidParameter, p.SurplusCreditPerKWh)
	}
	if p.DiscountRatePct < 0 {
		return fmt.Errorf("%w: discount rate must not be negative, got %.2f", ErrInvalidParameter, p.DiscountRatePct)
	}
	return nil
}

// MonthlySavings derives the money saved each month from the generation and
// consumption tables. Only offset energy (the smaller of generation and
// consumption) saves the grid tariff; surplus earns the credit rate.
func MonthlySavings(generation, consumption []float64, tariffPerKWh, surplusCreditPerKWh float64) ([]float64, error) {
	if len(generation) != len(consumption) {
		return nil, fmt.Errorf("%w: generation and consumption series differ in length (%d vs %d)", ErrInvalidParameter, len(generation), len(consumption))
	}
	if len(generation) == 0 {
		return nil, fmt.Errorf("%w: empty monthly series", ErrInvalidParameter)
	}
	if tariffPerKWh < 0 {
		return nil, fmt.Errorf("%w: tariff must not be negative, got %.4f", ErrInvalidParameter, tariffPerKWh)
	}
	if surplusCreditPerKWh < 0 {
		return nil, fmt.Errorf("%w: surplus credit must not be negative, got %.4f", ErrInvalidParameter, surplusCreditPerKWh)
	}

	savings := make([]float64, len(generation))
	for i := range generation {
		offset := generation[i]
		if consumption[i] < offset {
			offset = consumption[i]
		}
		surplus := generation[i] - consumption[i]
		if surplus < 0 {
			surplus = 0
		}
		savings[i] = offset*tariffPerKWh + surplus*surplusCreditPerKWh
	}
	return savings, nil
}
