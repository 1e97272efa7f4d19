package finance

import (
	"fmt"
	"math"
)

// DiscountedPaybackHorizonMonths caps the discounted payback walk at 50
// years. Discounted savings that do not recover the cost within the horizon
// report a nil payback.
const DiscountedPaybackHorizonMonths = 600

// SystemLifetimeYears is the assumed useful life for lifetime projections.
const SystemLifetimeYears = 25

// PaybackResult reports how long the installation takes to pay for itself.
// Nil months mean the cost is never recovered: for simple payback that takes
// non-positive average savings, for discounted payback it also covers costs
// beyond the 50-year horizon.
type PaybackResult struct {
	SimplePaybackMonths     *int      `json:"simple_payback_months"`
	DiscountedPaybackMonths *int      `json:"discounted_payback_months"`
	MonthlySavings          []float64 `json:"monthly_savings"`
	AnnualSavings           float64   `json:"annual_savings"`
	MeanMonthlySavings      float64   `json:"mean_monthly_savings"`
	LifetimeSavings         float64   `json:"lifetime_savings"`
	LifetimeNetProfit       float64   `json:"lifetime_net_profit"`
}

// SimplePayback walks cumulative undiscounted savings month by month, cycling
// the 12-value profile, and returns the first month where they reach the
// installation cost. The walk is unbounded: any positive annual savings
// recover a finite cost eventually, however long that takes. Zero cost pays
// back immediately; non-positive annual savings never recover.
func SimplePayback(installationCost float64, monthlySavings []float64) (*int, error) {
	annualTotal, err := validatePayback(installationCost, monthlySavings)
	if err != nil {
		return nil, err
	}
	if installationCost == 0 {
		months := 0
		return &months, nil
	}
	if annualTotal <= 0 {
		return nil, nil
	}

	// Skip ahead by whole years, then walk the remainder month by month.
	years := int(installationCost/annualTotal) - 1
	if years < 0 {
		years = 0
	}
	cumulative := float64(years) * annualTotal
	for month := years*12 + 1; ; month++ {
		cumulative += monthlySavings[(month-1)%12]
		if cumulative >= installationCost {
			m := month
			return &m, nil
		}
	}
}

// DiscountedPayback is SimplePayback with each month's savings discounted at
// the annual rate, factor(m) = (1 + rate)^(-m/12), and the walk capped at
// DiscountedPaybackHorizonMonths.
func DiscountedPayback(installationCost float64, monthlySavings []float64, discountRatePct float64) (*int, error) {
	if discountRatePct < 0 {
		return nil, fmt.Errorf("%w: discount rate must not be negative, got %.2f", ErrInvalidParameter, discountRatePct)
	}
	annualTotal, err := validatePayback(installationCost, monthlySavings)
	if err != nil {
		return nil, err
	}
	if installationCost == 0 {
		months := 0
		return &months, nil
	}
	if annualTotal <= 0 {
		return nil, nil
	}

	annualRate := discountRatePct / 100
	var cumulative float64
	for month := 1; month <= DiscountedPaybackHorizonMonths; month++ {
		savings := monthlySavings[(month-1)%12]
		if annualRate > 0 {
			savings *= math.Pow(1+annualRate, -float64(month)/12)
		}
		cumulative += savings
		if cumulative >= installationCost {
			m := month
			return &m, nil
		}
	}
	return nil, nil
}

func validatePayback(installationCost float64, monthlySavings []float64) (float64, error) {
	if installationCost < 0 {
		return 0, fmt.Errorf("%w: installation cost must not be negative, got %.2f", ErrInvalidParameter, installationCost)
	}
	if len(monthlySavings) != 12 {
		return 0, fmt.Errorf("%w: monthly savings needs 12 values, got %d", ErrInvalidParameter, len(monthlySavings))
	}
	var total float64
	for _, s := range monthlySavings {
		total += s
	}
	return total, nil
}

// Analyze derives the full financial picture for one run: the savings
// profile, both payback figures, and lifetime projections.
func Analyze(params Params, generation, consumption []float64) (*PaybackResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	savings, err := MonthlySavings(generation, consumption, params.TariffPerKWh, params.SurplusCreditPerKWh)
	if err != nil {
		return nil, err
	}

	simple, err := SimplePayback(params.InstallationCost, savings)
	if err != nil {
		return nil, err
	}
	discounted, err := DiscountedPayback(params.InstallationCost, savings, params.DiscountRatePct)
	if err != nil {
		return nil, err
	}

	var annual float64
	for _, s := range savings {
		annual += s
	}
	return &PaybackResult{
		SimplePaybackMonths:     simple,
		DiscountedPaybackMonths: discounted,
		MonthlySavings:          savings,
		AnnualSavings:           annual,
		MeanMonthlySavings:      annual / 12,
		LifetimeSavings:         annual * SystemLifetimeYears,
		LifetimeNetProfit:       annual*SystemLifetimeYears - params.InstallationCost,
	}, nil
}
