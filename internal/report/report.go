package report

import (
	"errors"
	"strconv"
	"time"

	finance "solarcalc/internal/finance/domain"
	sizing "solarcalc/internal/sizing/domain"
)

// ErrIncompleteInput is returned when the report input misses a section.
var ErrIncompleteInput = errors.New("report: incomplete input")

// Input carries everything a sizing report renders: the run inputs, the
// recommended scenario tables, and the optional financial section.
type Input struct {
	Consumption  []float64
	ModulePowerW float64
	Irradiation  float64

	Sizing  sizing.SizingResult
	Summary sizing.AnnualSummary
	Payback *finance.PaybackResult
	Params  *finance.Params

	GeneratedAt time.Time
}

func (in Input) validate() (sizing.Scenario, error) {
	if len(in.Consumption) != sizing.MonthsPerYear {
		return sizing.Scenario{}, ErrIncompleteInput
	}
	recommended, ok := in.Sizing.Recommended()
	if !ok || len(recommended.MonthlyGeneration) != sizing.MonthsPerYear {
		return sizing.Scenario{}, ErrIncompleteInput
	}
	return recommended, nil
}

func paybackLabel(months *int) string {
	if months == nil {
		return "not recovered"
	}
	years := *months / 12
	rest := *months % 12
	switch {
	case years == 0:
		return plural(rest, "month")
	case rest == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rest, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
