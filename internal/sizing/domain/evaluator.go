package sizing

import "fmt"

// CandidateRange returns the ordered candidate counts 1..max.
func CandidateRange(max int) []int {
	if max < 1 {
		return nil
	}
	candidates := make([]int, max)
	for i := range candidates {
		candidates[i] = i + 1
	}
	return candidates
}

// Evaluate computes one scenario per candidate module count and recommends
// the smallest count whose mean monthly generation meets mean monthly
// consumption. Candidates must be positive and strictly ascending so the
// result is deterministic.
//
// When no candidate meets the mean target the result is still fully
// populated, carries the largest candidate as the recommendation, and the
// call returns ErrRecommendationNotFound so the caller can widen the range
// or surface a warning.
func Evaluate(profile ConsumptionProfile, module ModuleSpec, irradiation float64, daysInMonth int, coefficient float64, candidates []int) (SizingResult, error) {
	var result SizingResult
	if len(candidates) == 0 {
		return result, fmt.Errorf("%w: candidate module counts are required", ErrInvalidParameter)
	}
	for i, count := range candidates {
		if count <= 0 {
			return result, fmt.Errorf("%w: candidate module count must be positive, got %d", ErrInvalidParameter, count)
		}
		if i > 0 && count <= candidates[i-1] {
			return result, fmt.Errorf("%w: candidate module counts must be strictly ascending", ErrInvalidParameter)
		}
	}

	meanDemand := profile.Mean()
	result.DeratingCoefficient = coefficient
	result.Scenarios = make([]Scenario, 0, len(candidates))
	recommended := 0
	for _, count := range candidates {
		generation, err := MonthlyGeneration(count, module, irradiation, daysInMonth, coefficient)
		if err != nil {
			return SizingResult{}, err
		}
		scenario := buildScenario(profile, module, count, generation)
		result.Scenarios = append(result.Scenarios, scenario)
		if recommended == 0 && scenario.MeanGeneration >= meanDemand {
			recommended = count
		}
	}

	if recommended == 0 {
		result.RecommendedModuleCount = candidates[len(candidates)-1]
		return result, ErrRecommendationNotFound
	}
	result.RecommendedModuleCount = recommended
	return result, nil
}

func buildScenario(profile ConsumptionProfile, module ModuleSpec, count int, generation float64) Scenario {
	scenario := Scenario{
		ModuleCount:        count,
		InstalledPowerW:    float64(count) * module.RatedPowerW,
		MonthlyGeneration:  make([]float64, MonthsPerYear),
		MonthlyBalance:     make([]float64, MonthsPerYear),
		MonthlyCoveragePct: make([]float64, MonthsPerYear),
	}
	var total float64
	for i := 0; i < MonthsPerYear; i++ {
		consumption := profile.Month(i)
		scenario.MonthlyGeneration[i] = generation
		scenario.MonthlyBalance[i] = generation - consumption
		if consumption > 0 {
			scenario.MonthlyCoveragePct[i] = generation / consumption * 100
		}
		total += generation
	}
	scenario.MeanGeneration = total / MonthsPerYear
	return scenario
}
