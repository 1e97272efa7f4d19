package sizing

import (
	"errors"
	"math"
	"testing"
)

func TestMonthlyGenerationFormula(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 550}
	// 0.55 kW * 6.25 kWh/m²/day * 30 days * 0.8 = 82.5 kWh
	generation, err := MonthlyGeneration(1, module, 6.25, 30, 0.8)
	if err != nil {
		t.Fatalf("monthly generation: %v", err)
	}
	if math.Abs(generation-82.5) > 1e-9 {
		t.Fatalf("expected 82.5 kWh, got %.4f", generation)
	}
}

func TestMonthlyGenerationLinearInModuleCount(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 400}
	for _, n := range []int{1, 3, 7, 12} {
		single, err := MonthlyGeneration(n, module, 4.5, DefaultDaysInMonth, 0.7)
		if err != nil {
			t.Fatalf("generation for %d modules: %v", n, err)
		}
		double, err := MonthlyGeneration(2*n, module, 4.5, DefaultDaysInMonth, 0.7)
		if err != nil {
			t.Fatalf("generation for %d modules: %v", 2*n, err)
		}
		if math.Abs(double-2*single) > 1e-9 {
			t.Fatalf("generation(%d)=%.4f is not twice generation(%d)=%.4f", 2*n, double, n, single)
		}
	}
}

func TestMonthlyGenerationRejectsInvalidInput(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 400}
	cases := []struct {
		name        string
		count       int
		module      ModuleSpec
		irradiation float64
		days        int
		coefficient float64
	}{
		{"zero count", 0, module, 4.5, 30, 0.8},
		{"negative count", -2, module, 4.5, 30, 0.8},
		{"zero power", 4, ModuleSpec{}, 4.5, 30, 0.8},
		{"zero irradiation", 4, module, 0, 30, 0.8},
		{"zero days", 4, module, 4.5, 0, 0.8},
		{"zero coefficient", 4, module, 4.5, 30, 0},
		{"coefficient above one", 4, module, 4.5, 30, 1.1},
	}
	for _, tc := range cases {
		if _, err := MonthlyGeneration(tc.count, tc.module, tc.irradiation, tc.days, tc.coefficient); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", tc.name, err)
		}
	}
}
