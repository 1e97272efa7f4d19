package sizing

import (
	"errors"
	"math"
	"testing"
)

func TestSizeInverterZeroMarginEqualsInstalledDC(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 550}
	power, err := SizeInverter(8, module, 0)
	if err != nil {
		t.Fatalf("size inverter: %v", err)
	}
	if math.Abs(power-8*550) > 1e-9 {
		t.Fatalf("expected %d W, got %.1f", 8*550, power)
	}
}

func TestSizeInverterDefaultMargin(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 400}
	power, err := SizeInverter(10, module, DefaultOversizingMarginPct)
	if err != nil {
		t.Fatalf("size inverter: %v", err)
	}
	if math.Abs(power-4000*0.85) > 1e-9 {
		t.Fatalf("expected %.1f W, got %.1f", 4000*0.85, power)
	}
}

func TestSizeInverterStrictlyIncreasing(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 450}
	previous := 0.0
	for count := 1; count <= 30; count++ {
		power, err := SizeInverter(count, module, 15)
		if err != nil {
			t.Fatalf("size inverter for %d modules: %v", count, err)
		}
		if power <= previous {
			t.Fatalf("inverter power %.1f not increasing at %d modules", power, count)
		}
		previous = power
	}
}

func TestSizeInverterRejectsInvalidInput(t *testing.T) {
	module := ModuleSpec{RatedPowerW: 450}
	if _, err := SizeInverter(0, module, 15); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero count, got %v", err)
	}
	if _, err := SizeInverter(4, ModuleSpec{}, 15); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero power, got %v", err)
	}
	if _, err := SizeInverter(4, module, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for negative margin, got %v", err)
	}
	if _, err := SizeInverter(4, module, 100); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for full margin, got %v", err)
	}
}
