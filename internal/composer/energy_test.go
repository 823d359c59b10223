package composer

import (
	"math"
	"testing"

	"github.com/quantfusion/signalcore/internal/engines"
)

func TestEstimateElasticity(t *testing.T) {
	// no features: defaults to 1.0
	if got := EstimateElasticity(engines.EngineDirective{}); got != 1.0 {
		t.Fatalf("want 1.0 with no features, got %v", got)
	}
	liq := engines.EngineDirective{Features: map[string]float64{
		"liq_kyle_lambda": 0.6,
		"liq_amihud":      0.4,
	}}
	if got := EstimateElasticity(liq); math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("want 1.5, got %v", got)
	}
	// adversarial negative features hit the 0.1 floor
	hostile := engines.EngineDirective{Features: map[string]float64{
		"liq_kyle_lambda": -10,
		"liq_amihud":      -10,
	}}
	if got := EstimateElasticity(hostile); got != 0.1 {
		t.Fatalf("want floor 0.1, got %v", got)
	}
}

func TestComputeTotalEnergy(t *testing.T) {
	h := engines.EngineDirective{Energy: 5}
	l := engines.EngineDirective{Energy: 3}
	s := engines.EngineDirective{Energy: 2}
	got := ComputeTotalEnergy(h, l, s, 1.0)
	want := 5*1.2 + 3*1.0 + 2*0.8
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestComputeTotalEnergy_NeverNegative(t *testing.T) {
	h := engines.EngineDirective{Energy: -100}
	l := engines.EngineDirective{Energy: -100}
	s := engines.EngineDirective{Energy: -100}
	if got := ComputeTotalEnergy(h, l, s, 5); got != 0 {
		t.Fatalf("want 0 floor, got %v", got)
	}
}
