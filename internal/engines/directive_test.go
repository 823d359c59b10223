package engines

import (
	"errors"
	"testing"
)

func TestParseEngineOutput_Directive(t *testing.T) {
	d, err := ParseEngineOutput("hedge", EngineDirective{Direction: 1, Confidence: 0.8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "hedge" {
		t.Fatalf("want name filled in, got %q", d.Name)
	}
	if d.Direction != 1 || d.Confidence != 0.8 {
		t.Fatalf("fields not preserved: %+v", d)
	}
}

func TestParseEngineOutput_Map(t *testing.T) {
	raw := map[string]any{
		"direction":        -1.0,
		"strength":         2,
		"confidence":       0.6,
		"regime":           "vacuum",
		"energy":           3.5,
		"volatility_proxy": 25.0,
		"features":         map[string]any{"liq_kyle_lambda": 0.4},
		"notes":            "thin book",
	}
	d, err := ParseEngineOutput("liquidity", raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Direction != -1 || d.Strength != 2 || d.Confidence != 0.6 {
		t.Fatalf("numeric fields wrong: %+v", d)
	}
	if d.Regime != "vacuum" || d.Notes != "thin book" {
		t.Fatalf("string fields wrong: %+v", d)
	}
	if d.VolatilityProxy == nil || *d.VolatilityProxy != 25 {
		t.Fatalf("volatility proxy wrong: %+v", d.VolatilityProxy)
	}
	if d.Feature("liq_kyle_lambda", 0) != 0.4 {
		t.Fatalf("features wrong: %+v", d.Features)
	}
	if d.Feature("liq_amihud", 0) != 0 {
		t.Fatal("missing feature should fall back to 0")
	}
}

func TestParseEngineOutput_RejectsUnknownShape(t *testing.T) {
	_, err := ParseEngineOutput("sentiment", 42)
	if err == nil {
		t.Fatal("want error for non-directive, non-map input")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %T", err)
	}
	if pe.Engine != "sentiment" {
		t.Fatalf("want engine name in error, got %q", pe.Engine)
	}
}

func TestParseEngineOutput_NilPointer(t *testing.T) {
	var d *EngineDirective
	if _, err := ParseEngineOutput("hedge", d); err == nil {
		t.Fatal("want error for nil directive pointer")
	}
}
