package composer

import (
	"math"
	"testing"

	"github.com/quantfusion/signalcore/internal/engines"
)

func dir(regime string) engines.EngineDirective {
	return engines.EngineDirective{Regime: regime}
}

func TestInferGlobalRegime_FirstNonNormalWins(t *testing.T) {
	cases := []struct {
		hedge, liquidity, sentiment string
		want                        string
	}{
		{"normal", "normal", "normal", "normal"},
		{"jump_diffusion", "vacuum", "normal", "jump_diffusion"}, // hedge checked first, not majority
		{"normal", "vacuum", "markup", "vacuum"},
		{"Normal", "NORMAL", "euphoria", "euphoria"}, // case-insensitive normal check
		{"", "", "", "normal"},
		{"", "", "normal", "normal"},
	}
	for _, c := range cases {
		got := InferGlobalRegime(dir(c.hedge), dir(c.liquidity), dir(c.sentiment))
		if got != c.want {
			t.Fatalf("InferGlobalRegime(%q,%q,%q) = %q, want %q", c.hedge, c.liquidity, c.sentiment, got, c.want)
		}
	}
}

func TestComputeRegimeWeights_AlwaysNormalized(t *testing.T) {
	regimes := []string{
		"normal", "jump_diffusion", "panic_selling", "crash", "double_well_potential",
		"vacuum", "transition_zone", "sector_rotation",
		"markup", "markdown", "strong_trend", "distribution", "accumulation",
		"some_unheard_of_label", "", "PANIC", "TrEnD_up",
	}
	for _, r := range regimes {
		for _, lookahead := range []bool{false, true} {
			w := ComputeRegimeWeights(r, lookahead)
			sum := w.Hedge + w.Liquidity + w.Sentiment + w.Lookahead
			if math.Abs(sum-1.0) > 1e-9 {
				t.Fatalf("weights for %q (lookahead=%v) sum to %v, want 1", r, lookahead, sum)
			}
			if !lookahead && w.Lookahead != 0 {
				t.Fatalf("lookahead weight should be 0 when absent, got %v", w.Lookahead)
			}
		}
	}
}

func TestComputeRegimeWeights_Buckets(t *testing.T) {
	// stress regimes tilt to hedge, trend regimes to sentiment
	stress := ComputeRegimeWeights("panic_selling", false)
	if !(stress.Hedge > stress.Liquidity && stress.Liquidity > stress.Sentiment) {
		t.Fatalf("stress weights not hedge-dominant: %+v", stress)
	}
	trend := ComputeRegimeWeights("markup_phase", false)
	if !(trend.Sentiment > trend.Liquidity && trend.Liquidity > trend.Hedge) {
		t.Fatalf("trend weights not sentiment-dominant: %+v", trend)
	}
	equal := ComputeRegimeWeights("normal", false)
	if math.Abs(equal.Hedge-equal.Sentiment) > 1e-12 || math.Abs(equal.Hedge-1.0/3) > 1e-12 {
		t.Fatalf("normal regime should weight equally: %+v", equal)
	}
}
