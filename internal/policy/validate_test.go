package policy

import (
	"strings"
	"testing"
)

func TestValidate_WarningsDoNotInvalidate(t *testing.T) {
	p := NewComposer(Config{MonteCarloSims: -1}, 3)
	es, ls, ss := bullishStates()
	es.Regime = "chaotic"
	es.MovementEnergy = 500
	ls.Regime = "thin"
	ss.SentimentScore = 0.95
	idea := p.ComposeTradeIdea("QQQ", 100, es, ls, ss, 100000, 0.20, nil)

	if !idea.IsValid {
		t.Fatalf("warnings alone must not invalidate; errors: %v", idea.Errors)
	}
	wantFragments := []string{"chaotic", "movement energy", "thin", "sentiment"}
	for _, frag := range wantFragments {
		found := false
		for _, w := range idea.Warnings {
			if strings.Contains(w, frag) {
				found = true
			}
		}
		if !found {
			t.Fatalf("want %q warning, got %v", frag, idea.Warnings)
		}
	}
}

func TestValidate_OversizeIsHardError(t *testing.T) {
	// normal sizing clips to the caps, so drive validate directly with an
	// idea that slipped past them
	p := NewComposer(Config{MonteCarloSims: -1}, 3)
	es, ls, ss := bullishStates()
	idea := TradeIdea{
		Direction:     DirectionLong,
		PositionSize:  200,
		PositionValue: 20000, // above the $10k absolute cap and 25% of a 20k account
	}
	p.validate(&idea, 20000, es, ls, ss)
	if idea.IsValid {
		t.Fatal("oversized position must fail validation")
	}
	foundAbs, foundPct := false, false
	for _, e := range idea.Errors {
		if strings.Contains(e, "exceeds cap") {
			foundAbs = true
		}
		if strings.Contains(e, "of account") {
			foundPct = true
		}
	}
	if !foundAbs || !foundPct {
		t.Fatalf("want both cap errors, got %v", idea.Errors)
	}
}

func TestValidate_CostWarnings(t *testing.T) {
	p := NewComposer(Config{MonteCarloSims: -1}, 3)
	es, ls, ss := bullishStates()
	ls.Slippage = 30  // above the 20 bps cap after scaling
	ls.ImpactCost = 60 // above the 50 bps cap after scaling
	idea := p.ComposeTradeIdea("QQQ", 100, es, ls, ss, 100000, 0.20, nil)
	if !idea.IsValid {
		t.Fatalf("cost overruns warn, not fail: %v", idea.Errors)
	}
	if len(idea.Warnings) < 2 {
		t.Fatalf("want slippage and impact warnings, got %v", idea.Warnings)
	}
}
