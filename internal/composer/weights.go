package composer

import (
	"strings"

	"github.com/quantfusion/signalcore/internal/engines"
)

// Weights is the per-engine blend for one fusion cycle, normalized so the
// active components sum to 1. Lookahead is 0 unless a lookahead directive is
// present this cycle.
type Weights struct {
	Hedge     float64
	Liquidity float64
	Sentiment float64
	Lookahead float64
}

// lookaheadWeight is the pre-normalization weight a lookahead prediction
// carries: half an equal-regime engine weight, so the three primary engines
// always dominate.
const lookaheadWeight = 0.5

var (
	stressRegimes    = []string{"jump", "panic", "crash", "double_well"}
	liquidityRegimes = []string{"vacuum", "transition", "rotation"}
	trendRegimes     = []string{"markup", "markdown", "trend", "distribution", "accumulation"}
)

// InferGlobalRegime collapses the three per-engine regime labels into one
// coarse global label. First non-"normal" label wins, checked hedge then
// liquidity then sentiment; with all three normal (or empty) it falls back to
// sentiment, hedge, liquidity, then the literal "normal".
func InferGlobalRegime(hedge, liquidity, sentiment engines.EngineDirective) string {
	for _, r := range []string{hedge.Regime, liquidity.Regime, sentiment.Regime} {
		if r != "" && !strings.EqualFold(r, "normal") {
			return r
		}
	}
	for _, r := range []string{sentiment.Regime, hedge.Regime, liquidity.Regime} {
		if r != "" {
			return r
		}
	}
	return "normal"
}

// ComputeRegimeWeights maps a global regime label to the engine weight blend.
// Matching is by substring so regime labels stay free text: any label
// containing a trigger word lands in that bucket, a coarse heuristic rather
// than a closed classification.
func ComputeRegimeWeights(globalRegime string, hasLookahead bool) Weights {
	w := Weights{Hedge: 1, Liquidity: 1, Sentiment: 1}
	g := strings.ToLower(globalRegime)
	switch {
	case containsAny(g, stressRegimes):
		// dealer hedging dominates in stress; crowd sentiment is noise
		w = Weights{Hedge: 2.5, Liquidity: 1.5, Sentiment: 0.5}
	case containsAny(g, liquidityRegimes):
		w = Weights{Hedge: 0.8, Liquidity: 2.5, Sentiment: 0.7}
	case containsAny(g, trendRegimes):
		w = Weights{Hedge: 0.6, Liquidity: 0.9, Sentiment: 2.5}
	}
	if hasLookahead {
		w.Lookahead = lookaheadWeight
	}
	sum := w.Hedge + w.Liquidity + w.Sentiment + w.Lookahead
	w.Hedge /= sum
	w.Liquidity /= sum
	w.Sentiment /= sum
	w.Lookahead /= sum
	return w
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
