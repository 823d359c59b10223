package composer

import "github.com/quantfusion/signalcore/internal/engines"

// directionBand is the neutral zone for the fused direction score. The
// asymmetric snap (strict thresholds) lets a dominant high-confidence engine
// under extreme-regime weighting override a merely-present disagreement.
const directionBand = 0.15

// FuseConfidence blends per-engine confidence as a weight-normalized average,
// clamped to [0,1]. A zero total weight yields 0, not a division error. The
// lookahead directive, when present, joins with its own weight.
func FuseConfidence(hedge, liquidity, sentiment engines.EngineDirective, lookahead *engines.EngineDirective, w Weights) float64 {
	num := hedge.Confidence*w.Hedge + liquidity.Confidence*w.Liquidity + sentiment.Confidence*w.Sentiment
	den := w.Hedge + w.Liquidity + w.Sentiment
	if lookahead != nil {
		num += lookahead.Confidence * w.Lookahead
		den += w.Lookahead
	}
	if den == 0 {
		return 0
	}
	return clamp(num/den, 0, 1)
}

// FuseDirection runs a confidence- and weight-weighted vote over engine
// directions and snaps the result to {-1,0,1}. When the confidence-weight
// denominator is zero (all confidences or all weights zero) the raw score is
// used unnormalized.
func FuseDirection(hedge, liquidity, sentiment engines.EngineDirective, lookahead *engines.EngineDirective, w Weights) int {
	score := hedge.Direction*hedge.Confidence*w.Hedge +
		liquidity.Direction*liquidity.Confidence*w.Liquidity +
		sentiment.Direction*sentiment.Confidence*w.Sentiment
	den := hedge.Confidence*w.Hedge + liquidity.Confidence*w.Liquidity + sentiment.Confidence*w.Sentiment
	if lookahead != nil {
		score += lookahead.Direction * lookahead.Confidence * w.Lookahead
		den += lookahead.Confidence * w.Lookahead
	}
	if den > 0 {
		score /= den
	}
	switch {
	case score > directionBand:
		return 1
	case score < -directionBand:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
