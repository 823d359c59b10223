package composer

// TradeStyle is the categorical trading posture implied by a fused directive.
type TradeStyle string

const (
	StyleNoTrade    TradeStyle = "no_trade"
	StyleMeanRevert TradeStyle = "mean_revert"
	StyleMomentum   TradeStyle = "momentum"
	StyleBreakout   TradeStyle = "breakout"
)

// minStyleConfidence gates both the disagreement check and the no-trade cut.
const minStyleConfidence = 0.4

// momentumEnergyCeiling splits low-resistance momentum from breakout setups.
const momentumEnergyCeiling = 1.0

// ClassifyTradeStyle maps the fused picture to a style. Order matters:
// active disagreement between engines is checked before neutrality, so a
// confident disagreement always reads mean-revert even when the fused
// direction alone would look like momentum or breakout.
func ClassifyTradeStyle(direction int, confidence, totalEnergy float64, engineDirections [3]float64) TradeStyle {
	signs := map[int]bool{}
	for _, d := range engineDirections {
		if s := signOf(d); s != 0 {
			signs[s] = true
		}
	}
	if len(signs) > 1 && confidence >= minStyleConfidence {
		return StyleMeanRevert
	}
	if direction == 0 || confidence < minStyleConfidence {
		return StyleNoTrade
	}
	if totalEnergy < momentumEnergyCeiling {
		return StyleMomentum
	}
	return StyleBreakout
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
