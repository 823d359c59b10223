package composer

import (
	"math"

	"github.com/quantfusion/signalcore/internal/engines"
)

// Fixed energy coefficients: dealer-hedging resistance and liquidity friction
// matter more than sentiment-driven exhaustion.
const (
	hedgeEnergyCoeff     = 1.2
	sentimentEnergyCoeff = 0.8
)

// EstimateElasticity derives a liquidity elasticity multiplier from the
// namespaced Kyle-lambda and Amihud features on the liquidity directive.
// Missing features default to 0; the 0.1 floor prevents a zero or negative
// multiplier.
func EstimateElasticity(liquidity engines.EngineDirective) float64 {
	lambda := liquidity.Feature("liq_kyle_lambda", 0)
	amihud := liquidity.Feature("liq_amihud", 0)
	return math.Max(0.1, 1.0+0.5*lambda+0.5*amihud)
}

// ComputeTotalEnergy combines per-engine energy into one resistance score,
// floored at 0 even for adversarial negative inputs.
func ComputeTotalEnergy(hedge, liquidity, sentiment engines.EngineDirective, elasticity float64) float64 {
	total := hedge.Energy*hedgeEnergyCoeff + liquidity.Energy*elasticity + sentiment.Energy*sentimentEnergyCoeff
	if total < 0 {
		return 0
	}
	return total
}
