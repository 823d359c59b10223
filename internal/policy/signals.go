package policy

import (
	"math"

	"github.com/quantfusion/signalcore/internal/engines"
)

// Per-engine signal extraction. Each helper maps one physics state to a
// directional signal in [-1,1], damped by the state's stability.

func energySignal(s engines.EnergyState) float64 {
	raw := 0.7*math.Tanh(s.EnergyAsymmetry/100) + 0.3*(-math.Tanh(s.ElasticityAsymmetry/10))
	return clampSignal(raw * s.Stability)
}

func liquiditySignal(s engines.LiquidityState) float64 {
	raw := s.DepthImbalance * (1 - math.Min(s.ImpactCost/100, 1))
	return clampSignal(raw * s.Stability)
}

func sentimentSignal(s engines.SentimentState) float64 {
	raw := 0.7*s.ContrarianSignal + 0.3*math.Tanh(s.SentimentMomentum/0.5)
	raw *= (1 + s.CrowdConviction) / 2
	return clampSignal(raw * s.Stability)
}

// compositeSignal blends the three extracted signals with the configured
// (pre-normalized) weights.
func (p *Composer) compositeSignal(energy, liquidity, sentiment float64) float64 {
	return clampSignal(p.cfg.EnergyWeight*energy +
		p.cfg.LiquidityWeight*liquidity +
		p.cfg.SentimentWeight*sentiment)
}

// SignalBreakdown exposes the per-engine and composite signals for one
// snapshot without sizing or validation. The vectorized backtest path uses it
// to precompute the signal series in bulk.
func (p *Composer) SignalBreakdown(es engines.EnergyState, ls engines.LiquidityState, ss engines.SentimentState) (energy, liquidity, sentiment, composite float64) {
	energy = energySignal(es)
	liquidity = liquiditySignal(ls)
	sentiment = sentimentSignal(ss)
	composite = p.compositeSignal(energy, liquidity, sentiment)
	return energy, liquidity, sentiment, composite
}

func clampSignal(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
