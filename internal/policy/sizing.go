package policy

import (
	"math"

	"github.com/quantfusion/signalcore/internal/engines"
)

// minKellyObservations is the fewest historical returns Kelly sizing accepts.
const minKellyObservations = 21

type sizeCandidate struct {
	method SizingMethod
	shares float64
}

// fixedSize spends the absolute dollar cap at the current price.
func (p *Composer) fixedSize(price float64) (float64, bool) {
	if price <= 0 {
		return 0, false
	}
	return p.cfg.MaxPositionValue / price, true
}

// kellySize derives a damped Kelly position from historical returns. The
// method is inapplicable (not a zero-size candidate) with fewer than 21
// observations, no wins or losses to estimate from, or an edge below the
// configured gate.
func (p *Composer) kellySize(price, accountValue float64, returns []float64) (shares, fraction float64, ok bool) {
	if price <= 0 || len(returns) < minKellyObservations {
		return 0, 0, false
	}
	var winSum, lossSum float64
	var wins, losses int
	for _, r := range returns {
		if r > 0 {
			winSum += r
			wins++
		} else if r < 0 {
			lossSum += -r
			losses++
		}
	}
	if wins == 0 || losses == 0 {
		return 0, 0, false
	}
	avgWin := winSum / float64(wins)
	avgLoss := lossSum / float64(losses)
	winProb := float64(wins) / float64(len(returns))
	edge := winProb*avgWin - (1-winProb)*avgLoss
	if edge < p.cfg.MinKellyEdge {
		return 0, 0, false
	}
	fraction = p.cfg.KellyDamping * edge / avgWin
	return accountValue * fraction / price, fraction, true
}

// volTargetSize scales exposure so the position contributes the target
// volatility against the asset's current volatility.
func (p *Composer) volTargetSize(price, accountValue, assetVol float64) (float64, bool) {
	if price <= 0 || assetVol <= 0 {
		return 0, false
	}
	return accountValue * (p.cfg.TargetVolatility / assetVol) / price, true
}

// energyAwareSize shrinks the vol-target size when movement energy is above
// the cap or elasticity below the floor: hard-to-move or brittle markets get
// less exposure.
func (p *Composer) energyAwareSize(volTargetShares float64, es engines.EnergyState) (float64, bool) {
	if volTargetShares <= 0 {
		return 0, false
	}
	scale := 1.0
	if es.MovementEnergy > p.cfg.MaxMovementEnergy {
		scale *= p.cfg.MaxMovementEnergy / es.MovementEnergy
	}
	if es.Elasticity > 0 && es.Elasticity < p.cfg.MinElasticity {
		scale *= es.Elasticity / p.cfg.MinElasticity
	}
	return volTargetShares * scale, true
}

// positionSize aggregates the candidate sizes with the most conservative
// policy: the minimum of all applicable positive candidates, clipped to the
// absolute dollar cap and the percent-of-account cap, floored to whole
// shares. Returns the winning method for attribution.
func (p *Composer) positionSize(price, accountValue, assetVol float64, es engines.EnergyState, historicalReturns []float64) (float64, SizingMethod, float64) {
	var candidates []sizeCandidate

	if s, ok := p.fixedSize(price); ok {
		candidates = append(candidates, sizeCandidate{SizingFixed, s})
	}
	kellyFraction := 0.0
	if s, f, ok := p.kellySize(price, accountValue, historicalReturns); ok {
		kellyFraction = f
		candidates = append(candidates, sizeCandidate{SizingKelly, s})
	}
	volShares, volOK := p.volTargetSize(price, accountValue, assetVol)
	if volOK {
		candidates = append(candidates, sizeCandidate{SizingVolTarget, volShares})
	}
	if s, ok := p.energyAwareSize(volShares, es); ok {
		candidates = append(candidates, sizeCandidate{SizingEnergyAware, s})
	}

	best := sizeCandidate{method: SizingComposite}
	for _, c := range candidates {
		if c.shares <= 0 {
			continue
		}
		if best.shares == 0 || c.shares < best.shares {
			best = c
		}
	}
	if best.shares <= 0 {
		return 0, SizingComposite, kellyFraction
	}

	if best.shares*price > p.cfg.MaxPositionValue {
		best.shares = p.cfg.MaxPositionValue / price
	}
	if cap := accountValue * p.cfg.MaxPortfolioPct; best.shares*price > cap {
		best.shares = cap / price
	}
	return math.Floor(best.shares), best.method, kellyFraction
}
