package policy

import (
	"fmt"
	"math"

	"github.com/quantfusion/signalcore/internal/engines"
)

// validate applies the fixed hard-error / soft-warning table to a composed
// idea. Hard errors flip IsValid; warnings only annotate. The split is a
// design table, not per-call configuration.
func (p *Composer) validate(idea *TradeIdea, accountValue float64, es engines.EnergyState, ls engines.LiquidityState, ss engines.SentimentState) {
	idea.IsValid = true

	fail := func(msg string) {
		idea.Errors = append(idea.Errors, msg)
		idea.IsValid = false
	}
	warn := func(msg string) {
		idea.Warnings = append(idea.Warnings, msg)
	}

	if idea.Direction == DirectionAvoid {
		fail("direction is avoid: hard regime override active")
	}
	if idea.PositionSize <= 0 {
		fail("position size is zero")
	}
	if idea.PositionValue > p.cfg.MaxPositionValue {
		fail(fmt.Sprintf("position value %.0f exceeds cap %.0f", idea.PositionValue, p.cfg.MaxPositionValue))
	}
	if accountValue > 0 && idea.PositionValue/accountValue > p.cfg.MaxPortfolioPct {
		fail(fmt.Sprintf("position is %.1f%% of account, cap is %.1f%%",
			100*idea.PositionValue/accountValue, 100*p.cfg.MaxPortfolioPct))
	}
	if es.Regime == "plastic" {
		fail("energy regime plastic: no stable price equilibrium")
	}
	if ls.Regime == "frozen" {
		fail("liquidity regime frozen: market cannot absorb the order")
	}

	if idea.Direction == DirectionNeutral {
		warn("direction is neutral")
	}
	if es.Regime == "chaotic" {
		warn("energy regime chaotic")
	}
	if es.MovementEnergy > p.cfg.MaxMovementEnergy {
		warn(fmt.Sprintf("movement energy %.1f above threshold %.1f", es.MovementEnergy, p.cfg.MaxMovementEnergy))
	}
	if es.Elasticity > 0 && es.Elasticity < p.cfg.MinElasticity {
		warn(fmt.Sprintf("elasticity %.2f below floor %.2f", es.Elasticity, p.cfg.MinElasticity))
	}
	if ls.Regime == "thin" {
		warn("liquidity regime thin")
	}
	if idea.ExpectedImpactBps > p.cfg.MaxImpactBps {
		warn(fmt.Sprintf("expected impact %.1f bps above cap %.1f", idea.ExpectedImpactBps, p.cfg.MaxImpactBps))
	}
	if idea.ExpectedSlippageBps > p.cfg.MaxSlippageBps {
		warn(fmt.Sprintf("expected slippage %.1f bps above cap %.1f", idea.ExpectedSlippageBps, p.cfg.MaxSlippageBps))
	}
	if math.Abs(ss.SentimentScore) > 0.8 {
		warn("crowd sentiment at an extreme")
	}
}
