package policy

import (
	"math"
	"math/rand"

	"github.com/quantfusion/signalcore/internal/engines"
	"github.com/quantfusion/signalcore/internal/observ"
)

// neutralBand is the composite-signal zone that yields no directional view.
const neutralBand = 0.2

// regimeScores maps every known regime label (across the three engine
// vocabularies) to a fixed favorability score. Unknown regimes score 0.
// Sentiment regimes score contrarian: euphoria is a bad sign, capitulation a
// good one.
var regimeScores = map[string]float64{
	// energy
	"super_elastic": 1.0,
	"elastic":       0.5,
	"transitional":  0.0,
	"inelastic":     -0.5,
	"chaotic":       -0.5,
	"plastic":       -1.0,
	// liquidity
	"abundant": 1.0,
	"deep":     0.75,
	"normal":   0.5,
	"thin":     -0.5,
	"frozen":   -1.0,
	// sentiment
	"capitulation": 1.0,
	"fearful":      0.25,
	"balanced":     0.5,
	"greedy":       -0.25,
	"euphoric":     -0.75,
}

// Composer turns one snapshot of the three physics states into a sized,
// risk-checked TradeIdea. Each ComposeTradeIdea call is a pure function of
// its inputs and the fixed configuration; only the Monte Carlo rng advances.
type Composer struct {
	cfg Config
	rng *rand.Rand
}

// NewComposer builds a policy composer. The seed pins the Monte Carlo stream
// so identical runs reproduce identical ideas.
func NewComposer(cfg Config, seed int64) *Composer {
	return &Composer{cfg: cfg.Normalize(), rng: rand.New(rand.NewSource(seed))}
}

// Config returns the normalized configuration in effect.
func (p *Composer) Config() Config { return p.cfg }

// ComposeTradeIdea runs the full pipeline: signal extraction, composite
// blending, direction, sizing, entry/exit levels, execution costs, risk
// metrics, regime consistency, Monte Carlo, validation, confidence.
// historicalReturns may be nil; Kelly sizing then simply does not apply.
func (p *Composer) ComposeTradeIdea(symbol string, currentPrice float64,
	es engines.EnergyState, ls engines.LiquidityState, ss engines.SentimentState,
	accountValue, currentVolatility float64, historicalReturns []float64) TradeIdea {

	idea := TradeIdea{
		Symbol:          symbol,
		EntryPrice:      currentPrice,
		EnergyRegime:    es.Regime,
		LiquidityRegime: ls.Regime,
		SentimentRegime: ss.Regime,
	}

	// 1-2: per-engine signals and composite
	idea.EnergySignal = energySignal(es)
	idea.LiquiditySignal = liquiditySignal(ls)
	idea.SentimentSignal = sentimentSignal(ss)
	idea.CompositeSignal = p.compositeSignal(idea.EnergySignal, idea.LiquiditySignal, idea.SentimentSignal)

	// 3: direction, with hard regime overrides checked before signal strength
	idea.Direction = p.decideDirection(idea.CompositeSignal, es, ls)

	// 4: position sizing; neutral and avoid short-circuit to zero shares
	if idea.Direction == DirectionLong || idea.Direction == DirectionShort {
		size, method, kellyFraction := p.positionSize(currentPrice, accountValue, currentVolatility, es, historicalReturns)
		idea.PositionSize = size
		idea.SizingMethod = method
		idea.KellyFraction = kellyFraction
	} else {
		idea.SizingMethod = SizingComposite
	}
	idea.PositionValue = idea.PositionSize * currentPrice

	// 5: entry range, widened toward the unfavorable side by the half-spread
	halfSpread := currentPrice * ls.SpreadBps / 10000
	idea.EntryPriceMin, idea.EntryPriceMax = currentPrice, currentPrice
	switch idea.Direction {
	case DirectionLong:
		idea.EntryPriceMax = currentPrice + halfSpread
	case DirectionShort:
		idea.EntryPriceMin = currentPrice - halfSpread
	}

	// 6: fixed-percentage exit levels, mirrored for shorts
	if idea.Direction == DirectionShort {
		idea.StopLoss = currentPrice * (1 + p.cfg.StopLossPct)
		idea.TakeProfit = currentPrice * (1 - p.cfg.TakeProfitPct)
	} else {
		idea.StopLoss = currentPrice * (1 - p.cfg.StopLossPct)
		idea.TakeProfit = currentPrice * (1 + p.cfg.TakeProfitPct)
	}

	// 7: execution costs scale linearly with clip size
	costScale := 1 + idea.PositionValue/100000
	idea.ExpectedSlippageBps = ls.Slippage * costScale
	idea.ExpectedImpactBps = ls.ImpactCost * costScale
	idea.TotalCostBps = idea.ExpectedSlippageBps + idea.ExpectedImpactBps

	// 8: coarse risk metrics; a flat 50/50 win probability on purpose, the
	// Monte Carlo win rate is reported separately
	idea.ExpectedReturn = 0.5*p.cfg.TakeProfitPct - 0.5*p.cfg.StopLossPct
	idea.ExpectedVolatility = currentVolatility
	if currentVolatility > 0 {
		idea.ExpectedSharpe = (idea.ExpectedReturn - p.cfg.RiskFreeRate) / currentVolatility
	}

	// 9: regime consistency
	idea.RegimeConsistency = regimeConsistency(es.Regime, ls.Regime, ss.Regime)

	// 10: Monte Carlo
	if p.cfg.MonteCarloSims > 0 && (idea.Direction == DirectionLong || idea.Direction == DirectionShort) {
		mc := RunMonteCarlo(p.rng, currentPrice, idea.TakeProfit, idea.StopLoss, currentVolatility, p.cfg.MonteCarloSims)
		idea.MCWinRate = mc.WinRate
		idea.MCExpectedPnL = mc.MeanPnL
		idea.MCSharpe = mc.Sharpe
		idea.MCVaR95 = mc.VaR95
	}

	// 11: validation
	p.validate(&idea, accountValue, es, ls, ss)

	// 12: confidence
	avgStability := (es.Stability + ls.Stability + ss.Stability) / 3
	avgConfidence := (es.Confidence + ls.Confidence + ss.Confidence) / 3
	idea.Confidence = clampSignal(0.4*avgStability + 0.3*avgConfidence + 0.3*idea.RegimeConsistency)
	if idea.Confidence < 0 {
		idea.Confidence = 0
	}

	if !idea.IsValid {
		observ.IncCounter("policy_ideas_rejected_total", map[string]string{"symbol": symbol})
	}
	observ.Log("policy_idea", map[string]any{
		"symbol":    symbol,
		"direction": string(idea.Direction),
		"size":      idea.PositionSize,
		"composite": idea.CompositeSignal,
		"valid":     idea.IsValid,
	})
	return idea
}

// decideDirection applies the hard regime overrides first, then the neutral
// band, then the sign of the composite signal.
func (p *Composer) decideDirection(composite float64, es engines.EnergyState, ls engines.LiquidityState) Direction {
	if es.Regime == "plastic" || ls.Regime == "frozen" {
		return DirectionAvoid
	}
	if math.Abs(composite) < neutralBand {
		return DirectionNeutral
	}
	if composite > 0 {
		return DirectionLong
	}
	return DirectionShort
}

// regimeConsistency scores agreement between the three regime labels as
// exp(-variance) over their table scores: identical scores give 1, a wide
// spread decays toward 0.
func regimeConsistency(energyRegime, liquidityRegime, sentimentRegime string) float64 {
	scores := []float64{
		regimeScores[energyRegime],
		regimeScores[liquidityRegime],
		regimeScores[sentimentRegime],
	}
	mean := (scores[0] + scores[1] + scores[2]) / 3
	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= 3
	return math.Exp(-variance)
}
