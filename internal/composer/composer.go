package composer

import (
	"fmt"
	"math"
	"strings"

	"github.com/quantfusion/signalcore/internal/engines"
	"github.com/quantfusion/signalcore/internal/observ"
)

// CompositeMarketDirective is the fused output of one compose cycle:
// stateless, consumed immediately downstream.
type CompositeMarketDirective struct {
	Direction        int              `json:"direction"` // -1, 0, 1
	Strength         float64          `json:"strength"`  // [0,100]
	Confidence       float64          `json:"confidence"`
	Volatility       float64          `json:"volatility"`
	EnergyCost       float64          `json:"energy_cost"`
	TradeStyle       TradeStyle       `json:"trade_style"`
	ExpectedMoveCone ExpectedMoveCone `json:"expected_move_cone"`
	Rationale        string           `json:"rationale"`
	RawEngines       *RawEngines      `json:"raw_engines,omitempty"`
}

// RawEngines is the debug snapshot of the cycle's inputs.
type RawEngines struct {
	Hedge     engines.EngineDirective  `json:"hedge"`
	Liquidity engines.EngineDirective  `json:"liquidity"`
	Sentiment engines.EngineDirective  `json:"sentiment"`
	Lookahead *engines.EngineDirective `json:"lookahead,omitempty"`
}

// LookaheadProvider supplies an optional learned price prediction, in percent.
// A zero prediction means no signal this cycle.
type LookaheadProvider interface {
	PredictPct() float64
}

// Composer fuses the three engine outputs into one CompositeMarketDirective.
// Collaborators arrive by injection; there is no ambient registry.
type Composer struct {
	referencePrice func() float64
	lookahead      LookaheadProvider
}

// New builds a Composer. referencePrice must not be nil; lookahead may be.
func New(referencePrice func() float64, lookahead LookaheadProvider) *Composer {
	return &Composer{referencePrice: referencePrice, lookahead: lookahead}
}

// Compose runs one fusion cycle. Each raw input may be an EngineDirective or
// a plain map; anything else surfaces as a ParseError rather than a guess.
func (c *Composer) Compose(hedgeRaw, liquidityRaw, sentimentRaw any) (CompositeMarketDirective, error) {
	hedge, err := engines.ParseEngineOutput("hedge", hedgeRaw)
	if err != nil {
		return CompositeMarketDirective{}, err
	}
	liquidity, err := engines.ParseEngineOutput("liquidity", liquidityRaw)
	if err != nil {
		return CompositeMarketDirective{}, err
	}
	sentiment, err := engines.ParseEngineOutput("sentiment", sentimentRaw)
	if err != nil {
		return CompositeMarketDirective{}, err
	}

	lookahead := c.lookaheadDirective()

	globalRegime := InferGlobalRegime(hedge, liquidity, sentiment)
	weights := ComputeRegimeWeights(globalRegime, lookahead != nil)
	confidence := FuseConfidence(hedge, liquidity, sentiment, lookahead, weights)
	direction := FuseDirection(hedge, liquidity, sentiment, lookahead, weights)

	elasticity := EstimateElasticity(liquidity)
	totalEnergy := ComputeTotalEnergy(hedge, liquidity, sentiment, elasticity)

	refPrice := c.referencePrice()
	cone := BuildExpectedMoveCone(refPrice, direction,
		hedge.VolatilityProxy, liquidity.VolatilityProxy, sentiment.VolatilityProxy)

	style := ClassifyTradeStyle(direction, confidence, totalEnergy,
		[3]float64{hedge.Direction, liquidity.Direction, sentiment.Direction})

	strength := clamp(100*confidence/(1+totalEnergy), 0, 100)

	volatility := 0.0
	if band, ok := cone.Bands["1d"]; ok && refPrice > 0 {
		volatility = math.Abs(band.Upper-band.Lower) / refPrice * 100
	}

	directive := CompositeMarketDirective{
		Direction:        direction,
		Strength:         strength,
		Confidence:       confidence,
		Volatility:       volatility,
		EnergyCost:       totalEnergy,
		TradeStyle:       style,
		ExpectedMoveCone: cone,
		Rationale:        buildRationale(direction, confidence, totalEnergy, globalRegime, hedge, liquidity, sentiment),
		RawEngines: &RawEngines{
			Hedge:     hedge,
			Liquidity: liquidity,
			Sentiment: sentiment,
			Lookahead: lookahead,
		},
	}

	observ.IncCounter("composer_directives_total", map[string]string{"style": string(style)})
	observ.Log("composer_directive", map[string]any{
		"direction":  direction,
		"confidence": confidence,
		"energy":     totalEnergy,
		"style":      string(style),
		"regime":     globalRegime,
	})
	return directive, nil
}

// lookaheadDirective turns a nonzero learned prediction into a synthetic
// low-energy fourth directive. Confidence scales with prediction magnitude,
// saturating at a 2% predicted move.
func (c *Composer) lookaheadDirective() *engines.EngineDirective {
	if c.lookahead == nil {
		return nil
	}
	pred := c.lookahead.PredictPct()
	if pred == 0 {
		return nil
	}
	dir := 1.0
	if pred < 0 {
		dir = -1.0
	}
	return &engines.EngineDirective{
		Name:       "lookahead",
		Direction:  dir,
		Strength:   math.Abs(pred),
		Confidence: math.Min(1, math.Abs(pred)/2),
		Regime:     "normal",
	}
}

func buildRationale(direction int, confidence, totalEnergy float64, globalRegime string, hedge, liquidity, sentiment engines.EngineDirective) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s bias (confidence %.2f, energy cost %.1f, regime %s).",
		directionLabel(direction), confidence, totalEnergy, globalRegime)
	for _, d := range []engines.EngineDirective{hedge, liquidity, sentiment} {
		fmt.Fprintf(&b, " %s: dir=%.2f conf=%.2f energy=%.1f regime=%s.",
			d.Name, d.Direction, d.Confidence, d.Energy, d.Regime)
	}
	b.WriteString(" " + conflictSummary(hedge, liquidity, sentiment))
	return b.String()
}

// conflictSummary calls out every pair of engines pointing in opposite
// directions; with no such pair the engines are reported broadly aligned.
func conflictSummary(hedge, liquidity, sentiment engines.EngineDirective) string {
	pairs := [][2]engines.EngineDirective{
		{hedge, liquidity},
		{hedge, sentiment},
		{liquidity, sentiment},
	}
	var conflicts []string
	for _, p := range pairs {
		if signOf(p[0].Direction)*signOf(p[1].Direction) < 0 {
			conflicts = append(conflicts, fmt.Sprintf("%s and %s disagree", p[0].Name, p[1].Name))
		}
	}
	if len(conflicts) == 0 {
		return "Engines are broadly aligned."
	}
	return "Conflicts: " + strings.Join(conflicts, "; ") + "."
}

func directionLabel(direction int) string {
	switch {
	case direction > 0:
		return "Bullish"
	case direction < 0:
		return "Bearish"
	default:
		return "Neutral"
	}
}
