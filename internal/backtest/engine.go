package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/quantfusion/signalcore/internal/engines"
	"github.com/quantfusion/signalcore/internal/observ"
	"github.com/quantfusion/signalcore/internal/policy"
)

// Mode selects the simulation strategy for a run.
type Mode string

const (
	// ModeEventDriven is the canonical bar-by-bar simulation through the
	// policy composer.
	ModeEventDriven Mode = "event_driven"
	// ModeVectorized is the fast approximate path: thresholded composite
	// signal, no sizing or validation.
	ModeVectorized Mode = "vectorized"
	// ModeHybrid currently delegates entirely to vectorized; combining
	// vectorized signals with event-driven execution is future work.
	ModeHybrid Mode = "hybrid"
)

// safetyMargin is the capital haircut applied when scaling a fill down to
// available capital.
const safetyMargin = 0.05

// Config tunes one backtest engine.
type Config struct {
	InitialCapital     float64       `yaml:"initial_capital"`
	Mode               Mode          `yaml:"mode"`
	RiskFreeRate       float64       `yaml:"risk_free_rate"`
	ReturnsLookback    int           `yaml:"returns_lookback"`    // trailing bars fed to Kelly sizing
	FallbackVolatility float64       `yaml:"fallback_volatility"` // annualized, used until enough bars exist
	Seed               int64         `yaml:"seed"`
	Policy             policy.Config `yaml:"policy"`
}

func (c Config) normalize() Config {
	if c.InitialCapital == 0 {
		c.InitialCapital = 100000
	}
	if c.Mode == "" {
		c.Mode = ModeEventDriven
	}
	if c.RiskFreeRate == 0 {
		c.RiskFreeRate = 0.05
	}
	if c.ReturnsLookback == 0 {
		c.ReturnsLookback = 60
	}
	if c.FallbackVolatility == 0 {
		c.FallbackVolatility = 0.20
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// BarData pairs one OHLCV bar with the aligned physics states. A bar with any
// missing state is skipped by the simulation rather than aborting the run.
type BarData struct {
	Bar       engines.Bar             `json:"bar"`
	Energy    *engines.EnergyState    `json:"energy,omitempty"`
	Liquidity *engines.LiquidityState `json:"liquidity,omitempty"`
	Sentiment *engines.SentimentState `json:"sentiment,omitempty"`
}

// Engine replays a bar stream through the policy composer. Stateful per run:
// capital, the open trade, trade history, and the equity curve mutate bar by
// bar in one sequential loop. State is not cleared between Run calls; use
// Reset (or a fresh engine) between independent runs.
type Engine struct {
	cfg      Config
	composer *policy.Composer

	currentCapital float64
	openTrade      *openPosition
	trades         []Trade
	equity         []EquityPoint
}

type openPosition struct {
	trade      Trade
	direction  float64 // +1 long, -1 short
	entryClose float64 // raw close at entry, for gross P&L
}

// NewEngine builds an engine with freshly reset state.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg.normalize()}
	e.Reset()
	return e
}

// Reset restores initial capital, clears trades, the equity curve, and any
// open position, and reseeds the policy composer's Monte Carlo stream so an
// identical rerun reproduces identical results.
func (e *Engine) Reset() {
	e.currentCapital = e.cfg.InitialCapital
	e.openTrade = nil
	e.trades = nil
	e.equity = nil
	e.composer = policy.NewComposer(e.cfg.Policy, e.cfg.Seed)
}

// Run simulates the series and computes the performance report. The series
// must be non-empty and sorted ascending by timestamp.
func (e *Engine) Run(symbol string, series []BarData) (Results, error) {
	if len(series) == 0 {
		return Results{}, fmt.Errorf("backtest %s: empty historical data", symbol)
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Bar.Timestamp.After(series[i-1].Bar.Timestamp) {
			return Results{}, fmt.Errorf("backtest %s: bars not sorted ascending at index %d", symbol, i)
		}
	}

	start := time.Now()
	switch e.cfg.Mode {
	case ModeVectorized:
		e.runVectorized(symbol, series)
	case ModeHybrid:
		observ.Warn("backtest_hybrid_alias", map[string]any{"symbol": symbol})
		e.runVectorized(symbol, series)
	default:
		e.runEventDriven(symbol, series)
	}

	results := e.computeResults(symbol, series)
	observ.SetGauge("backtest_final_equity", results.FinalEquity, map[string]string{"symbol": symbol})
	observ.Timed("backtest_complete", start, map[string]any{
		"symbol":     symbol,
		"mode":       string(e.cfg.Mode),
		"trades":     results.TotalTrades,
		"return_pct": results.TotalReturnPct,
		"max_dd_pct": results.MaxDrawdownPct,
	})
	return results, nil
}

func (e *Engine) runEventDriven(symbol string, series []BarData) {
	closes := make([]float64, 0, len(series))
	for _, bd := range series {
		bar := bd.Bar
		closes = append(closes, bar.Close)
		e.markEquity(bar)

		// an open position must fully close before a new one opens
		if e.openTrade != nil {
			if reason := e.exitSignal(bar.Close); reason != "" {
				e.closePosition(bar, reason)
			}
			continue
		}

		if bd.Energy == nil || bd.Liquidity == nil || bd.Sentiment == nil {
			continue
		}

		returns := trailingReturns(closes, e.cfg.ReturnsLookback)
		vol := annualizedVol(returns)
		if vol == 0 {
			vol = e.cfg.FallbackVolatility
		}

		idea := e.composer.ComposeTradeIdea(symbol, bar.Close,
			*bd.Energy, *bd.Liquidity, *bd.Sentiment,
			e.equityNow(bar.Close), vol, returns)
		if !idea.IsValid {
			continue
		}
		if idea.Direction != policy.DirectionLong && idea.Direction != policy.DirectionShort {
			continue
		}
		e.openPosition(bar, idea)
	}

	if e.openTrade != nil {
		e.closePosition(series[len(series)-1].Bar, "end_of_data")
	}
}

// markEquity samples capital plus unrealized P&L and refreshes MAE/MFE.
func (e *Engine) markEquity(bar engines.Bar) {
	equity := e.equityNow(bar.Close)
	if e.openTrade != nil {
		op := e.openTrade
		pct := (bar.Close - op.trade.EntryPrice) / op.trade.EntryPrice * op.direction
		op.trade.MAE = math.Min(op.trade.MAE, pct)
		op.trade.MFE = math.Max(op.trade.MFE, pct)
	}
	e.equity = append(e.equity, EquityPoint{Timestamp: bar.Timestamp, Equity: equity})
}

func (e *Engine) equityNow(closePrice float64) float64 {
	equity := e.currentCapital
	if e.openTrade != nil {
		op := e.openTrade
		equity += op.trade.PositionValue +
			(closePrice-op.trade.EntryPrice)*op.trade.PositionSize*op.direction
	}
	return equity
}

// exitSignal reports why the open position should close at this price, or ""
// to hold. Long exits on close at or through the stop below or target above;
// short mirrors the inequalities.
func (e *Engine) exitSignal(closePrice float64) string {
	op := e.openTrade
	if op.direction > 0 {
		if closePrice <= op.trade.StopLoss {
			return "stop"
		}
		if closePrice >= op.trade.TakeProfit {
			return "target"
		}
		return ""
	}
	if closePrice >= op.trade.StopLoss {
		return "stop"
	}
	if closePrice <= op.trade.TakeProfit {
		return "target"
	}
	return ""
}

// openPosition fills at the bar close adjusted against us by slippage and
// impact, scaling the size down if the notional exceeds available capital
// less the safety margin.
func (e *Engine) openPosition(bar engines.Bar, idea policy.TradeIdea) {
	direction := 1.0
	if idea.Direction == policy.DirectionShort {
		direction = -1.0
	}
	costAdj := (idea.ExpectedSlippageBps + idea.ExpectedImpactBps) / 10000
	fill := bar.Close * (1 + direction*costAdj)

	size := idea.PositionSize
	available := e.currentCapital * (1 - safetyMargin)
	if size*fill > available {
		size = math.Floor(available / fill)
	}
	if size <= 0 {
		return
	}
	notional := size * fill
	e.currentCapital -= notional

	e.openTrade = &openPosition{
		direction:  direction,
		entryClose: bar.Close,
		trade: Trade{
			Symbol:           idea.Symbol,
			Direction:        string(idea.Direction),
			EntryDate:        bar.Timestamp,
			EntryPrice:       fill,
			PositionSize:     size,
			PositionValue:    notional,
			EntrySlippageBps: idea.ExpectedSlippageBps,
			EntryImpactBps:   idea.ExpectedImpactBps,
			EnergySignal:     idea.EnergySignal,
			LiquiditySignal:  idea.LiquiditySignal,
			SentimentSignal:  idea.SentimentSignal,
			CompositeSignal:  idea.CompositeSignal,
			Confidence:       idea.Confidence,
			StopLoss:         idea.StopLoss,
			TakeProfit:       idea.TakeProfit,
		},
	}
	observ.IncCounter("backtest_positions_opened_total", map[string]string{"direction": string(idea.Direction)})
}

// closePosition fills at the bar close adjusted against us in the opposite
// direction, realizes P&L, credits capital, and appends the completed trade.
func (e *Engine) closePosition(bar engines.Bar, reason string) {
	op := e.openTrade
	costAdj := (op.trade.EntrySlippageBps + op.trade.EntryImpactBps) / 10000
	fill := bar.Close * (1 - op.direction*costAdj)

	t := op.trade
	t.ExitDate = bar.Timestamp
	t.ExitReason = reason
	t.ExitPrice = fill
	t.ExitSlippageBps = op.trade.EntrySlippageBps
	t.ExitImpactBps = op.trade.EntryImpactBps
	t.TotalCostBps = t.EntrySlippageBps + t.EntryImpactBps + t.ExitSlippageBps + t.ExitImpactBps

	t.GrossPnL = (bar.Close - op.entryClose) * t.PositionSize * op.direction
	t.NetPnL = (fill - t.EntryPrice) * t.PositionSize * op.direction
	t.PctPnL = t.NetPnL / t.PositionValue * 100
	if t.NetPnL > 0 {
		t.IsWin = true
		t.WinAmount = t.NetPnL
	} else if t.NetPnL < 0 {
		t.IsLoss = true
		t.LossAmount = -t.NetPnL
	}

	e.currentCapital += t.PositionValue + t.NetPnL
	e.trades = append(e.trades, t)
	e.openTrade = nil
	observ.IncCounter("backtest_positions_closed_total", map[string]string{"reason": reason})
	observ.Observe("backtest_trade_pnl", t.NetPnL, map[string]string{"reason": reason})
}

// trailingReturns is the pct-change series over the last lookback closes.
func trailingReturns(closes []float64, lookback int) []float64 {
	start := len(closes) - lookback - 1
	if start < 0 {
		start = 0
	}
	var returns []float64
	for i := start + 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			returns = append(returns, closes[i]/closes[i-1]-1)
		}
	}
	return returns
}

func annualizedVol(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))
	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	return math.Sqrt(variance) * math.Sqrt(252)
}
