package backtest

import (
	"math"
	"time"
)

// Results is the read-only performance report of one run, computed once from
// the accumulated trades and equity samples.
type Results struct {
	Symbol    string    `json:"symbol"`
	Mode      Mode      `json:"mode"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	InitialCapital float64 `json:"initial_capital"`
	FinalEquity    float64 `json:"final_equity"`
	TotalReturnPct float64 `json:"total_return_pct"`

	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`

	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"`
	ProfitFactor float64 `json:"profit_factor"` // 0 when no losses
	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	LargestWin   float64 `json:"largest_win"`
	LargestLoss  float64 `json:"largest_loss"`

	MaxDrawdownPct  float64 `json:"max_drawdown_pct"`
	MaxDrawdownBars int     `json:"max_drawdown_bars"` // longest contiguous underwater stretch

	AnnualizedVolatility float64 `json:"annualized_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	SortinoRatio         float64 `json:"sortino_ratio"`
	CalmarRatio          float64 `json:"calmar_ratio"`

	TotalCostBps float64 `json:"total_cost_bps"`
	AvgCostBps   float64 `json:"avg_cost_bps"`

	AvgTradeDurationDays float64 `json:"avg_trade_duration_days"`

	// Attribution assigns each closed trade's net P&L to whichever signal
	// source dominated at entry; trades without a strictly dominant signal
	// fall in no bucket.
	Attribution map[string]float64 `json:"attribution"`

	EquityCurve []EquityPoint `json:"equity_curve"`
	Trades      []Trade       `json:"trades"`
}

func (e *Engine) computeResults(symbol string, series []BarData) Results {
	r := Results{
		Symbol:         symbol,
		Mode:           e.cfg.Mode,
		StartDate:      series[0].Bar.Timestamp,
		EndDate:        series[len(series)-1].Bar.Timestamp,
		InitialCapital: e.cfg.InitialCapital,
		Attribution:    map[string]float64{"energy": 0, "liquidity": 0, "sentiment": 0},
		EquityCurve:    e.equity,
		Trades:         e.trades,
	}
	if len(e.equity) > 0 {
		r.FinalEquity = e.equity[len(e.equity)-1].Equity
	} else {
		r.FinalEquity = e.currentCapital
	}
	r.TotalReturnPct = (r.FinalEquity - r.InitialCapital) / r.InitialCapital * 100

	var durationSum float64
	for _, t := range e.trades {
		r.TotalTrades++
		if t.IsWin {
			r.WinningTrades++
			r.GrossProfit += t.WinAmount
			r.LargestWin = math.Max(r.LargestWin, t.WinAmount)
		}
		if t.IsLoss {
			r.LosingTrades++
			r.GrossLoss += t.LossAmount
			r.LargestLoss = math.Max(r.LargestLoss, t.LossAmount)
		}
		r.TotalCostBps += t.TotalCostBps
		durationSum += t.ExitDate.Sub(t.EntryDate).Hours() / 24
		attributeTrade(r.Attribution, t)
	}
	if r.TotalTrades > 0 {
		r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades)
		r.AvgCostBps = r.TotalCostBps / float64(r.TotalTrades)
		r.AvgTradeDurationDays = durationSum / float64(r.TotalTrades)
	}
	if r.WinningTrades > 0 {
		r.AverageWin = r.GrossProfit / float64(r.WinningTrades)
	}
	if r.LosingTrades > 0 {
		r.AverageLoss = r.GrossLoss / float64(r.LosingTrades)
	}
	if r.GrossLoss > 0 {
		r.ProfitFactor = r.GrossProfit / r.GrossLoss
	}

	r.MaxDrawdownPct, r.MaxDrawdownBars = maxDrawdown(e.equity)

	returns := equityReturns(e.equity)
	r.AnnualizedVolatility = annualizedVol(returns)
	r.SharpeRatio = sharpe(returns, e.cfg.RiskFreeRate)
	r.SortinoRatio = sortino(returns, e.cfg.RiskFreeRate)
	if r.MaxDrawdownPct != 0 {
		r.CalmarRatio = math.Abs(r.TotalReturnPct / r.MaxDrawdownPct)
	}
	return r
}

// attributeTrade buckets net P&L under the signal with the strictly largest
// absolute magnitude at entry. Ties are excluded from every bucket.
func attributeTrade(buckets map[string]float64, t Trade) {
	mags := map[string]float64{
		"energy":    math.Abs(t.EnergySignal),
		"liquidity": math.Abs(t.LiquiditySignal),
		"sentiment": math.Abs(t.SentimentSignal),
	}
	best, bestMag := "", -1.0
	dominant := true
	for name, m := range mags {
		if m > bestMag {
			best, bestMag = name, m
			dominant = true
		} else if m == bestMag {
			dominant = false
		}
	}
	if dominant && best != "" {
		buckets[best] += t.NetPnL
	}
}

// maxDrawdown returns the worst peak-to-trough equity loss in percent and the
// longest contiguous underwater stretch in bars.
func maxDrawdown(equity []EquityPoint) (float64, int) {
	if len(equity) == 0 {
		return 0, 0
	}
	peak := equity[0].Equity
	var worst float64
	longest, current := 0, 0
	for _, p := range equity {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := 0.0
		if peak > 0 {
			dd = (p.Equity - peak) / peak * 100
		}
		if dd < worst {
			worst = dd
		}
		if dd < 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return worst, longest
}

func equityReturns(equity []EquityPoint) []float64 {
	var returns []float64
	for i := 1; i < len(equity); i++ {
		if equity[i-1].Equity != 0 {
			returns = append(returns, equity[i].Equity/equity[i-1].Equity-1)
		}
	}
	return returns
}

func sharpe(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)
	excess := mean - riskFreeRate/252
	std := stdOf(returns, mean)
	if std == 0 {
		return 0
	}
	return excess / std * math.Sqrt(252)
}

// sortino normalizes excess return by downside deviation only; zero downside
// deviation yields 0 rather than a division error.
func sortino(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := meanOf(returns)
	excess := mean - riskFreeRate/252
	var downside float64
	n := 0
	for _, r := range returns {
		if r < 0 {
			downside += r * r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	dd := math.Sqrt(downside / float64(n))
	if dd == 0 {
		return 0
	}
	return excess / dd * math.Sqrt(252)
}

func meanOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdOf(xs []float64, mean float64) float64 {
	var variance float64
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(xs)-1))
}
