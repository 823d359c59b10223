package backtest

// The vectorized path trades fidelity for speed: it thresholds the composite
// signal directly, skipping sizing and validation, and reconstructs trades
// from position-series deltas with entry and exit stamped at the same bar.
// That same-timestamp reconstruction is a known approximation of this mode,
// kept as documented rather than inferred away.

// signalThreshold mirrors the policy composer's neutral band.
const signalThreshold = 0.2

type barSignals struct{ energy, liquidity, sentiment, composite float64 }

func (e *Engine) runVectorized(symbol string, series []BarData) {
	n := len(series)
	positions := make([]float64, n)
	signals := make([]barSignals, n)

	for i, bd := range series {
		if bd.Energy == nil || bd.Liquidity == nil || bd.Sentiment == nil {
			continue // no states, no signal: position stays flat
		}
		en, liq, sent, comp := e.composer.SignalBreakdown(*bd.Energy, *bd.Liquidity, *bd.Sentiment)
		signals[i] = barSignals{en, liq, sent, comp}
		switch {
		case comp > signalThreshold:
			positions[i] = 1
		case comp < -signalThreshold:
			positions[i] = -1
		}
	}

	// strategy return per bar: previous bar's position times the bar's return
	equity := e.cfg.InitialCapital
	e.equity = append(e.equity, EquityPoint{Timestamp: series[0].Bar.Timestamp, Equity: equity})

	runStart := -1
	runEquity := equity
	for i := 1; i < n; i++ {
		prevClose := series[i-1].Bar.Close
		barReturn := 0.0
		if prevClose != 0 {
			barReturn = positions[i-1] * (series[i].Bar.Close/prevClose - 1)
		}
		equity *= 1 + barReturn
		e.equity = append(e.equity, EquityPoint{Timestamp: series[i].Bar.Timestamp, Equity: equity})

		// trade reconstruction from position deltas
		if positions[i] != positions[i-1] {
			if runStart >= 0 {
				e.appendVectorTrade(symbol, series, signals[runStart], runStart, i, positions[i-1], runEquity, equity)
			}
			runStart = -1
			if positions[i] != 0 {
				runStart = i
				runEquity = equity
			}
		} else if positions[i] != 0 && runStart < 0 {
			runStart = i
			runEquity = equity
		}
	}
	if runStart >= 0 && positions[n-1] != 0 {
		e.appendVectorTrade(symbol, series, signals[runStart], runStart, n-1, positions[n-1], runEquity, equity)
	}
	e.currentCapital = equity
}

func (e *Engine) appendVectorTrade(symbol string, series []BarData, sig barSignals, startIdx, endIdx int, direction, equityBefore, equityAfter float64) {
	dirLabel := "long"
	if direction < 0 {
		dirLabel = "short"
	}
	ts := series[endIdx].Bar.Timestamp // entry=exit: fast-path approximation
	netPnL := equityAfter - equityBefore
	t := Trade{
		Symbol:          symbol,
		Direction:       dirLabel,
		EntryDate:       ts,
		ExitDate:        ts,
		ExitReason:      "signal_flip",
		EntryPrice:      series[startIdx].Bar.Close,
		ExitPrice:       series[endIdx].Bar.Close,
		PositionSize:    0,
		PositionValue:   equityBefore,
		GrossPnL:        netPnL,
		NetPnL:          netPnL,
		EnergySignal:    sig.energy,
		LiquiditySignal: sig.liquidity,
		SentimentSignal: sig.sentiment,
		CompositeSignal: sig.composite,
	}
	if equityBefore != 0 {
		t.PctPnL = netPnL / equityBefore * 100
	}
	if netPnL > 0 {
		t.IsWin = true
		t.WinAmount = netPnL
	} else if netPnL < 0 {
		t.IsLoss = true
		t.LossAmount = -netPnL
	}
	e.trades = append(e.trades, t)
}
