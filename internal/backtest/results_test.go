package backtest

import (
	"math"
	"testing"
	"time"
)

func equityAt(day int, value float64) EquityPoint {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	return EquityPoint{Timestamp: ts, Equity: value}
}

func TestMaxDrawdown(t *testing.T) {
	curve := []EquityPoint{
		equityAt(0, 100), equityAt(1, 110), equityAt(2, 99),
		equityAt(3, 104), equityAt(4, 112), equityAt(5, 108),
	}
	dd, bars := maxDrawdown(curve)
	if math.Abs(dd-(-10)) > 1e-9 {
		t.Fatalf("110 -> 99 is a -10%% drawdown, got %v", dd)
	}
	// bars 2 and 3 sit below the 110 peak, bar 4 makes a new high
	if bars != 2 {
		t.Fatalf("want longest underwater stretch of 2 bars, got %d", bars)
	}

	if dd, bars := maxDrawdown(nil); dd != 0 || bars != 0 {
		t.Fatalf("empty curve yields zero drawdown, got %v/%d", dd, bars)
	}
	monotonic := []EquityPoint{equityAt(0, 100), equityAt(1, 101), equityAt(2, 105)}
	if dd, _ := maxDrawdown(monotonic); dd != 0 {
		t.Fatalf("monotonic curve has no drawdown, got %v", dd)
	}
}

func TestAttributeTrade_StrictDominance(t *testing.T) {
	buckets := map[string]float64{"energy": 0, "liquidity": 0, "sentiment": 0}

	attributeTrade(buckets, Trade{EnergySignal: 0.8, LiquiditySignal: 0.2, SentimentSignal: -0.1, NetPnL: 50})
	attributeTrade(buckets, Trade{EnergySignal: -0.1, LiquiditySignal: -0.9, SentimentSignal: 0.3, NetPnL: -20})
	// exact tie between the two largest magnitudes: no bucket gets the P&L
	attributeTrade(buckets, Trade{EnergySignal: 0.5, LiquiditySignal: -0.5, SentimentSignal: 0.1, NetPnL: 999})

	if buckets["energy"] != 50 {
		t.Fatalf("energy bucket: want 50, got %v", buckets["energy"])
	}
	if buckets["liquidity"] != -20 {
		t.Fatalf("liquidity bucket: want -20, got %v", buckets["liquidity"])
	}
	if buckets["sentiment"] != 0 {
		t.Fatalf("tied trade must be excluded, sentiment got %v", buckets["sentiment"])
	}
	if buckets["energy"]+buckets["liquidity"]+buckets["sentiment"] != 30 {
		t.Fatalf("tie exclusion means buckets need not sum to total P&L")
	}
}

func TestSharpeSortinoGuards(t *testing.T) {
	if got := sharpe([]float64{0.01}, 0.05); got != 0 {
		t.Fatalf("single return cannot produce a Sharpe, got %v", got)
	}
	if got := sharpe([]float64{0.01, 0.01, 0.01}, 0.05); got != 0 {
		t.Fatalf("zero dispersion must guard to 0, got %v", got)
	}
	if got := sortino([]float64{0.01, 0.02, 0.03}, 0.05); got != 0 {
		t.Fatalf("no downside returns must guard Sortino to 0, got %v", got)
	}
	mixed := []float64{0.02, -0.01, 0.03, -0.02, 0.01}
	if got := sortino(mixed, 0.0); got <= 0 {
		t.Fatalf("positive drift with downside should give positive Sortino, got %v", got)
	}
}

func TestEquityReturns(t *testing.T) {
	curve := []EquityPoint{equityAt(0, 100), equityAt(1, 110), equityAt(2, 99)}
	returns := equityReturns(curve)
	if len(returns) != 2 {
		t.Fatalf("want 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-12 || math.Abs(returns[1]-(-0.10)) > 1e-12 {
		t.Fatalf("returns wrong: %v", returns)
	}
}

func TestAnnualizedVol(t *testing.T) {
	if got := annualizedVol([]float64{0.01}); got != 0 {
		t.Fatalf("fewer than two returns yield 0, got %v", got)
	}
	got := annualizedVol([]float64{0.01, -0.01, 0.01, -0.01})
	// sample std of +-1% alternation, scaled by sqrt(252)
	want := math.Sqrt(4.0/3.0*0.0001) * math.Sqrt(252)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("want %v, got %v", want, got)
	}
}
