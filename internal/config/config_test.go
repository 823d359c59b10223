package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantfusion/signalcore/internal/backtest"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Symbol != "SPY" {
		t.Fatalf("want default symbol SPY, got %q", c.Symbol)
	}
	// backtest sections normalize lazily; the root stays zero-valued
	if c.Backtest.Mode != "" {
		t.Fatalf("backtest defaults are filled by the engine, got mode %q", c.Backtest.Mode)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
symbol: QQQ
backtest:
  initial_capital: 50000
  mode: vectorized
  policy:
    energy_weight: 2
    liquidity_weight: 1
    sentiment_weight: 1
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Symbol != "QQQ" {
		t.Fatalf("want QQQ, got %q", c.Symbol)
	}
	if c.Backtest.InitialCapital != 50000 || c.Backtest.Mode != backtest.ModeVectorized {
		t.Fatalf("backtest section not parsed: %+v", c.Backtest)
	}

	p := c.Backtest.Policy.Normalize()
	if math.Abs(p.EnergyWeight-0.5) > 1e-12 ||
		math.Abs(p.LiquidityWeight-0.25) > 1e-12 ||
		math.Abs(p.SentimentWeight-0.25) > 1e-12 {
		t.Fatalf("weights must normalize to sum 1: %v %v %v",
			p.EnergyWeight, p.LiquidityWeight, p.SentimentWeight)
	}
	if p.MaxPositionValue != 10000 {
		t.Fatalf("unset fields pick up defaults, got %v", p.MaxPositionValue)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("want error for missing file")
	}
}
