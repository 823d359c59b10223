package policy

import (
	"math"
	"math/rand"
	"sort"
)

// MonteCarloResult aggregates the simulated per-share P&L distribution of one
// trade idea.
type MonteCarloResult struct {
	Simulations  int     `json:"simulations"`
	WinRate      float64 `json:"win_rate"`
	MeanPnL      float64 `json:"mean_pnl"`
	MedianPnL    float64 `json:"median_pnl"`
	StdPnL       float64 `json:"std_pnl"`
	MaxProfit    float64 `json:"max_profit"`
	MaxLoss      float64 `json:"max_loss"`
	Sharpe       float64 `json:"sharpe"`
	ProfitFactor float64 `json:"profit_factor"`
	VaR95        float64 `json:"var_95"`
	CVaR95       float64 `json:"cvar_95"`
}

const (
	mcSteps = 20
	mcDt    = 1.0 / 252.0
)

// RunMonteCarlo simulates zero-drift GBM paths of 20 daily steps from the
// entry price, stopping each path at the first touch of stop or target and
// otherwise settling at the final price. A pure function of its arguments
// plus the supplied rng; nothing persists between calls. P&L is recorded
// favorable-positive: for a short-style idea (target below entry) the sign of
// (exit - entry) is flipped.
func RunMonteCarlo(rng *rand.Rand, entry, target, stop, annualVol float64, sims int) MonteCarloResult {
	if sims <= 0 {
		return MonteCarloResult{}
	}
	dir := 1.0
	if target < entry {
		dir = -1.0
	}
	pnls := make([]float64, 0, sims)
	drift := -0.5 * annualVol * annualVol * mcDt
	diffusion := annualVol * math.Sqrt(mcDt)

	for i := 0; i < sims; i++ {
		price := entry
		pnl := 0.0
		settled := false
		for step := 0; step < mcSteps; step++ {
			price *= math.Exp(drift + diffusion*rng.NormFloat64())
			if touched(price, entry, stop) {
				pnl = dir * (stop - entry)
				settled = true
				break
			}
			if touched(price, entry, target) {
				pnl = dir * (target - entry)
				settled = true
				break
			}
		}
		if !settled {
			pnl = dir * (price - entry)
		}
		pnls = append(pnls, pnl)
	}
	return summarize(pnls)
}

// touched reports whether price crossed level, on whichever side of entry the
// level sits.
func touched(price, entry, level float64) bool {
	if level >= entry {
		return price >= level
	}
	return price <= level
}

func summarize(pnls []float64) MonteCarloResult {
	n := len(pnls)
	res := MonteCarloResult{Simulations: n}

	var sum, grossProfit, grossLoss float64
	wins := 0
	res.MaxProfit = math.Inf(-1)
	res.MaxLoss = math.Inf(1)
	for _, p := range pnls {
		sum += p
		if p > 0 {
			wins++
			grossProfit += p
		} else if p < 0 {
			grossLoss += -p
		}
		res.MaxProfit = math.Max(res.MaxProfit, p)
		res.MaxLoss = math.Min(res.MaxLoss, p)
	}
	res.WinRate = float64(wins) / float64(n)
	res.MeanPnL = sum / float64(n)

	var variance float64
	for _, p := range pnls {
		d := p - res.MeanPnL
		variance += d * d
	}
	res.StdPnL = math.Sqrt(variance / float64(n))
	if res.StdPnL > 0 {
		res.Sharpe = res.MeanPnL / res.StdPnL * math.Sqrt(252)
	}
	if grossLoss > 0 {
		res.ProfitFactor = grossProfit / grossLoss
	}

	sorted := append([]float64(nil), pnls...)
	sort.Float64s(sorted)
	res.MedianPnL = sorted[n/2]
	if n%2 == 0 {
		res.MedianPnL = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	res.VaR95 = sorted[int(0.05*float64(n))]

	var tailSum float64
	tailN := 0
	for _, p := range sorted {
		if p <= res.VaR95 {
			tailSum += p
			tailN++
		}
	}
	if tailN > 0 {
		res.CVaR95 = tailSum / float64(tailN)
	}
	return res
}
