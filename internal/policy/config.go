package policy

// Config carries every tunable of the policy composer. Zero values are filled
// with the documented defaults by Normalize; signal weights are normalized to
// sum to 1 there as well.
type Config struct {
	MaxPositionValue float64 `yaml:"max_position_value"` // absolute $ cap per position
	MaxPortfolioPct  float64 `yaml:"max_portfolio_pct"`  // fraction of account value

	TargetVolatility float64 `yaml:"target_volatility"` // annualized, for vol-target sizing
	StopLossPct      float64 `yaml:"stop_loss_pct"`
	TakeProfitPct    float64 `yaml:"take_profit_pct"`
	KellyDamping     float64 `yaml:"kelly_damping"` // fraction of full Kelly
	MinKellyEdge     float64 `yaml:"min_kelly_edge"`

	EnergyWeight    float64 `yaml:"energy_weight"`
	LiquidityWeight float64 `yaml:"liquidity_weight"`
	SentimentWeight float64 `yaml:"sentiment_weight"`

	MaxMovementEnergy float64 `yaml:"max_movement_energy"`
	MinElasticity     float64 `yaml:"min_elasticity"`
	MaxImpactBps      float64 `yaml:"max_impact_bps"`
	MaxSlippageBps    float64 `yaml:"max_slippage_bps"`

	MonteCarloSims int     `yaml:"monte_carlo_sims"` // negative disables the simulation
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
}

// Normalize fills defaults and scales the signal weights to sum to 1.
func (c Config) Normalize() Config {
	if c.MaxPositionValue == 0 {
		c.MaxPositionValue = 10000
	}
	if c.MaxPortfolioPct == 0 {
		c.MaxPortfolioPct = 0.25
	}
	if c.TargetVolatility == 0 {
		c.TargetVolatility = 0.15
	}
	if c.StopLossPct == 0 {
		c.StopLossPct = 0.02
	}
	if c.TakeProfitPct == 0 {
		c.TakeProfitPct = 0.06 // 3:1 reward:risk against the default stop
	}
	if c.KellyDamping == 0 {
		c.KellyDamping = 0.25
	}
	if c.MinKellyEdge == 0 {
		c.MinKellyEdge = 0.05
	}
	if c.EnergyWeight == 0 && c.LiquidityWeight == 0 && c.SentimentWeight == 0 {
		c.EnergyWeight, c.LiquidityWeight, c.SentimentWeight = 0.4, 0.3, 0.3
	}
	sum := c.EnergyWeight + c.LiquidityWeight + c.SentimentWeight
	if sum > 0 {
		c.EnergyWeight /= sum
		c.LiquidityWeight /= sum
		c.SentimentWeight /= sum
	}
	if c.MaxMovementEnergy == 0 {
		c.MaxMovementEnergy = 100
	}
	if c.MinElasticity == 0 {
		c.MinElasticity = 0.5
	}
	if c.MaxImpactBps == 0 {
		c.MaxImpactBps = 50
	}
	if c.MaxSlippageBps == 0 {
		c.MaxSlippageBps = 20
	}
	if c.MonteCarloSims == 0 {
		c.MonteCarloSims = 1000
	}
	if c.RiskFreeRate == 0 {
		c.RiskFreeRate = 0.05
	}
	return c
}
