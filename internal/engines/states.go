package engines

import "time"

// The physics states below are the richer per-bar records the execution side
// consumes (policy composer, backtest engine). They are produced by the
// upstream interpreters and are read-only from the core's perspective. They
// deliberately stay distinct from EngineDirective even where field names look
// parallel: the fusion path and the sizing/backtest path evolve independently.

// EnergyState is one bar's dealer-hedging energy snapshot.
type EnergyState struct {
	Regime              string  `json:"regime"`
	Stability           float64 `json:"stability"`  // [0,1]
	Confidence          float64 `json:"confidence"` // [0,1]
	MovementEnergy      float64 `json:"movement_energy"`
	Elasticity          float64 `json:"elasticity"`
	EnergyAsymmetry     float64 `json:"energy_asymmetry"`
	ElasticityAsymmetry float64 `json:"elasticity_asymmetry"`
}

// LiquidityState is one bar's order-book liquidity snapshot.
type LiquidityState struct {
	Regime         string  `json:"regime"`
	Stability      float64 `json:"stability"`
	Confidence     float64 `json:"confidence"`
	ImpactCost     float64 `json:"impact_cost"` // bps
	Slippage       float64 `json:"slippage"`    // bps
	DepthImbalance float64 `json:"depth_imbalance"`
	SpreadBps      float64 `json:"spread_bps"`
}

// SentimentState is one bar's crowd-sentiment snapshot.
type SentimentState struct {
	Regime            string  `json:"regime"`
	Stability         float64 `json:"stability"`
	Confidence        float64 `json:"confidence"`
	SentimentScore    float64 `json:"sentiment_score"` // [-1,1]
	ContrarianSignal  float64 `json:"contrarian_signal"`
	CrowdConviction   float64 `json:"crowd_conviction"`
	SentimentMomentum float64 `json:"sentiment_momentum"`
}

// Bar is one OHLCV sample. Bar streams handed to the backtest engine must be
// contiguous and sorted ascending by timestamp.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}
