package policy

// Direction is the trade direction decided for one idea.
type Direction string

const (
	DirectionLong    Direction = "long"
	DirectionShort   Direction = "short"
	DirectionNeutral Direction = "neutral"
	DirectionAvoid   Direction = "avoid"
)

// SizingMethod names the candidate sizing rule that produced the final size.
type SizingMethod string

const (
	SizingFixed       SizingMethod = "fixed"
	SizingKelly       SizingMethod = "kelly"
	SizingVolTarget   SizingMethod = "vol_target"
	SizingEnergyAware SizingMethod = "energy_aware"
	SizingComposite   SizingMethod = "composite"
)

// TradeIdea is a fully specified, risk-validated trade proposal for one
// (symbol, bar) evaluation. Built fresh per call, never persisted; callers
// branch on IsValid and the Errors list before acting.
type TradeIdea struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`

	PositionSize  float64      `json:"position_size"` // shares, integer-floored
	PositionValue float64      `json:"position_value"`
	SizingMethod  SizingMethod `json:"sizing_method"`

	EntryPrice    float64 `json:"entry_price"`
	EntryPriceMin float64 `json:"entry_price_min"`
	EntryPriceMax float64 `json:"entry_price_max"`
	StopLoss      float64 `json:"stop_loss"`
	TakeProfit    float64 `json:"take_profit"`

	ExpectedSlippageBps float64 `json:"expected_slippage_bps"`
	ExpectedImpactBps   float64 `json:"expected_impact_bps"`
	TotalCostBps        float64 `json:"total_cost_bps"`

	EnergySignal    float64 `json:"energy_signal"` // all signals in [-1,1]
	LiquiditySignal float64 `json:"liquidity_signal"`
	SentimentSignal float64 `json:"sentiment_signal"`
	CompositeSignal float64 `json:"composite_signal"`

	ExpectedReturn     float64 `json:"expected_return"`
	ExpectedVolatility float64 `json:"expected_volatility"`
	ExpectedSharpe     float64 `json:"expected_sharpe"`
	KellyFraction      float64 `json:"kelly_fraction"`

	EnergyRegime      string  `json:"energy_regime"`
	LiquidityRegime   string  `json:"liquidity_regime"`
	SentimentRegime   string  `json:"sentiment_regime"`
	RegimeConsistency float64 `json:"regime_consistency"` // [0,1]

	MCWinRate     float64 `json:"mc_win_rate"`
	MCExpectedPnL float64 `json:"mc_expected_pnl"`
	MCSharpe      float64 `json:"mc_sharpe"`
	MCVaR95       float64 `json:"mc_var_95"`

	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`

	Confidence float64 `json:"confidence"` // [0,1]
}
