package backtest

import "time"

// Trade is one completed round trip. Created when a valid idea opens a
// position, filled in at close, then appended to the engine's history;
// the history holds closed trades only.
type Trade struct {
	Symbol     string    `json:"symbol"`
	Direction  string    `json:"direction"` // long | short
	EntryDate  time.Time `json:"entry_date"`
	ExitDate   time.Time `json:"exit_date"`
	ExitReason string    `json:"exit_reason"` // stop | target | end_of_data | signal_flip

	EntryPrice    float64 `json:"entry_price"` // fill, slippage-adjusted
	ExitPrice     float64 `json:"exit_price"`
	PositionSize  float64 `json:"position_size"`
	PositionValue float64 `json:"position_value"`

	EntrySlippageBps float64 `json:"entry_slippage_bps"`
	EntryImpactBps   float64 `json:"entry_impact_bps"`
	ExitSlippageBps  float64 `json:"exit_slippage_bps"`
	ExitImpactBps    float64 `json:"exit_impact_bps"`
	TotalCostBps     float64 `json:"total_cost_bps"`

	GrossPnL float64 `json:"gross_pnl"` // raw close to raw close
	NetPnL   float64 `json:"net_pnl"`   // fill to fill
	PctPnL   float64 `json:"pct_pnl"`

	EnergySignal    float64 `json:"energy_signal"`
	LiquiditySignal float64 `json:"liquidity_signal"`
	SentimentSignal float64 `json:"sentiment_signal"`
	CompositeSignal float64 `json:"composite_signal"`

	MAE float64 `json:"mae"` // worst unrealized pct during the trade
	MFE float64 `json:"mfe"` // best unrealized pct during the trade

	IsWin      bool    `json:"is_win"`
	IsLoss     bool    `json:"is_loss"`
	WinAmount  float64 `json:"win_amount"`
	LossAmount float64 `json:"loss_amount"`

	Confidence float64 `json:"confidence"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
}

// EquityPoint samples total equity (capital plus unrealized P&L) at one bar.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
}
