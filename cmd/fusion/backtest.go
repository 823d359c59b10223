package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantfusion/signalcore/internal/backtest"
	"github.com/quantfusion/signalcore/internal/config"
)

// backtestFixture aligns the bar stream with the three physics-state streams.
type backtestFixture struct {
	Symbol string             `json:"symbol"`
	Series []backtest.BarData `json:"series"`
}

func newBacktestCmd() *cobra.Command {
	var (
		fixturePath string
		configPath  string
		mode        string
		showTrades  bool
	)
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay a bars+states fixture through the policy composer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if mode != "" {
				cfg.Backtest.Mode = backtest.Mode(mode)
			}

			var fx backtestFixture
			if err := mustReadJSON(fixturePath, &fx); err != nil {
				return err
			}
			symbol := fx.Symbol
			if symbol == "" {
				symbol = cfg.Symbol
			}

			engine := backtest.NewEngine(cfg.Backtest)
			results, err := engine.Run(symbol, fx.Series)
			if err != nil {
				return err
			}
			if !showTrades {
				results.Trades = nil
				results.EquityCurve = nil
			}
			printJSON(results)
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "fixtures/bars.json", "bars+states fixture")
	cmd.Flags().StringVar(&configPath, "config", "", "yaml config path")
	cmd.Flags().StringVar(&mode, "mode", "", fmt.Sprintf("simulation mode: %s | %s | %s",
		backtest.ModeEventDriven, backtest.ModeVectorized, backtest.ModeHybrid))
	cmd.Flags().BoolVar(&showTrades, "trades", false, "include per-trade detail and equity curve in output")
	return cmd
}
