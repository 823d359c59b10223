package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantfusion/signalcore/internal/composer"
)

// composeFixture is one fusion cycle's worth of engine output, the shape the
// upstream adapters hand over after JSON decoding.
type composeFixture struct {
	ReferencePrice float64        `json:"reference_price"`
	Hedge          map[string]any `json:"hedge"`
	Liquidity      map[string]any `json:"liquidity"`
	Sentiment      map[string]any `json:"sentiment"`
}

func newComposeCmd() *cobra.Command {
	var fixturePath string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Run one fusion cycle over an engine-output fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			var fx composeFixture
			if err := mustReadJSON(fixturePath, &fx); err != nil {
				return err
			}
			if fx.ReferencePrice <= 0 {
				return fmt.Errorf("fixture %s: reference_price must be positive", fixturePath)
			}
			c := composer.New(func() float64 { return fx.ReferencePrice }, nil)
			directive, err := c.Compose(fx.Hedge, fx.Liquidity, fx.Sentiment)
			if err != nil {
				return err
			}
			printJSON(directive)
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "fixtures/engines.json", "engine output fixture")
	return cmd
}
