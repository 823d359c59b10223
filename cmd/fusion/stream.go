package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/quantfusion/signalcore/internal/composer"
)

// newStreamCmd replays a JSONL file of compose fixtures at a throttled rate,
// simulating a live engine feed: one composite directive per line in, one
// directive out.
func newStreamCmd() *cobra.Command {
	var (
		fixturePath string
		perSecond   float64
	)
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Replay a JSONL fixture of fusion cycles at live speed",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(fixturePath)
			if err != nil {
				return err
			}
			defer f.Close()

			limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
			line := 0
			for scanner.Scan() {
				line++
				if len(scanner.Bytes()) == 0 {
					continue
				}
				if err := limiter.Wait(cmd.Context()); err != nil {
					return err
				}
				var fx composeFixture
				if err := json.Unmarshal(scanner.Bytes(), &fx); err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				c := composer.New(func() float64 { return fx.ReferencePrice }, nil)
				directive, err := c.Compose(fx.Hedge, fx.Liquidity, fx.Sentiment)
				if err != nil {
					return fmt.Errorf("line %d: %w", line, err)
				}
				out, _ := json.Marshal(directive)
				fmt.Println(string(out))
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "fixtures/cycles.jsonl", "JSONL fixture of fusion cycles")
	cmd.Flags().Float64Var(&perSecond, "rate", 4, "fusion cycles per second")
	return cmd
}
