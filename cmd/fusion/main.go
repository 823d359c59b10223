package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	root := &cobra.Command{
		Use:   "fusion",
		Short: "Signal-fusion and trade-orchestration engine",
		Long:  "Fuses hedge/liquidity/sentiment engine output into composite directives,\nsizes risk-checked trade ideas, and backtests them over historical bars.",
	}
	root.AddCommand(newComposeCmd(), newBacktestCmd(), newStreamCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func mustReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("json %s: %w", path, err)
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(b))
}
