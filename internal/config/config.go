package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quantfusion/signalcore/internal/backtest"
)

// Root is the full configuration file. Every tunable of the policy composer
// and backtest engine lives here; zero values pick up the documented
// defaults when the consuming component normalizes its section.
type Root struct {
	Symbol   string          `yaml:"symbol"`
	Backtest backtest.Config `yaml:"backtest"`
}

// Load reads a yaml config, applying defaults for anything unset.
func Load(path string) (Root, error) {
	var c Root
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return applyDefaults(c), nil
}

// Default returns the configuration used when no file is given.
func Default() Root {
	return applyDefaults(Root{})
}

func applyDefaults(c Root) Root {
	if c.Symbol == "" {
		c.Symbol = "SPY"
	}
	return c
}
