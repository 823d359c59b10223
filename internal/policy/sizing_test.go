package policy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfusion/signalcore/internal/engines"
)

func newTestComposer() *Composer {
	return NewComposer(Config{}, 7)
}

func calmEnergyState() engines.EnergyState {
	return engines.EnergyState{Regime: "elastic", Stability: 1, Confidence: 0.8,
		MovementEnergy: 10, Elasticity: 1.5}
}

func TestPositionSize_MinimumOfCandidates(t *testing.T) {
	p := newTestComposer()
	price, account, vol := 100.0, 100000.0, 0.20
	es := calmEnergyState()

	size, method, _ := p.positionSize(price, account, vol, es, nil)

	fixed, _ := p.fixedSize(price)
	volTarget, _ := p.volTargetSize(price, account, vol)
	energyAware, _ := p.energyAwareSize(volTarget, es)

	require.Greater(t, size, 0.0)
	assert.LessOrEqual(t, size, fixed)
	assert.LessOrEqual(t, size, volTarget)
	assert.LessOrEqual(t, size, energyAware)
	// fixed is the binding candidate here: 10000/100 = 100 shares
	assert.Equal(t, SizingFixed, method)
	assert.Equal(t, 100.0, size)
}

func TestPositionSize_RespectsCaps(t *testing.T) {
	p := newTestComposer()
	size, _, _ := p.positionSize(10, 100000, 0.20, calmEnergyState(), nil)
	cfg := p.Config()
	assert.LessOrEqual(t, size*10, cfg.MaxPositionValue)
	assert.LessOrEqual(t, size*10, 100000*cfg.MaxPortfolioPct)
	assert.Equal(t, math.Floor(size), size, "shares are integer-floored")
}

func TestKellySize_InsufficientDataNotApplicable(t *testing.T) {
	p := newTestComposer()
	returns := make([]float64, 20) // one short of the minimum
	for i := range returns {
		returns[i] = 0.01
	}
	_, _, ok := p.kellySize(100, 100000, returns)
	assert.False(t, ok, "fewer than 21 observations must disable Kelly")
}

func TestKellySize_EdgeGate(t *testing.T) {
	p := newTestComposer()
	// tiny edge: alternating +-1% with a slight positive tilt
	returns := make([]float64, 30)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.011
		} else {
			returns[i] = -0.01
		}
	}
	_, _, ok := p.kellySize(100, 100000, returns)
	assert.False(t, ok, "edge below the gate must disable Kelly")

	// strong edge passes and produces a damped positive fraction
	for i := range returns {
		if i%4 == 0 {
			returns[i] = -0.05
		} else {
			returns[i] = 0.20
		}
	}
	shares, fraction, ok := p.kellySize(100, 100000, returns)
	require.True(t, ok)
	assert.Greater(t, fraction, 0.0)
	assert.LessOrEqual(t, fraction, p.Config().KellyDamping)
	assert.Greater(t, shares, 0.0)
}

func TestEnergyAwareSize_ScalesDownHostileMarkets(t *testing.T) {
	p := newTestComposer()
	base, _ := p.volTargetSize(100, 100000, 0.20)

	hot := calmEnergyState()
	hot.MovementEnergy = 400 // 4x the cap
	scaled, ok := p.energyAwareSize(base, hot)
	require.True(t, ok)
	assert.InDelta(t, base/4, scaled, 1e-9)

	brittle := calmEnergyState()
	brittle.Elasticity = 0.25 // half the floor
	scaled, ok = p.energyAwareSize(base, brittle)
	require.True(t, ok)
	assert.InDelta(t, base/2, scaled, 1e-9)
}
