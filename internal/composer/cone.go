package composer

// ExpectedMoveBand is one horizon's price band around the reference price.
type ExpectedMoveBand struct {
	HorizonMinutes int     `json:"horizon_minutes"`
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
	Confidence     float64 `json:"confidence"`
}

// ExpectedMoveCone holds the multi-horizon bands. Bands are computed
// independently per horizon and are not nested by construction.
type ExpectedMoveCone struct {
	ReferencePrice float64                     `json:"reference_price"`
	Bands          map[string]ExpectedMoveBand `json:"bands"`
}

// defaultVolLevel stands in when no engine supplied a volatility proxy.
const defaultVolLevel = 20.0

// bandConfidence labels every band with the ~1-sigma convention; bands are
// heuristic, not statistically fit.
const bandConfidence = 0.68

var coneHorizons = []struct {
	label   string
	minutes int
	mult    float64 // fraction of vol level; longer horizon, wider band
}{
	{"15m", 15, 0.15},
	{"1h", 60, 0.35},
	{"1d", 1440, 0.80},
}

// BuildExpectedMoveCone builds symmetric percentage bands around the
// reference price, skewed toward the fused direction. The vol level is the
// average of whichever volatility proxies are present, defaulting to 20.
func BuildExpectedMoveCone(referencePrice float64, direction int, proxies ...*float64) ExpectedMoveCone {
	volLevel := defaultVolLevel
	sum, n := 0.0, 0
	for _, p := range proxies {
		if p != nil {
			sum += *p
			n++
		}
	}
	if n > 0 {
		volLevel = sum / float64(n)
	}

	cone := ExpectedMoveCone{
		ReferencePrice: referencePrice,
		Bands:          make(map[string]ExpectedMoveBand, len(coneHorizons)),
	}
	for _, h := range coneHorizons {
		pct := h.mult * volLevel / 100.0
		center := referencePrice * (1 + 0.2*float64(direction)*pct)
		cone.Bands[h.label] = ExpectedMoveBand{
			HorizonMinutes: h.minutes,
			Lower:          center * (1 - pct),
			Upper:          center * (1 + pct),
			Confidence:     bandConfidence,
		}
	}
	return cone
}
