package engines

import "fmt"

// EngineDirective is the normalized output of one upstream engine for a single
// fusion cycle. Directives are value objects: built fresh each cycle, never
// mutated, no persisted identity.
type EngineDirective struct {
	Name            string             `json:"name"`
	Direction       float64            `json:"direction"`  // semantically [-1,1], not clamped here
	Strength        float64            `json:"strength"`   // >= 0
	Confidence      float64            `json:"confidence"` // [0,1]
	Regime          string             `json:"regime"`
	Energy          float64            `json:"energy"` // >= 0
	VolatilityProxy *float64           `json:"volatility_proxy,omitempty"`
	Features        map[string]float64 `json:"features,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// Feature returns the named feature or fallback when absent.
func (d EngineDirective) Feature(key string, fallback float64) float64 {
	if v, ok := d.Features[key]; ok {
		return v
	}
	return fallback
}

// ParseError reports an engine output that is neither an EngineDirective nor a
// plain mapping. The composer surfaces this immediately rather than guessing.
type ParseError struct {
	Engine string
	Got    any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("engine %s: output is %T, want EngineDirective or map", e.Engine, e.Got)
}

// ParseEngineOutput is the single adapter between upstream engine outputs and
// the fusion data model. It accepts a directive value, a pointer to one, or a
// plain map (the shape adapters hand over when they decode JSON); anything
// else is a ParseError.
func ParseEngineOutput(name string, raw any) (EngineDirective, error) {
	switch v := raw.(type) {
	case EngineDirective:
		if v.Name == "" {
			v.Name = name
		}
		return v, nil
	case *EngineDirective:
		if v == nil {
			return EngineDirective{}, &ParseError{Engine: name, Got: raw}
		}
		d := *v
		if d.Name == "" {
			d.Name = name
		}
		return d, nil
	case map[string]any:
		return directiveFromMap(name, v)
	default:
		return EngineDirective{}, &ParseError{Engine: name, Got: raw}
	}
}

func directiveFromMap(name string, m map[string]any) (EngineDirective, error) {
	d := EngineDirective{Name: name}
	if s, ok := m["name"].(string); ok && s != "" {
		d.Name = s
	}
	d.Direction = numField(m, "direction", 0)
	d.Strength = numField(m, "strength", 0)
	d.Confidence = numField(m, "confidence", 0)
	d.Energy = numField(m, "energy", 0)
	if s, ok := m["regime"].(string); ok {
		d.Regime = s
	}
	if s, ok := m["notes"].(string); ok {
		d.Notes = s
	}
	if raw, ok := m["volatility_proxy"]; ok && raw != nil {
		if f, ok := toFloat(raw); ok {
			d.VolatilityProxy = &f
		}
	}
	if raw, ok := m["features"]; ok && raw != nil {
		feats, ok := raw.(map[string]any)
		if !ok {
			return EngineDirective{}, &ParseError{Engine: name, Got: raw}
		}
		d.Features = make(map[string]float64, len(feats))
		for k, fv := range feats {
			if f, ok := toFloat(fv); ok {
				d.Features[k] = f
			}
		}
	}
	return d, nil
}

func numField(m map[string]any, key string, fallback float64) float64 {
	if raw, ok := m[key]; ok {
		if f, ok := toFloat(raw); ok {
			return f
		}
	}
	return fallback
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
