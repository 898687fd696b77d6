package eco

import (
	"strconv"
	"strings"
)

// DefaultClass is the rule set applied when a model carries an eco class
// the rules table does not know.
const DefaultClass = "DEFAULT"

// ClassRule bounds the effective multiplier for one eco class and sets
// how much each upgrade level shifts it.
type ClassRule struct {
	DeltaPerLevel float64
	Min           float64
	Max           float64
}

// Rules is the per-class lookup table. It is loaded once at startup and
// treated as immutable for the session.
type Rules struct {
	Classes map[string]ClassRule
}

func DefaultRules() *Rules {
	return &Rules{
		Classes: map[string]ClassRule{
			"ECO_A":      {DeltaPerLevel: 0.05, Min: 0.50, Max: 3.00},
			"ECO_B":      {DeltaPerLevel: 0.04, Min: 0.40, Max: 2.50},
			"ECO_C":      {DeltaPerLevel: 0.03, Min: 0.30, Max: 2.00},
			DefaultClass: {DeltaPerLevel: 0.02, Min: 0.25, Max: 1.75},
		},
	}
}

// Resolver computes the effective environmental multiplier for an
// aircraft. It is pure: the same call backs both the preview display and
// the contract reward computation, so the two can never disagree.
type Resolver struct {
	rules *Rules
}

func NewResolver(rules *Rules) *Resolver {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Resolver{rules: rules}
}

// ParseBase parses a raw catalog multiplier value. Malformed input
// resolves to 0.0 rather than failing the whole catalog import.
func ParseBase(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.0
	}
	return v
}

// Rule returns the rule set for an eco class, falling back to DEFAULT
// for unknown classes. Upgrade purchases snapshot these values into the
// append-only upgrade history.
func (r *Resolver) Rule(ecoClass string) ClassRule {
	rule, ok := r.rules.Classes[ecoClass]
	if !ok {
		rule = r.rules.Classes[DefaultClass]
	}
	return rule
}

// Effective applies the clamped-additive model: base shifted by
// level*delta, bounded to the class range. The per-aircraft floor only
// tightens the lower bound when negative, so a non-negative floor can
// never suppress a model's intentionally negative base (a subsidy).
func (r *Resolver) Effective(ecoClass string, base float64, level int, floor float64) float64 {
	rule, ok := r.rules.Classes[ecoClass]
	if !ok {
		rule = r.rules.Classes[DefaultClass]
	}

	if level < 0 {
		level = 0
	}

	effective := base + float64(level)*rule.DeltaPerLevel

	lower := rule.Min
	if floor < 0 && floor > lower {
		lower = floor
	}
	upper := rule.Max
	if lower > upper {
		return upper
	}

	if effective < lower {
		return lower
	}
	if effective > upper {
		return upper
	}
	return effective
}
