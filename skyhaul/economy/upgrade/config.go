package upgrade

import (
	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

type Config struct {
	// Starter airframes price on their own curve
	StarterBaseCost decimal.Decimal
	StarterGrowth   float64

	// Everything else prices off the purchase price with a floor
	MinBase decimal.Decimal
	BasePct decimal.Decimal
	Growth  float64

	// Base facility tier transitions, keyed by the tier being left
	TierTransitionPct map[string]decimal.Decimal
}

func NewDefaultConfig() *Config {
	return &Config{
		StarterBaseCost: decimal.NewFromInt(100000),
		StarterGrowth:   1.25,
		MinBase:         decimal.NewFromInt(100000),
		BasePct:         decimal.NewFromFloat(0.10),
		Growth:          1.20,
		TierTransitionPct: map[string]decimal.Decimal{
			models.BaseTierSmall:  decimal.NewFromFloat(0.50),
			models.BaseTierMedium: decimal.NewFromFloat(0.90),
			models.BaseTierLarge:  decimal.NewFromFloat(1.50),
		},
	}
}
