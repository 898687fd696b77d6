package upgrade

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

var (
	ErrInvalidLevel = errors.New("upgrade level must be at least 1")
	ErrTerminalTier = errors.New("base tier cannot be upgraded further")
)

// Calculator prices the next upgrade level for an aircraft and the next
// tier for a base facility. Prices are per level, never cumulative, and
// rounded half-up to 2 decimals so previews and charges always match.
type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	if config == nil {
		config = NewDefaultConfig()
	}
	return &Calculator{config: config}
}

// AircraftLevelCost returns the price of reaching exactly nextLevel
// (current level + 1) for the given category and purchase price.
func (c *Calculator) AircraftLevelCost(category string, purchasePrice decimal.Decimal, nextLevel int) (decimal.Decimal, error) {
	if nextLevel < 1 {
		return decimal.Zero, ErrInvalidLevel
	}

	growth := c.config.Growth
	base := c.config.MinBase
	if category == models.CategoryStarter {
		growth = c.config.StarterGrowth
		base = c.config.StarterBaseCost
	} else {
		pctBase := purchasePrice.Mul(c.config.BasePct)
		if pctBase.GreaterThan(base) {
			base = pctBase
		}
	}

	factor := decimal.NewFromFloat(math.Pow(growth, float64(nextLevel-1)))
	return base.Mul(factor).Round(2), nil
}

// BaseTierCost returns the next tier above fromTier and its price as a
// fixed percentage of the base's original purchase cost. HUGE is
// terminal.
func (c *Calculator) BaseTierCost(fromTier string, basePurchaseCost decimal.Decimal) (string, decimal.Decimal, error) {
	next := models.NextBaseTier(fromTier)
	if next == "" {
		return "", decimal.Zero, ErrTerminalTier
	}

	pct, ok := c.config.TierTransitionPct[fromTier]
	if !ok {
		return "", decimal.Zero, ErrTerminalTier
	}
	return next, basePurchaseCost.Mul(pct).Round(2), nil
}
