package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	CategoryStarter = "STARTER"
	CategorySmall   = "SMALL"
	CategoryMedium  = "MEDIUM"
	CategoryLarge   = "LARGE"
	CategoryHuge    = "HUGE"
)

// categoryRank orders categories for base-tier gating. STARTER is rank 0
// and never purchasable regardless of base tier.
var categoryRank = map[string]int{
	CategoryStarter: 0,
	CategorySmall:   1,
	CategoryMedium:  2,
	CategoryLarge:   3,
	CategoryHuge:    4,
}

func CategoryRank(category string) int {
	return categoryRank[category]
}

// AircraftModel is a static catalog entry seeded at startup.
// EcoFeeMultiplier may be negative, representing a subsidy.
type AircraftModel struct {
	bun.BaseModel `bun:"table:aircraft_models,alias:am"`

	ModelCode        string          `bun:"model_code,pk"`
	Manufacturer     string          `bun:"manufacturer,notnull"`
	ModelName        string          `bun:"model_name,notnull"`
	PurchasePrice    decimal.Decimal `bun:"purchase_price,notnull,type:numeric(14,2)"`
	BaseCargoKg      int             `bun:"base_cargo_kg,notnull"`
	RangeKm          int             `bun:"range_km,notnull"`
	CruiseSpeedKts   int             `bun:"cruise_speed_kts,notnull"`
	Category         string          `bun:"category,notnull"`
	EcoClass         string          `bun:"eco_class,notnull,default:'DEFAULT'"`
	EcoFeeMultiplier float64         `bun:"eco_fee_multiplier,notnull,default:0"`
}
