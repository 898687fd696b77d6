package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// AircraftUpgrade is append-only history. The current level of an
// aircraft is always the highest level row; it is never stored as a
// mutable column. EcoFactorPerLevel and EcoFloor snapshot the eco curve
// in effect when the upgrade was installed.
type AircraftUpgrade struct {
	bun.BaseModel `bun:"table:aircraft_upgrades,alias:au"`

	ID                int64           `bun:"id,pk,autoincrement"`
	AircraftID        int64           `bun:"aircraft_id,notnull"`
	UpgradeCode       string          `bun:"upgrade_code,notnull"`
	Level             int             `bun:"level,notnull"`
	InstalledDay      int             `bun:"installed_day,notnull"`
	Cost              decimal.Decimal `bun:"cost,notnull,type:numeric(14,2)"`
	EcoFactorPerLevel float64         `bun:"eco_factor_per_level,notnull,default:0"`
	EcoFloor          float64         `bun:"eco_floor,notnull,default:0"`
}
