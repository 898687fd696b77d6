package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	BaseTierSmall  = "SMALL"
	BaseTierMedium = "MEDIUM"
	BaseTierLarge  = "LARGE"
	BaseTierHuge   = "HUGE"
)

var baseTierRank = map[string]int{
	BaseTierSmall:  1,
	BaseTierMedium: 2,
	BaseTierLarge:  3,
	BaseTierHuge:   4,
}

func BaseTierRank(tier string) int {
	return baseTierRank[tier]
}

// NextBaseTier returns the tier above the given one, or "" when the
// tier is terminal (HUGE) or unknown.
func NextBaseTier(tier string) string {
	switch tier {
	case BaseTierSmall:
		return BaseTierMedium
	case BaseTierMedium:
		return BaseTierLarge
	case BaseTierLarge:
		return BaseTierHuge
	}
	return ""
}

// OwnedBase is a facility at an airport. Its tier lives in the
// append-only base_upgrades history, mirroring aircraft upgrades.
type OwnedBase struct {
	bun.BaseModel `bun:"table:owned_bases,alias:ob"`

	ID           int64           `bun:"id,pk,autoincrement"`
	SaveID       int64           `bun:"save_id,notnull"`
	AirportIdent string          `bun:"airport_ident,notnull"`
	PurchaseCost decimal.Decimal `bun:"purchase_cost,notnull,type:numeric(14,2)"`
	AcquiredDay  int             `bun:"acquired_day,notnull"`
}

// BaseUpgrade rows are immutable; tiers are strictly increasing per base.
type BaseUpgrade struct {
	bun.BaseModel `bun:"table:base_upgrades,alias:bu"`

	ID           int64           `bun:"id,pk,autoincrement"`
	BaseID       int64           `bun:"base_id,notnull"`
	Tier         string          `bun:"tier,notnull"`
	InstalledDay int             `bun:"installed_day,notnull"`
	Cost         decimal.Decimal `bun:"cost,notnull,type:numeric(14,2)"`
}
