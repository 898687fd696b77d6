package models

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	ContractStatusInProgress    = "IN_PROGRESS"
	ContractStatusCompleted     = "COMPLETED"
	ContractStatusCompletedLate = "COMPLETED_LATE"
)

// Contract is an accepted cargo commitment. DeadlineDay >= CreatedDay
// always holds; CompletedDay stays nil until the paired flight arrives.
type Contract struct {
	bun.BaseModel `bun:"table:contracts,alias:ct"`

	ID               int64           `bun:"id,pk,autoincrement"`
	SaveID           int64           `bun:"save_id,notnull"`
	AircraftID       int64           `bun:"aircraft_id,notnull"`
	OriginIdent      string          `bun:"origin_ident,notnull"`
	DestinationIdent string          `bun:"destination_ident,notnull"`
	PayloadKg        int             `bun:"payload_kg,notnull"`
	DistanceKm       float64         `bun:"distance_km,notnull"`
	Reward           decimal.Decimal `bun:"reward,notnull,type:numeric(14,2)"`
	Penalty          decimal.Decimal `bun:"penalty,notnull,type:numeric(14,2)"`
	Status           string          `bun:"status,notnull,default:'IN_PROGRESS'"`
	CreatedDay       int             `bun:"created_day,notnull"`
	DeadlineDay      int             `bun:"deadline_day,notnull"`
	CompletedDay     *int            `bun:"completed_day"`
}
