package models

import "github.com/uptrace/bun"

const (
	FlightStatusEnroute = "ENROUTE"
	FlightStatusArrived = "ARRIVED"
)

// Flight is the movement record fulfilling exactly one contract.
// ArrivalDay >= DepDay. DistanceKm covers all shuttle legs, not just
// the one-way great-circle distance.
type Flight struct {
	bun.BaseModel `bun:"table:flights,alias:fl"`

	ID         int64   `bun:"id,pk,autoincrement"`
	SaveID     int64   `bun:"save_id,notnull"`
	ContractID int64   `bun:"contract_id,notnull,unique"`
	AircraftID int64   `bun:"aircraft_id,notnull"`
	Status     string  `bun:"status,notnull,default:'ENROUTE'"`
	DepDay     int     `bun:"dep_day,notnull"`
	ArrivalDay int     `bun:"arrival_day,notnull"`
	DistanceKm float64 `bun:"distance_km,notnull"`
	DepIdent   string  `bun:"dep_ident,notnull"`
	ArrIdent   string  `bun:"arr_ident,notnull"`
}
