package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	AircraftStatusIdle = "IDLE"
	AircraftStatusBusy = "BUSY"
)

// Aircraft is a single owned airframe. Soft-retired via SoldDay, never
// deleted. BUSY holds exactly while one ENROUTE flight exists for it.
type Aircraft struct {
	bun.BaseModel `bun:"table:aircraft,alias:ac"`

	ID                  int64           `bun:"id,pk,autoincrement"`
	SaveID              int64           `bun:"save_id,notnull"`
	ModelCode           string          `bun:"model_code,notnull"`
	Registration        string          `bun:"registration,notnull"`
	Nickname            string          `bun:"nickname"`
	Status              string          `bun:"status,notnull,default:'IDLE'"`
	CurrentAirportIdent string          `bun:"current_airport_ident,notnull"`
	ConditionPercent    int             `bun:"condition_percent,notnull,default:100"`
	PurchasePrice       decimal.Decimal `bun:"purchase_price,notnull,type:numeric(14,2)"`
	AcquiredDay         int             `bun:"acquired_day,notnull"`
	HoursFlown          int             `bun:"hours_flown,notnull,default:0"`
	SoldDay             *int            `bun:"sold_day"`
	BaseID              int64           `bun:"base_id"`

	Model *AircraftModel `bun:"rel:belongs-to,join:model_code=model_code"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func (a *Aircraft) Active() bool {
	return a.SoldDay == nil
}
