package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	SaveStatusActive   = "ACTIVE"
	SaveStatusBankrupt = "BANKRUPT"
	SaveStatusVictory  = "VICTORY"
)

// GameSave is one player company. Cash is numeric(14,2); it is never
// stored or handled as a binary float anywhere in the codebase.
type GameSave struct {
	bun.BaseModel `bun:"table:game_saves,alias:gs"`

	ID          int64           `bun:"id,pk,autoincrement"`
	OwnerID     string          `bun:"owner_id,notnull"`
	CompanyName string          `bun:"company_name,notnull"`
	CurrentDay  int             `bun:"current_day,notnull,default:0"`
	Cash        decimal.Decimal `bun:"cash,notnull,type:numeric(14,2)"`
	Status      string          `bun:"status,notnull,default:'ACTIVE'"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Terminal reports whether the save reached an end state. Terminal saves
// keep their cash frozen even if days continue to be counted.
func (s *GameSave) Terminal() bool {
	return s.Status != SaveStatusActive
}
