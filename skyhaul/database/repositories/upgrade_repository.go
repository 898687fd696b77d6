package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

type UpgradeRepository interface {
	Latest(ctx context.Context, aircraftID int64) (*models.AircraftUpgrade, error)
	CurrentLevel(ctx context.Context, aircraftID int64) (int, error)
	AppendTx(ctx context.Context, tx bun.Tx, upgrade *models.AircraftUpgrade) error
	History(ctx context.Context, aircraftID int64) ([]*models.AircraftUpgrade, error)
}

type upgradeRepository struct {
	db *bun.DB
}

func NewUpgradeRepository(db *bun.DB) UpgradeRepository {
	return &upgradeRepository{db: db}
}

// Latest returns the most recent upgrade row, or nil when the aircraft
// has never been upgraded.
func (r *upgradeRepository) Latest(ctx context.Context, aircraftID int64) (*models.AircraftUpgrade, error) {
	upgrade := new(models.AircraftUpgrade)
	err := r.db.NewSelect().
		Model(upgrade).
		Where("aircraft_id = ?", aircraftID).
		Order("level DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return upgrade, nil
}

func (r *upgradeRepository) CurrentLevel(ctx context.Context, aircraftID int64) (int, error) {
	latest, err := r.Latest(ctx, aircraftID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.Level, nil
}

func (r *upgradeRepository) AppendTx(ctx context.Context, tx bun.Tx, upgrade *models.AircraftUpgrade) error {
	if _, err := tx.NewInsert().Model(upgrade).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record upgrade: %w", err)
	}
	return nil
}

func (r *upgradeRepository) History(ctx context.Context, aircraftID int64) ([]*models.AircraftUpgrade, error) {
	var history []*models.AircraftUpgrade
	err := r.db.NewSelect().
		Model(&history).
		Where("aircraft_id = ?", aircraftID).
		Order("level ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return history, nil
}
