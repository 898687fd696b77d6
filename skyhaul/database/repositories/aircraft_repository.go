package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrAircraftNotFound = errors.New("aircraft not found")

type AircraftRepository interface {
	CreateTx(ctx context.Context, tx bun.Tx, aircraft *models.Aircraft) error
	GetByID(ctx context.Context, id int64) (*models.Aircraft, error)
	ListActiveBySave(ctx context.Context, saveID int64) ([]*models.Aircraft, error)
	ActiveCountsTx(ctx context.Context, tx bun.Tx, saveID int64) (starters int, others int, err error)
	MarkBusyTx(ctx context.Context, tx bun.Tx, id int64) error
	MarkIdleAtTx(ctx context.Context, tx bun.Tx, id int64, airportIdent string) error
}

type aircraftRepository struct {
	db *bun.DB
}

func NewAircraftRepository(db *bun.DB) AircraftRepository {
	return &aircraftRepository{db: db}
}

func (r *aircraftRepository) CreateTx(ctx context.Context, tx bun.Tx, aircraft *models.Aircraft) error {
	aircraft.CreatedAt = time.Now()
	aircraft.UpdatedAt = time.Now()
	if _, err := tx.NewInsert().Model(aircraft).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

func (r *aircraftRepository) GetByID(ctx context.Context, id int64) (*models.Aircraft, error) {
	aircraft := new(models.Aircraft)
	err := r.db.NewSelect().
		Model(aircraft).
		Relation("Model").
		Where("ac.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAircraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return aircraft, nil
}

func (r *aircraftRepository) ListActiveBySave(ctx context.Context, saveID int64) ([]*models.Aircraft, error) {
	var fleet []*models.Aircraft
	err := r.db.NewSelect().
		Model(&fleet).
		Relation("Model").
		Where("ac.save_id = ?", saveID).
		Where("ac.sold_day IS NULL").
		Order("ac.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return fleet, nil
}

// ActiveCountsTx splits the active fleet into starter and non-starter
// airframes, the two maintenance classes billing distinguishes. It runs
// under the caller's transaction so the bill is computed against the
// same fleet state the debit commits with.
func (r *aircraftRepository) ActiveCountsTx(ctx context.Context, tx bun.Tx, saveID int64) (int, int, error) {
	starters, err := tx.NewSelect().
		Model((*models.Aircraft)(nil)).
		Join("JOIN aircraft_models AS am ON am.model_code = ac.model_code").
		Where("ac.save_id = ?", saveID).
		Where("ac.sold_day IS NULL").
		Where("am.category = ?", models.CategoryStarter).
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count starter aircraft: %w", err)
	}

	others, err := tx.NewSelect().
		Model((*models.Aircraft)(nil)).
		Join("JOIN aircraft_models AS am ON am.model_code = ac.model_code").
		Where("ac.save_id = ?", saveID).
		Where("ac.sold_day IS NULL").
		Where("am.category != ?", models.CategoryStarter).
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count aircraft: %w", err)
	}

	return starters, others, nil
}

func (r *aircraftRepository) MarkBusyTx(ctx context.Context, tx bun.Tx, id int64) error {
	result, err := tx.NewUpdate().
		Model((*models.Aircraft)(nil)).
		Set("status = ?", models.AircraftStatusBusy).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", models.AircraftStatusIdle).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark aircraft busy: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrAircraftNotFound
	}
	return nil
}

func (r *aircraftRepository) MarkIdleAtTx(ctx context.Context, tx bun.Tx, id int64, airportIdent string) error {
	result, err := tx.NewUpdate().
		Model((*models.Aircraft)(nil)).
		Set("status = ?", models.AircraftStatusIdle).
		Set("current_airport_ident = ?", airportIdent).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark aircraft idle: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrAircraftNotFound
	}
	return nil
}
