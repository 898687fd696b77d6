package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrFlightNotFound = errors.New("flight not found")

type FlightRepository interface {
	CreateTx(ctx context.Context, tx bun.Tx, flight *models.Flight) error
	DueTx(ctx context.Context, tx bun.Tx, saveID int64, day int) ([]*models.Flight, error)
	MarkArrivedTx(ctx context.Context, tx bun.Tx, id int64) error
	CountEnroute(ctx context.Context, saveID int64) (int, error)
	ListEnrouteBySave(ctx context.Context, saveID int64) ([]*models.Flight, error)
}

type flightRepository struct {
	db *bun.DB
}

func NewFlightRepository(db *bun.DB) FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) CreateTx(ctx context.Context, tx bun.Tx, flight *models.Flight) error {
	if _, err := tx.NewInsert().Model(flight).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// DueTx selects the flights the day advancer must settle: still enroute
// with an arrival day at or before the given day.
func (r *flightRepository) DueTx(ctx context.Context, tx bun.Tx, saveID int64, day int) ([]*models.Flight, error) {
	var due []*models.Flight
	err := tx.NewSelect().
		Model(&due).
		Where("save_id = ?", saveID).
		Where("status = ?", models.FlightStatusEnroute).
		Where("arrival_day <= ?", day).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query due flights: %w", err)
	}
	return due, nil
}

func (r *flightRepository) MarkArrivedTx(ctx context.Context, tx bun.Tx, id int64) error {
	result, err := tx.NewUpdate().
		Model((*models.Flight)(nil)).
		Set("status = ?", models.FlightStatusArrived).
		Where("id = ?", id).
		Where("status = ?", models.FlightStatusEnroute).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark flight arrived: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrFlightNotFound
	}
	return nil
}

func (r *flightRepository) CountEnroute(ctx context.Context, saveID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Flight)(nil)).
		Where("save_id = ?", saveID).
		Where("status = ?", models.FlightStatusEnroute).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count enroute flights: %w", err)
	}
	return count, nil
}

func (r *flightRepository) ListEnrouteBySave(ctx context.Context, saveID int64) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := r.db.NewSelect().
		Model(&flights).
		Where("save_id = ?", saveID).
		Where("status = ?", models.FlightStatusEnroute).
		Order("arrival_day ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return flights, nil
}
