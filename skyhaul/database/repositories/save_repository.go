package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var (
	ErrSaveNotFound  = errors.New("save not found")
	ErrCompanyExists = errors.New("company already exists for this player")
)

type SaveRepository interface {
	CreateTx(ctx context.Context, tx bun.Tx, save *models.GameSave) error
	GetByID(ctx context.Context, id int64) (*models.GameSave, error)
	GetByOwnerAndCompany(ctx context.Context, ownerID, company string) (*models.GameSave, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.GameSave, error)
	LockTx(ctx context.Context, tx bun.Tx, id int64) (*models.GameSave, error)
	IncrementDayTx(ctx context.Context, tx bun.Tx, id int64) (int, error)
	AddCashTx(ctx context.Context, tx bun.Tx, id int64, amount decimal.Decimal) error
	SetStatusTx(ctx context.Context, tx bun.Tx, id int64, status string) error
}

type saveRepository struct {
	db *bun.DB
}

func NewSaveRepository(db *bun.DB) SaveRepository {
	return &saveRepository{db: db}
}

func (r *saveRepository) CreateTx(ctx context.Context, tx bun.Tx, save *models.GameSave) error {
	exists, err := tx.NewSelect().
		Model((*models.GameSave)(nil)).
		Where("owner_id = ? AND company_name = ?", save.OwnerID, save.CompanyName).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing company: %w", err)
	}
	if exists {
		return ErrCompanyExists
	}

	save.CreatedAt = time.Now()
	save.UpdatedAt = time.Now()
	if _, err := tx.NewInsert().Model(save).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create save: %w", err)
	}
	return nil
}

func (r *saveRepository) GetByID(ctx context.Context, id int64) (*models.GameSave, error) {
	save := new(models.GameSave)
	err := r.db.NewSelect().
		Model(save).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return save, nil
}

func (r *saveRepository) GetByOwnerAndCompany(ctx context.Context, ownerID, company string) (*models.GameSave, error) {
	save := new(models.GameSave)
	err := r.db.NewSelect().
		Model(save).
		Where("owner_id = ? AND company_name = ?", ownerID, company).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}
	return save, nil
}

func (r *saveRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.GameSave, error) {
	var saves []*models.GameSave
	err := r.db.NewSelect().
		Model(&saves).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return saves, nil
}

// LockTx acquires the exclusive row lock every cash/status mutation must
// hold for the duration of its transaction.
func (r *saveRepository) LockTx(ctx context.Context, tx bun.Tx, id int64) (*models.GameSave, error) {
	save := new(models.GameSave)
	err := tx.NewSelect().
		Model(save).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock save: %w", err)
	}
	return save, nil
}

func (r *saveRepository) IncrementDayTx(ctx context.Context, tx bun.Tx, id int64) (int, error) {
	var newDay int
	err := tx.NewRaw(
		"UPDATE game_saves SET current_day = current_day + 1, updated_at = ? WHERE id = ? RETURNING current_day",
		time.Now(), id,
	).Scan(ctx, &newDay)
	if err != nil {
		return 0, fmt.Errorf("failed to advance day: %w", err)
	}
	return newDay, nil
}

func (r *saveRepository) AddCashTx(ctx context.Context, tx bun.Tx, id int64, amount decimal.Decimal) error {
	result, err := tx.NewUpdate().
		Model((*models.GameSave)(nil)).
		Set("cash = cash + ?", amount.Round(2)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update cash: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrSaveNotFound
	}
	return nil
}

func (r *saveRepository) SetStatusTx(ctx context.Context, tx bun.Tx, id int64, status string) error {
	result, err := tx.NewUpdate().
		Model((*models.GameSave)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrSaveNotFound
	}
	return nil
}
