package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrContractNotFound = errors.New("contract not found")

type ContractRepository interface {
	CreateTx(ctx context.Context, tx bun.Tx, contract *models.Contract) error
	GetTx(ctx context.Context, tx bun.Tx, id int64) (*models.Contract, error)
	ResolveTx(ctx context.Context, tx bun.Tx, id int64, status string, completedDay int) error
	ListBySave(ctx context.Context, saveID int64) ([]*models.Contract, error)
}

type contractRepository struct {
	db *bun.DB
}

func NewContractRepository(db *bun.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) CreateTx(ctx context.Context, tx bun.Tx, contract *models.Contract) error {
	if _, err := tx.NewInsert().Model(contract).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (r *contractRepository) GetTx(ctx context.Context, tx bun.Tx, id int64) (*models.Contract, error) {
	contract := new(models.Contract)
	err := tx.NewSelect().
		Model(contract).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepository) ResolveTx(ctx context.Context, tx bun.Tx, id int64, status string, completedDay int) error {
	result, err := tx.NewUpdate().
		Model((*models.Contract)(nil)).
		Set("status = ?", status).
		Set("completed_day = ?", completedDay).
		Where("id = ?", id).
		Where("status = ?", models.ContractStatusInProgress).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve contract: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *contractRepository) ListBySave(ctx context.Context, saveID int64) ([]*models.Contract, error) {
	var contracts []*models.Contract
	err := r.db.NewSelect().
		Model(&contracts).
		Where("save_id = ?", saveID).
		Order("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
