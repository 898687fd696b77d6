package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrBaseNotFound = errors.New("base not found")

type BaseRepository interface {
	CreateTx(ctx context.Context, tx bun.Tx, base *models.OwnedBase) error
	AppendUpgradeTx(ctx context.Context, tx bun.Tx, upgrade *models.BaseUpgrade) error
	GetByID(ctx context.Context, id int64) (*models.OwnedBase, error)
	ListBySave(ctx context.Context, saveID int64) ([]*models.OwnedBase, error)
	CurrentTier(ctx context.Context, baseID int64) (string, error)
	BestTier(ctx context.Context, saveID int64) (string, error)
}

type baseRepository struct {
	db *bun.DB
}

func NewBaseRepository(db *bun.DB) BaseRepository {
	return &baseRepository{db: db}
}

func (r *baseRepository) CreateTx(ctx context.Context, tx bun.Tx, base *models.OwnedBase) error {
	if _, err := tx.NewInsert().Model(base).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create base: %w", err)
	}
	return nil
}

func (r *baseRepository) AppendUpgradeTx(ctx context.Context, tx bun.Tx, upgrade *models.BaseUpgrade) error {
	if _, err := tx.NewInsert().Model(upgrade).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record base upgrade: %w", err)
	}
	return nil
}

func (r *baseRepository) GetByID(ctx context.Context, id int64) (*models.OwnedBase, error) {
	base := new(models.OwnedBase)
	err := r.db.NewSelect().
		Model(base).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return base, nil
}

func (r *baseRepository) ListBySave(ctx context.Context, saveID int64) ([]*models.OwnedBase, error) {
	var bases []*models.OwnedBase
	err := r.db.NewSelect().
		Model(&bases).
		Where("save_id = ?", saveID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bases, nil
}

// CurrentTier is the latest row of the base's append-only tier history.
func (r *baseRepository) CurrentTier(ctx context.Context, baseID int64) (string, error) {
	upgrade := new(models.BaseUpgrade)
	err := r.db.NewSelect().
		Model(upgrade).
		Where("base_id = ?", baseID).
		Order("installed_day DESC", "id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrBaseNotFound
	}
	if err != nil {
		return "", err
	}
	return upgrade.Tier, nil
}

// BestTier is the highest tier across all of a save's bases; it gates
// which aircraft categories the shop lists.
func (r *baseRepository) BestTier(ctx context.Context, saveID int64) (string, error) {
	bases, err := r.ListBySave(ctx, saveID)
	if err != nil {
		return "", err
	}
	if len(bases) == 0 {
		return "", ErrBaseNotFound
	}

	best := ""
	for _, base := range bases {
		tier, err := r.CurrentTier(ctx, base.ID)
		if err != nil {
			if errors.Is(err, ErrBaseNotFound) {
				continue
			}
			return "", err
		}
		if models.BaseTierRank(tier) > models.BaseTierRank(best) {
			best = tier
		}
	}
	if best == "" {
		return "", ErrBaseNotFound
	}
	return best, nil
}
