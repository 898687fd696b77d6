package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrModelNotFound = errors.New("aircraft model not found")

const catalogCacheTTL = 5 * time.Minute

type CatalogRepository interface {
	GetByCode(ctx context.Context, code string) (*models.AircraftModel, error)
	ListAll(ctx context.Context) ([]*models.AircraftModel, error)
	ListPurchasable(ctx context.Context, maxTierRank int) ([]*models.AircraftModel, error)
	Search(ctx context.Context, query string) ([]*models.AircraftModel, error)
	Upsert(ctx context.Context, model *models.AircraftModel) error
}

type catalogRepository struct {
	db *bun.DB

	mu       sync.Mutex
	cached   []*models.AircraftModel
	cachedAt time.Time
}

func NewCatalogRepository(db *bun.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByCode(ctx context.Context, code string) (*models.AircraftModel, error) {
	model := new(models.AircraftModel)
	err := r.db.NewSelect().
		Model(model).
		Where("model_code = ?", code).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}

func (r *catalogRepository) ListAll(ctx context.Context) ([]*models.AircraftModel, error) {
	r.mu.Lock()
	if r.cached != nil && time.Since(r.cachedAt) < catalogCacheTTL {
		cached := r.cached
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	var catalog []*models.AircraftModel
	err := r.db.NewSelect().
		Model(&catalog).
		Order("purchase_price ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cached = catalog
	r.cachedAt = time.Now()
	r.mu.Unlock()
	return catalog, nil
}

// ListPurchasable filters the catalog to categories unlocked by the
// player's best base tier. Starters are gifts, never sold.
func (r *catalogRepository) ListPurchasable(ctx context.Context, maxTierRank int) ([]*models.AircraftModel, error) {
	catalog, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var purchasable []*models.AircraftModel
	for _, m := range catalog {
		if m.Category == models.CategoryStarter {
			continue
		}
		if models.CategoryRank(m.Category) <= maxTierRank {
			purchasable = append(purchasable, m)
		}
	}
	return purchasable, nil
}

func (r *catalogRepository) Search(ctx context.Context, query string) ([]*models.AircraftModel, error) {
	catalog, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(catalog))
	for i, m := range catalog {
		names[i] = fmt.Sprintf("%s %s %s", m.Manufacturer, m.ModelName, m.ModelCode)
	}

	matches := fuzzy.Find(query, names)
	results := make([]*models.AircraftModel, 0, len(matches))
	for _, match := range matches {
		results = append(results, catalog[match.Index])
	}
	return results, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, model *models.AircraftModel) error {
	_, err := r.db.NewInsert().
		Model(model).
		On("CONFLICT (model_code) DO UPDATE").
		Set("manufacturer = EXCLUDED.manufacturer").
		Set("model_name = EXCLUDED.model_name").
		Set("purchase_price = EXCLUDED.purchase_price").
		Set("base_cargo_kg = EXCLUDED.base_cargo_kg").
		Set("range_km = EXCLUDED.range_km").
		Set("cruise_speed_kts = EXCLUDED.cruise_speed_kts").
		Set("category = EXCLUDED.category").
		Set("eco_class = EXCLUDED.eco_class").
		Set("eco_fee_multiplier = EXCLUDED.eco_fee_multiplier").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert model %s: %w", model.ModelCode, err)
	}

	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
	return nil
}
