package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

var ErrAirportNotFound = errors.New("airport not found")

const airportCacheSize = 2048

type AirportRepository interface {
	GetByIdent(ctx context.Context, ident string) (*models.Airport, error)
	SampleByTypes(ctx context.Context, types []string, exclude string, limit int) ([]*models.Airport, error)
	UpsertBatch(ctx context.Context, airports []*models.Airport) error
	Count(ctx context.Context) (int, error)
}

type airportRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewAirportRepository(db *bun.DB) AirportRepository {
	cache, _ := lru.New(airportCacheSize)
	return &airportRepository{db: db, cache: cache}
}

func (r *airportRepository) GetByIdent(ctx context.Context, ident string) (*models.Airport, error) {
	if cached, ok := r.cache.Get(ident); ok {
		return cached.(*models.Airport), nil
	}

	airport := new(models.Airport)
	err := r.db.NewSelect().
		Model(airport).
		Where("ident = ?", ident).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAirportNotFound
	}
	if err != nil {
		return nil, err
	}

	r.cache.Add(ident, airport)
	return airport, nil
}

// SampleByTypes draws random airports of the given types, excluding one
// ident. The offer generator oversamples through this to tolerate rows
// with missing coordinates.
func (r *airportRepository) SampleByTypes(ctx context.Context, types []string, exclude string, limit int) ([]*models.Airport, error) {
	var sample []*models.Airport
	err := r.db.NewSelect().
		Model(&sample).
		Where("type IN (?)", bun.In(types)).
		Where("ident != ?", exclude).
		OrderExpr("random()").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample airports: %w", err)
	}
	return sample, nil
}

func (r *airportRepository) UpsertBatch(ctx context.Context, airports []*models.Airport) error {
	if len(airports) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().
		Model(&airports).
		On("CONFLICT (ident) DO UPDATE").
		Set("type = EXCLUDED.type").
		Set("name = EXCLUDED.name").
		Set("iso_country = EXCLUDED.iso_country").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert airports: %w", err)
	}
	return nil
}

func (r *airportRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.Airport)(nil)).Count(ctx)
}
