package database

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/database/repositories"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/eco"
)

const airportBatchSize = 500

// SeedReferenceData imports the airport dump and the aircraft catalog.
// Both imports are idempotent upserts and run concurrently.
func (db *DB) SeedReferenceData(ctx context.Context, airportsCSV, catalogTOML string) error {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return db.seedAirports(gctx, airportsCSV) })
	g.Go(func() error { return db.seedCatalog(gctx, catalogTOML) })
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Reference data seeded",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

func (db *DB) seedAirports(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open airports csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read airports header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"ident", "type", "name"} {
		if _, ok := col[required]; !ok {
			return fmt.Errorf("airports csv missing column %q", required)
		}
	}

	repo := repositories.NewAirportRepository(db.bunDB)
	batch := make([]*models.Airport, 0, airportBatchSize)
	total := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read airports csv: %w", err)
		}

		airport := &models.Airport{
			Ident: record[col["ident"]],
			Type:  record[col["type"]],
			Name:  record[col["name"]],
		}
		if i, ok := col["iso_country"]; ok {
			airport.IsoCountry = record[i]
		}
		if i, ok := col["latitude_deg"]; ok {
			if lat, err := strconv.ParseFloat(record[i], 64); err == nil {
				airport.Latitude = &lat
			}
		}
		if i, ok := col["longitude_deg"]; ok {
			if lon, err := strconv.ParseFloat(record[i], 64); err == nil {
				airport.Longitude = &lon
			}
		}

		batch = append(batch, airport)
		if len(batch) == airportBatchSize {
			if err := repo.UpsertBatch(ctx, batch); err != nil {
				return err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := repo.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
	}

	slog.Info("Airports imported",
		slog.String("type", "db"),
		slog.Int("count", total),
	)
	return nil
}

type catalogFile struct {
	Models []catalogEntry `toml:"models"`
}

type catalogEntry struct {
	ModelCode        string `toml:"model_code"`
	Manufacturer     string `toml:"manufacturer"`
	ModelName        string `toml:"model_name"`
	PurchasePrice    int64  `toml:"purchase_price"`
	BaseCargoKg      int    `toml:"base_cargo_kg"`
	RangeKm          int    `toml:"range_km"`
	CruiseSpeedKts   int    `toml:"cruise_speed_kts"`
	Category         string `toml:"category"`
	EcoClass         string `toml:"eco_class"`
	EcoFeeMultiplier string `toml:"eco_fee_multiplier"`
}

func (db *DB) seedCatalog(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	var catalog catalogFile
	if err := toml.NewDecoder(file).Decode(&catalog); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}

	repo := repositories.NewCatalogRepository(db.bunDB)
	for _, entry := range catalog.Models {
		model := &models.AircraftModel{
			ModelCode:      entry.ModelCode,
			Manufacturer:   entry.Manufacturer,
			ModelName:      entry.ModelName,
			PurchasePrice:  decimal.NewFromInt(entry.PurchasePrice),
			BaseCargoKg:    entry.BaseCargoKg,
			RangeKm:        entry.RangeKm,
			CruiseSpeedKts: entry.CruiseSpeedKts,
			Category:       entry.Category,
			EcoClass:       entry.EcoClass,
			// malformed multipliers fall back to 0.0 instead of
			// failing the whole import
			EcoFeeMultiplier: eco.ParseBase(entry.EcoFeeMultiplier),
		}
		if err := repo.Upsert(ctx, model); err != nil {
			return err
		}
	}

	slog.Info("Aircraft catalog imported",
		slog.String("type", "db"),
		slog.Int("count", len(catalog.Models)),
	)
	return nil
}
