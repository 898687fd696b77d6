package sim

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/database/repositories"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/eco"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/gametx"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/offers"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/upgrade"
)

// Deps bundles everything a Session needs. Tests swap the repositories
// and the transaction runner for in-memory fakes.
type Deps struct {
	Tx        gametx.Runner
	Saves     repositories.SaveRepository
	Aircraft  repositories.AircraftRepository
	Catalog   repositories.CatalogRepository
	Upgrades  repositories.UpgradeRepository
	Contracts repositories.ContractRepository
	Flights   repositories.FlightRepository
	Bases     repositories.BaseRepository
	Resolver  *eco.Resolver
	Pricing   *upgrade.Calculator
	Offers    *offers.Generator
}

// Session is the simulation service for all companies. It owns no
// per-save state beyond the short-lived offer cache; everything durable
// lives behind the repositories.
type Session struct {
	tx        gametx.Runner
	saves     repositories.SaveRepository
	aircraft  repositories.AircraftRepository
	catalog   repositories.CatalogRepository
	upgrades  repositories.UpgradeRepository
	contracts repositories.ContractRepository
	flights   repositories.FlightRepository
	bases     repositories.BaseRepository
	resolver  *eco.Resolver
	pricing   *upgrade.Calculator
	generator *offers.Generator
	cfg       GameConfig

	// offers are valid for the day they were generated on only
	offerMu sync.Mutex
	pending map[int64]pendingOffers
}

type pendingOffers struct {
	saveID int64
	day    int
	offers []offers.Offer
}

func NewSession(deps Deps, cfg GameConfig) *Session {
	return &Session{
		tx:        deps.Tx,
		saves:     deps.Saves,
		aircraft:  deps.Aircraft,
		catalog:   deps.Catalog,
		upgrades:  deps.Upgrades,
		contracts: deps.Contracts,
		flights:   deps.Flights,
		bases:     deps.Bases,
		resolver:  deps.Resolver,
		pricing:   deps.Pricing,
		generator: deps.Offers,
		cfg:       cfg,
		pending:   make(map[int64]pendingOffers),
	}
}

// fleetAircraft loads an aircraft and verifies it belongs to the save
// and has not been sold.
func (s *Session) fleetAircraft(ctx context.Context, saveID, aircraftID int64) (*models.Aircraft, error) {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft.SaveID != saveID {
		return nil, ErrAircraftNotInFleet
	}
	if !aircraft.Active() {
		return nil, ErrAircraftRetired
	}
	return aircraft, nil
}

// PreviewEcoMultiplier resolves the effective eco multiplier for an
// aircraft without touching persisted state. The identical computation
// feeds contract rewards, so quoted and charged values can never differ.
func (s *Session) PreviewEcoMultiplier(ctx context.Context, saveID, aircraftID int64) (float64, error) {
	aircraft, err := s.fleetAircraft(ctx, saveID, aircraftID)
	if err != nil {
		return 0, err
	}
	return s.effectiveMultiplier(ctx, aircraft)
}

func (s *Session) effectiveMultiplier(ctx context.Context, aircraft *models.Aircraft) (float64, error) {
	latest, err := s.upgrades.Latest(ctx, aircraft.ID)
	if err != nil {
		return 0, err
	}

	level, floor := 0, 0.0
	if latest != nil {
		level = latest.Level
		floor = latest.EcoFloor
	}

	model := aircraft.Model
	if model == nil {
		model, err = s.catalog.GetByCode(ctx, aircraft.ModelCode)
		if err != nil {
			return 0, err
		}
	}

	return s.resolver.Effective(model.EcoClass, model.EcoFeeMultiplier, level, floor), nil
}

// NextUpgradeCost prices the next upgrade level for an aircraft. Pure
// preview; nothing is charged.
func (s *Session) NextUpgradeCost(ctx context.Context, saveID, aircraftID int64) (int, decimal.Decimal, error) {
	aircraft, err := s.fleetAircraft(ctx, saveID, aircraftID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	level, err := s.upgrades.CurrentLevel(ctx, aircraft.ID)
	if err != nil {
		return 0, decimal.Zero, err
	}

	model := aircraft.Model
	if model == nil {
		model, err = s.catalog.GetByCode(ctx, aircraft.ModelCode)
		if err != nil {
			return 0, decimal.Zero, err
		}
	}

	cost, err := s.pricing.AircraftLevelCost(model.Category, aircraft.PurchasePrice, level+1)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return level + 1, cost, nil
}

// NextBaseTierCost prices the next tier for an owned base. Pure
// preview; nothing is charged.
func (s *Session) NextBaseTierCost(ctx context.Context, saveID, baseID int64) (string, decimal.Decimal, error) {
	base, err := s.bases.GetByID(ctx, baseID)
	if err != nil {
		return "", decimal.Zero, err
	}
	if base.SaveID != saveID {
		return "", decimal.Zero, ErrBaseNotOwned
	}

	tier, err := s.bases.CurrentTier(ctx, baseID)
	if err != nil {
		return "", decimal.Zero, err
	}
	return s.pricing.BaseTierCost(tier, base.PurchaseCost)
}

// activeSave loads a save and rejects terminal ones.
func (s *Session) activeSave(ctx context.Context, saveID int64) (*models.GameSave, error) {
	save, err := s.saves.GetByID(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if save.Terminal() {
		return nil, ErrGameOver
	}
	return save, nil
}
