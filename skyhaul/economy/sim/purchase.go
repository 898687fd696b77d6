package sim

import (
	"context"
	"log/slog"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

// PurchaseAircraft buys a catalog model into the fleet. The category
// must be unlocked by the save's best base tier; starters are never for
// sale. The cash check and debit happen under the save row lock.
func (s *Session) PurchaseAircraft(ctx context.Context, saveID int64, modelCode, nickname string) (*models.Aircraft, error) {
	save, err := s.activeSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	model, err := s.catalog.GetByCode(ctx, modelCode)
	if err != nil {
		return nil, err
	}
	if model.Category == models.CategoryStarter {
		return nil, ErrModelNotPurchasable
	}

	bestTier, err := s.bases.BestTier(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if models.CategoryRank(model.Category) > models.BaseTierRank(bestTier) {
		return nil, ErrBaseTierTooLow
	}

	bases, err := s.bases.ListBySave(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return nil, ErrBaseNotOwned
	}
	home := bases[0]

	aircraft := &models.Aircraft{
		SaveID:              saveID,
		ModelCode:           model.ModelCode,
		Registration:        newRegistration(purchasePrefix),
		Nickname:            nickname,
		Status:              models.AircraftStatusIdle,
		CurrentAirportIdent: home.AirportIdent,
		ConditionPercent:    100,
		PurchasePrice:       model.PurchasePrice,
		AcquiredDay:         save.CurrentDay,
		BaseID:              home.ID,
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		locked, err := s.saves.LockTx(ctx, tx, saveID)
		if err != nil {
			return err
		}
		if locked.Terminal() {
			return ErrGameOver
		}
		if locked.Cash.LessThan(model.PurchasePrice) {
			return ErrInsufficientFunds
		}
		if err := s.saves.AddCashTx(ctx, tx, saveID, model.PurchasePrice.Neg()); err != nil {
			return err
		}
		return s.aircraft.CreateTx(ctx, tx, aircraft)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Aircraft purchased",
		slog.String("type", "sim"),
		slog.Int64("save_id", saveID),
		slog.String("model", model.ModelCode),
		slog.String("registration", aircraft.Registration),
	)

	return aircraft, nil
}

// PurchaseAircraftUpgrade charges the next upgrade level and appends it
// to the aircraft's history, snapshotting the eco curve in effect.
func (s *Session) PurchaseAircraftUpgrade(ctx context.Context, saveID, aircraftID int64) (*models.AircraftUpgrade, error) {
	save, err := s.activeSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fleetAircraft(ctx, saveID, aircraftID)
	if err != nil {
		return nil, err
	}

	model := aircraft.Model
	if model == nil {
		model, err = s.catalog.GetByCode(ctx, aircraft.ModelCode)
		if err != nil {
			return nil, err
		}
	}

	level, err := s.upgrades.CurrentLevel(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	cost, err := s.pricing.AircraftLevelCost(model.Category, aircraft.PurchasePrice, level+1)
	if err != nil {
		return nil, err
	}

	rule := s.resolver.Rule(model.EcoClass)
	record := &models.AircraftUpgrade{
		AircraftID:        aircraftID,
		UpgradeCode:       "ECO_TUNE",
		Level:             level + 1,
		InstalledDay:      save.CurrentDay,
		Cost:              cost,
		EcoFactorPerLevel: rule.DeltaPerLevel,
		EcoFloor:          rule.Min,
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		locked, err := s.saves.LockTx(ctx, tx, saveID)
		if err != nil {
			return err
		}
		if locked.Terminal() {
			return ErrGameOver
		}
		if locked.Cash.LessThan(cost) {
			return ErrInsufficientFunds
		}
		if err := s.saves.AddCashTx(ctx, tx, saveID, cost.Neg()); err != nil {
			return err
		}
		return s.upgrades.AppendTx(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// PurchaseBaseUpgrade moves an owned base to its next tier. HUGE is
// terminal and refuses.
func (s *Session) PurchaseBaseUpgrade(ctx context.Context, saveID, baseID int64) (*models.BaseUpgrade, error) {
	save, err := s.activeSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	base, err := s.bases.GetByID(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if base.SaveID != saveID {
		return nil, ErrBaseNotOwned
	}

	tier, err := s.bases.CurrentTier(ctx, baseID)
	if err != nil {
		return nil, err
	}

	next, cost, err := s.pricing.BaseTierCost(tier, base.PurchaseCost)
	if err != nil {
		return nil, err
	}

	record := &models.BaseUpgrade{
		BaseID:       baseID,
		Tier:         next,
		InstalledDay: save.CurrentDay,
		Cost:         cost,
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		locked, err := s.saves.LockTx(ctx, tx, saveID)
		if err != nil {
			return err
		}
		if locked.Terminal() {
			return ErrGameOver
		}
		if locked.Cash.LessThan(cost) {
			return ErrInsufficientFunds
		}
		if err := s.saves.AddCashTx(ctx, tx, saveID, cost.Neg()); err != nil {
			return err
		}
		return s.bases.AppendUpgradeTx(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
