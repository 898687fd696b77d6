package sim

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

// NewGame creates a company in one transaction: the save with its
// starting cash, the chosen headquarters base at SMALL tier, and the
// gifted starter aircraft parked there.
func (s *Session) NewGame(ctx context.Context, ownerID, companyName, baseIdent string) (*models.GameSave, error) {
	var option *BaseOption
	for i := range s.cfg.BaseOptions {
		if s.cfg.BaseOptions[i].AirportIdent == baseIdent {
			option = &s.cfg.BaseOptions[i]
			break
		}
	}
	if option == nil {
		return nil, ErrUnknownBaseOption
	}

	starterModel, err := s.catalog.GetByCode(ctx, s.cfg.StarterModelCode)
	if err != nil {
		return nil, err
	}

	baseCost := s.cfg.StartingCash.Mul(option.CostPct).Round(2)
	save := &models.GameSave{
		OwnerID:     ownerID,
		CompanyName: companyName,
		CurrentDay:  0,
		Cash:        s.cfg.StartingCash,
		Status:      models.SaveStatusActive,
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.saves.CreateTx(ctx, tx, save); err != nil {
			return err
		}
		if err := s.saves.AddCashTx(ctx, tx, save.ID, baseCost.Neg()); err != nil {
			return err
		}

		base := &models.OwnedBase{
			SaveID:       save.ID,
			AirportIdent: option.AirportIdent,
			PurchaseCost: baseCost,
			AcquiredDay:  0,
		}
		if err := s.bases.CreateTx(ctx, tx, base); err != nil {
			return err
		}

		tier := &models.BaseUpgrade{
			BaseID:       base.ID,
			Tier:         models.BaseTierSmall,
			InstalledDay: 0,
			Cost:         decimal.Zero,
		}
		if err := s.bases.AppendUpgradeTx(ctx, tx, tier); err != nil {
			return err
		}

		gift := &models.Aircraft{
			SaveID:              save.ID,
			ModelCode:           starterModel.ModelCode,
			Registration:        newRegistration(starterPrefix),
			Status:              models.AircraftStatusIdle,
			CurrentAirportIdent: option.AirportIdent,
			ConditionPercent:    100,
			PurchasePrice:       decimal.Zero,
			AcquiredDay:         0,
			BaseID:              base.ID,
		}
		return s.aircraft.CreateTx(ctx, tx, gift)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Company founded",
		slog.String("type", "sim"),
		slog.String("owner", ownerID),
		slog.String("company", companyName),
		slog.String("hq", option.AirportIdent),
	)

	save.Cash = s.cfg.StartingCash.Sub(baseCost)
	return save, nil
}

// BaseChoices exposes the configured headquarters options with their
// resolved prices for the new-game prompt.
func (s *Session) BaseChoices() []BaseOption {
	choices := make([]BaseOption, len(s.cfg.BaseOptions))
	copy(choices, s.cfg.BaseOptions)
	return choices
}

// BaseOptionCost resolves the concrete price of a headquarters option.
func (s *Session) BaseOptionCost(option BaseOption) decimal.Decimal {
	return s.cfg.StartingCash.Mul(option.CostPct).Round(2)
}
