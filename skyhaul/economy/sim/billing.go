package sim

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/gametx"
	"github.com/uptrace/bun"
)

// RunBilling charges the recurring headquarters and maintenance fees.
// Starter airframes are maintained at a discounted rate. When cash
// cannot cover the bill the company goes bankrupt and nothing is
// charged; the debit is all-or-nothing.
func (s *Session) RunBilling(ctx context.Context, saveID int64) (decimal.Decimal, bool, error) {
	charged := decimal.Zero
	bankrupt := false

	err := s.tx.WithTransaction(ctx, gametx.SerializableTransactionOptions(), func(ctx context.Context, tx bun.Tx) error {
		save, err := s.saves.LockTx(ctx, tx, saveID)
		if err != nil {
			return err
		}
		if save.Terminal() {
			return nil
		}

		starters, others, err := s.aircraft.ActiveCountsTx(ctx, tx, saveID)
		if err != nil {
			return err
		}

		bill := s.cfg.HQMonthlyFee.
			Add(s.cfg.MaintenancePerAircraft.Mul(decimal.NewFromInt(int64(others)))).
			Add(s.cfg.MaintenancePerAircraft.
				Mul(s.cfg.StarterMaintenanceDiscount).
				Mul(decimal.NewFromInt(int64(starters)))).
			Round(2)

		if save.Cash.LessThan(bill) {
			bankrupt = true
			return s.saves.SetStatusTx(ctx, tx, saveID, models.SaveStatusBankrupt)
		}

		if err := s.saves.AddCashTx(ctx, tx, saveID, bill.Neg()); err != nil {
			return err
		}
		charged = bill
		return nil
	})
	if err != nil {
		return decimal.Zero, false, err
	}

	if bankrupt {
		slog.Info("Company went bankrupt on billing day",
			slog.String("type", "sim"),
			slog.Int64("save_id", saveID),
		)
	} else if !charged.IsZero() {
		slog.Debug("Billing charged",
			slog.String("type", "sim"),
			slog.Int64("save_id", saveID),
			slog.String("amount", charged.StringFixed(2)),
		)
	}

	return charged, bankrupt, nil
}
