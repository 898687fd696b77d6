package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/uptrace/bun"
)

// DayResult summarizes one day-advance: the day reached, how many
// flights arrived and how much was settled into cash.
type DayResult struct {
	Day      int
	Arrivals int
	Earned   decimal.Decimal
}

// AdvanceDay moves the simulated calendar forward by one day and
// settles everything that arrives, as a single atomic unit. On any
// failure the transaction rolls back whole: the day does not advance
// and no partial settlement is visible.
//
// Terminal saves still count days but never earn: arriving flights are
// resolved so aircraft don't stay stuck, while cash stays frozen.
func (s *Session) AdvanceDay(ctx context.Context, saveID int64) (*DayResult, error) {
	start := time.Now()
	result := &DayResult{Earned: decimal.Zero}

	err := s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		save, err := s.saves.LockTx(ctx, tx, saveID)
		if err != nil {
			return err
		}

		newDay, err := s.saves.IncrementDayTx(ctx, tx, saveID)
		if err != nil {
			return err
		}

		due, err := s.flights.DueTx(ctx, tx, saveID, newDay)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, flight := range due {
			earned, err := s.settleFlightTx(ctx, tx, flight, newDay)
			if err != nil {
				return err
			}
			total = total.Add(earned)
			result.Arrivals++
		}

		if !total.IsZero() && !save.Terminal() {
			if err := s.saves.AddCashTx(ctx, tx, saveID, total.Round(2)); err != nil {
				return err
			}
			result.Earned = total.Round(2)
		}

		result.Day = newDay
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Day advanced",
		slog.String("type", "sim"),
		slog.Int64("save_id", saveID),
		slog.Int("day", result.Day),
		slog.Int("arrivals", result.Arrivals),
		slog.String("earned", result.Earned.StringFixed(2)),
		slog.Duration("took", time.Since(start)),
	)

	// Billing is a distinct terminal decision; it runs outside the
	// day-advance transaction.
	if s.cfg.BillingPeriodDays > 0 && result.Day%s.cfg.BillingPeriodDays == 0 {
		save, err := s.saves.GetByID(ctx, saveID)
		if err != nil {
			return nil, err
		}
		if save.Status == models.SaveStatusActive {
			if _, _, err := s.RunBilling(ctx, saveID); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// settleFlightTx resolves one arrived flight: flight to ARRIVED, its
// aircraft idle at the destination, its contract completed on time or
// late. Returns the settled amount.
func (s *Session) settleFlightTx(ctx context.Context, tx bun.Tx, flight *models.Flight, newDay int) (decimal.Decimal, error) {
	if err := s.flights.MarkArrivedTx(ctx, tx, flight.ID); err != nil {
		return decimal.Zero, err
	}
	if err := s.aircraft.MarkIdleAtTx(ctx, tx, flight.AircraftID, flight.ArrIdent); err != nil {
		return decimal.Zero, err
	}

	contract, err := s.contracts.GetTx(ctx, tx, flight.ContractID)
	if err != nil {
		return decimal.Zero, err
	}

	status := models.ContractStatusCompleted
	final := contract.Reward
	if newDay > contract.DeadlineDay {
		status = models.ContractStatusCompletedLate
		final = contract.Reward.Sub(contract.Penalty)
		if final.IsNegative() {
			final = decimal.Zero
		}
	}

	if err := s.contracts.ResolveTx(ctx, tx, contract.ID, status, newDay); err != nil {
		return decimal.Zero, err
	}
	return final, nil
}
