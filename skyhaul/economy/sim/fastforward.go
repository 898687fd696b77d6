package sim

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/gametx"
	"github.com/uptrace/bun"
)

// Stop reasons reported by the fast-forward loops.
const (
	StopCompleted      = "COMPLETED"
	StopArrival        = "ARRIVAL"
	StopBankrupt       = "BANKRUPT"
	StopVictory        = "VICTORY"
	StopMaxDays        = "MAX_DAYS"
	StopNothingEnroute = "NOTHING_ENROUTE"
)

// FastForwardResult aggregates a silent multi-day run.
type FastForwardResult struct {
	DaysProcessed int
	Arrivals      int
	Earned        decimal.Decimal
	StopReason    string
	FinalStatus   string
	FinalDay      int
}

// FastForward advances up to the given number of days, delegating each
// step to AdvanceDay. It stops early the moment the company turns
// bankrupt or the survival target day is reached; it never overshoots a
// terminal state.
func (s *Session) FastForward(ctx context.Context, saveID int64, days int) (*FastForwardResult, error) {
	if days <= 0 || days > s.cfg.FastForwardCap {
		days = s.cfg.FastForwardCap
	}

	result := &FastForwardResult{Earned: decimal.Zero, StopReason: StopCompleted}

	for i := 0; i < days; i++ {
		day, err := s.AdvanceDay(ctx, saveID)
		if err != nil {
			return nil, err
		}
		result.DaysProcessed++
		result.Arrivals += day.Arrivals
		result.Earned = result.Earned.Add(day.Earned)

		stop, reason, err := s.checkTerminal(ctx, saveID, day.Day)
		if err != nil {
			return nil, err
		}
		if stop {
			result.StopReason = reason
			break
		}
	}

	return s.finishFastForward(ctx, saveID, result)
}

// FastForwardUntilFirstReturn advances day by day until the first day
// with at least one arrival, or until bankruptcy, victory or the cap.
// With nothing enroute there is nothing to wait for and it returns
// immediately.
func (s *Session) FastForwardUntilFirstReturn(ctx context.Context, saveID int64, maxDays int) (*FastForwardResult, error) {
	if maxDays <= 0 || maxDays > s.cfg.FastForwardCap {
		maxDays = s.cfg.FastForwardCap
	}

	result := &FastForwardResult{Earned: decimal.Zero}

	enroute, err := s.flights.CountEnroute(ctx, saveID)
	if err != nil {
		return nil, err
	}
	if enroute == 0 {
		result.StopReason = StopNothingEnroute
		return s.finishFastForward(ctx, saveID, result)
	}

	result.StopReason = StopMaxDays
	for i := 0; i < maxDays; i++ {
		day, err := s.AdvanceDay(ctx, saveID)
		if err != nil {
			return nil, err
		}
		result.DaysProcessed++
		result.Arrivals += day.Arrivals
		result.Earned = result.Earned.Add(day.Earned)

		stop, reason, err := s.checkTerminal(ctx, saveID, day.Day)
		if err != nil {
			return nil, err
		}
		if stop {
			result.StopReason = reason
			break
		}
		if day.Arrivals > 0 {
			result.StopReason = StopArrival
			break
		}
	}

	return s.finishFastForward(ctx, saveID, result)
}

// checkTerminal inspects the save after one advanced day and decides
// whether the loop must stop. Reaching the survival target day while
// still active converts the company to VICTORY.
func (s *Session) checkTerminal(ctx context.Context, saveID int64, day int) (bool, string, error) {
	save, err := s.saves.GetByID(ctx, saveID)
	if err != nil {
		return false, "", err
	}

	switch save.Status {
	case models.SaveStatusBankrupt:
		return true, StopBankrupt, nil
	case models.SaveStatusVictory:
		return true, StopVictory, nil
	}

	if day >= s.cfg.SurvivalTargetDay {
		err := s.tx.WithTransaction(ctx, gametx.SerializableTransactionOptions(), func(ctx context.Context, tx bun.Tx) error {
			locked, err := s.saves.LockTx(ctx, tx, saveID)
			if err != nil {
				return err
			}
			if locked.Terminal() {
				return nil
			}
			return s.saves.SetStatusTx(ctx, tx, saveID, models.SaveStatusVictory)
		})
		if err != nil {
			return false, "", err
		}
		return true, StopVictory, nil
	}

	return false, "", nil
}

func (s *Session) finishFastForward(ctx context.Context, saveID int64, result *FastForwardResult) (*FastForwardResult, error) {
	save, err := s.saves.GetByID(ctx, saveID)
	if err != nil {
		return nil, err
	}
	result.FinalStatus = save.Status
	result.FinalDay = save.CurrentDay
	return result, nil
}
