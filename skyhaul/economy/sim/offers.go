package sim

import (
	"context"
	"log/slog"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/offers"
	"github.com/uptrace/bun"
)

// GenerateOffers produces fresh cargo offers for an idle aircraft and
// caches them for same-day acceptance. Generation only reads state.
func (s *Session) GenerateOffers(ctx context.Context, saveID, aircraftID int64) ([]offers.Offer, error) {
	save, err := s.activeSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fleetAircraft(ctx, saveID, aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft.Status != models.AircraftStatusIdle {
		return nil, ErrAircraftNotIdle
	}

	model := aircraft.Model
	if model == nil {
		model, err = s.catalog.GetByCode(ctx, aircraft.ModelCode)
		if err != nil {
			return nil, err
		}
	}

	multiplier, err := s.effectiveMultiplier(ctx, aircraft)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(ctx, aircraft, model, multiplier, save.CurrentDay)
	if err != nil {
		return nil, err
	}

	s.offerMu.Lock()
	s.pending[aircraftID] = pendingOffers{saveID: saveID, day: save.CurrentDay, offers: generated}
	s.offerMu.Unlock()

	return generated, nil
}

// AcceptOffer commits one previously generated offer: contract, flight
// and the aircraft's BUSY flip are created in one transaction, so an
// orphan flight without a contract can never exist. Offers generated on
// an earlier day are refused.
func (s *Session) AcceptOffer(ctx context.Context, saveID, aircraftID int64, choice int) (*models.Contract, error) {
	save, err := s.activeSave(ctx, saveID)
	if err != nil {
		return nil, err
	}

	aircraft, err := s.fleetAircraft(ctx, saveID, aircraftID)
	if err != nil {
		return nil, err
	}
	if aircraft.Status != models.AircraftStatusIdle {
		return nil, ErrAircraftNotIdle
	}

	s.offerMu.Lock()
	cached, ok := s.pending[aircraftID]
	s.offerMu.Unlock()

	if !ok || cached.saveID != saveID || len(cached.offers) == 0 {
		return nil, ErrNoOffers
	}
	if cached.day != save.CurrentDay {
		return nil, ErrOffersExpired
	}
	if choice < 1 || choice > len(cached.offers) {
		return nil, ErrInvalidOfferChoice
	}
	offer := cached.offers[choice-1]

	contract := &models.Contract{
		SaveID:           saveID,
		AircraftID:       aircraftID,
		OriginIdent:      aircraft.CurrentAirportIdent,
		DestinationIdent: offer.DestinationIdent,
		PayloadKg:        offer.PayloadKg,
		DistanceKm:       offer.DistanceKm,
		Reward:           offer.Reward,
		Penalty:          offer.Penalty,
		Status:           models.ContractStatusInProgress,
		CreatedDay:       save.CurrentDay,
		DeadlineDay:      offer.DeadlineDay,
	}

	err = s.tx.WithTransaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.contracts.CreateTx(ctx, tx, contract); err != nil {
			return err
		}

		flight := &models.Flight{
			SaveID:     saveID,
			ContractID: contract.ID,
			AircraftID: aircraftID,
			Status:     models.FlightStatusEnroute,
			DepDay:     save.CurrentDay,
			ArrivalDay: save.CurrentDay + offer.TotalDays,
			DistanceKm: offer.DistanceKm * float64(offer.Trips),
			DepIdent:   aircraft.CurrentAirportIdent,
			ArrIdent:   offer.DestinationIdent,
		}
		if err := s.flights.CreateTx(ctx, tx, flight); err != nil {
			return err
		}

		return s.aircraft.MarkBusyTx(ctx, tx, aircraftID)
	})
	if err != nil {
		return nil, err
	}

	s.offerMu.Lock()
	delete(s.pending, aircraftID)
	s.offerMu.Unlock()

	slog.Info("Contract accepted",
		slog.String("type", "sim"),
		slog.Int64("save_id", saveID),
		slog.Int64("aircraft_id", aircraftID),
		slog.String("destination", offer.DestinationIdent),
		slog.Int("deadline_day", offer.DeadlineDay),
	)

	return contract, nil
}
