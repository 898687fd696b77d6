package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

func offerWorld(t *testing.T) (*world, *models.GameSave, *models.Aircraft) {
	t.Helper()
	w := newWorld()
	save := w.addSave(300000, 10)
	w.addModel("DC3FREE", models.CategoryStarter, 0, 1800, 180, "DEFAULT", 1.0)
	craft := w.addAircraft(save.ID, "DC3FREE", "EFHK")
	return w, save, craft
}

func TestSession_GenerateOffers(t *testing.T) {
	w, save, craft := offerWorld(t)

	generated, err := w.session.GenerateOffers(context.Background(), save.ID, craft.ID)
	if err != nil {
		t.Fatalf("GenerateOffers() error = %v", err)
	}
	if len(generated) == 0 {
		t.Fatal("GenerateOffers() returned no offers")
	}
	for _, offer := range generated {
		if offer.DeadlineDay <= 10 {
			t.Errorf("offer deadline = %d, want after the current day 10", offer.DeadlineDay)
		}
	}
}

func TestSession_GenerateOffers_BusyAircraft(t *testing.T) {
	w, save, craft := offerWorld(t)
	w.aircraft.byID[craft.ID].Status = models.AircraftStatusBusy

	_, err := w.session.GenerateOffers(context.Background(), save.ID, craft.ID)
	if !errors.Is(err, ErrAircraftNotIdle) {
		t.Errorf("GenerateOffers() error = %v, want %v", err, ErrAircraftNotIdle)
	}
}

func TestSession_GenerateOffers_ForeignAircraft(t *testing.T) {
	w, _, craft := offerWorld(t)
	other := w.addSave(300000, 10)

	_, err := w.session.GenerateOffers(context.Background(), other.ID, craft.ID)
	if !errors.Is(err, ErrAircraftNotInFleet) {
		t.Errorf("GenerateOffers() error = %v, want %v", err, ErrAircraftNotInFleet)
	}
}

func TestSession_AcceptOffer(t *testing.T) {
	w, save, craft := offerWorld(t)

	generated, err := w.session.GenerateOffers(context.Background(), save.ID, craft.ID)
	if err != nil || len(generated) == 0 {
		t.Fatalf("GenerateOffers() = %d offers, error %v", len(generated), err)
	}
	chosen := generated[0]

	contract, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, 1)
	if err != nil {
		t.Fatalf("AcceptOffer() error = %v", err)
	}

	if contract.DestinationIdent != chosen.DestinationIdent {
		t.Errorf("contract destination = %s, want %s", contract.DestinationIdent, chosen.DestinationIdent)
	}
	if !contract.Reward.Equal(chosen.Reward) {
		t.Errorf("contract reward = %s, want the quoted %s", contract.Reward, chosen.Reward)
	}
	if contract.DeadlineDay != chosen.DeadlineDay {
		t.Errorf("contract deadline = %d, want the quoted %d", contract.DeadlineDay, chosen.DeadlineDay)
	}

	busy, _ := w.aircraft.GetByID(context.Background(), craft.ID)
	if busy.Status != models.AircraftStatusBusy {
		t.Errorf("aircraft status = %s, want %s", busy.Status, models.AircraftStatusBusy)
	}

	flights, _ := w.flights.ListEnrouteBySave(context.Background(), save.ID)
	if len(flights) != 1 {
		t.Fatalf("enroute flights = %d, want 1", len(flights))
	}
	if flights[0].ContractID != contract.ID {
		t.Errorf("flight contract = %d, want %d", flights[0].ContractID, contract.ID)
	}
	if flights[0].ArrivalDay != 10+chosen.TotalDays {
		t.Errorf("flight arrival day = %d, want %d", flights[0].ArrivalDay, 10+chosen.TotalDays)
	}

	// the accepted slate is consumed
	if _, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, 1); !errors.Is(err, ErrAircraftNotIdle) && !errors.Is(err, ErrNoOffers) {
		t.Errorf("second AcceptOffer() error = %v, want a refusal", err)
	}
}

func TestSession_AcceptOffer_StaleAfterDayAdvance(t *testing.T) {
	w, save, craft := offerWorld(t)

	if _, err := w.session.GenerateOffers(context.Background(), save.ID, craft.ID); err != nil {
		t.Fatalf("GenerateOffers() error = %v", err)
	}
	if _, err := w.session.AdvanceDay(context.Background(), save.ID); err != nil {
		t.Fatalf("AdvanceDay() error = %v", err)
	}

	_, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, 1)
	if !errors.Is(err, ErrOffersExpired) {
		t.Errorf("AcceptOffer() error = %v, want %v", err, ErrOffersExpired)
	}
}

func TestSession_AcceptOffer_InvalidChoice(t *testing.T) {
	w, save, craft := offerWorld(t)

	generated, err := w.session.GenerateOffers(context.Background(), save.ID, craft.ID)
	if err != nil {
		t.Fatalf("GenerateOffers() error = %v", err)
	}

	if _, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, 0); !errors.Is(err, ErrInvalidOfferChoice) {
		t.Errorf("AcceptOffer(0) error = %v, want %v", err, ErrInvalidOfferChoice)
	}
	if _, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, len(generated)+1); !errors.Is(err, ErrInvalidOfferChoice) {
		t.Errorf("AcceptOffer(out of range) error = %v, want %v", err, ErrInvalidOfferChoice)
	}
}

func TestSession_AcceptOffer_WithoutGenerating(t *testing.T) {
	w, save, craft := offerWorld(t)

	_, err := w.session.AcceptOffer(context.Background(), save.ID, craft.ID, 1)
	if !errors.Is(err, ErrNoOffers) {
		t.Errorf("AcceptOffer() error = %v, want %v", err, ErrNoOffers)
	}
}
