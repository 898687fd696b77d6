package offers

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

func coord(v float64) *float64 { return &v }

type fakeAirports struct {
	byIdent    map[string]*models.Airport
	candidates []*models.Airport
}

func (f *fakeAirports) GetByIdent(_ context.Context, ident string) (*models.Airport, error) {
	return f.byIdent[ident], nil
}

func (f *fakeAirports) SampleByTypes(_ context.Context, _ []string, exclude string, limit int) ([]*models.Airport, error) {
	out := make([]*models.Airport, 0, limit)
	for _, a := range f.candidates {
		if a.Ident == exclude {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func testAirports() *fakeAirports {
	helsinki := &models.Airport{Ident: "EFHK", Name: "Helsinki", Type: "large_airport", Latitude: coord(60.3183), Longitude: coord(24.9497)}
	paris := &models.Airport{Ident: "LFPG", Name: "Paris", Type: "large_airport", Latitude: coord(49.0097), Longitude: coord(2.5479)}
	tampere := &models.Airport{Ident: "EFTP", Name: "Tampere", Type: "medium_airport", Latitude: coord(61.4141), Longitude: coord(23.6044)}
	noCoords := &models.Airport{Ident: "BGTL", Name: "Thule", Type: "small_airport"}
	newYork := &models.Airport{Ident: "KJFK", Name: "New York", Type: "large_airport", Latitude: coord(40.6398), Longitude: coord(-73.7789)}

	return &fakeAirports{
		byIdent: map[string]*models.Airport{
			"EFHK": helsinki, "LFPG": paris, "EFTP": tampere, "BGTL": noCoords, "KJFK": newYork,
		},
		candidates: []*models.Airport{paris, tampere, noCoords, newYork},
	}
}

func testAircraft(at string) *models.Aircraft {
	return &models.Aircraft{ID: 1, SaveID: 1, ModelCode: "TEST", CurrentAirportIdent: at, Status: models.AircraftStatusIdle}
}

func testModel() *models.AircraftModel {
	return &models.AircraftModel{ModelCode: "TEST", BaseCargoKg: 1000, CruiseSpeedKts: 200, Category: models.CategorySmall}
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(testAirports(), NewDefaultConfig(), rand.New(rand.NewSource(1)))

	generated, err := g.Generate(context.Background(), testAircraft("EFHK"), testModel(), 1.0, 10)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(generated) == 0 {
		t.Fatal("Generate() returned no offers")
	}

	for _, offer := range generated {
		if offer.DestinationIdent == "EFHK" {
			t.Error("Generate() offered a flight to the current airport")
		}
		if offer.DestinationIdent == "BGTL" {
			t.Error("Generate() offered a destination without coordinates")
		}
		if offer.DistanceKm <= 0 {
			t.Errorf("Generate() distance = %v, want > 0", offer.DistanceKm)
		}
		if offer.PayloadKg < 1 {
			t.Errorf("Generate() payload = %d, want >= 1", offer.PayloadKg)
		}

		wantTrips := (offer.PayloadKg + 999) / 1000
		if offer.Trips != wantTrips {
			t.Errorf("Generate() trips = %d, want %d for %d kg", offer.Trips, wantTrips, offer.PayloadKg)
		}
		if offer.TotalDays != offer.BaseDays*offer.Trips {
			t.Errorf("Generate() total days = %d, want base %d x trips %d", offer.TotalDays, offer.BaseDays, offer.Trips)
		}

		buffer := offer.Trips / 2
		if buffer < 1 {
			buffer = 1
		}
		if offer.DeadlineDay != 10+offer.TotalDays+buffer {
			t.Errorf("Generate() deadline = %d, want %d", offer.DeadlineDay, 10+offer.TotalDays+buffer)
		}

		if offer.Reward.LessThan(decimal.NewFromInt(1500)) {
			t.Errorf("Generate() reward = %s, below the 1500 floor", offer.Reward)
		}
		wantPenalty := offer.Reward.Mul(decimal.NewFromFloat(0.25)).Round(2)
		if !offer.Penalty.Equal(wantPenalty) {
			t.Errorf("Generate() penalty = %s, want %s", offer.Penalty, wantPenalty)
		}
	}
}

func TestGenerator_Generate_OriginWithoutCoordinates(t *testing.T) {
	g := NewGenerator(testAirports(), NewDefaultConfig(), rand.New(rand.NewSource(1)))

	generated, err := g.Generate(context.Background(), testAircraft("BGTL"), testModel(), 1.0, 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if generated != nil {
		t.Errorf("Generate() = %v offers, want none for an origin without coordinates", len(generated))
	}
}

func TestGenerator_DrawPayload(t *testing.T) {
	g := NewGenerator(testAirports(), NewDefaultConfig(), rand.New(rand.NewSource(7)))

	tests := []struct {
		name     string
		distance float64
		capacity int
		lo, hi   int
	}{
		{"short haul", 300, 1000, 500, 3000},
		{"medium haul", 1000, 1000, 1000, 4000},
		{"long haul", 4000, 1000, 2000, 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				payload := g.drawPayload(tt.distance, tt.capacity)
				if payload < tt.lo || payload > tt.hi {
					t.Fatalf("drawPayload(%v, %d) = %d, outside [%d, %d]", tt.distance, tt.capacity, payload, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestFlightDays(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		speedKts int
		want     int
	}{
		{"one day covers a short leg", 1000, 200, 1},
		{"close to the daily range", 8800, 200, 1},
		{"past the daily range", 9000, 200, 2},
		{"zero distance still takes a day", 0, 200, 1},
		{"slow airframe", 9000, 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flightDays(tt.distance, tt.speedKts); got != tt.want {
				t.Errorf("flightDays(%v, %d) = %d, want %d", tt.distance, tt.speedKts, got, tt.want)
			}
		})
	}
}

func TestHaversine(t *testing.T) {
	// Helsinki to Paris is roughly 1900 km
	got := Haversine(60.3183, 24.9497, 49.0097, 2.5479)
	if got < 1850 || got > 1950 {
		t.Errorf("Haversine(EFHK, LFPG) = %v, want roughly 1900", got)
	}

	if got := Haversine(60.0, 24.0, 60.0, 24.0); got != 0 {
		t.Errorf("Haversine(same point) = %v, want 0", got)
	}

	// symmetry
	ab := Haversine(60.3183, 24.9497, 40.6398, -73.7789)
	ba := Haversine(40.6398, -73.7789, 60.3183, 24.9497)
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("Haversine not symmetric: %v vs %v", ab, ba)
	}
}
