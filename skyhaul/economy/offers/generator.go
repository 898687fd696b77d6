package offers

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
)

// Offer is a candidate cargo contract. Offers live only for the day they
// were generated on and are never persisted unless accepted.
type Offer struct {
	DestinationIdent string
	DestinationName  string
	PayloadKg        int
	DistanceKm       float64
	Trips            int
	BaseDays         int
	TotalDays        int
	Reward           decimal.Decimal
	Penalty          decimal.Decimal
	DeadlineDay      int
	EcoMultiplier    float64
}

// AirportSource is the slice of the airport repository the generator
// reads from. It never writes.
type AirportSource interface {
	GetByIdent(ctx context.Context, ident string) (*models.Airport, error)
	SampleByTypes(ctx context.Context, types []string, exclude string, limit int) ([]*models.Airport, error)
}

type Generator struct {
	airports AirportSource
	cfg      Config
	rng      *rand.Rand
}

// NewGenerator builds a generator with an injected random source so
// tests can run deterministically.
func NewGenerator(airports AirportSource, cfg Config, rng *rand.Rand) *Generator {
	if cfg.OfferCount <= 0 {
		cfg = NewDefaultConfig()
	}
	return &Generator{airports: airports, cfg: cfg, rng: rng}
}

// Generate produces up to cfg.OfferCount offers for an idle aircraft.
// Candidates are oversampled 2x because airport rows may lack
// coordinates; fewer offers than requested is a valid outcome.
func (g *Generator) Generate(ctx context.Context, aircraft *models.Aircraft, model *models.AircraftModel, ecoMultiplier float64, currentDay int) ([]Offer, error) {
	origin, err := g.airports.GetByIdent(ctx, aircraft.CurrentAirportIdent)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve origin airport: %w", err)
	}
	if !origin.HasCoordinates() {
		return nil, nil
	}

	candidates, err := g.airports.SampleByTypes(ctx, g.cfg.AirportTypes, origin.Ident, 2*g.cfg.OfferCount)
	if err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, g.cfg.OfferCount)
	for _, candidate := range candidates {
		if len(offers) == g.cfg.OfferCount {
			break
		}
		if !candidate.HasCoordinates() {
			continue
		}

		distance := Haversine(*origin.Latitude, *origin.Longitude, *candidate.Latitude, *candidate.Longitude)
		if distance <= 0 {
			continue
		}

		payload := g.drawPayload(distance, model.BaseCargoKg)
		trips := (payload + model.BaseCargoKg - 1) / model.BaseCargoKg
		baseDays := flightDays(distance, model.CruiseSpeedKts)
		totalDays := baseDays * trips

		reward := g.reward(payload, distance, ecoMultiplier)
		penalty := reward.Mul(g.cfg.PenaltyRatio).Round(2)
		if penalty.IsNegative() {
			penalty = decimal.Zero
		}

		offers = append(offers, Offer{
			DestinationIdent: candidate.Ident,
			DestinationName:  candidate.Name,
			PayloadKg:        payload,
			DistanceKm:       distance,
			Trips:            trips,
			BaseDays:         baseDays,
			TotalDays:        totalDays,
			Reward:           reward,
			Penalty:          penalty,
			DeadlineDay:      currentDay + totalDays + deadlineBuffer(trips),
			EcoMultiplier:    ecoMultiplier,
		})
	}

	return offers, nil
}

// drawPayload picks a cargo quantity from a range that widens with
// distance. Payloads above capacity are intentional: they force
// multi-trip shuttle runs.
func (g *Generator) drawPayload(distanceKm float64, capacityKg int) int {
	var lo, hi int
	switch {
	case distanceKm < 500:
		lo, hi = capacityKg/2, capacityKg*3
	case distanceKm < 1500:
		lo, hi = capacityKg, capacityKg*4
	default:
		lo, hi = capacityKg*2, capacityKg*6
	}
	if lo < 1 {
		lo = 1
	}
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) reward(payloadKg int, distanceKm float64, ecoMultiplier float64) decimal.Decimal {
	gross := decimal.NewFromInt(int64(payloadKg)).Mul(g.cfg.RewardPerKg).
		Add(decimal.NewFromFloat(distanceKm).Mul(g.cfg.RewardPerKm)).
		Mul(decimal.NewFromFloat(ecoMultiplier))
	if gross.LessThan(g.cfg.MinReward) {
		gross = g.cfg.MinReward
	}
	return gross.Round(2)
}

// flightDays converts cruise speed to km covered per simulated day and
// rounds the leg duration up to whole days, never below one.
func flightDays(distanceKm float64, cruiseSpeedKts int) int {
	speedKmPerDay := float64(cruiseSpeedKts) * 1.852 * 24
	if speedKmPerDay < 1 {
		speedKmPerDay = 1
	}
	days := int(math.Ceil(distanceKm / speedKmPerDay))
	if days < 1 {
		days = 1
	}
	return days
}

func deadlineBuffer(trips int) int {
	buffer := trips / 2
	if buffer < 1 {
		buffer = 1
	}
	return buffer
}
