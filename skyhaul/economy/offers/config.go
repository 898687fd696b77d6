package offers

import "github.com/shopspring/decimal"

type Config struct {
	OfferCount   int
	RewardPerKg  decimal.Decimal
	RewardPerKm  decimal.Decimal
	MinReward    decimal.Decimal
	PenaltyRatio decimal.Decimal
	AirportTypes []string
}

func NewDefaultConfig() Config {
	return Config{
		OfferCount:   5,
		RewardPerKg:  decimal.NewFromFloat(0.85),
		RewardPerKm:  decimal.NewFromFloat(1.10),
		MinReward:    decimal.NewFromInt(1500),
		PenaltyRatio: decimal.NewFromFloat(0.25),
		AirportTypes: []string{"small_airport", "medium_airport", "large_airport"},
	}
}
