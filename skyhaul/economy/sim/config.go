package sim

import "github.com/shopspring/decimal"

// BaseOption is one of the headquarters choices offered at company
// creation, priced as a share of the starting cash.
type BaseOption struct {
	AirportIdent string
	CostPct      decimal.Decimal
}

// GameConfig carries all simulation tuning. It is loaded once at startup
// and passed into the session explicitly; nothing reads it through a
// global.
type GameConfig struct {
	StartingCash               decimal.Decimal
	SurvivalTargetDay          int
	BillingPeriodDays          int
	HQMonthlyFee               decimal.Decimal
	MaintenancePerAircraft     decimal.Decimal
	StarterMaintenanceDiscount decimal.Decimal
	FastForwardCap             int
	StarterModelCode           string
	BaseOptions                []BaseOption
}

func NewDefaultGameConfig() GameConfig {
	return GameConfig{
		StartingCash:               decimal.NewFromInt(300000),
		SurvivalTargetDay:          666,
		BillingPeriodDays:          30,
		HQMonthlyFee:               decimal.NewFromInt(25000),
		MaintenancePerAircraft:     decimal.NewFromInt(5000),
		StarterMaintenanceDiscount: decimal.NewFromFloat(0.5),
		FastForwardCap:             60,
		StarterModelCode:           "DC3FREE",
		BaseOptions: []BaseOption{
			{AirportIdent: "EFHK", CostPct: decimal.NewFromFloat(0.30)},
			{AirportIdent: "LFPG", CostPct: decimal.NewFromFloat(0.50)},
			{AirportIdent: "KJFK", CostPct: decimal.NewFromFloat(0.70)},
		},
	}
}
