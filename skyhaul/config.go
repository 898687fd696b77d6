package skyhaul

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/skyhauldev/skyhaul/skyhaul/economy/sim"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Bot  BotConfig  `toml:"bot"`
	DB   DBConfig   `toml:"db"`
	Game GameConfig `toml:"game"`
	Data DataConfig `toml:"data"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// GameConfig tunes the simulation. Zero values fall back to the
// defaults in economy/sim.
type GameConfig struct {
	StartingCash               int64   `toml:"starting_cash"`
	SurvivalTargetDay          int     `toml:"survival_target_day"`
	BillingPeriodDays          int     `toml:"billing_period_days"`
	HQMonthlyFee               int64   `toml:"hq_monthly_fee"`
	MaintenancePerAircraft     int64   `toml:"maintenance_per_aircraft"`
	StarterMaintenanceDiscount float64 `toml:"starter_maintenance_discount"`
	FastForwardCap             int     `toml:"fast_forward_cap"`
	StarterModelCode           string  `toml:"starter_model_code"`
}

// DataConfig points at the reference data seeded on first boot.
type DataConfig struct {
	AirportsCSV string `toml:"airports_csv"`
	CatalogTOML string `toml:"catalog_toml"`
}

// ToSim overlays the configured values onto the simulation defaults.
func (c GameConfig) ToSim() sim.GameConfig {
	out := sim.NewDefaultGameConfig()
	if c.StartingCash > 0 {
		out.StartingCash = decimal.NewFromInt(c.StartingCash)
	}
	if c.SurvivalTargetDay > 0 {
		out.SurvivalTargetDay = c.SurvivalTargetDay
	}
	if c.BillingPeriodDays > 0 {
		out.BillingPeriodDays = c.BillingPeriodDays
	}
	if c.HQMonthlyFee > 0 {
		out.HQMonthlyFee = decimal.NewFromInt(c.HQMonthlyFee)
	}
	if c.MaintenancePerAircraft > 0 {
		out.MaintenancePerAircraft = decimal.NewFromInt(c.MaintenancePerAircraft)
	}
	if c.StarterMaintenanceDiscount > 0 {
		out.StarterMaintenanceDiscount = decimal.NewFromFloat(c.StarterMaintenanceDiscount)
	}
	if c.FastForwardCap > 0 {
		out.FastForwardCap = c.FastForwardCap
	}
	if c.StarterModelCode != "" {
		out.StarterModelCode = c.StarterModelCode
	}
	return out
}
