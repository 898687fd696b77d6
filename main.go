package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/commands"
	"github.com/skyhauldev/skyhaul/skyhaul/database"
	"github.com/skyhauldev/skyhaul/skyhaul/database/repositories"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/eco"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/gametx"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/offers"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/sim"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/upgrade"
	"github.com/skyhauldev/skyhaul/skyhaul/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	shouldSeed := flag.Bool("seed", false, "Force a reference data reimport")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := skyhaul.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	customHandler := logger.NewHandler(cfg.Log.Level)
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting SkyHaul",
		slog.String("version", version),
		slog.String("commit", commit))

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	b := skyhaul.New(*cfg, version, commit)
	b.DB = db

	b.Saves = repositories.NewSaveRepository(db.BunDB())
	b.Aircraft = repositories.NewAircraftRepository(db.BunDB())
	b.Catalog = repositories.NewCatalogRepository(db.BunDB())
	b.Upgrades = repositories.NewUpgradeRepository(db.BunDB())
	b.Contracts = repositories.NewContractRepository(db.BunDB())
	b.Flights = repositories.NewFlightRepository(db.BunDB())
	b.Bases = repositories.NewBaseRepository(db.BunDB())
	b.Airports = repositories.NewAirportRepository(db.BunDB())

	// Seed airports and the aircraft catalog on first boot, or when
	// forced with -seed
	airportCount, err := b.Airports.Count(ctx)
	if err != nil {
		slog.Error("Failed to check airport data", slog.Any("error", err))
		os.Exit(-1)
	}
	if airportCount == 0 || *shouldSeed {
		if err := db.SeedReferenceData(ctx, cfg.Data.AirportsCSV, cfg.Data.CatalogTOML); err != nil {
			slog.Error("Failed to seed reference data", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	b.Session = sim.NewSession(sim.Deps{
		Tx:        gametx.NewGameTransactionManager(db.BunDB()),
		Saves:     b.Saves,
		Aircraft:  b.Aircraft,
		Catalog:   b.Catalog,
		Upgrades:  b.Upgrades,
		Contracts: b.Contracts,
		Flights:   b.Flights,
		Bases:     b.Bases,
		Resolver:  eco.NewResolver(nil),
		Pricing:   upgrade.NewCalculator(nil),
		Offers:    offers.NewGenerator(b.Airports, offers.NewDefaultConfig(), rng),
	}, cfg.Game.ToSim())

	h := handler.New()
	h.Command("/newgame", commands.NewGameHandler(b))
	h.Command("/saves", commands.SavesHandler(b))
	h.Command("/status", commands.StatusHandler(b))
	h.Command("/fleet", commands.FleetHandler(b))
	h.Command("/shop", commands.ShopHandler(b))
	h.Command("/buy", commands.BuyHandler(b))
	h.Command("/upgrade", commands.UpgradeHandler(b))
	h.Command("/offers", commands.OffersHandler(b))
	h.Command("/accept", commands.AcceptHandler(b))
	h.Command("/advance", commands.AdvanceHandler(b))
	h.Command("/fastforward", commands.FastForwardHandler(b))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
		os.Exit(-1)
	}

	slog.Info("SkyHaul is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down...")
}
