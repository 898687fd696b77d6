package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Upgrade = discord.SlashCommandCreate{
	Name:        "upgrade",
	Description: "🔧 Upgrade an aircraft's eco tuning or a base's tier",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "aircraft",
			Description: "Buy the next eco tuning level for an aircraft",
			Options: []discord.ApplicationCommandOption{
				companyOption,
				discord.ApplicationCommandOptionInt{
					Name:        "aircraft",
					Description: "Aircraft ID from /fleet",
					Required:    true,
				},
				discord.ApplicationCommandOptionBool{
					Name:        "preview",
					Description: "Show the price without buying",
					Required:    false,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "base",
			Description: "Move a base to its next tier",
			Options: []discord.ApplicationCommandOption{
				companyOption,
				discord.ApplicationCommandOptionInt{
					Name:        "base",
					Description: "Base ID from /status",
					Required:    true,
				},
				discord.ApplicationCommandOptionBool{
					Name:        "preview",
					Description: "Show the price without buying",
					Required:    false,
				},
			},
		},
	},
}

func UpgradeHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		data := e.SlashCommandInteractionData()
		sub := "unknown"
		if data.SubCommandName != nil {
			sub = *data.SubCommandName
		}
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "upgrade "+sub),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		save, err := resolveSave(ctx, b, e, data.String("company"))
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		switch sub {
		case "aircraft":
			return upgradeAircraft(ctx, b, e, save.ID)
		case "base":
			return upgradeBase(ctx, b, e, save.ID)
		default:
			return errorMessage(e, "Unknown subcommand.")
		}
	}
}

func upgradeAircraft(ctx context.Context, b *skyhaul.Bot, e *handler.CommandEvent, saveID int64) error {
	data := e.SlashCommandInteractionData()
	aircraftID := int64(data.Int("aircraft"))
	preview, _ := data.OptBool("preview")

	if preview {
		level, cost, err := b.Session.NextUpgradeCost(ctx, saveID, aircraftID)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}
		current, err := b.Session.PreviewEcoMultiplier(ctx, saveID, aircraftID)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🔧 Eco Tuning Quote",
				Description: fmt.Sprintf(
					"Level **%d** would cost **%s**.\nCurrent eco multiplier: **×%.2f**",
					level, utils.FormatMoney(cost), current,
				),
				Color: utils.InfoColor,
			}},
		})
	}

	record, err := b.Session.PurchaseAircraftUpgrade(ctx, saveID, aircraftID)
	if err != nil {
		return errorMessage(e, friendlyError(err))
	}

	multiplier, err := b.Session.PreviewEcoMultiplier(ctx, saveID, aircraftID)
	if err != nil {
		return errorMessage(e, friendlyError(err))
	}

	now := time.Now()
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title: "🔧 Eco Tuning Installed",
			Description: fmt.Sprintf(
				"Aircraft `#%d` is now tuning level **%d**.\n\n"+
					"Paid: **%s**\nNew eco multiplier: **×%.2f**",
				aircraftID, record.Level, utils.FormatMoney(record.Cost), multiplier,
			),
			Color:     utils.SuccessColor,
			Timestamp: &now,
		}},
	})
}

func upgradeBase(ctx context.Context, b *skyhaul.Bot, e *handler.CommandEvent, saveID int64) error {
	data := e.SlashCommandInteractionData()
	baseID := int64(data.Int("base"))
	preview, _ := data.OptBool("preview")

	if preview {
		next, cost, err := b.Session.NextBaseTierCost(ctx, saveID, baseID)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🏗️ Base Expansion Quote",
				Description: fmt.Sprintf(
					"Expanding base `#%d` to **%s** would cost **%s**.",
					baseID, next, utils.FormatMoney(cost),
				),
				Color: utils.InfoColor,
			}},
		})
	}

	record, err := b.Session.PurchaseBaseUpgrade(ctx, saveID, baseID)
	if err != nil {
		return errorMessage(e, friendlyError(err))
	}

	now := time.Now()
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title: "🏗️ Base Expanded",
			Description: fmt.Sprintf(
				"Base `#%d` is now **%s** tier.\n\nPaid: **%s**\nBigger aircraft are unlocked in `/shop`.",
				baseID, record.Tier, utils.FormatMoney(record.Cost),
			),
			Color:     utils.SuccessColor,
			Timestamp: &now,
		}},
	})
}
