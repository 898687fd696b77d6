package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/sim"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var FastForward = discord.SlashCommandCreate{
	Name:        "fastforward",
	Description: "⏩ Skip ahead several days in one go",
	Options: []discord.ApplicationCommandOption{
		companyOption,
		discord.ApplicationCommandOptionInt{
			Name:        "days",
			Description: "How many days to skip",
			Required:    false,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "until_return",
			Description: "Stop on the first day a flight arrives",
			Required:    false,
		},
	},
}

func FastForwardHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "fastforward"),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		save, err := resolveSave(ctx, b, e, data.String("company"))
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		days, hasDays := data.OptInt("days")
		untilReturn, _ := data.OptBool("until_return")

		var result *sim.FastForwardResult
		if untilReturn {
			result, err = b.Session.FastForwardUntilFirstReturn(ctx, save.ID, days)
		} else {
			if !hasDays || days <= 0 {
				return errorMessage(e, "Give a number of days, or set `until_return`.")
			}
			result, err = b.Session.FastForward(ctx, save.ID, days)
		}
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		after, err := b.Saves.GetByID(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Fast-forward ran but the refresh failed. Check `/status`.")
		}

		title := "⏩ Fast Forward"
		color := utils.SuccessColor
		var note string
		switch result.StopReason {
		case sim.StopArrival:
			note = "Stopped on the first arrival."
		case sim.StopBankrupt:
			title = "💀 Bankrupt"
			color = utils.ErrorColor
			note = "The monthly bill came due and the company could not pay."
		case sim.StopVictory:
			title = "🏆 Victory"
			color = utils.WarningColor
			note = "The company survived to the target day. Well flown."
		case sim.StopNothingEnroute:
			title = "⏩ Nothing Enroute"
			color = utils.WarningColor
			note = "No flights are in the air, so there was nothing to wait for."
		case sim.StopMaxDays:
			note = "Hit the day cap without an arrival."
		}

		description := fmt.Sprintf(
			"Skipped **%d** day(s) to **%s**.\n\n"+
				"🛬 Arrivals: **%d**, earning **%s**\n"+
				"💵 Cash: **%s**\n\n%s",
			result.DaysProcessed, formatDay(result.FinalDay),
			result.Arrivals, utils.FormatMoney(result.Earned),
			utils.FormatMoney(after.Cash),
			note,
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       title,
				Description: description,
				Color:       color,
				Timestamp:   &now,
			}},
		})
	}
}
