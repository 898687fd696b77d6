package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Advance = discord.SlashCommandCreate{
	Name:        "advance",
	Description: "⏭️ Advance the calendar by one day",
	Options: []discord.ApplicationCommandOption{
		companyOption,
	},
}

func AdvanceHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "advance"),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		save, err := resolveSave(ctx, b, e, data.String("company"))
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		// a one-day fast-forward, so the victory check runs too
		result, err := b.Session.FastForward(ctx, save.ID, 1)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		after, err := b.Saves.GetByID(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Day advanced but the refresh failed. Check `/status`.")
		}

		description := fmt.Sprintf("The calendar moves to **%s**.\n\n", formatDay(result.FinalDay))
		if result.Arrivals > 0 {
			description += fmt.Sprintf("🛬 **%d** flight(s) arrived, earning **%s**.\n",
				result.Arrivals, utils.FormatMoney(result.Earned))
		} else {
			description += "No arrivals today.\n"
		}
		description += fmt.Sprintf("💵 Cash: **%s**", utils.FormatMoney(after.Cash))

		title := "⏭️ Day Advanced"
		color := utils.SuccessColor
		switch result.FinalStatus {
		case models.SaveStatusBankrupt:
			title = "💀 Bankrupt"
			color = utils.ErrorColor
			description += "\n\nThe monthly bill came due and the company could not pay."
		case models.SaveStatusVictory:
			title = "🏆 Victory"
			color = utils.WarningColor
			description += "\n\nThe company survived to the target day. Well flown."
		}

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
