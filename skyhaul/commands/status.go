package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Status = discord.SlashCommandCreate{
	Name:        "status",
	Description: "📊 Company overview: day, cash, bases and fleet",
	Options: []discord.ApplicationCommandOption{
		companyOption,
	},
}

func StatusHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "status"),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		save, err := resolveSave(ctx, b, e, data.String("company"))
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		bases, err := b.Bases.ListBySave(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Failed to fetch your bases. Please try again later.")
		}
		fleet, err := b.Aircraft.ListActiveBySave(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Failed to fetch your fleet. Please try again later.")
		}
		enroute, err := b.Flights.CountEnroute(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Failed to fetch flight data. Please try again later.")
		}

		var baseLines strings.Builder
		for _, base := range bases {
			tier, err := b.Bases.CurrentTier(ctx, base.ID)
			if err != nil {
				tier = models.BaseTierSmall
			}
			baseLines.WriteString(fmt.Sprintf("`#%d` **%s** — %s tier\n",
				base.ID, base.AirportIdent, tier))
		}
		if baseLines.Len() == 0 {
			baseLines.WriteString("none\n")
		}

		description := fmt.Sprintf(
			"%s Status: **%s**\n\n"+
				"📅 %s of 666\n"+
				"💵 Cash: **%s**\n"+
				"✈️ Fleet: **%d** aircraft (%d enroute)\n",
			statusEmoji(save.Status), save.Status,
			formatDay(save.CurrentDay),
			utils.FormatMoney(save.Cash),
			len(fleet), enroute,
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("📊 %s", save.CompanyName),
				Description: description,
				Fields: []discord.EmbedField{
					{Name: "Bases", Value: baseLines.String()},
				},
				Color: utils.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
