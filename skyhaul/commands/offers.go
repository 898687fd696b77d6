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
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Offers = discord.SlashCommandCreate{
	Name:        "offers",
	Description: "📦 Generate cargo offers for an idle aircraft",
	Options: []discord.ApplicationCommandOption{
		companyOption,
		discord.ApplicationCommandOptionInt{
			Name:        "aircraft",
			Description: "Aircraft ID from /fleet",
			Required:    true,
		},
	},
}

func OffersHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "offers"),
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
		aircraftID := int64(data.Int("aircraft"))

		generated, err := b.Session.GenerateOffers(ctx, save.ID, aircraftID)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}
		if len(generated) == 0 {
			return warnMessage(e, "No Offers Today",
				"No shippers need this aircraft today. Advance the day and try again.")
		}

		var sb strings.Builder
		for i, offer := range generated {
			sb.WriteString(fmt.Sprintf(
				"**%d.** %s (`%s`)\n"+
					"%d kg over %s · %d trip(s) · %d day(s)\n"+
					"Reward **%s** · late penalty %s · deadline %s\n\n",
				i+1, offer.DestinationName, offer.DestinationIdent,
				offer.PayloadKg, utils.FormatKm(offer.DistanceKm), offer.Trips, offer.TotalDays,
				utils.FormatMoney(offer.Reward), utils.FormatMoney(offer.Penalty),
				formatDay(offer.DeadlineDay),
			))
		}
		sb.WriteString(fmt.Sprintf("Accept with `/accept aircraft:%d offer:<number>` before the day advances.", aircraftID))

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("📦 Cargo Offers — Aircraft #%d", aircraftID),
				Description: sb.String(),
				Color:       utils.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("%s • eco ×%.2f applied", formatDay(save.CurrentDay), generated[0].EcoMultiplier),
				},
				Timestamp: &now,
			}},
		})
	}
}
