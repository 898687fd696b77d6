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

var Accept = discord.SlashCommandCreate{
	Name:        "accept",
	Description: "✅ Accept one of the offers on the table",
	Options: []discord.ApplicationCommandOption{
		companyOption,
		discord.ApplicationCommandOptionInt{
			Name:        "aircraft",
			Description: "Aircraft ID the offers were generated for",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "offer",
			Description: "Offer number from /offers",
			Required:    true,
		},
	},
}

func AcceptHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "accept"),
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
		choice := data.Int("offer")

		contract, err := b.Session.AcceptOffer(ctx, save.ID, aircraftID, choice)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "✅ Contract Signed",
				Description: fmt.Sprintf(
					"Aircraft `#%d` departs **%s → %s**.\n\n"+
						"Payload: **%d kg**\n"+
						"Reward on delivery: **%s**\n"+
						"Deadline: **%s** (penalty %s if late)\n\n"+
						"Advance the day with `/advance` or `/fastforward`.",
					aircraftID, contract.OriginIdent, contract.DestinationIdent,
					contract.PayloadKg,
					utils.FormatMoney(contract.Reward),
					formatDay(contract.DeadlineDay), utils.FormatMoney(contract.Penalty),
				),
				Color:     utils.SuccessColor,
				Timestamp: &now,
			}},
		})
	}
}
