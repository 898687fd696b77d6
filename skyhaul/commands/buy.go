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

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "💸 Buy an aircraft from the shop",
	Options: []discord.ApplicationCommandOption{
		companyOption,
		discord.ApplicationCommandOptionString{
			Name:        "model",
			Description: "Model code from /shop (e.g. B737F)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "nickname",
			Description: "Optional nickname for the new aircraft",
			Required:    false,
		},
	},
}

func BuyHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "buy"),
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

		modelCode := strings.ToUpper(strings.TrimSpace(data.String("model")))
		nickname, _ := data.OptString("nickname")

		aircraft, err := b.Session.PurchaseAircraft(ctx, save.ID, modelCode, nickname)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "💸 Aircraft Purchased",
				Description: fmt.Sprintf(
					"**%s** `#%d` joins the fleet!\n\n"+
						"Model: **%s**\n"+
						"Paid: **%s**\n"+
						"Parked at: **%s**",
					aircraft.Registration, aircraft.ID,
					aircraft.ModelCode,
					utils.FormatMoney(aircraft.PurchasePrice),
					aircraft.CurrentAirportIdent,
				),
				Color:     utils.SuccessColor,
				Timestamp: &now,
			}},
		})
	}
}
