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

var NewGame = discord.SlashCommandCreate{
	Name:        "newgame",
	Description: "🛫 Found a new cargo company",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "company",
			Description: "Name for your new company",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "base",
			Description: "Where to put your headquarters",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Helsinki-Vantaa (EFHK) — cheap", Value: "EFHK"},
				{Name: "Paris Charles de Gaulle (LFPG) — balanced", Value: "LFPG"},
				{Name: "New York JFK (KJFK) — premium", Value: "KJFK"},
			},
		},
	},
}

func NewGameHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "newgame"),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		company := strings.TrimSpace(data.String("company"))
		baseIdent := data.String("base")

		if company == "" {
			return errorMessage(e, "Company name cannot be empty.")
		}

		save, err := b.Session.NewGame(ctx, e.User().ID.String(), company, baseIdent)
		if err != nil {
			return errorMessage(e, friendlyError(err))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🛫 Company Founded",
				Description: fmt.Sprintf(
					"**%s** is open for business!\n\n"+
						"Headquarters: **%s**\n"+
						"Cash on hand: **%s**\n"+
						"Starter aircraft parked and ready.\n\n"+
						"Survive to day 666 to win. Use `/offers` to find cargo.",
					save.CompanyName, baseIdent, utils.FormatMoney(save.Cash),
				),
				Color: utils.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Founded by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
