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

var Saves = discord.SlashCommandCreate{
	Name:        "saves",
	Description: "📂 List all your companies",
}

func SavesHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "saves"),
				slog.Duration("total_time", time.Since(start)),
			)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		saves, err := b.Saves.ListByOwner(ctx, e.User().ID.String())
		if err != nil {
			return errorMessage(e, "Failed to fetch your companies. Please try again later.")
		}
		if len(saves) == 0 {
			return warnMessage(e, "No Companies",
				"You don't run any companies yet. Found one with `/newgame`.")
		}

		var sb strings.Builder
		for _, save := range saves {
			sb.WriteString(fmt.Sprintf("%s **%s** — %s, %s\n",
				statusEmoji(save.Status),
				save.CompanyName,
				formatDay(save.CurrentDay),
				utils.FormatMoney(save.Cash),
			))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📂 Your Companies",
				Description: sb.String(),
				Color:       utils.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("%d compan(ies)", len(saves)),
				},
				Timestamp: &now,
			}},
		})
	}
}
