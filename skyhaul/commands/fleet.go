package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Fleet = discord.SlashCommandCreate{
	Name:        "fleet",
	Description: "✈️ List your aircraft with their eco multipliers",
	Options: []discord.ApplicationCommandOption{
		companyOption,
	},
}

func FleetHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "fleet"),
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

		fleet, err := b.Aircraft.ListActiveBySave(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Failed to fetch your fleet. Please try again later.")
		}
		if len(fleet) == 0 {
			return warnMessage(e, "Empty Hangar",
				"This company has no aircraft. Buy one with `/buy`.")
		}

		lines := make([]string, 0, len(fleet))
		for _, craft := range fleet {
			multiplier, err := b.Session.PreviewEcoMultiplier(ctx, save.ID, craft.ID)
			eco := "?"
			if err == nil {
				eco = fmt.Sprintf("%.2f", multiplier)
			}

			name := craft.Registration
			if craft.Nickname != "" {
				name = fmt.Sprintf("%s \"%s\"", craft.Registration, craft.Nickname)
			}
			status := "🅿️ idle"
			if craft.Status == models.AircraftStatusBusy {
				status = "🛫 enroute"
			}

			lines = append(lines, fmt.Sprintf(
				"`#%d` **%s** (%s)\n%s at %s · eco ×%s · condition %d%%",
				craft.ID, name, craft.ModelCode,
				status, craft.CurrentAirportIdent, eco, craft.ConditionPercent,
			))
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				first := page * utils.FleetPerPage
				last := first + utils.FleetPerPage
				if last > len(lines) {
					last = len(lines)
				}

				description := ""
				for _, line := range lines[first:last] {
					description += line + "\n\n"
				}

				embed.
					SetTitle(fmt.Sprintf("✈️ %s — Fleet", save.CompanyName)).
					SetDescription(description).
					SetColor(utils.InfoColor).
					SetFooterText(fmt.Sprintf("%d aircraft", len(lines)))
			},
			Pages:      (len(lines) + utils.FleetPerPage - 1) / utils.FleetPerPage,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
