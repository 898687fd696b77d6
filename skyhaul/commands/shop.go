package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "🛒 Browse aircraft your bases can support",
	Options: []discord.ApplicationCommandOption{
		companyOption,
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Search by manufacturer, model name or code",
			Required:    false,
		},
	},
}

func ShopHandler(b *skyhaul.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		defer func() {
			slog.Info("Command completed",
				slog.String("type", "cmd"),
				slog.String("name", "shop"),
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

		bestTier, err := b.Bases.BestTier(ctx, save.ID)
		if err != nil {
			return errorMessage(e, "Failed to check your base tiers. Please try again later.")
		}
		maxRank := models.BaseTierRank(bestTier)

		var catalog []*models.AircraftModel
		query, hasQuery := data.OptString("query")
		if hasQuery && strings.TrimSpace(query) != "" {
			catalog, err = b.Catalog.Search(ctx, query)
			if err != nil {
				return errorMessage(e, "Search failed. Please try again later.")
			}
			// the fuzzy search runs over the whole catalog; re-apply
			// the tier gate and drop the non-purchasable starter
			filtered := catalog[:0]
			for _, model := range catalog {
				if model.Category == models.CategoryStarter {
					continue
				}
				if models.CategoryRank(model.Category) > maxRank {
					continue
				}
				filtered = append(filtered, model)
			}
			catalog = filtered
		} else {
			catalog, err = b.Catalog.ListPurchasable(ctx, maxRank)
			if err != nil {
				return errorMessage(e, "Failed to load the shop. Please try again later.")
			}
		}

		if len(catalog) == 0 {
			return warnMessage(e, "Nothing For Sale",
				"No models match. Upgrade a base with `/upgrade base` to unlock bigger aircraft.")
		}

		totalPages := int(math.Ceil(float64(len(catalog)) / float64(utils.ShopPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				first := page * utils.ShopPerPage
				last := min(first+utils.ShopPerPage, len(catalog))

				var description strings.Builder
				if hasQuery && query != "" {
					description.WriteString(fmt.Sprintf("🔍`%s`\n\n", query))
				}
				for _, model := range catalog[first:last] {
					description.WriteString(fmt.Sprintf(
						"**%s** %s `%s` — %s\n%s · %d kg · %d km range · %d kts\n\n",
						model.Manufacturer, model.ModelName, model.ModelCode,
						utils.FormatMoney(model.PurchasePrice),
						model.Category, model.BaseCargoKg, model.RangeKm, model.CruiseSpeedKts,
					))
				}

				embed.
					SetTitle("🛒 Aircraft Shop").
					SetDescription(description.String()).
					SetColor(utils.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Best base tier: %s", page+1, totalPages, bestTier), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
