package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/skyhauldev/skyhaul/skyhaul"
	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/database/repositories"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/sim"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/upgrade"
	"github.com/skyhauldev/skyhaul/skyhaul/utils"
)

var companyOption = discord.ApplicationCommandOptionString{
	Name:        "company",
	Description: "Name of your company",
	Required:    true,
}

// resolveSave maps the invoking user plus the company option to a save.
func resolveSave(ctx context.Context, b *skyhaul.Bot, e *handler.CommandEvent, company string) (*models.GameSave, error) {
	return b.Saves.GetByOwnerAndCompany(ctx, e.User().ID.String(), company)
}

func errorMessage(e *handler.CommandEvent, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "Error",
			Description: description,
			Color:       utils.ErrorColor,
		}},
	})
}

func warnMessage(e *handler.CommandEvent, title, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       utils.WarningColor,
		}},
	})
}

// friendlyError translates known simulation errors into player-facing
// text. Unknown errors get a generic message so internals never leak
// into Discord.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, repositories.ErrSaveNotFound):
		return "No company with that name. Check `/saves` for your companies."
	case errors.Is(err, repositories.ErrCompanyExists):
		return "You already run a company with that name."
	case errors.Is(err, repositories.ErrAircraftNotFound):
		return "No aircraft with that ID."
	case errors.Is(err, repositories.ErrModelNotFound):
		return "No aircraft model with that code. Check `/shop`."
	case errors.Is(err, sim.ErrGameOver):
		return "This company has reached its final day. Start a new one with `/newgame`."
	case errors.Is(err, sim.ErrInsufficientFunds):
		return "Not enough cash."
	case errors.Is(err, sim.ErrAircraftNotIdle):
		return "That aircraft is currently flying a contract."
	case errors.Is(err, sim.ErrAircraftRetired):
		return "That aircraft has been sold."
	case errors.Is(err, sim.ErrAircraftNotInFleet):
		return "That aircraft is not in this company's fleet."
	case errors.Is(err, sim.ErrBaseNotOwned):
		return "That base does not belong to this company."
	case errors.Is(err, sim.ErrOffersExpired):
		return "Those offers expired when the day advanced. Run `/offers` again."
	case errors.Is(err, sim.ErrNoOffers):
		return "No offers on the table for that aircraft. Run `/offers` first."
	case errors.Is(err, sim.ErrInvalidOfferChoice):
		return "That offer number does not exist."
	case errors.Is(err, sim.ErrModelNotPurchasable):
		return "That model is not for sale."
	case errors.Is(err, sim.ErrBaseTierTooLow):
		return "None of your bases is large enough for that aircraft. Upgrade a base first."
	case errors.Is(err, sim.ErrUnknownBaseOption):
		return "That is not a valid starting base."
	case errors.Is(err, upgrade.ErrTerminalTier):
		return "That base is already at the top tier."
	default:
		return "Something went wrong. Please try again later."
	}
}

func statusEmoji(status string) string {
	switch status {
	case models.SaveStatusActive:
		return "🟢"
	case models.SaveStatusBankrupt:
		return "💀"
	case models.SaveStatusVictory:
		return "🏆"
	default:
		return "❔"
	}
}

func formatDay(day int) string {
	return fmt.Sprintf("Day %d", day)
}
