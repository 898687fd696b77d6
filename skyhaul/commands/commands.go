package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	NewGame,
	Saves,
	Status,
	Fleet,
	Shop,
	Buy,
	Upgrade,
	Offers,
	Accept,
	Advance,
	FastForward,
}
