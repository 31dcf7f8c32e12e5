package bot

import (
	"errors"
	"fmt"

	"rolemenu/dal"

	"github.com/bwmarrin/discordgo"
	"github.com/gookit/event"
)

// Publish materialises a finished menu into the invoking channel and
// records the resulting message location. Publishing an already
// published menu sends a fresh message and overwrites the stored
// location; the old message is left behind.
func (bot *Bot) Publish(i *discordgo.InteractionCreate, menuID string) {
	bot.menuLocks.Lock(menuID)
	defer bot.menuLocks.Unlock(menuID)

	menu, err := bot.store.Get(menuID)
	if errors.Is(err, dal.ErrMenuNotFound) {
		bot.menuNotFound(i, menuID)
		return
	}
	if err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to load menu")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't load that menu. Try again in a moment.",
		)
		return
	}

	if len(menu.Roles) == 0 || len(menu.SelectionTypes) == 0 {
		bot.responder.RespondEphemeral(
			i.Interaction,
			"That menu isn't finished yet. Complete the wizard first.",
		)
		return
	}

	guild, err := bot.session.State.Guild(menu.GuildID)
	if err != nil {
		guild = nil // role labels fall back to raw IDs
	}

	message, err := bot.session.ChannelMessageSendComplex(
		i.ChannelID,
		PublishMessage(menu, guild),
	)
	if err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to send menu message")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't post the menu in this channel.",
		)
		return
	}

	if err := bot.store.SetMessageLocation(menuID, message.ChannelID, message.ID); err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to record message location")
		bot.responder.UpdateView(i.Interaction, &discordgo.InteractionResponseData{
			Content:    "The menu was posted, but I couldn't record where.",
			Components: []discordgo.MessageComponent{},
		})
		return
	}

	bot.events.MustFire(EventMenuPublished, event.M{
		"guild":   menu.GuildID,
		"menu":    menuID,
		"channel": message.ChannelID,
		"message": message.ID,
	})

	err = bot.responder.UpdateView(i.Interaction, &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("Published **%v**.", menu.Name),
		Components: []discordgo.MessageComponent{},
	})
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to confirm publish")
	}
}
