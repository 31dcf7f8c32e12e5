package bot

import (
	"fmt"

	"github.com/gookit/event"
)

// Lifecycle events fired on the bot's event bus.
const (
	EventMenuCreated   = "menu.created"
	EventMenuPublished = "menu.published"
	EventRolesSynced   = "roles.synced"
)

func (bot *Bot) registerListeners() {
	bot.events.On(EventMenuCreated, event.ListenerFunc(func(e event.Event) error {
		bot.log.Info().
			Str("guild", stringField(e, "guild")).
			Str("menu", stringField(e, "menu")).
			Str("name", stringField(e, "name")).
			Msg("Menu created")
		return nil
	}))

	bot.events.On(EventMenuPublished, event.ListenerFunc(func(e event.Event) error {
		bot.log.Info().
			Str("guild", stringField(e, "guild")).
			Str("menu", stringField(e, "menu")).
			Str("channel", stringField(e, "channel")).
			Str("message", stringField(e, "message")).
			Msg("Menu published")
		return nil
	}))

	bot.events.On(EventRolesSynced, event.ListenerFunc(func(e event.Event) error {
		bot.log.Info().
			Str("guild", stringField(e, "guild")).
			Str("menu", stringField(e, "menu")).
			Str("member", stringField(e, "member")).
			Str("added", stringField(e, "added")).
			Str("removed", stringField(e, "removed")).
			Msg("Roles synced")
		return nil
	}))
}

func stringField(e event.Event, key string) string {
	return fmt.Sprintf("%v", e.Get(key))
}
