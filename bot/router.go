package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Custom IDs follow context:action[:extra[:menuId]]. Every component
// the bot creates encodes its identifier with this grammar so future
// events round-trip through the router; the creation modal and the two
// select menus are matched separately by key and prefix.
const (
	createModalID    = "rr-create-modal"
	roleSelectPrefix = "rr:select:"
	menuUsePrefix    = "rr:use:"
	assignPrefix     = "rr:assign:"
)

// RoutingKey is a decoded component identifier.
type RoutingKey struct {
	Context string
	Action  string
	Extra   string
	MenuID  string
}

// ParseRoutingKey splits a component's custom ID on colons. Missing
// segments are left empty.
func ParseRoutingKey(customID string) RoutingKey {
	parts := strings.Split(customID, ":")

	key := RoutingKey{Context: parts[0]}
	if len(parts) > 1 {
		key.Action = parts[1]
	}
	if len(parts) > 2 {
		key.Extra = parts[2]
	}
	if len(parts) > 3 {
		key.MenuID = parts[3]
	}
	return key
}

// Dispatch routes one inbound interaction event to exactly one handler.
// Every path answers the event exactly once; an event nothing claims is
// answered with a private notice rather than dropped.
func (bot *Bot) Dispatch(i *discordgo.InteractionCreate) {
	if i.GuildID == "" || i.Member == nil {
		bot.responder.RespondEphemeral(
			i.Interaction,
			"This only works inside a server.",
		)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if name == "dashboard" {
			bot.MainDashboard(i, false)
			return
		}
		bot.unrecognized(i, name)

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if customID == createModalID {
			bot.CreateSubmitted(i)
			return
		}
		bot.unrecognized(i, customID)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, roleSelectPrefix):
			bot.RolesSelected(i)
		case strings.HasPrefix(customID, menuUsePrefix):
			bot.MenuUsed(i)
		default:
			bot.dispatchKey(i, ParseRoutingKey(customID))
		}
	}
}

func (bot *Bot) dispatchKey(i *discordgo.InteractionCreate, key RoutingKey) {
	switch {
	case key.Context == "dash" && key.Action == "reaction-roles":
		bot.ReactionRolesDashboard(i)
	case key.Context == "dash" && key.Action == "back":
		bot.MainDashboard(i, true)
	case key.Context == "rr" && key.Action == "create":
		bot.OpenCreateModal(i)
	case key.Context == "rr" && key.Action == "publish":
		bot.Publish(i, key.Extra)
	case key.Context == "rr" && key.Action == "type":
		bot.TypeChosen(i, key.Extra, key.MenuID)
	case key.Context == "rr" && key.Action == "assign":
		bot.ToggleRequested(i, key.Extra)
	default:
		bot.unrecognized(i, key.Context+":"+key.Action)
	}
}

func (bot *Bot) unrecognized(i *discordgo.InteractionCreate, what string) {
	bot.log.Warn().
		Str("guild", i.GuildID).
		Str("action", what).
		Msg("Unrecognized action")

	bot.responder.RespondEphemeral(
		i.Interaction,
		"I don't recognize that action. It may belong to an older menu.",
	)
}

func (bot *Bot) menuNotFound(i *discordgo.InteractionCreate, menuID string) {
	bot.log.Warn().
		Str("guild", i.GuildID).
		Str("menu", menuID).
		Msg("Menu not found")

	bot.responder.RespondEphemeral(
		i.Interaction,
		"That menu no longer exists.",
	)
}
