package bot

import (
	"errors"
	"fmt"
	"strings"

	"rolemenu/dal"
	"rolemenu/discordutils"
	"rolemenu/models"

	"github.com/bwmarrin/discordgo"
	"github.com/gookit/event"
)

// OpenCreateModal prompts for the new menu's name and description.
func (bot *Bot) OpenCreateModal(i *discordgo.InteractionCreate) {
	err := bot.responder.PromptModal(
		i.Interaction,
		createModalID,
		"New reaction role menu",
		[]discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "name",
						Label:     "Name",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "desc",
						Label:     "Description",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 1000,
					},
				},
			},
		},
	)
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to open create modal")
	}
}

// CreateSubmitted stores the new draft menu and presents the role
// picker, populated with the guild's eligible roles.
func (bot *Bot) CreateSubmitted(i *discordgo.InteractionCreate) {
	name, description := modalValues(i.ModalSubmitData())

	menuID, err := bot.store.Create(i.GuildID, name, description)
	if err != nil {
		bot.log.Error().Err(err).Str("guild", i.GuildID).Msg("Failed to create menu")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't create that menu. Try again in a moment.",
		)
		return
	}

	bot.events.MustFire(EventMenuCreated, event.M{
		"guild": i.GuildID,
		"menu":  menuID,
		"name":  name,
	})

	guild, err := bot.session.State.Guild(i.GuildID)
	if err != nil {
		bot.log.Error().Err(err).Str("guild", i.GuildID).Msg("Guild missing from state")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I can't see this server's roles right now.",
		)
		return
	}

	eligible := discordutils.EligibleRoles(guild)
	if len(eligible) == 0 {
		bot.responder.RespondEphemeral(
			i.Interaction,
			"This server has no assignable roles for me to offer.",
		)
		return
	}
	if len(eligible) > maxMenuRoles {
		eligible = eligible[:maxMenuRoles]
	}

	options := make([]RoleOption, len(eligible))
	for j, role := range eligible {
		options[j] = RoleOption{ID: role.ID, Name: role.Name}
	}

	err = bot.responder.RespondView(i.Interaction, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Pick the roles for **%v**.", name),
		Components: []discordgo.MessageComponent{
			WizardRoleSelect(menuID, options),
		},
	})
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to show role picker")
	}
}

// RolesSelected records the wizard's role selection and presents the
// presentation type controls.
func (bot *Bot) RolesSelected(i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	menuID := strings.TrimPrefix(data.CustomID, roleSelectPrefix)

	if err := validateRoleSelection(data.Values); err != nil {
		bot.responder.RespondEphemeral(i.Interaction, err.Error())
		return
	}

	bot.menuLocks.Lock(menuID)
	defer bot.menuLocks.Unlock(menuID)

	err := bot.store.SetRoles(menuID, data.Values)
	if errors.Is(err, dal.ErrMenuNotFound) {
		bot.menuNotFound(i, menuID)
		return
	}
	if err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to save roles")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't save those roles. Try again in a moment.",
		)
		return
	}

	err = bot.responder.UpdateView(i.Interaction, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(
			"Got %v roles. How should members pick them?",
			len(data.Values),
		),
		Components: []discordgo.MessageComponent{
			TypeButtons(menuID),
		},
	})
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to show type controls")
	}
}

// TypeChosen records the wizard's presentation choice and presents the
// publish controls.
func (bot *Bot) TypeChosen(i *discordgo.InteractionCreate, token, menuID string) {
	types, err := models.ParseSelectionTypes(token)
	if err != nil {
		bot.responder.RespondEphemeral(
			i.Interaction,
			"Pick dropdown, buttons, or both.",
		)
		return
	}

	bot.menuLocks.Lock(menuID)
	defer bot.menuLocks.Unlock(menuID)

	err = bot.store.SetSelectionTypes(menuID, types)
	if errors.Is(err, dal.ErrMenuNotFound) {
		bot.menuNotFound(i, menuID)
		return
	}
	if err != nil {
		bot.log.Error().Err(err).Str("menu", menuID).Msg("Failed to save selection type")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't save that choice. Try again in a moment.",
		)
		return
	}

	err = bot.responder.UpdateView(i.Interaction, &discordgo.InteractionResponseData{
		Content: "All set. Publish the menu to this channel?",
		Components: []discordgo.MessageComponent{
			PublishControls(menuID),
		},
	})
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to show publish controls")
	}
}

func validateRoleSelection(roleIDs []string) error {
	if len(roleIDs) == 0 {
		return errors.New("Pick at least one role.")
	}
	if len(roleIDs) > maxMenuRoles {
		return fmt.Errorf("A menu can hold at most %v roles.", maxMenuRoles)
	}

	seen := make(map[string]bool, len(roleIDs))
	for _, roleID := range roleIDs {
		if seen[roleID] {
			return errors.New("Each role can only appear once.")
		}
		seen[roleID] = true
	}
	return nil
}

func modalValues(data discordgo.ModalSubmitInteractionData) (name, description string) {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}
			switch input.CustomID {
			case "name":
				name = input.Value
			case "desc":
				description = input.Value
			}
		}
	}
	return
}
