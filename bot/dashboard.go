package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// MainDashboard shows the top level dashboard. The slash command gets a
// fresh private reply; the back button updates the view in place.
func (bot *Bot) MainDashboard(i *discordgo.InteractionCreate, update bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Dashboard",
				Description: "Pick a feature to configure.",
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Reaction Roles",
						Style:    discordgo.PrimaryButton,
						CustomID: "dash:reaction-roles",
					},
				},
			},
		},
	}

	var err error
	if update {
		err = bot.responder.UpdateView(i.Interaction, data)
	} else {
		err = bot.responder.RespondView(i.Interaction, data)
	}
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to show dashboard")
	}
}

// ReactionRolesDashboard lists the guild's menus and offers the create
// wizard.
func (bot *Bot) ReactionRolesDashboard(i *discordgo.InteractionCreate) {
	menus, err := bot.store.ListByGuild(i.GuildID)
	if err != nil {
		bot.log.Error().Err(err).Str("guild", i.GuildID).Msg("Failed to list menus")
		bot.responder.RespondEphemeral(
			i.Interaction,
			"I couldn't load this server's menus.",
		)
		return
	}

	var lines []string
	for _, menu := range menus {
		state := "draft"
		if menu.Published() {
			state = "published"
		}
		lines = append(lines, fmt.Sprintf(
			"**%v** — %v roles, %v (created %v)",
			menu.Name,
			len(menu.Roles),
			state,
			humanize.Time(menu.CreatedAt),
		))
	}

	description := "No reaction role menus yet. Create one to get started."
	if len(lines) > 0 {
		description = strings.Join(lines, "\n")
	}

	err = bot.responder.UpdateView(i.Interaction, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Reaction Roles",
				Description: description,
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Create",
						Style:    discordgo.SuccessButton,
						CustomID: "rr:create",
					},
					discordgo.Button{
						Label:    "Back",
						Style:    discordgo.SecondaryButton,
						CustomID: "dash:back",
					},
				},
			},
		},
	})
	if err != nil {
		bot.log.Error().Err(err).Msg("Failed to show reaction roles dashboard")
	}
}
