package discordutils

import (
	"github.com/bwmarrin/discordgo"
)

// RoleMutator is the capability to change one member's role membership.
// Handlers supply it to the synchronizer so role mutation can be faked
// in tests.
type RoleMutator interface {
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
}

// SessionRoleMutator mutates roles through a live discord session.
type SessionRoleMutator struct {
	Session *discordgo.Session
}

// AddRole grants the given role to the given member.
func (mutator SessionRoleMutator) AddRole(guildID, userID, roleID string) error {
	return mutator.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// RemoveRole takes the given role from the given member.
func (mutator SessionRoleMutator) RemoveRole(guildID, userID, roleID string) error {
	return mutator.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// Responder is the capability to answer an interaction event. Every
// handler answers each event exactly once through one of its methods;
// like RoleMutator, it exists so responses can be faked in tests.
type Responder interface {
	// RespondEphemeral replies with a private text message only the
	// invoking user can see.
	RespondEphemeral(interaction *discordgo.Interaction, content string) error

	// RespondView replies with a new private view.
	RespondView(interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error

	// UpdateView replaces the message the interaction's component
	// lives on.
	UpdateView(interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error

	// PromptModal answers with a form for the user to fill in.
	PromptModal(
		interaction *discordgo.Interaction,
		customID string,
		title string,
		components []discordgo.MessageComponent,
	) error
}

// SessionResponder answers interactions through a live discord session.
type SessionResponder struct {
	Session *discordgo.Session
}

// RespondEphemeral replies to the interaction with a private message
// only the invoking user can see.
func (responder SessionResponder) RespondEphemeral(
	interaction *discordgo.Interaction,
	content string,
) error {
	return responder.Session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondView replies to the interaction with a new private view.
func (responder SessionResponder) RespondView(
	interaction *discordgo.Interaction,
	data *discordgo.InteractionResponseData,
) error {
	data.Flags |= discordgo.MessageFlagsEphemeral
	return responder.Session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// UpdateView replaces the message the interaction's component lives on.
func (responder SessionResponder) UpdateView(
	interaction *discordgo.Interaction,
	data *discordgo.InteractionResponseData,
) error {
	return responder.Session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// PromptModal answers the interaction with a form for the user to fill in.
func (responder SessionResponder) PromptModal(
	interaction *discordgo.Interaction,
	customID string,
	title string,
	components []discordgo.MessageComponent,
) error {
	return responder.Session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// MemberHasRole returns true if the given role list includes the given
// role.
func MemberHasRole(memberRoles []string, roleID string) bool {
	for _, held := range memberRoles {
		if held == roleID {
			return true
		}
	}
	return false
}

// EligibleRoles filters a guild's roles down to the ones a menu may
// offer: managed roles and the guild's everyone role are excluded.
func EligibleRoles(guild *discordgo.Guild) []*discordgo.Role {
	var eligible []*discordgo.Role
	for _, role := range guild.Roles {
		if role.Managed || role.ID == guild.ID {
			continue
		}
		eligible = append(eligible, role)
	}
	return eligible
}

// RoleName resolves a role ID to its display name, falling back to the
// raw ID when the role is gone from the guild.
func RoleName(guild *discordgo.Guild, roleID string) string {
	if guild != nil {
		for _, role := range guild.Roles {
			if role.ID == roleID {
				return role.Name
			}
		}
	}
	return roleID
}
