package bot

import (
	"rolemenu/discordutils"
	"rolemenu/models"

	"github.com/bwmarrin/discordgo"
)

// Platform limits on the controls a menu can publish.
const (
	maxMenuRoles     = 25
	maxButtonsPerRow = 5
)

// RoleOption pairs a role ID with its display label.
type RoleOption struct {
	ID   string
	Name string
}

func roleOptions(roleIDs []string, guild *discordgo.Guild) []RoleOption {
	options := make([]RoleOption, len(roleIDs))
	for i, roleID := range roleIDs {
		options[i] = RoleOption{
			ID:   roleID,
			Name: discordutils.RoleName(guild, roleID),
		}
	}
	return options
}

// WizardRoleSelect builds the wizard's role picker for the given menu.
// At least one role must be chosen.
func WizardRoleSelect(menuID string, roles []RoleOption) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, len(roles))
	for i, role := range roles {
		options[i] = discordgo.SelectMenuOption{
			Label: role.Name,
			Value: role.ID,
		}
	}

	minValues := 1
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    roleSelectPrefix + menuID,
				Placeholder: "Pick the roles members can choose",
				MinValues:   &minValues,
				MaxValues:   len(options),
				Options:     options,
			},
		},
	}
}

// TypeButtons builds the wizard's presentation type controls.
func TypeButtons(menuID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Dropdown",
				Style:    discordgo.PrimaryButton,
				CustomID: "rr:type:dropdown:" + menuID,
			},
			discordgo.Button{
				Label:    "Buttons",
				Style:    discordgo.PrimaryButton,
				CustomID: "rr:type:button:" + menuID,
			},
			discordgo.Button{
				Label:    "Both",
				Style:    discordgo.SecondaryButton,
				CustomID: "rr:type:both:" + menuID,
			},
		},
	}
}

// PublishControls builds the wizard's final step: publish or go back.
func PublishControls(menuID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Publish",
				Style:    discordgo.SuccessButton,
				CustomID: "rr:publish:" + menuID,
			},
			discordgo.Button{
				Label:    "Back",
				Style:    discordgo.SecondaryButton,
				CustomID: "dash:back",
			},
		},
	}
}

// MenuDropdown builds the published dropdown members use to sync their
// roles. Clearing every option is allowed: it removes all menu roles.
func MenuDropdown(menuID string, roles []RoleOption) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, len(roles))
	for i, role := range roles {
		options[i] = discordgo.SelectMenuOption{
			Label: role.Name,
			Value: role.ID,
		}
	}

	minValues := 0
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    menuUsePrefix + menuID,
				Placeholder: "Pick your roles",
				MinValues:   &minValues,
				MaxValues:   len(options),
				Options:     options,
			},
		},
	}
}

// ButtonRows lays the menu's roles out as rows of at most five toggle
// buttons.
func ButtonRows(roles []RoleOption) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent

	for start := 0; start < len(roles); start += maxButtonsPerRow {
		end := start + maxButtonsPerRow
		if end > len(roles) {
			end = len(roles)
		}

		buttons := make([]discordgo.MessageComponent, 0, end-start)
		for _, role := range roles[start:end] {
			buttons = append(buttons, discordgo.Button{
				Label:    role.Name,
				Style:    discordgo.SecondaryButton,
				CustomID: assignPrefix + role.ID,
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	return rows
}

// PublishMessage builds the full platform payload for a finished menu.
func PublishMessage(menu *models.Menu, guild *discordgo.Guild) *discordgo.MessageSend {
	roles := roleOptions(menu.Roles, guild)

	var components []discordgo.MessageComponent
	if menu.UsesDropdown() {
		components = append(components, MenuDropdown(menu.MenuID, roles))
	}
	if menu.UsesButtons() {
		components = append(components, ButtonRows(roles)...)
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       menu.Name,
				Description: menu.Description,
			},
		},
		Components: components,
	}
}
