package bot

import (
	"fmt"
	"testing"

	"rolemenu/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRoles(count int) []RoleOption {
	roles := make([]RoleOption, count)
	for i := range roles {
		roles[i] = RoleOption{
			ID:   fmt.Sprintf("role-%v", i),
			Name: fmt.Sprintf("Role %v", i),
		}
	}
	return roles
}

func TestButtonRowsBounds(t *testing.T) {
	for count := 1; count <= maxMenuRoles; count++ {
		rows := ButtonRows(makeRoles(count))

		wantRows := (count + maxButtonsPerRow - 1) / maxButtonsPerRow
		require.Len(t, rows, wantRows, "role count %v", count)

		total := 0
		for _, row := range rows {
			actionsRow, ok := row.(discordgo.ActionsRow)
			require.True(t, ok)
			assert.LessOrEqual(t, len(actionsRow.Components), maxButtonsPerRow)
			total += len(actionsRow.Components)
		}
		assert.Equal(t, count, total, "every role gets a button")
	}
}

func TestButtonRowsRoundTripThroughRouter(t *testing.T) {
	rows := ButtonRows(makeRoles(7))

	for _, row := range rows {
		for _, component := range row.(discordgo.ActionsRow).Components {
			button := component.(discordgo.Button)
			key := ParseRoutingKey(button.CustomID)
			assert.Equal(t, "rr", key.Context)
			assert.Equal(t, "assign", key.Action)
			assert.NotEmpty(t, key.Extra)
		}
	}
}

func TestTypeButtonsRoundTripThroughRouter(t *testing.T) {
	row := TypeButtons("menu-123")
	require.Len(t, row.Components, 3)

	var tokens []string
	for _, component := range row.Components {
		button := component.(discordgo.Button)
		key := ParseRoutingKey(button.CustomID)
		assert.Equal(t, "rr", key.Context)
		assert.Equal(t, "type", key.Action)
		assert.Equal(t, "menu-123", key.MenuID)
		tokens = append(tokens, key.Extra)
	}
	assert.Equal(t, []string{"dropdown", "button", "both"}, tokens)
}

func TestMenuDropdown(t *testing.T) {
	row := MenuDropdown("menu-123", makeRoles(3))
	require.Len(t, row.Components, 1)

	dropdown := row.Components[0].(discordgo.SelectMenu)
	assert.Equal(t, menuUsePrefix+"menu-123", dropdown.CustomID)
	assert.Len(t, dropdown.Options, 3)
	assert.Equal(t, 3, dropdown.MaxValues)
	require.NotNil(t, dropdown.MinValues)
	assert.Equal(t, 0, *dropdown.MinValues, "clearing every role is allowed")
}

func TestWizardRoleSelectRequiresOne(t *testing.T) {
	row := WizardRoleSelect("menu-123", makeRoles(5))

	picker := row.Components[0].(discordgo.SelectMenu)
	assert.Equal(t, roleSelectPrefix+"menu-123", picker.CustomID)
	require.NotNil(t, picker.MinValues)
	assert.Equal(t, 1, *picker.MinValues)
}

func TestPublishMessage(t *testing.T) {
	menu := &models.Menu{
		MenuID:         "menu-123",
		Name:           "Colors",
		Description:    "pick a color",
		Roles:          models.StringList{"r1", "r2", "r3", "r4", "r5", "r6"},
		SelectionTypes: models.StringList{models.SelectionDropdown, models.SelectionButton},
	}

	payload := PublishMessage(menu, nil)

	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, "Colors", payload.Embeds[0].Title)
	assert.Equal(t, "pick a color", payload.Embeds[0].Description)

	// One dropdown row plus ceil(6/5) button rows.
	require.Len(t, payload.Components, 3)
	_, isDropdown := payload.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.True(t, isDropdown)
}

func TestPublishMessageDropdownOnly(t *testing.T) {
	menu := &models.Menu{
		MenuID:         "menu-123",
		Name:           "Colors",
		Roles:          models.StringList{"r1", "r2"},
		SelectionTypes: models.StringList{models.SelectionDropdown},
	}

	payload := PublishMessage(menu, nil)
	require.Len(t, payload.Components, 1)
}

func TestRoleOptionsFallBackToIDs(t *testing.T) {
	guild := &discordgo.Guild{
		ID: "guild-1",
		Roles: []*discordgo.Role{
			{ID: "r1", Name: "Red"},
		},
	}

	options := roleOptions([]string{"r1", "r2"}, guild)
	assert.Equal(t, "Red", options[0].Name)
	assert.Equal(t, "r2", options[1].Name, "deleted roles keep their raw ID")
}
