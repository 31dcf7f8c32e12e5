package bot

import (
	"testing"

	"rolemenu/dal"
	"rolemenu/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoleSelection(t *testing.T) {
	assert.Error(t, validateRoleSelection(nil), "empty selection")
	assert.Error(t, validateRoleSelection([]string{"r1", "r1"}), "duplicate role")

	tooMany := make([]string, maxMenuRoles+1)
	for i := range tooMany {
		tooMany[i] = string(rune('a' + i))
	}
	assert.Error(t, validateRoleSelection(tooMany), "over the platform limit")

	assert.NoError(t, validateRoleSelection([]string{"r1", "r2"}))
}

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: createModalID,
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "name", Value: "Colors"},
				},
			},
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "desc", Value: "pick a color"},
				},
			},
		},
	}

	name, description := modalValues(data)
	assert.Equal(t, "Colors", name)
	assert.Equal(t, "pick a color", description)
}

// TestWizardLifecycle walks a menu through every state of the creation
// workflow against the store, the way the handlers do.
func TestWizardLifecycle(t *testing.T) {
	store := dal.NewMemoryStore()

	menuID, err := store.Create("guild-1", "Colors", "desc")
	require.NoError(t, err)

	// Created: roles and selection types are empty.
	menu, err := store.Get(menuID)
	require.NoError(t, err)
	assert.Empty(t, menu.Roles)
	assert.Empty(t, menu.SelectionTypes)

	// RolesAssigned.
	selection := []string{"R1", "R2"}
	require.NoError(t, validateRoleSelection(selection))
	require.NoError(t, store.SetRoles(menuID, selection))

	// TypeAssigned via the "both" button.
	types, err := models.ParseSelectionTypes("both")
	require.NoError(t, err)
	require.NoError(t, store.SetSelectionTypes(menuID, types))

	// Published.
	require.NoError(t, store.SetMessageLocation(menuID, "chan-1", "msg-1"))

	menu, err = store.Get(menuID)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, []string(menu.Roles))
	assert.ElementsMatch(t,
		[]string{models.SelectionDropdown, models.SelectionButton},
		[]string(menu.SelectionTypes),
	)
	assert.NotEmpty(t, menu.ChannelID)
	assert.NotEmpty(t, menu.MessageID)
	assert.True(t, menu.Published())
}
