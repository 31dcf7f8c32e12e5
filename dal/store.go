package dal

import (
	"errors"

	"rolemenu/models"
)

// ErrMenuNotFound is returned when a menu ID does not resolve to a
// stored menu.
var ErrMenuNotFound = errors.New("menu not found")

// MenuStore is the authoritative repository of menu state. Menus are
// created in draft state and move forward through the wizard one partial
// update at a time; there is no delete.
type MenuStore interface {
	// Create stores a new draft menu and returns its ID. Returned IDs
	// are never reused.
	Create(guildID, name, description string) (string, error)

	// Get returns the menu with the given ID, or ErrMenuNotFound.
	Get(menuID string) (*models.Menu, error)

	// ListByGuild returns a guild's menus in creation order. A guild
	// with no menus yields an empty slice, not an error.
	ListByGuild(guildID string) ([]models.Menu, error)

	// SetRoles records the wizard's role selection.
	SetRoles(menuID string, roleIDs []string) error

	// SetSelectionTypes records the wizard's presentation choice.
	SetSelectionTypes(menuID string, types models.StringList) error

	// SetMessageLocation records where the menu was published. Channel
	// and message are always written together.
	SetMessageLocation(menuID, channelID, messageID string) error
}
