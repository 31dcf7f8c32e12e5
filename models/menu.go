package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Selection types a published menu can use.
const (
	SelectionDropdown = "dropdown"
	SelectionButton   = "button"
)

// StringList stores an ordered list of snowflake IDs as a JSON column.
type StringList []string

// Value serialises the list for storage.
func (list StringList) Value() (driver.Value, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan deserialises the list from storage.
func (list *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*list = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), list)
	case []byte:
		return json.Unmarshal(v, list)
	}
	return fmt.Errorf("cannot scan %T into StringList", value)
}

// Contains returns true if the list holds the given ID.
func (list StringList) Contains(id string) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

// Menu represents a reaction role menu and its progress through the
// creation workflow: roles and selection types are empty until the
// matching wizard step completes, and the message location is empty
// until the menu is published.
type Menu struct {
	gorm.Model
	MenuID         string `gorm:"uniqueIndex"`
	GuildID        string `gorm:"index"`
	Name           string
	Description    string
	Roles          StringList
	SelectionTypes StringList
	ChannelID      string
	MessageID      string
}

// Published returns true once the menu's message location is recorded.
func (menu *Menu) Published() bool {
	return menu.ChannelID != "" && menu.MessageID != ""
}

// UsesDropdown returns true if the menu publishes a dropdown control.
func (menu *Menu) UsesDropdown() bool {
	return menu.SelectionTypes.Contains(SelectionDropdown)
}

// UsesButtons returns true if the menu publishes role buttons.
func (menu *Menu) UsesButtons() bool {
	return menu.SelectionTypes.Contains(SelectionButton)
}

// ParseSelectionTypes maps a token from the wizard's type buttons to the
// selection types it stands for: "both" means dropdown and button, any
// other known token means just itself.
func ParseSelectionTypes(token string) (StringList, error) {
	switch token {
	case "both":
		return StringList{SelectionDropdown, SelectionButton}, nil
	case SelectionDropdown, SelectionButton:
		return StringList{token}, nil
	}
	return nil, fmt.Errorf("unknown selection type %q", token)
}
