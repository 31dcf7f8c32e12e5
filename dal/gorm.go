package dal

import (
	"errors"

	"rolemenu/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB creates and returns a database connection.
func InitDB(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(
		sqlite.Open(dbPath),
		&gorm.Config{},
	)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Menu{}); err != nil {
		return nil, err
	}

	return db, nil
}

// GormStore is the durable MenuStore backed by a gorm database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps the given database connection in a MenuStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create stores a new draft menu and returns its ID.
func (store *GormStore) Create(guildID, name, description string) (string, error) {
	menu := models.Menu{
		MenuID:         uuid.NewString(),
		GuildID:        guildID,
		Name:           name,
		Description:    description,
		Roles:          models.StringList{},
		SelectionTypes: models.StringList{},
	}

	if err := store.db.Create(&menu).Error; err != nil {
		return "", err
	}

	return menu.MenuID, nil
}

// Get returns the menu with the given ID, or ErrMenuNotFound.
func (store *GormStore) Get(menuID string) (*models.Menu, error) {
	var menu models.Menu
	err := store.db.Where(&models.Menu{MenuID: menuID}).Take(&menu).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, err
	}

	return &menu, nil
}

// ListByGuild returns a guild's menus in creation order.
func (store *GormStore) ListByGuild(guildID string) ([]models.Menu, error) {
	menus := []models.Menu{}
	err := store.db.
		Where(&models.Menu{GuildID: guildID}).
		Order("id").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// SetRoles records the wizard's role selection.
func (store *GormStore) SetRoles(menuID string, roleIDs []string) error {
	return store.update(menuID, map[string]interface{}{
		"roles": models.StringList(roleIDs),
	})
}

// SetSelectionTypes records the wizard's presentation choice.
func (store *GormStore) SetSelectionTypes(menuID string, types models.StringList) error {
	return store.update(menuID, map[string]interface{}{
		"selection_types": types,
	})
}

// SetMessageLocation records where the menu was published.
func (store *GormStore) SetMessageLocation(menuID, channelID, messageID string) error {
	return store.update(menuID, map[string]interface{}{
		"channel_id": channelID,
		"message_id": messageID,
	})
}

func (store *GormStore) update(menuID string, values map[string]interface{}) error {
	result := store.db.
		Model(&models.Menu{}).
		Where("menu_id = ?", menuID).
		Updates(values)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}
	return nil
}
