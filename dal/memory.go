package dal

import (
	"sync"
	"time"

	"rolemenu/models"

	"github.com/google/uuid"
)

// MemoryStore keeps all menu state in process memory. It behaves like
// GormStore without the durability and backs tests and ephemeral
// deployments.
type MemoryStore struct {
	mu         sync.RWMutex
	menus      map[string]*models.Menu
	guildIndex map[string][]string
}

// NewMemoryStore returns an empty in-memory MenuStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menus:      make(map[string]*models.Menu),
		guildIndex: make(map[string][]string),
	}
}

// Create stores a new draft menu and returns its ID.
func (store *MemoryStore) Create(guildID, name, description string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	menu := &models.Menu{
		MenuID:         uuid.NewString(),
		GuildID:        guildID,
		Name:           name,
		Description:    description,
		Roles:          models.StringList{},
		SelectionTypes: models.StringList{},
	}
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = menu.CreatedAt

	store.menus[menu.MenuID] = menu
	store.guildIndex[guildID] = append(store.guildIndex[guildID], menu.MenuID)

	return menu.MenuID, nil
}

// Get returns a copy of the menu with the given ID, or ErrMenuNotFound.
func (store *MemoryStore) Get(menuID string) (*models.Menu, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	menu, ok := store.menus[menuID]
	if !ok {
		return nil, ErrMenuNotFound
	}

	return cloneMenu(menu), nil
}

// ListByGuild returns copies of a guild's menus in creation order.
func (store *MemoryStore) ListByGuild(guildID string) ([]models.Menu, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	menus := []models.Menu{}
	for _, menuID := range store.guildIndex[guildID] {
		menus = append(menus, *cloneMenu(store.menus[menuID]))
	}
	return menus, nil
}

// SetRoles records the wizard's role selection.
func (store *MemoryStore) SetRoles(menuID string, roleIDs []string) error {
	return store.update(menuID, func(menu *models.Menu) {
		menu.Roles = append(models.StringList{}, roleIDs...)
	})
}

// SetSelectionTypes records the wizard's presentation choice.
func (store *MemoryStore) SetSelectionTypes(menuID string, types models.StringList) error {
	return store.update(menuID, func(menu *models.Menu) {
		menu.SelectionTypes = append(models.StringList{}, types...)
	})
}

// SetMessageLocation records where the menu was published.
func (store *MemoryStore) SetMessageLocation(menuID, channelID, messageID string) error {
	return store.update(menuID, func(menu *models.Menu) {
		menu.ChannelID = channelID
		menu.MessageID = messageID
	})
}

func (store *MemoryStore) update(menuID string, apply func(*models.Menu)) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	menu, ok := store.menus[menuID]
	if !ok {
		return ErrMenuNotFound
	}

	apply(menu)
	menu.UpdatedAt = time.Now()
	return nil
}

func cloneMenu(menu *models.Menu) *models.Menu {
	clone := *menu
	clone.Roles = append(models.StringList{}, menu.Roles...)
	clone.SelectionTypes = append(models.StringList{}, menu.SelectionTypes...)
	return &clone
}
