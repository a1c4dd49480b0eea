package mem

import (
	"sort"
	"sync"

	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/normalize"
)

// Cache is the in-memory player registry used to resolve names for reports.
type Cache struct {
	mu     sync.RWMutex
	valid  bool
	byID   map[string]domain.Player
	byName map[string]domain.Player
}

func New() *Cache {
	return &Cache{
		byID:   make(map[string]domain.Player),
		byName: make(map[string]domain.Player),
	}
}

func (c *Cache) Update(players []domain.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID = make(map[string]domain.Player, len(players))
	c.byName = make(map[string]domain.Player, len(players))
	for i := range players {
		c.byID[players[i].ID] = players[i]
		c.byName[normalize.Name(players[i].Name)] = players[i]
	}
	c.valid = true
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) GetPlayerByName(name string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	player, ok := c.byName[normalize.Name(name)]
	return player, ok
}

func (c *Cache) GetPlayer(id string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	player, ok := c.byID[id]
	return player, ok
}

// Name returns the registered name of a player, or the id itself for unknown players.
func (c *Cache) Name(id string) string {
	if player, ok := c.GetPlayer(id); ok {
		return player.Name
	}
	return id
}

func (c *Cache) Players() []domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	players := make([]domain.Player, 0, len(c.byID))
	for _, player := range c.byID {
		players = append(players, player)
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players
}
