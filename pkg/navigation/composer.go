// Package navigation merges the fixed sidebar tree with the entries of user-defined features.
package navigation

import (
	"sync"

	"cmms-dashboard-be/internal/entity"

	"github.com/google/uuid"
)

const (
	AdminGroupName         = "Admin"
	CustomModulesGroupName = "Custom Modules"
	CustomModulesHref      = "/custom"
)

type featureEntry struct {
	featureId uuid.UUID
	item      entity.NavigationItem
}

// Composer holds the base tree and one navigation entry per registered feature.
// It is safe for concurrent use.
type Composer struct {
	mu      sync.RWMutex
	base    []entity.NavigationItem
	entries []featureEntry
}

// NewComposer copies base, so later changes to the caller's slice are not observed.
func NewComposer(base []entity.NavigationItem) *Composer {
	return &Composer{base: entity.CloneNavigation(base)}
}

func entryFor(feature *entity.CustomFeatureDefinition) entity.NavigationItem {
	return entity.NavigationItem{
		Name:     feature.Name,
		Href:     feature.Href(),
		IconName: entity.ParseIcon(string(feature.Icon)),
		IsCustom: true,
	}
}

func (c *Composer) indexOf(id uuid.UUID) int {
	for i, e := range c.entries {
		if e.featureId == id {
			return i
		}
	}
	return -1
}

// RegisterFeatureNavEntry appends the entry of a newly created feature.
// Registering the same feature twice refreshes the existing entry instead.
func (c *Composer) RegisterFeatureNavEntry(feature *entity.CustomFeatureDefinition) {
	c.upsert(feature)
}

// UpdateFeatureNavEntry refreshes name, href and icon of a feature's entry in place.
func (c *Composer) UpdateFeatureNavEntry(feature *entity.CustomFeatureDefinition) {
	c.upsert(feature)
}

func (c *Composer) upsert(feature *entity.CustomFeatureDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := entryFor(feature)
	if i := c.indexOf(feature.Id); i >= 0 {
		c.entries[i].item = item
		return
	}
	c.entries = append(c.entries, featureEntry{featureId: feature.Id, item: item})
}

// UnregisterFeature drops the entry of a deleted feature. Unknown ids are ignored.
func (c *Composer) UnregisterFeature(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
}

// Entries returns the custom entries in registration order.
func (c *Composer) Entries() []entity.NavigationItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]entity.NavigationItem, len(c.entries))
	for i, e := range c.entries {
		items[i] = e.item.Clone()
	}
	return items
}

// Compose returns a fresh copy of the base tree with a "Custom Modules" group attached
// under "Admin", or at top level when there is no Admin node with children.
func (c *Composer) Compose() []entity.NavigationItem {
	tree := func() []entity.NavigationItem {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return entity.CloneNavigation(c.base)
	}()

	entries := c.Entries()
	if len(entries) == 0 {
		return tree
	}

	group := entity.NavigationItem{
		Name:     CustomModulesGroupName,
		Href:     CustomModulesHref,
		IconName: entity.IconPackage,
		SubItems: entries,
	}

	if i := indexByName(tree, AdminGroupName); i >= 0 && len(tree[i].SubItems) > 0 {
		tree[i].SubItems = replaceOrAppend(tree[i].SubItems, group)
		return tree
	}
	return replaceOrAppend(tree, group)
}

func indexByName(items []entity.NavigationItem, name string) int {
	for i, item := range items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

func replaceOrAppend(items []entity.NavigationItem, item entity.NavigationItem) []entity.NavigationItem {
	if i := indexByName(items, item.Name); i >= 0 {
		items[i] = item
		return items
	}
	return append(items, item)
}
