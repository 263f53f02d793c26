package reconcile

import (
	"context"

	"game-tracker/feature/library/models"
)

// Store is the persistence surface the reconciler needs.
// Find methods return (nil, nil) when no row matches.
type Store interface {
	FindByPlatformKey(ctx context.Context, userID string, platform models.Platform, externalID string) (*models.LibraryEntry, error)
	FindByCatalogID(ctx context.Context, userID string, catalogID int64) (*models.LibraryEntry, error)
	ListKeys(ctx context.Context, userID string) ([]models.EntryKey, error)
	// Upsert writes entry restricted to fields. Entries with an ID are updated in
	// place; entries without one are inserted, resolving identity conflicts with
	// the same field set (or dropping the insert when the set is empty).
	Upsert(ctx context.Context, entry *models.LibraryEntry, fields models.FieldSet) (models.WriteResult, error)
}

// KeyMaps indexes a user's existing entries for one platform.
// It is built once per synchronization and only read afterwards.
type KeyMaps struct {
	platform      models.Platform
	byPlatformKey map[string]string
	byCatalogID   map[int64]string
}

// NewKeyMaps builds the lookup maps from prefetched keys.
func NewKeyMaps(platform models.Platform, keys []models.EntryKey) *KeyMaps {
	km := &KeyMaps{
		platform:      platform,
		byPlatformKey: make(map[string]string),
		byCatalogID:   make(map[int64]string),
	}
	for _, k := range keys {
		if pk := k.PlatformKey(platform); pk != nil {
			km.byPlatformKey[*pk] = k.ID
		}
		if k.CatalogID != nil {
			km.byCatalogID[*k.CatalogID] = k.ID
		}
	}
	return km
}

// ByPlatformKey returns the entry id holding externalID on the maps' platform.
func (k *KeyMaps) ByPlatformKey(externalID string) (string, bool) {
	id, ok := k.byPlatformKey[externalID]
	return id, ok
}

// ByCatalogID returns the entry id linked to catalogID.
func (k *KeyMaps) ByCatalogID(catalogID int64) (string, bool) {
	id, ok := k.byCatalogID[catalogID]
	return id, ok
}

// Len returns the number of distinct platform keys indexed.
func (k *KeyMaps) Len() int {
	return len(k.byPlatformKey)
}
