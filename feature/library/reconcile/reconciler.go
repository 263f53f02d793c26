package reconcile

import (
	"context"
	"fmt"
	"time"

	"game-tracker/feature/catalog"
	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// Outcome is the per-game result of a reconciliation.
type Outcome string

const (
	Imported Outcome = "imported"
	Updated  Outcome = "updated"
	// Skipped is only produced by wishlist imports of games already tracked.
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// Metadata columns, written only when the catalog resolved the game this run.
var metadataColumns = []string{"catalog_id", "display_name", "cover_url", "genres", "release_date", "catalog_rating"}

// Reconciler merges one raw platform game into a user's library.
type Reconciler struct {
	store  Store
	mode   models.Mode
	logger *zap.Logger
	now    func() time.Time
}

// New creates a reconciler for a sync mode.
func New(store Store, mode models.Mode, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, mode: mode, logger: logger, now: time.Now}
}

// Reconcile updates the entry already tracking raw (by platform key, then by
// catalog id) or inserts a new one. Errors are logged and reported as Failed.
// keys may be nil, in which case existing entries are looked up one by one.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, platform models.Platform, raw models.RawPlatformGame, match *catalog.Entry, keys *KeyMaps) Outcome {
	l := r.logger.With(zap.String("external_id", raw.ExternalID))

	fkColumn, err := platform.ForeignKeyColumn()
	if err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}

	existingID, catalogOwner, err := r.locate(ctx, userID, platform, raw.ExternalID, match, keys)
	if err != nil {
		l.Error("Existing entry lookup failed", zap.Error(err))
		return Failed
	}

	now := r.now()
	if existingID != "" {
		if r.mode == models.ModeWishlist {
			return Skipped
		}
		return r.update(ctx, l, existingID, catalogOwner, platform, fkColumn, raw, match, now)
	}
	return r.insert(ctx, l, userID, platform, fkColumn, raw, match, now)
}

// locate returns the id of the entry to update and the id of the entry that
// currently owns match's catalog id (which may differ).
func (r *Reconciler) locate(ctx context.Context, userID string, platform models.Platform, externalID string, match *catalog.Entry, keys *KeyMaps) (string, string, error) {
	var byKey, byCatalog string

	if keys != nil {
		byKey, _ = keys.ByPlatformKey(externalID)
		if match != nil {
			byCatalog, _ = keys.ByCatalogID(match.CatalogID)
		}
	} else {
		existing, err := r.store.FindByPlatformKey(ctx, userID, platform, externalID)
		if err != nil {
			return "", "", fmt.Errorf("find by platform key: %w", err)
		}
		if existing != nil {
			byKey = existing.ID
		}
		if match != nil {
			owner, err := r.store.FindByCatalogID(ctx, userID, match.CatalogID)
			if err != nil {
				return "", "", fmt.Errorf("find by catalog id: %w", err)
			}
			if owner != nil {
				byCatalog = owner.ID
			}
		}
	}

	if byKey != "" {
		return byKey, byCatalog, nil
	}
	return byCatalog, byCatalog, nil
}

func (r *Reconciler) update(ctx context.Context, l *zap.Logger, id, catalogOwner string, platform models.Platform, fkColumn string, raw models.RawPlatformGame, match *catalog.Entry, now time.Time) Outcome {
	entry := &models.LibraryEntry{
		ID:              id,
		PlaytimeMinutes: raw.PlaytimeMinutes,
		LastSyncedAt:    &now,
		UpdatedAt:       now,
	}
	if err := entry.SetPlatformKey(platform, raw.ExternalID); err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}

	fields := models.FieldSet{Always: []string{"playtime_minutes", fkColumn, "last_synced_at", "updated_at"}}
	if match != nil {
		applyMetadata(entry, match)
		fields.IfPresent = metadataColumns
		// Another row already carries this catalog id; linking it here would
		// break the (user, catalog) uniqueness.
		if catalogOwner != "" && catalogOwner != id {
			entry.CatalogID = nil
		}
	}

	if _, err := r.store.Upsert(ctx, entry, fields); err != nil {
		l.Error("Failed to update library entry", zap.String("entry_id", id), zap.Error(err))
		return Failed
	}
	return Updated
}

func (r *Reconciler) insert(ctx context.Context, l *zap.Logger, userID string, platform models.Platform, fkColumn string, raw models.RawPlatformGame, match *catalog.Entry, now time.Time) Outcome {
	status, err := platform.DefaultStatus(r.mode)
	if err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}
	source, err := platform.Source()
	if err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}

	entry := &models.LibraryEntry{
		UserID:          userID,
		DisplayName:     raw.DisplayName,
		Status:          status,
		Source:          source,
		PlaytimeMinutes: raw.PlaytimeMinutes,
		LastSyncedAt:    &now,
	}
	if entry.DisplayName == "" {
		entry.DisplayName = raw.ExternalID
	}
	if err := entry.SetPlatformKey(platform, raw.ExternalID); err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}
	if entry.CoverURL, err = synthesizedCover(platform, raw); err != nil {
		l.Error("Cannot reconcile game", zap.Error(err))
		return Failed
	}

	var fields models.FieldSet
	if match != nil {
		applyMetadata(entry, match)
	}
	if r.mode == models.ModeLibrary {
		fields.Always = []string{"playtime_minutes", fkColumn, "last_synced_at", "updated_at"}
		if match != nil {
			fields.IfPresent = metadataColumns
		}
	}

	written, err := r.store.Upsert(ctx, entry, fields)
	if err != nil {
		l.Error("Failed to insert library entry", zap.Error(err))
		return Failed
	}
	switch written {
	case models.WriteInserted:
		return Imported
	case models.WriteUpdated:
		// Another game of this run already created the row.
		l.Debug("Insert merged into existing entry", zap.String("entry_id", entry.ID))
		return Updated
	}
	return Skipped
}

// applyMetadata copies catalog fields onto entry. Empty catalog values leave
// the synthesized ones in place.
func applyMetadata(entry *models.LibraryEntry, match *catalog.Entry) {
	id := match.CatalogID
	entry.CatalogID = &id
	if match.Name != "" {
		entry.DisplayName = match.Name
	}
	if match.CoverURL != "" {
		entry.CoverURL = match.CoverURL
	}
	if len(match.Genres) > 0 {
		entry.Genres = append([]string(nil), match.Genres...)
	}
	entry.ReleaseDate = match.ReleaseDate
	entry.CatalogRating = match.Rating
}

func synthesizedCover(platform models.Platform, raw models.RawPlatformGame) (string, error) {
	if raw.Images.CoverURL != "" {
		return raw.Images.CoverURL, nil
	}
	fallback, err := platform.FallbackCoverURL(raw.ExternalID)
	if err != nil {
		return "", err
	}
	if fallback != "" {
		return fallback, nil
	}
	return raw.Images.IconURL, nil
}
