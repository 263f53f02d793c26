package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LibraryEntry is one game tracked by one user.
type LibraryEntry struct {
	ID     string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_user_catalog;uniqueIndex:idx_user_steam;uniqueIndex:idx_user_psn;uniqueIndex:idx_user_xbox" json:"user_id"`

	// Catalog metadata
	CatalogID     *int64     `gorm:"column:catalog_id;uniqueIndex:idx_user_catalog" json:"catalog_id,omitempty"`
	DisplayName   string     `gorm:"column:display_name;type:varchar(255);not null" json:"display_name"`
	CoverURL      string     `gorm:"column:cover_url;type:varchar(512)" json:"cover_url,omitempty"`
	Genres        []string   `gorm:"column:genres;serializer:json;type:text" json:"genres,omitempty"`
	ReleaseDate   *time.Time `gorm:"column:release_date" json:"release_date,omitempty"`
	CatalogRating *float64   `gorm:"column:catalog_rating" json:"catalog_rating,omitempty"`

	// User-authored
	Status Status  `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Rating *int    `gorm:"column:rating" json:"rating,omitempty"`
	Notes  *string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Source      Source  `gorm:"column:source;type:varchar(16);not null" json:"source"`
	SteamAppID  *string `gorm:"column:steam_app_id;type:varchar(64);uniqueIndex:idx_user_steam" json:"steam_app_id,omitempty"`
	PSNTitleID  *string `gorm:"column:psn_title_id;type:varchar(64);uniqueIndex:idx_user_psn" json:"psn_title_id,omitempty"`
	XboxTitleID *string `gorm:"column:xbox_title_id;type:varchar(64);uniqueIndex:idx_user_xbox" json:"xbox_title_id,omitempty"`

	// Platform-authored
	PlaytimeMinutes int        `gorm:"column:playtime_minutes;not null;default:0" json:"playtime_minutes"`
	LastSyncedAt    *time.Time `gorm:"column:last_synced_at" json:"last_synced_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (LibraryEntry) TableName() string {
	return "library_entries"
}

// BeforeCreate assigns a synthetic id.
func (e *LibraryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// PlatformKey returns the entry's id on platform p, or nil.
func (e *LibraryEntry) PlatformKey(p Platform) *string {
	switch p {
	case PlatformSteam:
		return e.SteamAppID
	case PlatformPSN:
		return e.PSNTitleID
	case PlatformXbox:
		return e.XboxTitleID
	}
	return nil
}

// SetPlatformKey stores the entry's id on platform p.
func (e *LibraryEntry) SetPlatformKey(p Platform, externalID string) error {
	id := externalID
	switch p {
	case PlatformSteam:
		e.SteamAppID = &id
	case PlatformPSN:
		e.PSNTitleID = &id
	case PlatformXbox:
		e.XboxTitleID = &id
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
	return nil
}

// EntryKey holds the identity columns of an entry, used to prefetch a user's library.
type EntryKey struct {
	ID          string  `gorm:"column:id"`
	CatalogID   *int64  `gorm:"column:catalog_id"`
	SteamAppID  *string `gorm:"column:steam_app_id"`
	PSNTitleID  *string `gorm:"column:psn_title_id"`
	XboxTitleID *string `gorm:"column:xbox_title_id"`
}

// PlatformKey returns the key's id on platform p, or nil.
func (k EntryKey) PlatformKey(p Platform) *string {
	switch p {
	case PlatformSteam:
		return k.SteamAppID
	case PlatformPSN:
		return k.PSNTitleID
	case PlatformXbox:
		return k.XboxTitleID
	}
	return nil
}

// FieldSet names the columns an upsert may write.
// Always columns are written unconditionally; IfPresent columns only when the
// entry carries a non-zero value for them. An empty set on insert means the
// insert is dropped on conflict.
type FieldSet struct {
	Always    []string
	IfPresent []string
}

// Empty reports whether the set names no column.
func (f FieldSet) Empty() bool {
	return len(f.Always) == 0 && len(f.IfPresent) == 0
}

// WriteResult reports what an upsert did to the table.
type WriteResult int

const (
	// WriteSkipped means nothing was written.
	WriteSkipped WriteResult = iota
	// WriteInserted means a new row was created.
	WriteInserted
	// WriteUpdated means an existing row received the columns, either
	// addressed by id or hit by an insert on its identity.
	WriteUpdated
)
