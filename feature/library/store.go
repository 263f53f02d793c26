package library

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"game-tracker/feature/library/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists library entries through gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the library_entries table and its unique indexes.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&models.LibraryEntry{})
}

// FindByPlatformKey returns the user's entry carrying externalID for platform, or nil.
func (s *Store) FindByPlatformKey(ctx context.Context, userID string, platform models.Platform, externalID string) (*models.LibraryEntry, error) {
	column, err := platform.ForeignKeyColumn()
	if err != nil {
		return nil, err
	}
	return s.first(ctx, clause.Eq{Column: clause.Column{Name: "user_id"}, Value: userID}, clause.Eq{Column: clause.Column{Name: column}, Value: externalID})
}

// FindByCatalogID returns the user's entry linked to catalogID, or nil.
func (s *Store) FindByCatalogID(ctx context.Context, userID string, catalogID int64) (*models.LibraryEntry, error) {
	return s.first(ctx, clause.Eq{Column: clause.Column{Name: "user_id"}, Value: userID}, clause.Eq{Column: clause.Column{Name: "catalog_id"}, Value: catalogID})
}

func (s *Store) first(ctx context.Context, conds ...clause.Expression) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	err := s.db.WithContext(ctx).Clauses(clause.Where{Exprs: conds}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListKeys returns the identity columns of every entry of the user.
func (s *Store) ListKeys(ctx context.Context, userID string) ([]models.EntryKey, error) {
	var keys []models.EntryKey
	err := s.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Select("id", "catalog_id", "steam_app_id", "psn_title_id", "xbox_title_id").
		Where("user_id = ?", userID).
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// List returns the user's entries ordered by name.
func (s *Store) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	var entries []models.LibraryEntry
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("display_name").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Create inserts a new entry as is.
func (s *Store) Create(ctx context.Context, entry *models.LibraryEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// Upsert writes entry restricted to fields.
//
// With an ID the row is updated in place. Without one the entry is inserted;
// on an identity conflict (user+catalog id when set, user+platform key
// otherwise) the existing row receives the same columns, or nothing at all
// when fields is empty. A conflicting insert reports WriteUpdated and leaves
// entry.ID set to the existing row's id.
func (s *Store) Upsert(ctx context.Context, entry *models.LibraryEntry, fields models.FieldSet) (models.WriteResult, error) {
	db := s.db.WithContext(ctx)

	columns, err := s.columns(entry, fields)
	if err != nil {
		return models.WriteSkipped, err
	}

	if entry.ID != "" {
		if len(columns) == 0 {
			return models.WriteSkipped, nil
		}
		err := db.Model(&models.LibraryEntry{}).Where("id = ?", entry.ID).Select(columns).Updates(entry).Error
		if err != nil {
			return models.WriteSkipped, fmt.Errorf("update entry %s: %w", entry.ID, err)
		}
		return models.WriteUpdated, nil
	}

	if len(columns) == 0 {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if res.Error != nil {
			return models.WriteSkipped, fmt.Errorf("insert entry: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.WriteSkipped, nil
		}
		return models.WriteInserted, nil
	}

	target, conds, err := identity(entry)
	if err != nil {
		return models.WriteSkipped, err
	}
	res := db.Clauses(clause.OnConflict{Columns: target, DoUpdates: clause.AssignmentColumns(columns)}).Create(entry)
	if res.Error != nil {
		return models.WriteSkipped, fmt.Errorf("insert entry: %w", res.Error)
	}

	// The id is generated before the statement runs, so the stored row only
	// carries it when the insert went through.
	var stored models.LibraryEntry
	err = db.Select("id").Clauses(clause.Where{Exprs: conds}).Take(&stored).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.WriteSkipped, fmt.Errorf("resolve upserted entry: %w", err)
	}
	if stored.ID == entry.ID {
		return models.WriteInserted, nil
	}
	if stored.ID != "" {
		entry.ID = stored.ID
	}
	return models.WriteUpdated, nil
}

// columns resolves the field set against the values entry carries.
func (s *Store) columns(entry *models.LibraryEntry, fields models.FieldSet) ([]string, error) {
	columns := append([]string(nil), fields.Always...)
	if len(fields.IfPresent) == 0 {
		return columns, nil
	}

	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(entry); err != nil {
		return nil, fmt.Errorf("parse entry schema: %w", err)
	}

	rv := reflect.ValueOf(entry)
	for _, name := range fields.IfPresent {
		field := stmt.Schema.LookUpField(name)
		if field == nil {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		if _, zero := field.ValueOf(context.Background(), rv); !zero {
			columns = append(columns, name)
		}
	}
	return columns, nil
}

// identity returns the conflict target of entry and the conditions selecting
// the row it collides with.
func identity(entry *models.LibraryEntry) ([]clause.Column, []clause.Expression, error) {
	user := clause.Eq{Column: clause.Column{Name: "user_id"}, Value: entry.UserID}
	if entry.CatalogID != nil {
		return []clause.Column{{Name: "user_id"}, {Name: "catalog_id"}},
			[]clause.Expression{user, clause.Eq{Column: clause.Column{Name: "catalog_id"}, Value: *entry.CatalogID}}, nil
	}
	for _, p := range models.Platforms {
		key := entry.PlatformKey(p)
		if key == nil {
			continue
		}
		column, err := p.ForeignKeyColumn()
		if err != nil {
			return nil, nil, err
		}
		return []clause.Column{{Name: "user_id"}, {Name: column}},
			[]clause.Expression{user, clause.Eq{Column: clause.Column{Name: column}, Value: *key}}, nil
	}
	return nil, nil, errors.New("entry has neither catalog id nor platform key")
}
