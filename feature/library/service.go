package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"game-tracker/feature/catalog"
	"game-tracker/feature/library/models"
	"game-tracker/feature/library/sync"
	"game-tracker/feature/sources"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidEntry is returned for a manual entry that fails validation.
	ErrInvalidEntry = errors.New("invalid library entry")
	// ErrDuplicateEntry is returned when the user already tracks the game.
	ErrDuplicateEntry = errors.New("game already in library")
	// ErrSnapshotsDisabled is returned when snapshot archiving is off.
	ErrSnapshotsDisabled = errors.New("snapshots are disabled")
)

// ManualEntry is a game added by the user rather than imported.
type ManualEntry struct {
	DisplayName string        `json:"display_name"`
	CatalogID   *int64        `json:"catalog_id,omitempty"`
	CoverURL    string        `json:"cover_url,omitempty"`
	Status      models.Status `json:"status,omitempty"`
	Rating      *int          `json:"rating,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
}

// Service coordinates library reads, manual entries and platform syncs.
type Service struct {
	store    *Store
	registry *sources.Registry
	catalog  catalog.Lookup
	archiver *SnapshotArchiver
	syncCfg  sync.Config
	logger   *zap.Logger
}

// NewService creates a library service. archiver may be nil.
func NewService(store *Store, registry *sources.Registry, lookup catalog.Lookup, archiver *SnapshotArchiver, syncCfg sync.Config, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		registry: registry,
		catalog:  lookup,
		archiver: archiver,
		syncCfg:  syncCfg,
		logger:   logger,
	}
}

// Synchronizer builds the synchronizer for a platform.
func (s *Service) Synchronizer(platform models.Platform) (*sync.Synchronizer, error) {
	src, err := s.registry.Get(platform)
	if err != nil {
		return nil, err
	}
	var opts []sync.Option
	if s.archiver != nil {
		opts = append(opts, sync.WithArchiver(s.archiver))
	}
	return sync.New(src, s.catalog, s.store, s.syncCfg, s.logger, opts...), nil
}

// Sync imports a platform library (or wishlist) into the user's catalog.
func (s *Service) Sync(ctx context.Context, userID string, platform models.Platform, cred sources.Credential, wishlist bool) (*models.SyncResult, error) {
	syncer, err := s.Synchronizer(platform)
	if err != nil {
		return nil, err
	}
	if wishlist {
		return syncer.SyncWishlist(ctx, userID, cred)
	}
	return syncer.SyncLibrary(ctx, userID, cred)
}

// Entries lists the user's library.
func (s *Service) Entries(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	return s.store.List(ctx, userID)
}

// AddManual adds a game by hand. Its source stays manual even if a platform
// import later links to it.
func (s *Service) AddManual(ctx context.Context, userID string, in ManualEntry) (*models.LibraryEntry, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: display_name is required", ErrInvalidEntry)
	}
	status := in.Status
	if status == "" {
		status = models.StatusWishlist
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, string(status))
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 10) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 10", ErrInvalidEntry)
	}

	entry := &models.LibraryEntry{
		UserID:      userID,
		CatalogID:   in.CatalogID,
		DisplayName: name,
		CoverURL:    in.CoverURL,
		Status:      status,
		Rating:      in.Rating,
		Notes:       in.Notes,
		Source:      models.SourceManual,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// LatestSnapshot returns the last archived raw library.
func (s *Service) LatestSnapshot(ctx context.Context, userID string, platform models.Platform, wishlist bool) (*Snapshot, error) {
	if s.archiver == nil {
		return nil, ErrSnapshotsDisabled
	}
	mode := models.ModeLibrary
	if wishlist {
		mode = models.ModeWishlist
	}
	return s.archiver.Latest(ctx, userID, platform, mode)
}
