package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"game-tracker/core/database"
	"game-tracker/feature/library/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }
func i64p(i int64) *int64   { return &i }

func TestStore_FindAndListKeys(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Hades", SteamAppID: strp("1145360"), CatalogID: i64p(7),
		Status: models.StatusPlaying, Source: models.SourceSteam,
	}))
	require.NoError(t, store.Create(ctx, &models.LibraryEntry{
		UserID: "u2", DisplayName: "Hades", SteamAppID: strp("1145360"),
		Status: models.StatusPlaying, Source: models.SourceSteam,
	}))

	found, err := store.FindByPlatformKey(ctx, "u1", models.PlatformSteam, "1145360")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.UserID)
	assert.Len(t, found.ID, 36)

	found, err = store.FindByCatalogID(ctx, "u1", 7)
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := store.FindByPlatformKey(ctx, "u1", models.PlatformPSN, "1145360")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = store.FindByPlatformKey(ctx, "u1", "gog", "1")
	assert.ErrorIs(t, err, models.ErrUnknownPlatform)

	keys, err := store.ListKeys(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "1145360", *keys[0].SteamAppID)
	assert.Equal(t, int64(7), *keys[0].CatalogID)
	assert.Nil(t, keys[0].PSNTitleID)
}

func TestStore_UniqueIdentity(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := &models.LibraryEntry{UserID: "u1", DisplayName: "A", CatalogID: i64p(1), Status: models.StatusPlaying, Source: models.SourceManual}
	require.NoError(t, store.Create(ctx, first))

	dup := &models.LibraryEntry{UserID: "u1", DisplayName: "A again", CatalogID: i64p(1), Status: models.StatusPlaying, Source: models.SourceManual}
	err := store.Create(ctx, dup)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// NULL catalog ids never collide
	require.NoError(t, store.Create(ctx, &models.LibraryEntry{UserID: "u1", DisplayName: "B", Status: models.StatusPlaying, Source: models.SourceManual}))
	require.NoError(t, store.Create(ctx, &models.LibraryEntry{UserID: "u1", DisplayName: "C", Status: models.StatusPlaying, Source: models.SourceManual}))
}

func TestStore_UpsertUpdateRespectsFieldSet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	seed := &models.LibraryEntry{
		UserID: "u1", DisplayName: "Old Name", CoverURL: "old.jpg", SteamAppID: strp("730"),
		Status: models.StatusCompleted, Rating: intp(9), Notes: strp("great"), Source: models.SourceSteam,
		PlaytimeMinutes: 10,
	}
	require.NoError(t, store.Create(ctx, seed))

	now := time.Now().UTC().Truncate(time.Second)
	update := &models.LibraryEntry{
		ID:              seed.ID,
		SteamAppID:      strp("730"),
		PlaytimeMinutes: 500,
		LastSyncedAt:    &now,
		DisplayName:     "New Name",
		CoverURL:        "", // zero: must not blank the stored cover
		Status:          models.StatusPlaying,
	}
	written, err := store.Upsert(ctx, update, models.FieldSet{
		Always:    []string{"playtime_minutes", "steam_app_id", "last_synced_at", "updated_at"},
		IfPresent: []string{"display_name", "cover_url"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.WriteUpdated, written)

	got, err := store.FindByPlatformKey(ctx, "u1", models.PlatformSteam, "730")
	require.NoError(t, err)
	assert.Equal(t, 500, got.PlaytimeMinutes)
	assert.Equal(t, "New Name", got.DisplayName)
	assert.Equal(t, "old.jpg", got.CoverURL)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 9, *got.Rating)
	assert.Equal(t, "great", *got.Notes)
	require.NotNil(t, got.LastSyncedAt)
}

func TestStore_UpsertInsertAndConflict(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	fields := models.FieldSet{Always: []string{"playtime_minutes", "psn_title_id", "last_synced_at", "updated_at"}}

	first := &models.LibraryEntry{
		UserID: "u1", DisplayName: "Returnal", PSNTitleID: strp("PPSA01"),
		Status: models.StatusPlaying, Source: models.SourcePSN, PlaytimeMinutes: 10,
	}
	written, err := store.Upsert(ctx, first, fields)
	require.NoError(t, err)
	assert.Equal(t, models.WriteInserted, written)

	second := &models.LibraryEntry{
		UserID: "u1", DisplayName: "Returnal", PSNTitleID: strp("PPSA01"),
		Status: models.StatusPlaying, Source: models.SourcePSN, PlaytimeMinutes: 20,
	}
	written, err = store.Upsert(ctx, second, fields)
	require.NoError(t, err)
	assert.Equal(t, models.WriteUpdated, written)
	assert.Equal(t, first.ID, second.ID)

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 20, entries[0].PlaytimeMinutes)
}

func TestStore_UpsertInsertConflictOnCatalogID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	fields := models.FieldSet{
		Always:    []string{"playtime_minutes", "steam_app_id", "last_synced_at", "updated_at"},
		IfPresent: []string{"catalog_id", "display_name"},
	}

	written, err := store.Upsert(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Dark Souls", SteamAppID: strp("570940"), CatalogID: i64p(42),
		Status: models.StatusPlaying, Source: models.SourceSteam, PlaytimeMinutes: 30,
	}, fields)
	require.NoError(t, err)
	assert.Equal(t, models.WriteInserted, written)

	written, err = store.Upsert(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Dark Souls", SteamAppID: strp("211420"), CatalogID: i64p(42),
		Status: models.StatusPlaying, Source: models.SourceSteam, PlaytimeMinutes: 500,
	}, fields)
	require.NoError(t, err)
	assert.Equal(t, models.WriteUpdated, written)

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 500, entries[0].PlaytimeMinutes)
}

func TestStore_UpsertInsertDoNothing(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Portal 2", SteamAppID: strp("620"),
		Status: models.StatusCompleted, Source: models.SourceSteam,
	}))

	written, err := store.Upsert(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Portal 2", SteamAppID: strp("620"),
		Status: models.StatusWishlist, Source: models.SourceSteam,
	}, models.FieldSet{})
	require.NoError(t, err)
	assert.Equal(t, models.WriteSkipped, written)

	got, err := store.FindByPlatformKey(ctx, "u1", models.PlatformSteam, "620")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestStore_GenresRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.LibraryEntry{
		UserID: "u1", DisplayName: "Hades", Genres: []string{"Roguelike", "Action"},
		Status: models.StatusPlaying, Source: models.SourceManual,
	}))

	entries, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Roguelike", "Action"}, entries[0].Genres)
}

func TestStore_UpsertUnknownColumn(t *testing.T) {
	store := setupStore(t)
	_, err := store.Upsert(context.Background(), &models.LibraryEntry{ID: "x"}, models.FieldSet{IfPresent: []string{"bogus"}})
	assert.Error(t, err)
}

func TestStore_ErrorsPropagate(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT .* FROM `library_entries`").WillReturnError(errors.New("connection refused"))
	_, err := store.ListKeys(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `library_entries`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()
	_, err = store.Upsert(context.Background(), &models.LibraryEntry{ID: "e1", PlaytimeMinutes: 5}, models.FieldSet{Always: []string{"playtime_minutes"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock wait timeout")

	assert.NoError(t, mock.ExpectationsWereMet())
}
