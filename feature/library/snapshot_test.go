package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"game-tracker/core/storage/mocks"
	"game-tracker/feature/library/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func newTestArchiver(client *mocks.Client, retain int) *SnapshotArchiver {
	a := NewSnapshotArchiver(client, "bucket", SnapshotConfig{Enabled: true, Retain: retain}, zap.NewNop())
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	return a
}

func TestSnapshotArchiver_ArchiveWritesKey(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 0)

	var written []byte
	client.On("PutObject", mock.Anything, "bucket", "snapshots/steam/user%201/1700000000.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			written, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	games := []models.RawPlatformGame{{ExternalID: "730", DisplayName: "Counter-Strike 2", PlaytimeMinutes: 42}}
	require.NoError(t, a.Archive(context.Background(), "user 1", models.PlatformSteam, models.ModeLibrary, games))

	var snap Snapshot
	require.NoError(t, json.Unmarshal(written, &snap))
	assert.Equal(t, "user 1", snap.UserID)
	assert.Equal(t, models.ModeLibrary, snap.Mode)
	assert.Equal(t, games, snap.Games)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshotArchiver_WishlistDirectory(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 0)

	client.On("PutObject", mock.Anything, "bucket", "snapshots/psn/u1/wishlist/1700000000.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, a.Archive(context.Background(), "u1", models.PlatformPSN, models.ModeWishlist, nil))
	client.AssertExpectations(t)
}

func TestSnapshotArchiver_PrunesOldest(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 2)

	client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "bucket", minio.ListObjectsOptions{Prefix: "snapshots/steam/u1/"}).
		Return(objects(
			"snapshots/steam/u1/1700000000.json",
			"snapshots/steam/u1/1600000000.json",
			"snapshots/steam/u1/wishlist/",
			"snapshots/steam/u1/1650000000.json",
			"snapshots/steam/u1/1500000000.json",
		))
	client.On("RemoveObject", mock.Anything, "bucket", "snapshots/steam/u1/1500000000.json", mock.Anything).Return(nil)
	client.On("RemoveObject", mock.Anything, "bucket", "snapshots/steam/u1/1600000000.json", mock.Anything).Return(errors.New("denied"))

	require.NoError(t, a.Archive(context.Background(), "u1", models.PlatformSteam, models.ModeLibrary, nil))
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "RemoveObject", 2)
}

func TestSnapshotArchiver_PutFailure(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 5)

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	err := a.Archive(context.Background(), "u1", models.PlatformXbox, models.ModeLibrary, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshotArchiver_Latest(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 0)

	body, err := json.Marshal(Snapshot{UserID: "u1", Platform: models.PlatformSteam, Mode: models.ModeLibrary,
		Games: []models.RawPlatformGame{{ExternalID: "620", DisplayName: "Portal 2"}}})
	require.NoError(t, err)

	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).
		Return(objects("snapshots/steam/u1/200.json", "snapshots/steam/u1/1000.json", "snapshots/steam/u1/notes.txt"))
	client.On("GetObject", mock.Anything, "bucket", "snapshots/steam/u1/1000.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)

	snap, err := a.Latest(context.Background(), "u1", models.PlatformSteam, models.ModeLibrary)
	require.NoError(t, err)
	require.Len(t, snap.Games, 1)
	assert.Equal(t, "Portal 2", snap.Games[0].DisplayName)
}

func TestSnapshotArchiver_LatestMissing(t *testing.T) {
	client := new(mocks.Client)
	a := newTestArchiver(client, 0)

	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(objects())

	_, err := a.Latest(context.Background(), "u1", models.PlatformSteam, models.ModeWishlist)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
