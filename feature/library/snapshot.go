package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"game-tracker/core/storage"
	"game-tracker/feature/library/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrSnapshotNotFound is returned when no snapshot was archived yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotConfig controls archiving of raw platform libraries.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled" default:"true"`
	Prefix  string `mapstructure:"prefix" default:"snapshots"`
	// Retain is the number of snapshots kept per user, platform and mode. 0 keeps all.
	Retain int `mapstructure:"retain" default:"10"`
}

// Snapshot is one archived raw library.
type Snapshot struct {
	UserID   string                   `json:"user_id"`
	Platform models.Platform          `json:"platform"`
	Mode     models.Mode              `json:"mode"`
	TakenAt  time.Time                `json:"taken_at"`
	Games    []models.RawPlatformGame `json:"games"`
}

// SnapshotArchiver writes raw libraries to object storage under
// {prefix}/{platform}/{user}/[wishlist/]{unix}.json.
type SnapshotArchiver struct {
	client storage.Client
	bucket string
	cfg    SnapshotConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSnapshotArchiver creates an archiver on bucket.
func NewSnapshotArchiver(client storage.Client, bucket string, cfg SnapshotConfig, logger *zap.Logger) *SnapshotArchiver {
	if cfg.Prefix == "" {
		cfg.Prefix = "snapshots"
	}
	return &SnapshotArchiver{client: client, bucket: bucket, cfg: cfg, logger: logger, now: time.Now}
}

func (a *SnapshotArchiver) dir(userID string, platform models.Platform, mode models.Mode) string {
	dir := path.Join(a.cfg.Prefix, string(platform), url.PathEscape(userID))
	if mode == models.ModeWishlist {
		dir = path.Join(dir, "wishlist")
	}
	return dir + "/"
}

// Archive stores games and prunes snapshots beyond the retention count.
func (a *SnapshotArchiver) Archive(ctx context.Context, userID string, platform models.Platform, mode models.Mode, games []models.RawPlatformGame) error {
	taken := a.now().UTC()
	body, err := json.Marshal(Snapshot{UserID: userID, Platform: platform, Mode: mode, TakenAt: taken, Games: games})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := a.dir(userID, platform, mode)
	key := dir + strconv.FormatInt(taken.Unix(), 10) + ".json"
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	a.logger.Debug("Archived raw library", zap.String("key", key), zap.Int("games", len(games)))

	if a.cfg.Retain > 0 {
		a.prune(ctx, dir)
	}
	return nil
}

// prune removes the oldest snapshots in dir. Failures are only logged.
func (a *SnapshotArchiver) prune(ctx context.Context, dir string) {
	keys, err := a.list(ctx, dir)
	if err != nil {
		a.logger.Warn("Failed to list snapshots for pruning", zap.String("dir", dir), zap.Error(err))
		return
	}
	if len(keys) <= a.cfg.Retain {
		return
	}
	for _, key := range keys[:len(keys)-a.cfg.Retain] {
		if err := a.client.RemoveObject(ctx, a.bucket, key.name, minio.RemoveObjectOptions{}); err != nil {
			a.logger.Warn("Failed to remove old snapshot", zap.String("key", key.name), zap.Error(err))
		}
	}
}

type snapshotKey struct {
	name string
	unix int64
}

// list returns the snapshot objects directly under dir, oldest first.
func (a *SnapshotArchiver) list(ctx context.Context, dir string) ([]snapshotKey, error) {
	var keys []snapshotKey
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: dir, Recursive: false}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		base := strings.TrimPrefix(obj.Key, dir)
		if strings.Contains(base, "/") || !strings.HasSuffix(base, ".json") {
			continue
		}
		unix, err := strconv.ParseInt(strings.TrimSuffix(base, ".json"), 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, snapshotKey{name: obj.Key, unix: unix})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].unix < keys[j].unix })
	return keys, nil
}

// Latest returns the most recent library snapshot of a user on a platform.
func (a *SnapshotArchiver) Latest(ctx context.Context, userID string, platform models.Platform, mode models.Mode) (*Snapshot, error) {
	keys, err := a.list(ctx, a.dir(userID, platform, mode))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	if len(keys) == 0 {
		return nil, ErrSnapshotNotFound
	}

	latest := keys[len(keys)-1].name
	obj, err := a.client.GetObject(ctx, a.bucket, latest, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", latest, err)
	}
	defer obj.Close()

	var snap Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", latest, err)
	}
	return &snap, nil
}
