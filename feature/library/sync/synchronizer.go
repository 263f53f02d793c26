package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"game-tracker/core/batch"
	"game-tracker/core/logger"
	"game-tracker/core/metrics"
	"game-tracker/feature/catalog"
	"game-tracker/feature/library/match"
	"game-tracker/feature/library/models"
	"game-tracker/feature/library/reconcile"
	"game-tracker/feature/sources"

	"go.uber.org/zap"
)

// ErrWishlistUnsupported is returned by SyncWishlist for platforms without a wishlist.
var ErrWishlistUnsupported = errors.New("platform has no wishlist")

// Archiver stores the raw library fetched by a synchronization.
type Archiver interface {
	Archive(ctx context.Context, userID string, platform models.Platform, mode models.Mode, games []models.RawPlatformGame) error
}

// Synchronizer imports one platform's library into a user's catalog.
type Synchronizer struct {
	source   sources.Source
	matcher  *match.Matcher
	store    reconcile.Store
	archiver Archiver
	cfg      Config
	logger   *zap.Logger
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithArchiver archives every fetched library.
func WithArchiver(a Archiver) Option {
	return func(s *Synchronizer) { s.archiver = a }
}

// WithMatcher replaces the matcher built from Config.
func WithMatcher(m *match.Matcher) Option {
	return func(s *Synchronizer) { s.matcher = m }
}

// New creates a synchronizer for source.
func New(source sources.Source, lookup catalog.Lookup, store reconcile.Store, cfg Config, logger *zap.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		source: source,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		s.matcher = match.NewMatcher(lookup, cfg.MatchOptions(), logger)
	}
	return s
}

// Platform returns the platform this synchronizer imports from.
func (s *Synchronizer) Platform() models.Platform {
	return s.source.Platform()
}

// SyncLibrary imports the user's full library. Only a failed fetch is returned as
// an error; every later failure is counted in the result.
func (s *Synchronizer) SyncLibrary(ctx context.Context, userID string, cred sources.Credential) (*models.SyncResult, error) {
	return s.run(ctx, userID, models.ModeLibrary, cred, s.source.FetchLibrary)
}

// SyncWishlist imports the user's wishlist without touching games already tracked.
func (s *Synchronizer) SyncWishlist(ctx context.Context, userID string, cred sources.Credential) (*models.SyncResult, error) {
	ws, ok := s.source.(sources.WishlistSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWishlistUnsupported, s.source.Platform())
	}
	return s.run(ctx, userID, models.ModeWishlist, cred, ws.FetchWishlist)
}

type fetchFunc func(ctx context.Context, cred sources.Credential) ([]models.RawPlatformGame, error)

func (s *Synchronizer) run(ctx context.Context, userID string, mode models.Mode, cred sources.Credential, fetch fetchFunc) (*models.SyncResult, error) {
	// A started sync runs to completion; per-call timeouts still apply.
	ctx = context.WithoutCancel(ctx)

	platform := s.source.Platform()
	l := logger.ForSync(s.logger, userID, string(platform)).With(zap.String("mode", string(mode)))
	start := time.Now()

	games, err := fetch(ctx, cred)
	if err != nil {
		metrics.SyncRuns.WithLabelValues(string(platform), string(mode), "fetch_error").Inc()
		l.Error("Library fetch failed", zap.Error(err))
		return nil, fmt.Errorf("sync %s %s: %w", platform, mode, err)
	}

	if len(games) == 0 {
		metrics.SyncRuns.WithLabelValues(string(platform), string(mode), "ok").Inc()
		l.Info("No games to synchronize")
		return &models.SyncResult{}, nil
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, userID, platform, mode, games); err != nil {
			l.Warn("Failed to archive raw library", zap.Error(err))
		}
	}

	if unique := dedupe(games); len(unique) < len(games) {
		l.Debug("Dropped repeated platform games", zap.Int("repeated", len(games)-len(unique)))
		games = unique
	}
	result := &models.SyncResult{TotalGames: len(games)}

	matches := s.matcher.Match(ctx, platform, games)
	for _, g := range games {
		if matches[g.ExternalID] != nil {
			result.Matched++
		} else {
			result.Unmatched++
		}
	}

	var keys *reconcile.KeyMaps
	if existing, err := s.store.ListKeys(ctx, userID); err != nil {
		l.Warn("Key prefetch failed, looking up entries one by one", zap.Error(err))
	} else {
		keys = reconcile.NewKeyMaps(platform, existing)
	}

	rec := reconcile.New(s.store, mode, l)
	var imported, updated, skipped, failed atomic.Int64

	runner := batch.Runner{Size: s.cfg.StoreBatchSize}
	stats := runner.Run(ctx, len(games), func(ctx context.Context, i int) {
		g := games[i]
		switch rec.Reconcile(ctx, userID, platform, g, matches[g.ExternalID], keys) {
		case reconcile.Imported:
			imported.Add(1)
		case reconcile.Updated:
			updated.Add(1)
		case reconcile.Skipped:
			skipped.Add(1)
		case reconcile.Failed:
			failed.Add(1)
		}
	})
	if stats.Panics > 0 {
		l.Error("Reconciliation panicked", zap.Int("items", stats.Panics))
		failed.Add(int64(stats.Panics))
	}

	result.Imported = int(imported.Load())
	result.Updated = int(updated.Load())
	result.Failed = int(failed.Load())

	metrics.SyncItems.WithLabelValues(string(platform), string(reconcile.Imported)).Add(float64(result.Imported))
	metrics.SyncItems.WithLabelValues(string(platform), string(reconcile.Updated)).Add(float64(result.Updated))
	metrics.SyncItems.WithLabelValues(string(platform), string(reconcile.Skipped)).Add(float64(skipped.Load()))
	metrics.SyncItems.WithLabelValues(string(platform), string(reconcile.Failed)).Add(float64(result.Failed))
	metrics.SyncRuns.WithLabelValues(string(platform), string(mode), "ok").Inc()
	metrics.SyncDuration.WithLabelValues(string(platform)).Observe(time.Since(start).Seconds())

	l.Info("Synchronization finished",
		zap.Int("total", result.TotalGames),
		zap.Int("matched", result.Matched),
		zap.Int("unmatched", result.Unmatched),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int64("skipped", skipped.Load()),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// dedupe keeps the first game reported for each external id.
func dedupe(games []models.RawPlatformGame) []models.RawPlatformGame {
	seen := make(map[string]struct{}, len(games))
	out := make([]models.RawPlatformGame, 0, len(games))
	for _, g := range games {
		if _, ok := seen[g.ExternalID]; ok {
			continue
		}
		seen[g.ExternalID] = struct{}{}
		out = append(out, g)
	}
	return out
}
