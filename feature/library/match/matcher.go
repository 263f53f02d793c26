package match

import (
	"context"
	"time"

	"game-tracker/core/batch"
	"game-tracker/core/metrics"
	"game-tracker/feature/catalog"
	"game-tracker/feature/library/models"

	"go.uber.org/zap"
)

// DefaultThreshold is the similarity a candidate must exceed to be accepted.
const DefaultThreshold = 0.6

// Options tunes the fuzzy phase.
type Options struct {
	// Fuzzy enables the name search fallback.
	Fuzzy bool
	// BatchSize is the number of concurrent searches.
	BatchSize int
	// Delay separates two search batches.
	Delay time.Duration
	// Threshold is the minimum similarity (exclusive).
	Threshold float64
	// Sleep overrides the inter-batch wait.
	Sleep batch.Sleeper
}

// Matcher resolves raw platform games to catalog entries in two phases:
// an exact external id lookup, then a name search for whatever is left.
type Matcher struct {
	catalog catalog.Lookup
	opts    Options
	logger  *zap.Logger
}

// NewMatcher creates a matcher.
func NewMatcher(c catalog.Lookup, opts Options, logger *zap.Logger) *Matcher {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Matcher{catalog: c, opts: opts, logger: logger}
}

// Match returns an entry for every raw external id; unmatched ids map to nil.
// Catalog failures never fail the call, they only leave games unmatched.
func (m *Matcher) Match(ctx context.Context, platform models.Platform, games []models.RawPlatformGame) map[string]*catalog.Entry {
	result := make(map[string]*catalog.Entry, len(games))
	if len(games) == 0 {
		return result
	}

	ids := make([]string, 0, len(games))
	for _, g := range games {
		if _, seen := result[g.ExternalID]; seen {
			continue
		}
		result[g.ExternalID] = nil
		ids = append(ids, g.ExternalID)
	}

	found, err := m.catalog.LookupByExternalIDs(ctx, platform, ids)
	if err != nil {
		metrics.CatalogLookups.WithLabelValues("external_id", "error").Inc()
		m.logger.Warn("External id lookup failed, falling back to name search",
			zap.String("platform", string(platform)), zap.Int("ids", len(ids)), zap.Error(err))
	}
	assigned := 0
	for id, entry := range found {
		if _, wanted := result[id]; !wanted {
			continue
		}
		e := entry
		result[id] = &e
		assigned++
	}
	metrics.CatalogLookups.WithLabelValues("external_id", "matched").Add(float64(assigned))

	if !m.opts.Fuzzy {
		return result
	}

	var pending []models.RawPlatformGame
	queued := make(map[string]bool)
	for _, g := range games {
		if result[g.ExternalID] == nil && !queued[g.ExternalID] {
			queued[g.ExternalID] = true
			pending = append(pending, g)
		}
	}
	if len(pending) == 0 {
		return result
	}

	resolved := make([]*catalog.Entry, len(pending))
	runner := batch.Runner{Size: m.opts.BatchSize, Delay: m.opts.Delay, Sleep: m.opts.Sleep}
	stats := runner.Run(ctx, len(pending), func(ctx context.Context, i int) {
		resolved[i] = m.searchOne(ctx, pending[i])
	})

	matched := 0
	for i, g := range pending {
		if resolved[i] != nil {
			result[g.ExternalID] = resolved[i]
			matched++
		}
	}

	m.logger.Debug("Name search phase finished",
		zap.String("platform", string(platform)),
		zap.Int("searched", len(pending)),
		zap.Int("matched", matched),
		zap.Int("batches", stats.Batches))

	return result
}

func (m *Matcher) searchOne(ctx context.Context, g models.RawPlatformGame) *catalog.Entry {
	query := Normalize(g.DisplayName)
	if query == "" {
		metrics.CatalogLookups.WithLabelValues("name", "unmatched").Inc()
		return nil
	}

	candidates, err := m.catalog.SearchByName(ctx, query)
	if err != nil {
		metrics.CatalogLookups.WithLabelValues("name", "error").Inc()
		m.logger.Warn("Name search failed", zap.String("external_id", g.ExternalID), zap.String("query", query), zap.Error(err))
		return nil
	}

	best, score := Best(query, candidates)
	if best == nil || score <= m.opts.Threshold {
		metrics.CatalogLookups.WithLabelValues("name", "unmatched").Inc()
		return nil
	}
	metrics.CatalogLookups.WithLabelValues("name", "matched").Inc()
	return best
}

// Best returns the candidate most similar to the normalized query and its score.
// Ties keep the catalog's own ordering.
func Best(query string, candidates []catalog.Entry) (*catalog.Entry, float64) {
	var best *catalog.Entry
	bestScore := -1.0
	for i := range candidates {
		score := Similarity(query, Normalize(candidates[i].Name))
		if score > bestScore {
			c := candidates[i]
			best, bestScore = &c, score
		}
	}
	return best, bestScore
}
