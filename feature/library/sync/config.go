package sync

import (
	"time"

	"game-tracker/feature/library/match"
)

// Config holds the batching and matching settings of a synchronization.
type Config struct {
	// LookupBatchSize is the number of concurrent catalog name searches.
	LookupBatchSize int `mapstructure:"lookup_batch_size" default:"4"`
	// LookupDelayMillis is the pause between two search batches.
	LookupDelayMillis int `mapstructure:"lookup_delay_millis" default:"260"`
	// StoreBatchSize is the number of games reconciled concurrently.
	StoreBatchSize int `mapstructure:"store_batch_size" default:"20"`
	// FuzzyMatching enables the name search fallback.
	FuzzyMatching bool `mapstructure:"fuzzy_matching" default:"true"`
	// SimilarityThreshold is the score a name candidate must exceed.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" default:"0.6"`
}

// MatchOptions converts the config to matcher options.
func (c Config) MatchOptions() match.Options {
	return match.Options{
		Fuzzy:     c.FuzzyMatching,
		BatchSize: c.LookupBatchSize,
		Delay:     time.Duration(c.LookupDelayMillis) * time.Millisecond,
		Threshold: c.SimilarityThreshold,
	}
}
