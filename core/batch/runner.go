package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Sleeper waits between batches. It must return early when ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

// Runner processes items in fixed-size concurrent batches.
// Batch k+1 starts only after every item of batch k has returned, and Delay
// is waited between batches but never after the last one.
type Runner struct {
	// Size is the number of items processed concurrently. Values below 1 mean 1.
	Size int
	// Delay is the pause between two consecutive batches.
	Delay time.Duration
	// Sleep overrides the delay implementation (tests count calls with it).
	Sleep Sleeper
}

// Stats describes how a run was scheduled.
type Stats struct {
	// Batches is the number of batches started.
	Batches int
	// Delays is the number of inter-batch pauses issued.
	Delays int
	// Panics is the number of items whose function panicked.
	Panics int
}

// Run calls fn once for every index in [0, n).
// A panicking item is recovered and counted in Stats.Panics; siblings are unaffected.
func (r Runner) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) Stats {
	var stats Stats
	if n <= 0 {
		return stats
	}

	size := r.Size
	if size < 1 {
		size = 1
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var panics atomic.Int64
	for start := 0; start < n; start += size {
		if start > 0 && r.Delay > 0 {
			sleep(ctx, r.Delay)
			stats.Delays++
		}

		end := start + size
		if end > n {
			end = n
		}

		var wg sync.WaitGroup
		wg.Add(end - start)
		for i := start; i < end; i++ {
			go func(i int) {
				defer wg.Done()
				defer func() {
					if recover() != nil {
						panics.Add(1)
					}
				}()
				fn(ctx, i)
			}(i)
		}
		wg.Wait()
		stats.Batches++
	}

	stats.Panics = int(panics.Load())
	return stats
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
