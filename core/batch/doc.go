// Package batch runs work in fixed-size concurrent batches separated by a fixed delay.
//
// It is the only backpressure mechanism used against rate-limited upstreams:
// catalog lookups run 4 at a time with a short pause between batches, store
// writes run 20 at a time without a pause. The policy is a value (Runner), not
// control flow repeated at every call site.
//
//	r := batch.Runner{Size: 4, Delay: 260 * time.Millisecond}
//	stats := r.Run(ctx, len(games), func(ctx context.Context, i int) {
//	    resolve(ctx, games[i])
//	})
package batch
