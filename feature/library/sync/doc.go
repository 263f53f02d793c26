// Package sync drives a platform import end to end.
//
// A run fetches the raw library (the only fatal step), archives it, resolves
// games against the catalog, prefetches the user's existing entry keys in one
// query and reconciles games in fixed-size concurrent batches. Per-game
// failures are counted in models.SyncResult instead of aborting the run.
package sync
