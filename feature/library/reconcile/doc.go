// Package reconcile merges raw platform games into persisted library entries.
//
// An existing entry is found by platform key first and by catalog id second, so
// a game added manually or from another platform is linked instead of
// duplicated. Updates always write playtime, the platform key and the sync
// timestamp; catalog metadata is written only when the game was matched in this
// run, and user-authored fields (status, rating, notes) are never written.
//
// Wishlist imports never touch an existing entry: the first write wins.
package reconcile
