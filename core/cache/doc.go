// Package cache provides a small generic TTL cache with stampede protection.
//
// The catalog client caches free-text search results per normalized query so that
// concurrent synchronizations of different users resolving the same title share
// one upstream request (singleflight) and later syncs reuse it until it expires.
package cache
