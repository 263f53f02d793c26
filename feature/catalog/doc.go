// Package catalog is the client of the external game metadata catalog.
//
// Two queries are supported: a batch lookup of platform ids against the
// catalog's external id index (POST /external_games) and a free-text search
// (POST /games). Both send Apicalypse query bodies with Client-ID and bearer
// headers. Non-success responses surface as *upstream.Error.
//
// CachedClient keeps search results per query for a TTL so concurrent
// synchronizations resolving the same title share one request.
package catalog
