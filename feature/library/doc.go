// Package library exposes a user's game library: the gorm store behind the
// reconciliation pipeline, the raw library snapshot archive, and the HTTP API.
//
// # HTTP Endpoints
//
//   - GET /library/:user : Lists entries.
//   - POST /library/:user/entries : Adds a manual entry.
//   - POST /library/:user/sync/:platform : Imports a platform library or wishlist.
//     A failed platform fetch answers 502 with the upstream status and retryable flag.
//   - GET /library/:user/snapshots/:platform/latest : Returns the last archived raw library.
//
// # Storage
//
// Entries live in library_entries, unique per (user_id, catalog_id) and per
// (user_id, platform key). Store.Upsert implements the always / if-present
// column split used by the reconciler.
package library
