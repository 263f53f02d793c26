// Package integrity provides deployment health checks.
//
// It validates the infrastructure the library feature depends on rather than
// the library contents themselves.
//
// # Checks Provided
//
//   - Structure: the snapshot bucket holds one folder per platform (e.g. snapshots/steam/).
//   - Server: the connected database carries every library_entries column with the declared type.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/server : Runs schema check.
package integrity
