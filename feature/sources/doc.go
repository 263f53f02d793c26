// Package sources contains the platform library adapters.
//
// Each adapter turns one platform's HTTP API into a list of models.RawPlatformGame:
//
//   - steam: IPlayerService/GetOwnedGames plus the paged store wishlist.
//   - psn: the paged gamelist v2 title list (Bearer token, ISO-8601 play durations).
//   - xbox: the titlehub title history.
//
// Non-success responses surface as *upstream.Error. When a paged listing fails
// after its first page, the adapter logs a warning and returns the partial list.
package sources
