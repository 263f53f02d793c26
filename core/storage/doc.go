// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface. The library feature
// archives every fetched platform library as a JSON snapshot through it, and the
// integrity feature verifies the bucket layout.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so storage interactions can
// be mocked in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "game-tracker")
package storage
