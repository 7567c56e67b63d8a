// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface so that the
// state files of a run (manifest, user mod list, catalog cache) can be mirrored
// to AWS S3 or a self-hosted MinIO instance, and so that tests can substitute
// the testify mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the mirror bucket.
//   - PutObject: Uploads a state document.
//   - GetObject: Retrieves a state document as a stream.
//   - RemoveObject: Deletes a state document (cache invalidation).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
