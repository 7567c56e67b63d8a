// Package store persists whole state documents by name.
//
// Every write replaces the full document. The file backend writes to a
// temporary file in the destination directory and renames it into place, so a
// crash mid-write leaves the previous document intact. The object backend keeps
// the same documents in a bucket, and Mirror combines the two so that a local
// run can fall back to the bucket copy when a file is missing.
//
// # Backends
//
//   - FileBackend: afero filesystem (OS in production, in-memory in tests).
//   - ObjectBackend: core/storage client (MinIO / S3).
//   - Mirror: primary + secondary; reads fall back, writes go to both.
package store
