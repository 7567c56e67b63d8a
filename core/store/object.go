package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"mod-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectBackend stores documents as objects in a bucket.
// Object keys are the configured prefix plus the base name of the document.
type ObjectBackend struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectBackend creates an object backend.
func NewObjectBackend(client storage.Client, bucket, prefix string) *ObjectBackend {
	return &ObjectBackend{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key used for name.
func (b *ObjectBackend) Key(name string) string {
	return path.Join(b.prefix, filepath.Base(name))
}

// EnsureBucket creates the bucket if it does not exist yet.
func (b *ObjectBackend) EnsureBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.bucket, err)
	}
	return nil
}

// Read downloads the object.
func (b *ObjectBackend) Read(ctx context.Context, name string) ([]byte, error) {
	key := b.Key(name)
	reader, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		// minio reports missing keys on first read, not on GetObject
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return data, nil
}

// Write uploads the object, replacing any previous version.
func (b *ObjectBackend) Write(ctx context.Context, name string, data []byte) error {
	key := b.Key(name)
	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// Remove deletes the object.
func (b *ObjectBackend) Remove(ctx context.Context, name string) error {
	key := b.Key(name)
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

func contentType(name string) string {
	if filepath.Ext(name) == ".json" {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}
