package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"mod-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
func (r failingReader) Close() error             { return nil }

func TestObjectBackend_Key(t *testing.T) {
	b := NewObjectBackend(new(mocks.Client), "bucket", "state/")
	assert.Equal(t, "state/mods.json", b.Key("/home/user/spt/mods.json"))
}

func TestObjectBackend_Write(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "state/mods.json", mock.Anything, int64(2), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
		return opts.ContentType == "application/json"
	})).Return(minio.UploadInfo{}, nil)

	b := NewObjectBackend(client, "bucket", "state")
	require.NoError(t, b.Write(context.Background(), "mods.json", []byte("{}")))
	client.AssertExpectations(t)
}

func TestObjectBackend_Read(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "state/hubMods.txt", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("SAIN\n"))), nil)

		b := NewObjectBackend(client, "bucket", "state")
		data, err := b.Read(context.Background(), "hubMods.txt")
		require.NoError(t, err)
		assert.Equal(t, "SAIN\n", string(data))
	})

	t.Run("MissingOnRead", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "state/cache.json", mock.Anything).
			Return(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}, nil)

		b := NewObjectBackend(client, "bucket", "state")
		_, err := b.Read(context.Background(), "cache.json")
		assert.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("OtherError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "state/cache.json", mock.Anything).
			Return(nil, errors.New("connection refused"))

		b := NewObjectBackend(client, "bucket", "state")
		_, err := b.Read(context.Background(), "cache.json")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotExist)
	})
}

func TestObjectBackend_EnsureBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)

	b := NewObjectBackend(client, "bucket", "state")
	require.NoError(t, b.EnsureBucket(context.Background()))
	client.AssertNumberOfCalls(t, "MakeBucket", 1)
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	primary := NewFileBackend(afero.NewMemMapFs(), "/state")

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "state/mods.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"restored":true}`))), nil)
	client.On("PutObject", mock.Anything, "bucket", "state/mods.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("offline"))

	m := NewMirror(primary, NewObjectBackend(client, "bucket", "state"), zap.NewNop())

	// Primary missing: falls back to the bucket copy.
	data, err := m.Read(ctx, "mods.json")
	require.NoError(t, err)
	assert.Equal(t, `{"restored":true}`, string(data))

	// Secondary write failure does not fail the write.
	require.NoError(t, m.Write(ctx, "mods.json", []byte(`{}`)))
	data, err = m.Read(ctx, "mods.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
