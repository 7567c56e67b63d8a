package store

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_WriteRead(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	b := NewFileBackend(fsys, "/state")

	require.NoError(t, b.Write(ctx, "mods.json", []byte(`{"a":1}`)))

	data, err := b.Read(ctx, "mods.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// Overwrite replaces the whole document.
	require.NoError(t, b.Write(ctx, "mods.json", []byte(`{}`)))
	data, err = b.Read(ctx, "mods.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFileBackend_PreservesMode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing os.FileMode
		want     os.FileMode
	}{
		{"new file", 0, DefaultMode},
		{"world readable", 0o644, 0o644},
		{"group only", 0o640, 0o640},
		{"private", 0o600, 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			b := NewFileBackend(fsys, "/state")
			if tt.existing != 0 {
				require.NoError(t, afero.WriteFile(fsys, "/state/mods.json", []byte(`{}`), tt.existing))
				require.NoError(t, fsys.Chmod("/state/mods.json", tt.existing))
			}

			require.NoError(t, b.Write(ctx, "mods.json", []byte(`{"a":1}`)))

			info, err := fsys.Stat("/state/mods.json")
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Mode().Perm())
		})
	}
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	b := NewFileBackend(fsys, "/state")

	require.NoError(t, b.Write(ctx, "cache.json", []byte("x")))
	require.NoError(t, b.Write(ctx, "cache.json", []byte("y")))

	entries, err := afero.ReadDir(fsys, "/state")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache.json", entries[0].Name())
}

func TestFileBackend_Missing(t *testing.T) {
	ctx := context.Background()
	b := NewFileBackend(afero.NewMemMapFs(), "/state")

	_, err := b.Read(ctx, "nope.json")
	assert.ErrorIs(t, err, ErrNotExist)

	assert.NoError(t, b.Remove(ctx, "nope.json"))
}

func TestFileBackend_AbsoluteNameIgnoresDir(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	b := NewFileBackend(fsys, "/state")

	require.NoError(t, b.Write(ctx, "/elsewhere/list.txt", []byte("a\n")))
	ok, err := afero.Exists(fsys, "/elsewhere/list.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, b.Remove(ctx, "/elsewhere/list.txt"))
	ok, _ = afero.Exists(fsys, "/elsewhere/list.txt")
	assert.False(t, ok)
}
