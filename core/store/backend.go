package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when the named document does not exist.
var ErrNotExist = errors.New("document does not exist")

// Backend reads and writes whole documents by name.
type Backend interface {
	// Read returns the document stored under name, or ErrNotExist.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the document stored under name.
	Write(ctx context.Context, name string, data []byte) error
	// Remove deletes the document. Removing a missing document is not an error.
	Remove(ctx context.Context, name string) error
}

// Config holds the locations of the state documents.
type Config struct {
	// ManifestPath is the manifest JSON document.
	ManifestPath string `mapstructure:"manifest_path" default:"mods.json"`
	// ModListPath is the user's plain-text mod list.
	ModListPath string `mapstructure:"modlist_path" default:"hubMods.txt"`
	// CachePath is the catalog cache JSON document.
	CachePath string `mapstructure:"cache_path" default:"cache.json"`
}
