package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mod-manager/core/store"
	"mod-manager/core/utils"
)

// ErrNoCache is returned when a cached catalog was requested but none exists.
var ErrNoCache = errors.New("no cached catalog")

// Store loads and saves the catalog cache document.
type Store struct {
	backend store.Backend
	name    string
}

// NewStore creates a catalog cache store for the named document.
func NewStore(backend store.Backend, name string) *Store {
	return &Store{backend: backend, name: name}
}

// Load reads the cached catalog.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	data, err := s.backend.Read(ctx, s.name)
	if err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoCache, s.name)
		}
		return nil, fmt.Errorf("failed to load catalog cache: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog cache: %w", err)
	}
	if c.Tabs == nil {
		c.Tabs = utils.NewOrderedMap[*Entry]()
	}
	return &c, nil
}

// Save writes the catalog verbatim.
func (s *Store) Save(ctx context.Context, c *Catalog) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode catalog cache: %w", err)
	}
	if err := s.backend.Write(ctx, s.name, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save catalog cache: %w", err)
	}
	return nil
}

// Clear invalidates the cache.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Remove(ctx, s.name); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	return nil
}
