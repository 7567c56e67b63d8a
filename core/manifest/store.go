package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mod-manager/core/store"
)

// Store loads and saves the manifest document.
type Store struct {
	backend store.Backend
	name    string
}

// NewStore creates a manifest store for the named document.
func NewStore(backend store.Backend, name string) *Store {
	return &Store{backend: backend, name: name}
}

// Name returns the document name.
func (s *Store) Name() string {
	return s.name
}

// Load reads and decodes the manifest.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	data, err := s.backend.Read(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return Decode(data)
}

// Save encodes and writes the manifest.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, s.name, data); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// Decode parses a manifest document.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.normalize()
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Encode renders a manifest document with 4-space indentation.
func Encode(m *Manifest) ([]byte, error) {
	m.normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
