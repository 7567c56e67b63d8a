package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Mirror reads from a primary backend and falls back to a secondary one when a
// document is missing. Writes and removals go to both; the primary is
// authoritative, so secondary failures are logged and swallowed.
type Mirror struct {
	primary   Backend
	secondary Backend
	logger    *zap.Logger
}

// NewMirror creates a mirrored backend.
func NewMirror(primary, secondary Backend, logger *zap.Logger) *Mirror {
	return &Mirror{primary: primary, secondary: secondary, logger: logger}
}

// Read returns the primary copy, or the secondary copy if the primary is missing.
func (m *Mirror) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := m.primary.Read(ctx, name)
	if err == nil || !errors.Is(err, ErrNotExist) {
		return data, err
	}

	data, serr := m.secondary.Read(ctx, name)
	if serr != nil {
		if !errors.Is(serr, ErrNotExist) {
			m.logger.Warn("Mirror read failed", zap.String("name", name), zap.Error(serr))
		}
		return nil, err
	}
	m.logger.Info("Restored document from mirror", zap.String("name", name))
	return data, nil
}

// Write writes the primary copy, then the secondary.
func (m *Mirror) Write(ctx context.Context, name string, data []byte) error {
	if err := m.primary.Write(ctx, name, data); err != nil {
		return err
	}
	if err := m.secondary.Write(ctx, name, data); err != nil {
		m.logger.Warn("Mirror write failed", zap.String("name", name), zap.Error(err))
	}
	return nil
}

// Remove removes both copies.
func (m *Mirror) Remove(ctx context.Context, name string) error {
	if err := m.primary.Remove(ctx, name); err != nil {
		return err
	}
	if err := m.secondary.Remove(ctx, name); err != nil {
		m.logger.Warn("Mirror remove failed", zap.String("name", name), zap.Error(err))
	}
	return nil
}
