package history

import (
	"context"
	"errors"
	"fmt"

	"mod-manager/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Recorder stores and queries run history.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder on an open database.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Migrate creates or updates the history tables.
func (r *Recorder) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&RunRecord{}, &RunEntry{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// Record stores a plan and its results in one transaction.
func (r *Recorder) Record(ctx context.Context, plan *reconcile.Plan) error {
	rec, entries := fromPlan(plan)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].RunRecordID = rec.ID
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("failed to insert run entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Recorded run", zap.String("run_id", rec.RunID), zap.Int("entries", len(entries)))
	return nil
}

// Recent returns the latest runs, newest first, without entries.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []RunRecord
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its entries.
func (r *Recorder) Get(ctx context.Context, runID string) (*RunRecord, error) {
	var run RunRecord
	err := r.db.WithContext(ctx).Preload("Entries").Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return &run, nil
}
