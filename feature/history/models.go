package history

import (
	"time"

	"mod-manager/core/reconcile"
)

// RunRecord is one reconciliation run.
type RunRecord struct {
	ID            uint       `gorm:"column:id;primaryKey" json:"-"`
	RunID         string     `gorm:"column:run_id;type:varchar(36);uniqueIndex" json:"run_id"`
	Target        string     `gorm:"column:target;type:varchar(64)" json:"target"`
	CatalogSource string     `gorm:"column:catalog_source;type:varchar(16)" json:"catalog_source"`
	CatalogDate   string     `gorm:"column:catalog_date;type:varchar(10)" json:"catalog_date"`
	Total         int        `gorm:"column:total" json:"total"`
	Downloadable  int        `gorm:"column:downloadable" json:"downloadable"`
	Skipped       int        `gorm:"column:skipped" json:"skipped"`
	UpToDate      int        `gorm:"column:up_to_date" json:"up_to_date"`
	Failures      int        `gorm:"column:failures" json:"failures"`
	Dirty         bool       `gorm:"column:dirty" json:"dirty"`
	StartedAt     time.Time  `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt    time.Time  `gorm:"column:finished_at" json:"finished_at"`
	Entries       []RunEntry `gorm:"foreignKey:RunRecordID" json:"entries,omitempty"`
}

// TableName returns the table name for RunRecord.
func (RunRecord) TableName() string {
	return "run_records"
}

// RunEntry is the outcome of one mod within a run.
type RunEntry struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"-"`
	RunRecordID uint   `gorm:"column:run_record_id;index" json:"-"`
	Section     string `gorm:"column:section;type:varchar(16)" json:"section"`
	Name        string `gorm:"column:name;type:varchar(255)" json:"name"`
	Version     string `gorm:"column:version;type:varchar(64)" json:"version"`
	State       string `gorm:"column:state;type:varchar(16)" json:"state"`
	Reason      string `gorm:"column:reason;type:varchar(32)" json:"reason,omitempty"`
	Dependency  string `gorm:"column:dependency;type:varchar(255)" json:"dependency,omitempty"`
	Download    string `gorm:"column:download;type:text" json:"download,omitempty"`
}

// TableName returns the table name for RunEntry.
func (RunEntry) TableName() string {
	return "run_entries"
}

// fromPlan converts a plan into a record with its entries.
func fromPlan(plan *reconcile.Plan) (RunRecord, []RunEntry) {
	rec := RunRecord{
		RunID:         plan.RunID,
		Target:        plan.Target,
		CatalogSource: plan.CatalogSource,
		CatalogDate:   plan.CatalogDate,
		Total:         plan.Summary.Total,
		Downloadable:  plan.Summary.Downloadable,
		Skipped:       plan.Summary.Skipped,
		UpToDate:      plan.Summary.UpToDate,
		Failures:      plan.Summary.Failures,
		Dirty:         plan.Dirty,
		StartedAt:     plan.StartedAt.UTC(),
		FinishedAt:    plan.FinishedAt.UTC(),
	}

	entries := make([]RunEntry, len(plan.Results))
	for i, r := range plan.Results {
		entries[i] = RunEntry{
			Section:    r.Section,
			Name:       r.Name,
			Version:    r.Version,
			State:      string(r.State),
			Reason:     string(r.Reason),
			Dependency: r.Dependency,
			Download:   r.Download,
		}
	}
	return rec, entries
}
