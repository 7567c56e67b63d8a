package history

import (
	"fmt"

	"mod-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
}

// TableReport lists the problems of one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// Check compares the history tables with the models.
func (r *Recorder) Check() (*SchemaReport, error) {
	report := &SchemaReport{Matched: true, Tables: map[string]TableReport{}}

	for _, model := range []any{&RunRecord{}, &RunEntry{}} {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse history model: %w", err)
		}
		table := stmt.Schema.Table

		actual, err := database.GetTableColumns(r.db, table)
		if err != nil {
			return nil, err
		}

		tr := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tr.Status = "missing"
			report.Matched = false
			report.Tables[table] = tr
			continue
		}

		have := make(map[string]struct{}, len(actual))
		for _, col := range actual {
			have[col.Field] = struct{}{}
		}
		for _, name := range stmt.Schema.DBNames {
			if _, ok := have[name]; !ok {
				tr.MissingColumns = append(tr.MissingColumns, name)
				tr.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[table] = tr
	}

	return report, nil
}
