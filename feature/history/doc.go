// Package history records reconciliation runs in a database.
//
// Each run is stored as a RunRecord (target, catalog source, counts, timing)
// with one RunEntry per evaluated mod. Records are written in a single
// transaction so a run is either fully recorded or absent.
//
// # Schema
//
// Migrate creates the run_records and run_entries tables. Check compares the
// live tables against the models and reports missing columns, which catches a
// shared MySQL history written by an older build.
//
// # Usage
//
//	rec := history.NewRecorder(db, log)
//	if err := rec.Migrate(ctx); err != nil { ... }
//	if err := rec.Record(ctx, plan); err != nil { ... }
//	runs, err := rec.Recent(ctx, 10)
package history
