// Package logger builds the zap logger shared by every command.
//
// Level picks the preset: debug gets zap's development config (caller info,
// readable timestamps), anything else the production config. Format selects
// console or json encoding. Output always goes to stderr, leaving stdout to the
// console and report writers.
//
// Two helpers scope a logger to a unit of work:
//
//	l := logger.WithRunID(log, plan.RunID) // one reconciliation run
//	l := logger.WithRayID(log, c)          // one status API request
package logger
