// Package report exports a reconciliation plan as JSON, YAML or plain text.
package report
