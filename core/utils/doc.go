// Package utils provides common utility functions for the mod-manager application.
// It includes an insertion-ordered map with JSON support and type conversion
// helpers that don't fit into domain-specific packages.
package utils
