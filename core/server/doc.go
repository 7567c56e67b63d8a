// Package server holds the HTTP status server configuration.
//
// While the serve command handles startup, this package defines the
// configuration structure and its validation.
//
// # Configuration
//
// The Config struct defines the bind host and port, the API key, and the
// graceful shutdown timeout.
package server
