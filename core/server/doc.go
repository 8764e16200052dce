// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber app; this package only defines the settings it
// reads: the listen port, the API key enforced by the auth middleware and the
// optional list of features to mount.
package server
