// Package app is the composition root for pawpal.
//
// Open loads configuration, picks the preference backend and builds the API
// client. The interactive entry point, Run, adds file logging, starts the
// background poller and hands everything to the TUI. The CLI subcommands
// reuse Open but log warnings to stderr instead.
//
// # Storage
//
// Preferences live in bbolt (default) or SQLite under the configured data
// directory. If the database cannot be opened pawpal keeps running on an
// in-memory store and logs a warning; nothing is persisted for that session.
//
// # Polling
//
// The poller pings the API on each tick and loads the species catalog the
// first time the API answers. Failures are recorded in state.Store and back
// off exponentially:
//
//	wait = min(interval * 2^failures, max(30s, 4*interval))
//
// The loop only stops when the context is cancelled.
package app
