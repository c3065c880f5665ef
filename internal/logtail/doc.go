// Package logtail reads the end of pawpal's log file for the status view.
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) however large the log grows. Lines come back
// in file order; a missing file is not an error.
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//
// ParseLine splits a record written by slog's TextHandler
// ("time=... level=WARN msg=... key=value") into time, level, message and
// ordered attributes so the UI can color it. Anything else (panics, stack
// traces) comes back with only Raw set.
package logtail
