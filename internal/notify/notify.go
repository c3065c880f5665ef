// Package notify decides whether an error or warning set is new enough to
// show the user again.
package notify

import (
	"slices"
	"sync"

	"github.com/five82/pawpal/internal/apierror"
)

// Gate remembers the last error and warning set that were shown. The zero
// value is ready to use and safe for concurrent use.
type Gate struct {
	mu       sync.Mutex
	lastErr  error
	lastText string
	warnings []string
}

// ShouldShowError reports whether err differs from the last shown error. The
// same value or the same formatted text counts as a repeat. A nil err clears
// the memory so that a later recurrence is shown again.
func (g *Gate) ShouldShowError(err error) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err == nil {
		g.lastErr = nil
		g.lastText = ""
		return false
	}
	text := apierror.FormatMessage(err)
	if g.lastErr != nil && (sameError(g.lastErr, err) || g.lastText == text) {
		return false
	}
	g.lastErr = err
	g.lastText = text
	return true
}

// ShouldShowWarnings reports whether warnings differ, ignoring order, from
// the last shown set. An empty set clears the memory.
func (g *Gate) ShouldShowWarnings(warnings []string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(warnings) == 0 {
		g.warnings = nil
		return false
	}
	sorted := slices.Clone(warnings)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if g.warnings != nil && slices.Equal(g.warnings, sorted) {
		return false
	}
	g.warnings = sorted
	return true
}

// Reset forgets everything shown so far.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastErr = nil
	g.lastText = ""
	g.warnings = nil
}

// sameError compares identity without panicking on uncomparable dynamic types.
func sameError(a, b error) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
