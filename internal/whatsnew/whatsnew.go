// Package whatsnew decides when to show the latest changelog entry.
package whatsnew

import (
	"context"

	"github.com/five82/pawpal/internal/changelog"
	"github.com/five82/pawpal/internal/version"
)

// SeenStore persists the newest version the user dismissed.
// *prefs.LastSeenStore satisfies it.
type SeenStore interface {
	Get() string
	Set(ctx context.Context, version string) error
}

// Checker compares the latest changelog entry against the last seen version.
type Checker struct {
	latest *changelog.Entry
	seen   SeenStore
}

// New parses changelogText once and returns a Checker backed by seen.
func New(changelogText string, seen SeenStore) *Checker {
	return &Checker{latest: changelog.ParseLatest(changelogText), seen: seen}
}

// Latest returns the newest changelog entry, or nil when there is none.
func (c *Checker) Latest() *changelog.Entry {
	return c.latest
}

// Pending returns the latest entry when it has not been seen yet.
func (c *Checker) Pending() (*changelog.Entry, bool) {
	if c.latest == nil {
		return nil, false
	}
	lastSeen := c.seen.Get()
	if lastSeen == "" || version.IsNewer(lastSeen, c.latest.Version) {
		return c.latest, true
	}
	return nil, false
}

// MarkSeen records the latest entry's version. Without an entry it does
// nothing.
func (c *Checker) MarkSeen(ctx context.Context) error {
	if c.latest == nil {
		return nil
	}
	return c.seen.Set(ctx, c.latest.Version)
}
