package prefs

import (
	"context"
	"strings"

	"github.com/five82/pawpal/internal/kv"
)

const (
	LastSeenVersionKey = "@pawpal/lastSeenVersion"
	lastSeenVersion    = 1
)

type lastSeenRecord struct {
	LastSeenVersion string `json:"lastSeenVersion"`
}

var lastSeenKind = Kind[lastSeenRecord]{
	Key:     LastSeenVersionKey,
	Version: lastSeenVersion,
	Default: func() lastSeenRecord { return lastSeenRecord{} },
	Normalize: func(r lastSeenRecord) lastSeenRecord {
		r.LastSeenVersion = strings.TrimSpace(r.LastSeenVersion)
		return r
	},
}

// LastSeenStore remembers the newest changelog version the user dismissed.
type LastSeenStore struct {
	store *Store[lastSeenRecord]
}

// OpenLastSeen loads the last-seen version record from backend.
func OpenLastSeen(ctx context.Context, backend kv.Store) (*LastSeenStore, error) {
	store, err := Open(ctx, backend, lastSeenKind)
	if err != nil {
		return nil, err
	}
	return &LastSeenStore{store: store}, nil
}

// Get returns the stored version, or "" when nothing was seen yet.
func (l *LastSeenStore) Get() string { return l.store.Get().LastSeenVersion }

func (l *LastSeenStore) Set(ctx context.Context, version string) error {
	return l.store.Set(ctx, lastSeenRecord{LastSeenVersion: version})
}

func (l *LastSeenStore) Clear(ctx context.Context) error { return l.store.Clear(ctx) }
