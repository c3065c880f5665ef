package prefs

import (
	"context"
	"strings"
	"time"

	"github.com/five82/pawpal/internal/kv"
)

const (
	LocationKey     = "@pawpal/location"
	locationVersion = 1

	DefaultDistance = 100
	MinDistance     = 1
	MaxDistance     = 500
)

// Location is the search origin: a postcode or "city, state", plus a radius
// in miles.
type Location struct {
	Location string `json:"location"`
	Distance int    `json:"distance"`
}

// IsSet reports whether a search origin is configured.
func (l Location) IsSet() bool {
	return strings.TrimSpace(l.Location) != ""
}

// ClampDistance maps miles into the accepted range. Zero means unset and
// yields the default.
func ClampDistance(miles int) int {
	switch {
	case miles == 0:
		return DefaultDistance
	case miles < MinDistance:
		return MinDistance
	case miles > MaxDistance:
		return MaxDistance
	default:
		return miles
	}
}

var locationKind = Kind[Location]{
	Key:     LocationKey,
	Version: locationVersion,
	Default: func() Location { return Location{Distance: DefaultDistance} },
	Normalize: func(l Location) Location {
		l.Location = strings.TrimSpace(l.Location)
		l.Distance = ClampDistance(l.Distance)
		return l
	},
}

// LocationStore persists the search origin.
type LocationStore struct {
	store *Store[Location]
}

// OpenLocation loads the location record from backend.
func OpenLocation(ctx context.Context, backend kv.Store) (*LocationStore, error) {
	store, err := Open(ctx, backend, locationKind)
	if err != nil {
		return nil, err
	}
	return &LocationStore{store: store}, nil
}

func (l *LocationStore) Get() Location { return l.store.Get() }

func (l *LocationStore) LastUpdated() time.Time { return l.store.LastUpdated() }

// SetLocation stores loc and distance (clamped).
func (l *LocationStore) SetLocation(ctx context.Context, loc string, distance int) error {
	return l.store.Set(ctx, Location{Location: loc, Distance: distance})
}

func (l *LocationStore) Clear(ctx context.Context) error { return l.store.Clear(ctx) }
