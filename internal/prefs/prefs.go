// Package prefs persists user preferences.
//
// UI settings (theme, what's-new toggle) live in a TOML file next to the
// config. Search preferences and favorites are versioned JSON records in a
// kv.Store, one record per key, each with an in-memory snapshot.
package prefs

import (
	"context"
	"errors"

	"github.com/five82/pawpal/internal/kv"
)

// Set bundles every kv-backed preference store.
type Set struct {
	Favorites *Favorites
	Location  *LocationStore
	Sort      *SortStore
	Species   *SpeciesStore
	LastSeen  *LastSeenStore
}

// OpenSet opens every preference store on backend.
func OpenSet(ctx context.Context, backend kv.Store) (*Set, error) {
	favorites, err := OpenFavorites(ctx, backend)
	if err != nil {
		return nil, err
	}
	location, err := OpenLocation(ctx, backend)
	if err != nil {
		return nil, err
	}
	sortStore, err := OpenSort(ctx, backend)
	if err != nil {
		return nil, err
	}
	species, err := OpenSpecies(ctx, backend)
	if err != nil {
		return nil, err
	}
	lastSeen, err := OpenLastSeen(ctx, backend)
	if err != nil {
		return nil, err
	}
	return &Set{
		Favorites: favorites,
		Location:  location,
		Sort:      sortStore,
		Species:   species,
		LastSeen:  lastSeen,
	}, nil
}

// ClearSearch resets location, sort and species. Favorites and the
// last-seen version are kept.
func (s *Set) ClearSearch(ctx context.Context) error {
	return errors.Join(
		s.Location.Clear(ctx),
		s.Sort.Clear(ctx),
		s.Species.Clear(ctx),
	)
}
