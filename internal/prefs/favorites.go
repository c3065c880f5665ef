package prefs

import (
	"context"
	"slices"
	"time"

	"github.com/five82/pawpal/internal/kv"
)

const (
	FavoritesKey     = "@pawpal/favorites"
	favoritesVersion = 1
)

// Favorite is a saved animal, denormalized so the list renders offline.
type Favorite struct {
	ID             int64     `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Species        string    `json:"species" yaml:"species"`
	Breed          string    `json:"breed,omitempty" yaml:"breed,omitempty"`
	PhotoURL       string    `json:"photoUrl,omitempty" yaml:"photoUrl,omitempty"`
	URL            string    `json:"url,omitempty" yaml:"url,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
	AddedAt        time.Time `json:"addedAt" yaml:"addedAt"`
}

type favoritesRecord struct {
	Favorites []Favorite `json:"favorites"`
}

var favoritesKind = Kind[favoritesRecord]{
	Key:     FavoritesKey,
	Version: favoritesVersion,
	Default: func() favoritesRecord { return favoritesRecord{Favorites: []Favorite{}} },
	Normalize: func(r favoritesRecord) favoritesRecord {
		if r.Favorites == nil {
			r.Favorites = []Favorite{}
		}
		return r
	},
}

// Favorites is the saved-animals list.
type Favorites struct {
	store *Store[favoritesRecord]
	now   func() time.Time
}

// OpenFavorites loads the favorites record from backend.
func OpenFavorites(ctx context.Context, backend kv.Store) (*Favorites, error) {
	store, err := Open(ctx, backend, favoritesKind)
	if err != nil {
		return nil, err
	}
	return &Favorites{store: store, now: time.Now}, nil
}

// List returns a copy of the favorites, newest first.
func (f *Favorites) List() []Favorite {
	list := slices.Clone(f.store.Get().Favorites)
	slices.SortStableFunc(list, func(a, b Favorite) int {
		return b.AddedAt.Compare(a.AddedAt)
	})
	return list
}

// Len returns the number of favorites.
func (f *Favorites) Len() int {
	return len(f.store.Get().Favorites)
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id int64) bool {
	return indexOf(f.store.Get().Favorites, id) >= 0
}

// Add saves fav. Adding an existing id refreshes its details but keeps the
// original AddedAt.
func (f *Favorites) Add(ctx context.Context, fav Favorite) error {
	if fav.AddedAt.IsZero() {
		fav.AddedAt = f.now().UTC().Truncate(time.Millisecond)
	}
	return f.store.Update(ctx, func(r favoritesRecord) favoritesRecord {
		list := slices.Clone(r.Favorites)
		if i := indexOf(list, fav.ID); i >= 0 {
			fav.AddedAt = list[i].AddedAt
			list[i] = fav
		} else {
			list = append(list, fav)
		}
		return favoritesRecord{Favorites: list}
	})
}

// Remove deletes id. Removing a missing id is not an error.
func (f *Favorites) Remove(ctx context.Context, id int64) error {
	return f.store.Update(ctx, func(r favoritesRecord) favoritesRecord {
		return favoritesRecord{Favorites: slices.DeleteFunc(slices.Clone(r.Favorites), func(x Favorite) bool {
			return x.ID == id
		})}
	})
}

// Toggle adds fav when absent and removes it otherwise. It reports whether
// fav is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, fav Favorite) (bool, error) {
	if fav.AddedAt.IsZero() {
		fav.AddedAt = f.now().UTC().Truncate(time.Millisecond)
	}
	var added bool
	err := f.store.Update(ctx, func(r favoritesRecord) favoritesRecord {
		list := slices.Clone(r.Favorites)
		if i := indexOf(list, fav.ID); i >= 0 {
			added = false
			return favoritesRecord{Favorites: slices.Delete(list, i, i+1)}
		}
		added = true
		return favoritesRecord{Favorites: append(list, fav)}
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Clear removes every favorite.
func (f *Favorites) Clear(ctx context.Context) error {
	return f.store.Clear(ctx)
}

// LastUpdated reports the time of the last write.
func (f *Favorites) LastUpdated() time.Time {
	return f.store.LastUpdated()
}

func indexOf(list []Favorite, id int64) int {
	return slices.IndexFunc(list, func(x Favorite) bool { return x.ID == id })
}
