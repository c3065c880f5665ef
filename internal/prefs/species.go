package prefs

import (
	"context"
	"strings"
	"time"

	"github.com/five82/pawpal/internal/kv"
)

const (
	SpeciesKey     = "@pawpal/species"
	speciesVersion = 1
)

type speciesRecord struct {
	Species string `json:"species"`
}

var speciesKind = Kind[speciesRecord]{
	Key:     SpeciesKey,
	Version: speciesVersion,
	Default: func() speciesRecord { return speciesRecord{} },
	Normalize: func(r speciesRecord) speciesRecord {
		r.Species = strings.TrimSpace(r.Species)
		return r
	},
}

// SpeciesStore persists the animal type filter. Empty means all types.
type SpeciesStore struct {
	store *Store[speciesRecord]
}

// OpenSpecies loads the species record from backend.
func OpenSpecies(ctx context.Context, backend kv.Store) (*SpeciesStore, error) {
	store, err := Open(ctx, backend, speciesKind)
	if err != nil {
		return nil, err
	}
	return &SpeciesStore{store: store}, nil
}

func (s *SpeciesStore) Get() string { return s.store.Get().Species }

func (s *SpeciesStore) LastUpdated() time.Time { return s.store.LastUpdated() }

func (s *SpeciesStore) Set(ctx context.Context, species string) error {
	return s.store.Set(ctx, speciesRecord{Species: species})
}

func (s *SpeciesStore) Clear(ctx context.Context) error { return s.store.Clear(ctx) }
