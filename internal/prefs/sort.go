package prefs

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/five82/pawpal/internal/kv"
)

const (
	SortKey     = "@pawpal/sort"
	sortVersion = 1
)

// SortOrder is the API's sort parameter. A leading '-' reverses it.
type SortOrder string

const (
	SortRecent   SortOrder = "recent"
	SortOldest   SortOrder = "-recent"
	SortNearest  SortOrder = "distance"
	SortFarthest SortOrder = "-distance"
	SortRandom   SortOrder = "random"
)

// SortOrders lists every accepted order in cycling order.
var SortOrders = []SortOrder{SortRecent, SortOldest, SortNearest, SortFarthest, SortRandom}

// ParseSortOrder validates s. The empty string yields SortRecent.
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortRecent, nil
	}
	order := SortOrder(s)
	if !slices.Contains(SortOrders, order) {
		return "", fmt.Errorf("invalid sort %q (want one of recent, -recent, distance, -distance, random)", s)
	}
	return order, nil
}

// NeedsLocation reports whether the order is distance based.
func (o SortOrder) NeedsLocation() bool {
	return o == SortNearest || o == SortFarthest
}

// Effective returns the order to send to the API: distance orders fall back
// to SortRecent without a location.
func (o SortOrder) Effective(hasLocation bool) SortOrder {
	if o.NeedsLocation() && !hasLocation {
		return SortRecent
	}
	return o
}

// Next returns the following order in SortOrders, wrapping around.
func (o SortOrder) Next() SortOrder {
	i := slices.Index(SortOrders, o)
	return SortOrders[(i+1)%len(SortOrders)]
}

// Label is the human-readable name of the order.
func (o SortOrder) Label() string {
	switch o {
	case SortRecent:
		return "Newest"
	case SortOldest:
		return "Oldest"
	case SortNearest:
		return "Nearest"
	case SortFarthest:
		return "Farthest"
	case SortRandom:
		return "Random"
	default:
		return string(o)
	}
}

type sortRecord struct {
	Sort SortOrder `json:"sort"`
}

var sortKind = Kind[sortRecord]{
	Key:     SortKey,
	Version: sortVersion,
	Default: func() sortRecord { return sortRecord{Sort: SortRecent} },
	Normalize: func(r sortRecord) sortRecord {
		order, err := ParseSortOrder(string(r.Sort))
		if err != nil {
			logger().Warn("unknown sort order, using recent", "sort", r.Sort)
			order = SortRecent
		}
		return sortRecord{Sort: order}
	},
}

// SortStore persists the listing order.
type SortStore struct {
	store *Store[sortRecord]
}

// OpenSort loads the sort record from backend.
func OpenSort(ctx context.Context, backend kv.Store) (*SortStore, error) {
	store, err := Open(ctx, backend, sortKind)
	if err != nil {
		return nil, err
	}
	return &SortStore{store: store}, nil
}

func (s *SortStore) Get() SortOrder { return s.store.Get().Sort }

func (s *SortStore) LastUpdated() time.Time { return s.store.LastUpdated() }

// Set stores order after validating it.
func (s *SortStore) Set(ctx context.Context, order SortOrder) error {
	if _, err := ParseSortOrder(string(order)); err != nil {
		return err
	}
	return s.store.Set(ctx, sortRecord{Sort: order})
}

func (s *SortStore) Clear(ctx context.Context) error { return s.store.Clear(ctx) }
