package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/pawpal/internal/kv"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "prefs")
}

// Kind describes one preference record: where it lives, which schema
// version this binary writes, and what to use when nothing valid is stored.
type Kind[T any] struct {
	Key     string
	Version int
	Default func() T
	// Normalize, when set, is applied to every loaded or written value.
	Normalize func(T) T
}

func (k Kind[T]) normalize(v T) T {
	if k.Normalize == nil {
		return v
	}
	return k.Normalize(v)
}

type recordHeader struct {
	Version     int    `json:"version"`
	LastUpdated *int64 `json:"lastUpdated,omitempty"`
}

// Store keeps an in-memory snapshot of one versioned record and writes
// changes through to a kv.Store. Writes are serialized; last write wins.
type Store[T any] struct {
	kind    Kind[T]
	backend kv.Store
	now     func() time.Time

	writeMu sync.Mutex

	mu      sync.RWMutex
	value   T
	updated time.Time
}

// Open loads kind's record from backend. Records that fail to decode or
// carry a newer schema version are logged and replaced by the default.
// Only backend failures are returned.
func Open[T any](ctx context.Context, backend kv.Store, kind Kind[T]) (*Store[T], error) {
	s := &Store[T]{
		kind:    kind,
		backend: backend,
		now:     time.Now,
		value:   kind.normalize(kind.Default()),
	}

	data, ok, err := backend.Get(ctx, kind.Key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind.Key, err)
	}
	if !ok {
		return s, nil
	}

	value, updated, err := decodeRecord(kind, data)
	if err != nil {
		logger().Warn("ignoring stored preference", "key", kind.Key, "error", err)
		return s, nil
	}
	s.value = value
	s.updated = updated
	return s, nil
}

func decodeRecord[T any](kind Kind[T], data []byte) (T, time.Time, error) {
	var zero T
	var header recordHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return zero, time.Time{}, fmt.Errorf("decode record: %w", err)
	}
	if header.Version > kind.Version {
		return zero, time.Time{}, fmt.Errorf("record version %d is newer than %d", header.Version, kind.Version)
	}

	// A current record is complete; older ones may lack newer fields, which
	// keep their defaults.
	var value T
	if header.Version < kind.Version {
		value = kind.Default()
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, time.Time{}, fmt.Errorf("decode payload: %w", err)
	}

	var updated time.Time
	if header.LastUpdated != nil {
		updated = time.UnixMilli(*header.LastUpdated)
	}
	return kind.normalize(value), updated, nil
}

func encodeRecord[T any](kind Kind[T], value T, updated time.Time) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("payload for %s is not an object: %w", kind.Key, err)
	}

	fields["version"], _ = json.Marshal(kind.Version)
	fields["lastUpdated"], _ = json.Marshal(updated.UnixMilli())
	return json.Marshal(fields)
}

// Key returns the storage key of the record.
func (s *Store[T]) Key() string {
	return s.kind.Key
}

// Get returns the current snapshot. Slices inside the value are shared with
// the store and must not be modified.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// LastUpdated reports when the record was last written; zero if never.
func (s *Store[T]) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// Set replaces the record.
func (s *Store[T]) Set(ctx context.Context, value T) error {
	return s.Update(ctx, func(T) T { return value })
}

// Update applies fn to the current value and persists the result. The
// snapshot only changes once the write succeeds.
func (s *Store[T]) Update(ctx context.Context, fn func(T) T) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.kind.normalize(fn(s.Get()))
	now := s.now()

	data, err := encodeRecord(s.kind, next, now)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.kind.Key, data); err != nil {
		return fmt.Errorf("save %s: %w", s.kind.Key, err)
	}

	s.mu.Lock()
	s.value = next
	s.updated = time.UnixMilli(now.UnixMilli())
	s.mu.Unlock()
	return nil
}

// Clear deletes the record and resets the snapshot to the default.
func (s *Store[T]) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.backend.Remove(ctx, s.kind.Key); err != nil {
		return fmt.Errorf("clear %s: %w", s.kind.Key, err)
	}

	s.mu.Lock()
	s.value = s.kind.normalize(s.kind.Default())
	s.updated = time.Time{}
	s.mu.Unlock()
	return nil
}
