package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/pawpal/internal/rescue"
	"github.com/five82/pawpal/internal/state"
)

const (
	defaultPollInterval = 60 * time.Second

	// maxBackoff caps retry delays for short intervals; longer intervals
	// back off to at most four times the base.
	maxBackoff = 30 * time.Second
)

// StartPoller launches a background goroutine that checks API health and
// keeps the species catalog fresh. It returns immediately. Failures back
// off exponentially and never stop the loop.
func StartPoller(ctx context.Context, store *state.Store, client rescue.Fetcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			_ = refresh(ctx, store, client)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// refresh runs one poll. The species catalog is only fetched while the store
// has none.
func refresh(ctx context.Context, store *state.Store, client rescue.Fetcher) error {
	latency, err := client.Ping(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		if ctx.Err() == nil {
			slog.Warn("health check failed", "error", err)
		}
		return err
	}

	var types []rescue.AnimalType
	if len(store.Snapshot().Types) == 0 {
		types, err = client.FetchTypes(ctx)
		if err != nil {
			store.Update(nil, nil, err)
			slog.Warn("types refresh failed", "error", err)
			return err
		}
		if types == nil {
			types = []rescue.AnimalType{}
		}
	}

	store.Update(&state.Health{Latency: latency, CheckedAt: time.Now()}, types, nil)
	return nil
}

// calculateBackoff doubles base once per consecutive failure, capped at
// the larger of maxBackoff and four times base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, 4*base)
	wait := base
	for range failures {
		wait *= 2
		if wait >= limit {
			return limit
		}
	}
	return wait
}
