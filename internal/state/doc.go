// Package state shares API health between the background poller and the UI.
//
// The poller is the single writer: after each reachability check it calls
// Update with the measured latency and, when refreshed, the species catalog.
// The UI reads copies through Snapshot on its own refresh tick.
//
// A failed poll keeps the last good data and only records the error and
// bumps ConsecutiveFailures, so the UI can keep showing the catalog while
// reporting "offline" once two polls in a row have failed:
//
//	store := &state.Store{}
//	store.Update(&state.Health{Latency: rtt, CheckedAt: time.Now()}, types, nil)
//	store.Update(nil, nil, err)
//	snap := store.Snapshot() // snap.Types still set, snap.LastError == err
//
// The zero Store is ready to use. Snapshots never share slices or error
// values with the store.
package state
