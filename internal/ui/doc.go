// Package ui implements the pawpal terminal interface with Bubble Tea.
//
// # Views
//
//   - Explore: paged search results using the stored species, location and
//     sort preferences, with a detail pane for the selected animal
//   - Favorites: saved animals, newest first
//   - Settings: location, distance, species, sort, theme and the what's-new
//     toggle; search preferences can be reset while keeping favorites
//   - Status: API reachability from state.Store, storage details and the
//     tail of pawpal's own log file
//   - What's New: the latest changelog entry. It opens on start when the
//     entry has not been seen, and any key dismisses it.
//
// # Event Flow
//
//  1. Run builds the Model and starts the program on the alternate screen
//  2. A tick reads state.Store snapshots written by the app poller
//  3. Searches, favorite changes and preference writes run as tea.Cmds,
//     each bounded by RequestTimeout
//  4. Failures become a footer toast; notify.Gate keeps a repeated error
//     from re-announcing itself
//
// # Key Bindings
//
//   - tab / shift+tab: cycle views; 1-5 jump to a view
//   - j/k, g/G: move; enter: details or edit; esc: close
//   - f: toggle favorite; n/p: next/previous page; r: reload
//   - x: remove favorite; C: clear favorites
//   - T: cycle theme; h or ?: help; Q or ctrl+c: quit
package ui
