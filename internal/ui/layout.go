package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width to show the detail pane beside lists.
	LayoutSplitWidth = 90

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Listing limits.
const (
	// ExplorePageSize is the number of animals requested per page.
	ExplorePageSize = 25

	// StatusLogLines is the number of log lines read for the status view.
	StatusLogLines = 200
)

// Timing constants.
const (
	// RequestTimeout bounds every API call started from the UI.
	RequestTimeout = 15 * time.Second

	// ToastDuration is how long an error toast stays visible.
	ToastDuration = 6 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
