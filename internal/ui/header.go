package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasHealth && m.snapshot.LastError == nil {
		return styles.Header.Width(m.width).Render(
			bg.Render("pawpal", styles.Logo) + bg.Spaces(2) +
				bg.Render("Connecting...", styles.WarningText.Bold(true)),
		)
	}
	return styles.Header.Width(m.width).Render(m.buildStatusContent(styles, bg))
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot

	parts := []string{bg.Render("pawpal", styles.Logo)}

	// API indicator
	switch {
	case snap.IsOffline():
		parts = append(parts, bg.Render("● "+classifyConnectionError(snap.LastError), styles.DangerText))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("● RETRYING", styles.WarningText))
	default:
		label := "● ONLINE"
		if !compact && snap.HasHealth {
			label += " " + snap.Health.Latency.Round(time.Millisecond).String()
		}
		parts = append(parts, bg.Render(label, styles.SuccessText))
	}

	// Search summary
	if m.prefs != nil {
		species := m.prefs.Species.Get()
		if species == "" {
			species = "Any"
		}
		parts = append(parts, bg.Render("Species:", styles.MutedText)+bg.Space()+bg.Render(species, styles.Text))

		if loc := m.prefs.Location.Get(); loc.IsSet() {
			where := fmt.Sprintf("%s (%d mi)", truncate(loc.Location, 24), loc.Distance)
			parts = append(parts, bg.Render("Near:", styles.MutedText)+bg.Space()+bg.Render(where, styles.Text))
		}
		if !compact {
			parts = append(parts,
				bg.Render("Favorites:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", m.prefs.Favorites.Len()), styles.AccentText))
		}
	}

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	return bg.Join(parts, "  ")
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	timeSince := m.now().Sub(m.lastUpdated)
	timeStr := m.lastUpdated.Format("15:04:05")

	if timeSince < time.Minute {
		timeStr += " (now)"
	} else if timeSince < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	} else if timeSince < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "(401)"), strings.Contains(msg, "(403)"):
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the view tabs followed by key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tabs := make([]string, 0, viewCount)
	for v := range View(viewCount) {
		label := fmt.Sprintf("%d %s", int(v)+1, viewTitles[v])
		if v == m.currentView {
			tabs = append(tabs, bg.Render(label, styles.AccentText.Bold(true).Underline(true)))
		} else {
			tabs = append(tabs, bg.Render(label, styles.FaintText))
		}
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewFavorites:
		commands = []cmd{{"j/k", "Move"}, {"x", "Remove"}, {"C", "Clear"}}
	case ViewSettings:
		commands = []cmd{{"enter", "Edit"}, {"←/→", "Cycle"}, {"T", "Theme"}}
	case ViewStatus:
		commands = []cmd{{"r", "Reload log"}}
	case ViewWhatsNew:
		commands = []cmd{{"j/k", "Scroll"}, {"esc", "Back"}}
	default:
		if m.explore.detail {
			commands = []cmd{{"j/k", "Scroll"}, {"f", "Favorite"}, {"esc", "Back"}}
		} else {
			commands = []cmd{{"enter", "Details"}, {"f", "Favorite"}, {"n/p", "Page"}, {"r", "Reload"}}
		}
	}
	commands = append(commands, cmd{"?", "Help"}, cmd{"Q", "Quit"})

	hints := make([]string, 0, len(commands))
	for _, c := range commands {
		hints = append(hints, bg.Render(c.key, styles.WarningText)+bg.Space()+bg.Render(c.desc, styles.MutedText))
	}

	line := bg.Join(tabs, "  ") + bg.Spaces(3) + bg.Join(hints, "  ")
	if lipgloss.Width(line) > m.width && m.width < LayoutCompactWidth {
		line = bg.Join(tabs, " ")
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(line)
}

// renderFooter shows the error toast, or paging info when there is none.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.toast != "" {
		msg := truncate(m.toast, max(m.width-6, 10))
		return styles.Footer.Width(m.width).Render(
			bg.Render("!", styles.DangerText.Bold(true)) + bg.Space() + bg.Render(msg, styles.DangerText))
	}

	var info string
	if m.currentView == ViewExplore && m.explore.loaded {
		p := m.explore.pagination
		info = fmt.Sprintf("%d animals", p.TotalCount)
		if p.TotalPages > 0 {
			info += fmt.Sprintf(" · page %d of %d", max(p.CurrentPage, m.explore.page), p.TotalPages)
		}
		if m.prefs != nil {
			order := m.prefs.Sort.Get().Effective(m.prefs.Location.Get().IsSet())
			info += " · " + order.Label()
		}
	}
	return styles.Footer.Width(m.width).Render(bg.Render(info, styles.FaintText))
}
