package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawpal/internal/apierror"
	"github.com/five82/pawpal/internal/logtail"
)

func (m Model) handleStatusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Reload) {
		return m, m.refreshStatusCmd()
	}
	return m, nil
}

// renderStatus shows API health, storage details and the log tail.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	snap := m.snapshot

	var b strings.Builder
	field := func(label, value string, valueStyle func(...string) string) {
		b.WriteString(styles.MutedText.Render(padRight(label, 16)))
		b.WriteString(valueStyle(value))
		b.WriteString("\n")
	}

	switch {
	case snap.IsOffline():
		field("API", "offline", styles.DangerText.Render)
	case snap.HasHealth:
		field("API", "reachable", styles.SuccessText.Render)
	case snap.LastError != nil:
		field("API", "error", styles.WarningText.Render)
	default:
		field("API", "checking "+m.spinner.View(), styles.WarningText.Render)
	}
	if m.config != nil {
		field("Endpoint", m.config.APIURL, styles.Text.Render)
		auth := "anonymous"
		if m.config.HasCredentials() {
			auth = "client credentials"
		}
		field("Auth", auth, styles.Text.Render)
	}
	if snap.HasHealth {
		field("Latency", snap.Health.Latency.Round(time.Millisecond).String(), styles.InfoText.Render)
		field("Last check", formatAgo(snap.Health.CheckedAt, m.now()), styles.Text.Render)
	}
	failureStyle := styles.Text.Render
	if snap.ConsecutiveFailures > 0 {
		failureStyle = styles.WarningText.Render
	}
	field("Failures", fmt.Sprintf("%d", snap.ConsecutiveFailures), failureStyle)
	if snap.LastError != nil {
		field("Last error", truncate(apierror.FormatMessage(snap.LastError), max(m.width-22, 20)), styles.DangerText.Render)
	}
	field("Species", fmt.Sprintf("%d known", len(snap.Types)), styles.Text.Render)

	b.WriteString("\n")
	field("Storage", m.storageDriver, styles.Text.Render)
	if m.config != nil {
		field("Database", truncateMiddle(m.config.DatabasePath(), max(m.width-22, 20)), styles.Text.Render)
		field("Log file", truncateMiddle(m.config.LogPath(), max(m.width-22, 20)), styles.Text.Render)
	}
	switch {
	case m.storedKeysErr != nil:
		field("Records", "unreadable: "+m.storedKeysErr.Error(), styles.DangerText.Render)
	case m.storedKeys != nil:
		names := make([]string, 0, len(m.storedKeys))
		for _, k := range m.storedKeys {
			names = append(names, strings.TrimPrefix(k, "@pawpal/"))
		}
		summary := fmt.Sprintf("%d saved", len(names))
		if len(names) > 0 {
			summary += " (" + strings.Join(names, ", ") + ")"
		}
		field("Records", truncate(summary, max(m.width-22, 20)), styles.Text.Render)
	}
	if m.prefs != nil {
		field("Favorites", fmt.Sprintf("%d", m.prefs.Favorites.Len()), styles.Text.Render)
	}
	if m.version != "" {
		field("Version", m.version, styles.Text.Render)
	}

	summary := strings.TrimRight(b.String(), "\n")
	summaryLines := strings.Count(summary, "\n") + 1

	var logs string
	logRows := height - summaryLines - 5
	if logRows > 0 {
		logs = "\n\n" + styles.AccentText.Bold(true).Render("Recent log") + "\n" + m.renderLogTail(logRows)
	}
	return m.renderTitledBox("Status", summary+logs, m.width, height, true)
}

// renderLogTail renders the last rows log lines, level-colored.
func (m Model) renderLogTail(rows int) string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render("cannot read log: " + m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return styles.FaintText.Render("(empty)")
	}
	lines := m.logLines
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	width := max(m.width-4, 20)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, m.formatLogLine(line, width))
	}
	return strings.Join(out, "\n")
}

func (m Model) formatLogLine(line logtail.Line, width int) string {
	styles := m.theme.Styles()
	if !line.Parsed() {
		return styles.MutedText.Render(truncate(line.Raw, width))
	}
	ts := line.Time.Local().Format("15:04:05")
	level := padRight(line.Level, 5)

	attrs := make([]string, 0, len(line.Attrs))
	for _, a := range line.Attrs {
		attrs = append(attrs, a.Key+"="+a.Value)
	}
	rest := truncate(joinNonEmpty(" ", line.Message, strings.Join(attrs, " ")), max(width-16, 10))

	return styles.FaintText.Render(ts) + " " +
		styles.LevelStyle(line.Level).Render(level) + " " +
		styles.Text.Render(rest)
}
