package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawpal/internal/changelog"
)

func (m Model) handleWhatsNewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.whatsNewViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.whatsNewViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.whatsNewViewport.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.whatsNewViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.whatsNewViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.whatsNewViewport.GotoBottom()
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewExplore
	}
	return m, nil
}

func (m *Model) updateWhatsNewViewport() {
	if !m.ready {
		return
	}
	width := max(m.width-4, 10)
	m.whatsNewViewport.SetContent(lipgloss.NewStyle().Width(width).Render(m.renderEntry(m.whatsNewEntry)))
}

// renderEntry formats one changelog entry as section headings and bullets.
func (m Model) renderEntry(entry *changelog.Entry) string {
	styles := m.theme.Styles()
	if entry == nil || entry.Empty() {
		return styles.MutedText.Render("No release notes available")
	}

	var b strings.Builder
	heading := "Version " + entry.Version
	if entry.Date != "" {
		heading += "  " + styles.MutedText.Render(entry.Date)
	}
	b.WriteString(styles.Logo.Render(heading) + "\n")

	for _, section := range entry.Sections {
		b.WriteString("\n" + styles.AccentText.Bold(true).Render(section.Title) + "\n")
		for _, item := range section.Items {
			line := "  • " + item.Text
			if item.CommitHash != "" {
				line += styles.FaintText.Render(" (" + item.CommitHash + ")")
			}
			b.WriteString(styles.Text.Render(line) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderWhatsNew() string {
	title := "What's New"
	if m.whatsNewPending {
		title += " · press any key to continue"
	}
	return m.renderTitledBox(title, m.whatsNewViewport.View(), m.width, m.contentHeight(), true)
}
