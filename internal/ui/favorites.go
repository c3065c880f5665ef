package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawpal/internal/prefs"
)

func (m Model) favorites() []prefs.Favorite {
	if m.prefs == nil {
		return nil
	}
	return m.prefs.Favorites.List()
}

func (m Model) selectedFavorite() *prefs.Favorite {
	favs := m.favorites()
	if m.favSelected < 0 || m.favSelected >= len(favs) {
		return nil
	}
	return &favs[m.favSelected]
}

func (m *Model) clampFavoriteSelection() {
	n := len(m.favorites())
	if m.favSelected >= n {
		m.favSelected = n - 1
	}
	if m.favSelected < 0 {
		m.favSelected = 0
	}
}

// handleFavoritesKey processes keyboard input for the favorites view.
func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.favorites())

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.favSelected < count-1 {
			m.favSelected++
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.Up):
		if m.favSelected > 0 {
			m.favSelected--
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.Top):
		m.favSelected = 0
		m.updateDetailViewport()
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.favSelected = count - 1
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()

	case key.Matches(msg, m.keys.Remove):
		if fav := m.selectedFavorite(); fav != nil {
			return m, m.removeFavoriteCmd(fav.ID)
		}

	case key.Matches(msg, m.keys.ClearAll):
		if count > 0 {
			m.modal = confirmModal{
				title:     "Clear favorites",
				prompt:    fmt.Sprintf("Remove all %d favorites?", count),
				onConfirm: m.clearFavoritesCmd(),
			}
		}
	}
	return m, nil
}

// renderFavorites renders saved animals, newest first.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	favs := m.favorites()

	if len(favs) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No favorites yet. Press f on an animal in Explore."))
	}

	width := m.listWidth() - 2
	rows := max(height-2, 1)
	start := 0
	if m.favSelected >= rows {
		start = m.favSelected - rows + 1
	}
	end := min(start+rows, len(favs))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := favs[i]
		added := formatAgo(f.AddedAt, m.now())
		nameWidth := max(width-len([]rune(added))-len([]rune(f.Species))-4, 8)
		line := truncate(padRight(truncate(f.Name, nameWidth), nameWidth)+" "+f.Species+" "+added, width)
		if i == m.favSelected {
			lines = append(lines, styles.Selected.Width(width).Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}

	title := fmt.Sprintf("Favorites · %d", len(favs))
	list := m.renderTitledBox(title, strings.Join(lines, "\n"), m.listWidth(), height, true)
	if !m.splitLayout() {
		return list
	}
	detail := m.renderTitledBox("Details", m.detailViewport.View(), m.detailWidth(), height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) favoriteDetail(f prefs.Favorite) string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.WarningText.Render("★ ") + styles.Text.Bold(true).Render(f.Name))
	if f.Species != "" {
		b.WriteString("  " + styles.SpeciesStyle(f.Species).Render(f.Species))
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(styles.MutedText.Render(padRight(label, 12)) + styles.Text.Render(value) + "\n")
	}
	field("Breed", f.Breed)
	if !f.AddedAt.IsZero() {
		field("Saved", f.AddedAt.Local().Format("2006-01-02 15:04")+" ("+formatAgo(f.AddedAt, m.now())+")")
	}
	field("Shelter", f.OrganizationID)
	field("Link", f.URL)
	field("Photo", f.PhotoURL)
	return b.String()
}
