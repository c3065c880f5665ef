package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
)

func (m Model) canSearch() bool {
	return m.client != nil && m.prefs != nil
}

// startSearch requests page and invalidates any search still in flight.
func (m *Model) startSearch(page int) tea.Cmd {
	if !m.canSearch() {
		return nil
	}
	if page < 1 {
		page = 1
	}
	m.explore.seq++
	m.explore.loading = true
	return tea.Batch(m.searchCmd(m.explore.seq, page), m.spinner.Tick)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.explore.seq {
		return m, nil
	}
	m.explore.loading = false
	if msg.err != nil {
		m.showError(msg.err)
		return m, nil
	}
	m.gate.ShouldShowError(nil)

	var selectedID int64
	if a := m.selectedAnimal(); a != nil {
		selectedID = a.ID
	}

	m.explore.animals = msg.res.Animals
	m.explore.pagination = msg.res.Pagination
	m.explore.page = msg.page
	m.explore.loaded = true

	// keep the cursor on the same animal after a reload
	m.explore.selected = 0
	for i, a := range m.explore.animals {
		if a.ID == selectedID {
			m.explore.selected = i
			break
		}
	}
	m.updateDetailViewport()
	return m, nil
}

func (m Model) selectedAnimal() *rescue.Animal {
	if m.explore.selected < 0 || m.explore.selected >= len(m.explore.animals) {
		return nil
	}
	return &m.explore.animals[m.explore.selected]
}

// favoriteFromAnimal captures what the favorites list shows without a lookup.
func favoriteFromAnimal(a rescue.Animal) prefs.Favorite {
	return prefs.Favorite{
		ID:             a.ID,
		Name:           a.Name,
		Species:        a.SpeciesLabel(),
		Breed:          a.Breeds.Label(),
		PhotoURL:       a.PrimaryPhoto(),
		URL:            a.URL,
		OrganizationID: a.OrganizationID,
	}
}

// handleExploreKey processes keyboard input for the explore view.
func (m Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.explore.animals)

	if m.explore.detail {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.explore.detail = false
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.detailViewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.detailViewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.detailViewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.detailViewport.HalfPageUp()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.explore.selected < count-1 {
			m.explore.selected++
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.Up):
		if m.explore.selected > 0 {
			m.explore.selected--
			m.updateDetailViewport()
		}
	case key.Matches(msg, m.keys.Top):
		m.explore.selected = 0
		m.updateDetailViewport()
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.explore.selected = count - 1
			m.updateDetailViewport()
		}

	case key.Matches(msg, m.keys.Open):
		a := m.selectedAnimal()
		if a == nil {
			return m, nil
		}
		m.explore.detail = true
		m.updateDetailViewport()
		if id := strings.TrimSpace(a.OrganizationID); id != "" && m.organizations[id] == nil && m.client != nil {
			return m, m.fetchOrganizationCmd(id)
		}

	case key.Matches(msg, m.keys.ToggleFavorite):
		if a := m.selectedAnimal(); a != nil && m.prefs != nil {
			return m, m.toggleFavoriteCmd(favoriteFromAnimal(*a))
		}

	case key.Matches(msg, m.keys.NextPage):
		if !m.explore.loading && m.explore.pagination.HasNext() {
			cmd := m.startSearch(m.explore.page + 1)
			return m, cmd
		}
	case key.Matches(msg, m.keys.PrevPage):
		if !m.explore.loading && m.explore.page > 1 {
			cmd := m.startSearch(m.explore.page - 1)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Reload):
		cmd := m.startSearch(m.explore.page)
		return m, cmd
	}
	return m, nil
}

// splitLayout reports whether lists and details sit side by side.
func (m Model) splitLayout() bool {
	return m.width >= LayoutSplitWidth
}

func (m Model) listWidth() int {
	if !m.splitLayout() {
		return m.width
	}
	if m.width >= LayoutExtraWideWidth {
		return m.width * 35 / 100
	}
	return m.width * 45 / 100
}

func (m Model) detailWidth() int {
	if !m.splitLayout() {
		return m.width
	}
	return m.width - m.listWidth()
}

// renderExplore renders the search results with a detail pane.
func (m Model) renderExplore() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if !m.canSearch() {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Search is unavailable"))
	}
	if !m.explore.loaded {
		msg := m.spinner.View() + " Fetching animals..."
		if !m.explore.loading {
			msg = "No results yet, press r to retry"
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	list := m.renderTitledBox(m.exploreTitle(), m.renderAnimalList(m.listWidth()-2), m.listWidth(), height, !m.explore.detail)
	detail := m.renderTitledBox("Details", m.detailViewport.View(), m.detailWidth(), height, m.explore.detail)

	if !m.splitLayout() {
		if m.explore.detail {
			return detail
		}
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m Model) exploreTitle() string {
	p := m.explore.pagination
	title := "Explore"
	if species := m.prefs.Species.Get(); species != "" {
		title += " · " + species
	}
	if p.TotalPages > 0 {
		title += fmt.Sprintf(" · %d/%d", max(p.CurrentPage, m.explore.page), p.TotalPages)
	}
	if m.explore.loading {
		title += " " + m.spinner.View()
	}
	return title
}

// renderAnimalList renders one line per animal, selection highlighted.
func (m Model) renderAnimalList(width int) string {
	styles := m.theme.Styles()
	if len(m.explore.animals) == 0 {
		return styles.MutedText.Render("No animals match these settings")
	}

	rows := max(m.contentHeight()-2, 1)
	start := 0
	if m.explore.selected >= rows {
		start = m.explore.selected - rows + 1
	}
	end := min(start+rows, len(m.explore.animals))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		a := m.explore.animals[i]
		star := "  "
		if m.prefs.Favorites.Contains(a.ID) {
			star = "★ "
		}
		info := joinNonEmpty(" · ", a.SpeciesLabel(), a.Age, formatDistance(a.Distance))
		nameWidth := max(width-len([]rune(info))-4, 8)
		line := star + padRight(truncate(a.Name, nameWidth), nameWidth) + " " + info
		line = truncate(line, width)
		if i == m.explore.selected {
			lines = append(lines, styles.Selected.Width(width).Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// animalDetail renders everything known about a.
func (m Model) animalDetail(a rescue.Animal) string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := styles.Text.Bold(true).Render(a.Name)
	if m.prefs != nil && m.prefs.Favorites.Contains(a.ID) {
		title = styles.WarningText.Render("★ ") + title
	}
	b.WriteString(title + "  " + styles.SpeciesStyle(a.SpeciesLabel()).Render(a.SpeciesLabel()) + "\n")

	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(styles.MutedText.Render(padRight(label, 12)) + styles.Text.Render(value) + "\n")
	}

	field("Breed", a.Breeds.Label())
	field("About", joinNonEmpty(" · ", a.Age, a.Gender, a.Size))
	field("Distance", formatDistance(a.Distance))
	field("Listed", formatAgo(a.ParsedPublishedAt(), m.now()))
	field("Status", titleCase(a.Status))
	field("Tags", strings.Join(a.Tags, ", "))
	field("Health", traits(map[string]bool{
		"spayed/neutered": a.Attributes.SpayedNeutered,
		"house trained":   a.Attributes.HouseTrained,
		"shots current":   a.Attributes.ShotsCurrent,
		"special needs":   a.Attributes.SpecialNeeds,
	}))
	field("Good with", goodWith(a.Environment))
	field("Contact", joinNonEmpty(" · ", a.Contact.Email, a.Contact.Phone, a.Contact.Address.Place()))

	if org := m.organizations[strings.TrimSpace(a.OrganizationID)]; org != nil {
		field("Shelter", joinNonEmpty(" · ", org.Name, org.Address.Place()))
		field("Website", org.Website)
	} else {
		field("Shelter", a.OrganizationID)
	}
	field("Link", a.URL)
	field("Photo", a.PrimaryPhoto())

	if desc := strings.TrimSpace(a.Description); desc != "" {
		b.WriteString("\n" + styles.Text.Render(desc) + "\n")
	}
	return b.String()
}

// traits lists the true flags in a stable order.
func traits(flags map[string]bool) string {
	order := []string{"spayed/neutered", "house trained", "shots current", "special needs"}
	var out []string
	for _, name := range order {
		if flags[name] {
			out = append(out, name)
		}
	}
	return strings.Join(out, ", ")
}

func goodWith(env rescue.Environment) string {
	var out []string
	for _, e := range []struct {
		label string
		ok    *bool
	}{
		{"children", env.Children},
		{"dogs", env.Dogs},
		{"cats", env.Cats},
	} {
		if e.ok != nil && *e.ok {
			out = append(out, e.label)
		}
	}
	return strings.Join(out, ", ")
}

// updateDetailViewport refreshes the detail pane for the current view.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	width := max(m.detailWidth()-2, 10)
	var content string
	switch m.currentView {
	case ViewFavorites:
		if fav := m.selectedFavorite(); fav != nil {
			content = m.favoriteDetail(*fav)
		}
	default:
		if a := m.selectedAnimal(); a != nil {
			content = m.animalDetail(*a)
		}
	}
	m.detailViewport.SetContent(lipgloss.NewStyle().Width(width).Render(content))
	m.detailViewport.GotoTop()
}
