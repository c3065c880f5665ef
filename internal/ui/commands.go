package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawpal/internal/logtail"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
	"github.com/five82/pawpal/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type searchResultMsg struct {
	seq  int
	page int
	res  rescue.AnimalPage
	err  error
}

type organizationMsg struct {
	id  string
	org *rescue.Organization
	err error
}

type favoritesChangedMsg struct{ err error }

type prefsChangedMsg struct{ err error }

type logLinesMsg struct {
	lines []logtail.Line
	err   error
}

type storedKeysMsg struct {
	keys []string
	err  error
}

type whatsNewSeenMsg struct{ err error }

type settingsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// requestContext bounds one UI-initiated call.
func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, RequestTimeout)
}

// searchQuery builds the explore query from the stored preferences. A
// distance sort without a location falls back to newest first.
func (m Model) searchQuery(page int) rescue.AnimalQuery {
	loc := m.prefs.Location.Get()
	order := m.prefs.Sort.Get().Effective(loc.IsSet())
	return rescue.AnimalQuery{
		Type:     m.prefs.Species.Get(),
		Location: loc.Location,
		Distance: loc.Distance,
		Sort:     string(order),
		Page:     page,
		Limit:    ExplorePageSize,
	}
}

func (m Model) searchCmd(seq, page int) tea.Cmd {
	client := m.client
	query := m.searchQuery(page)
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		res, err := client.SearchAnimals(ctx, query)
		return searchResultMsg{seq: seq, page: page, res: res, err: err}
	}
}

func (m Model) fetchOrganizationCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		org, err := client.FetchOrganization(ctx, id)
		return organizationMsg{id: id, org: org, err: err}
	}
}

func (m Model) toggleFavoriteCmd(fav prefs.Favorite) tea.Cmd {
	favorites := m.prefs.Favorites
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		_, err := favorites.Toggle(ctx, fav)
		return favoritesChangedMsg{err: err}
	}
}

func (m Model) removeFavoriteCmd(id int64) tea.Cmd {
	favorites := m.prefs.Favorites
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return favoritesChangedMsg{err: favorites.Remove(ctx, id)}
	}
}

func (m Model) clearFavoritesCmd() tea.Cmd {
	favorites := m.prefs.Favorites
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return favoritesChangedMsg{err: favorites.Clear(ctx)}
	}
}

// prefsCmd runs a preference write and reports it as a search change.
func (m Model) prefsCmd(write func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return prefsChangedMsg{err: write(ctx)}
	}
}

func (m Model) saveSettingsCmd() tea.Cmd {
	path := m.settingsPath
	settings := m.settings
	return func() tea.Msg {
		return settingsSavedMsg{err: prefs.SaveSettings(path, settings)}
	}
}

func (m Model) readLogsCmd() tea.Cmd {
	if m.config == nil {
		return nil
	}
	path := m.config.LogPath()
	return func() tea.Msg {
		raw, err := logtail.Read(path, StatusLogLines)
		return logLinesMsg{lines: logtail.ParseLines(raw), err: err}
	}
}

// storedKeysCmd lists the preference records present in the backend.
func (m Model) storedKeysCmd() tea.Cmd {
	backend := m.backend
	if backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		keys, err := backend.Keys(ctx)
		return storedKeysMsg{keys: keys, err: err}
	}
}

// refreshStatusCmd reloads everything the status view reads from disk.
func (m Model) refreshStatusCmd() tea.Cmd {
	return tea.Batch(m.readLogsCmd(), m.storedKeysCmd())
}

func (m Model) markWhatsNewSeen() tea.Cmd {
	checker := m.whatsNew
	if checker == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return whatsNewSeenMsg{err: checker.MarkSeen(ctx)}
	}
}
