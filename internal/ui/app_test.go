package ui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pawpal/internal/apierror"
	"github.com/five82/pawpal/internal/kv"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
	"github.com/five82/pawpal/internal/state"
	"github.com/five82/pawpal/internal/whatsnew"
)

const testNotes = `# Changelog

## 0.3.0 (2026-10-02)

### Features

- favorites view
`

type fakeFetcher struct {
	rescue.Fetcher

	mu      sync.Mutex
	page    rescue.AnimalPage
	err     error
	queries []rescue.AnimalQuery
	orgs    []string
}

func (f *fakeFetcher) SearchAnimals(_ context.Context, q rescue.AnimalQuery) (rescue.AnimalPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.page, f.err
}

func (f *fakeFetcher) FetchOrganization(_ context.Context, id string) (*rescue.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orgs = append(f.orgs, id)
	return &rescue.Organization{ID: id, Name: "Happy Tails"}, nil
}

func (f *fakeFetcher) lastQuery() rescue.AnimalQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return rescue.AnimalQuery{}
	}
	return f.queries[len(f.queries)-1]
}

func threeAnimals() rescue.AnimalPage {
	return rescue.AnimalPage{
		Animals: []rescue.Animal{
			{ID: 1, Name: "Biscuit", Type: "Dog", OrganizationID: "OR1"},
			{ID: 2, Name: "Mochi", Type: "Cat"},
			{ID: 3, Name: "Pepper", Type: "Rabbit"},
		},
		Pagination: rescue.Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 75},
	}
}

type testEnv struct {
	fetcher      *fakeFetcher
	backend      *kv.Memory
	prefs        *prefs.Set
	settingsPath string
}

func newTestModel(t *testing.T, mutate func(*Options)) (Model, *testEnv) {
	t.Helper()
	backend := kv.NewMemory()
	set, err := prefs.OpenSet(context.Background(), backend)
	require.NoError(t, err)

	env := &testEnv{
		fetcher:      &fakeFetcher{page: threeAnimals()},
		backend:      backend,
		prefs:        set,
		settingsPath: filepath.Join(t.TempDir(), "settings.toml"),
	}
	opts := Options{
		Client:       env.fetcher,
		Store:        &state.Store{},
		Backend:      backend,
		Prefs:        set,
		Settings:     prefs.Settings{Theme: "Nightfox"},
		SettingsPath: env.settingsPath,
		Version:      "0.3.0",
	}
	if mutate != nil {
		mutate(&opts)
	}

	m := New(opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// drain runs cmd and feeds every resulting message back into the model.
// Spinner ticks are dropped so the loop ends.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, nil:
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m, runes("r"))
}

func TestExplore_SearchUsesPreferences(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t, nil)
	require.NoError(t, env.prefs.Species.Set(ctx, "Dog"))
	require.NoError(t, env.prefs.Sort.Set(ctx, prefs.SortNearest))

	m = loaded(t, m)
	q := env.fetcher.lastQuery()
	assert.Equal(t, "Dog", q.Type)
	assert.Equal(t, "recent", q.Sort, "distance sort needs a location")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, ExplorePageSize, q.Limit)

	require.NoError(t, env.prefs.Location.SetLocation(ctx, "97201", 25))
	m = loaded(t, m)
	q = env.fetcher.lastQuery()
	assert.Equal(t, "distance", q.Sort)
	assert.Equal(t, "97201", q.Location)
	assert.Equal(t, 25, q.Distance)
	assert.Len(t, m.explore.animals, 3)
}

func TestExplore_PagingAndNavigation(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = loaded(t, m)

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.explore.selected, "cursor stops at the last row")
	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.explore.selected)

	m = press(t, m, runes("n"))
	assert.Equal(t, 2, env.fetcher.lastQuery().Page)
	assert.Equal(t, 2, m.explore.page)

	m = press(t, m, runes("p"))
	assert.Equal(t, 1, env.fetcher.lastQuery().Page)
	assert.Equal(t, 1, m.explore.page)

	calls := len(env.fetcher.queries)
	press(t, m, runes("p"))
	assert.Len(t, env.fetcher.queries, calls, "no page before the first")
}

func TestExplore_StaleResultsAreDropped(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = loaded(t, m)

	stale := searchResultMsg{seq: m.explore.seq - 1, page: 9, res: rescue.AnimalPage{}}
	m = update(t, m, stale)
	assert.Len(t, m.explore.animals, 3)
	assert.Equal(t, 1, m.explore.page)
}

func TestExplore_ToggleFavorite(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = loaded(t, m)

	m = press(t, m, runes("j"), runes("f"))
	require.True(t, env.prefs.Favorites.Contains(2))
	fav := env.prefs.Favorites.List()[0]
	assert.Equal(t, "Mochi", fav.Name)
	assert.Equal(t, "Cat", fav.Species)

	press(t, m, runes("f"))
	assert.False(t, env.prefs.Favorites.Contains(2))
}

func TestExplore_DetailFetchesOrganization(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = loaded(t, m)

	m = press(t, m, keyEnter)
	assert.True(t, m.explore.detail)
	assert.Equal(t, []string{"OR1"}, env.fetcher.orgs)
	require.NotNil(t, m.organizations["OR1"])
	assert.Contains(t, m.detailViewport.View(), "Happy Tails")

	m = press(t, m, keyEnter)
	assert.Len(t, env.fetcher.orgs, 1, "organization is cached")

	m = press(t, m, keyEsc)
	assert.False(t, m.explore.detail)
}

func TestExplore_ErrorToastIsShownOnce(t *testing.T) {
	m, env := newTestModel(t, nil)
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	env.fetcher.err = apierror.New("Invalid location", 400, nil)
	m = loaded(t, m)
	assert.Equal(t, "Invalid location (400)", m.toast)

	m.toast = ""
	m = loaded(t, m)
	assert.Empty(t, m.toast, "the same error is not announced twice")

	env.fetcher.err = nil
	m = loaded(t, m)
	env.fetcher.err = apierror.New("Invalid location", 400, nil)
	m = loaded(t, m)
	assert.Equal(t, "Invalid location (400)", m.toast, "shown again after a success")
}

func TestToastExpiresOnTick(t *testing.T) {
	m, _ := newTestModel(t, nil)
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }
	m.toast = "boom"
	m.toastAt = start

	m = update(t, m, tickMsg(start))
	assert.Equal(t, "boom", m.toast)

	m.now = func() time.Time { return start.Add(ToastDuration + time.Second) }
	m = update(t, m, tickMsg(start))
	assert.Empty(t, m.toast)
}

func TestSnapshotWarningsAreGated(t *testing.T) {
	m, _ := newTestModel(t, func(o *Options) { o.StorageDriver = "memory" })

	m = update(t, m, snapshotMsg(state.Snapshot{}))
	assert.Equal(t, "preferences are not being saved", m.toast)

	m.toast = ""
	m = update(t, m, snapshotMsg(state.Snapshot{}))
	assert.Empty(t, m.toast)

	m = update(t, m, snapshotMsg(state.Snapshot{ConsecutiveFailures: 2}))
	assert.Contains(t, m.toast, "rescue API unreachable")
}

func TestStatus_ListsStoredRecords(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t, nil)
	require.NoError(t, env.prefs.Species.Set(ctx, "Cat"))
	require.NoError(t, env.prefs.Location.SetLocation(ctx, "97201", 10))

	m = press(t, m, runes("4"))
	require.Equal(t, ViewStatus, m.currentView)
	assert.Equal(t, []string{"@pawpal/location", "@pawpal/species"}, m.storedKeys)
	assert.Contains(t, m.View(), "2 saved (location, species)")

	require.NoError(t, env.backend.Close())
	m = press(t, m, runes("r"))
	assert.ErrorIs(t, m.storedKeysErr, kv.ErrClosed)
	assert.Contains(t, m.View(), "unreadable")
}

func TestViewSwitching(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.Equal(t, ViewExplore, m.currentView)

	m = press(t, m, keyTab)
	assert.Equal(t, ViewFavorites, m.currentView)
	m = press(t, m, runes("4"))
	assert.Equal(t, ViewStatus, m.currentView)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ViewSettings, m.currentView)
	m = press(t, m, runes("1"), tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ViewWhatsNew, m.currentView)

	m = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	m = press(t, m, runes("x"))
	assert.False(t, m.showHelp)
	assert.Equal(t, ViewWhatsNew, m.currentView, "closing help does not act on the key")
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	for _, k := range []tea.KeyMsg{runes("Q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWhatsNew_ShownWhenPendingAndDismissed(t *testing.T) {
	var checker *whatsnew.Checker
	m, env := newTestModel(t, func(o *Options) {
		checker = whatsnew.New(testNotes, o.Prefs.LastSeen)
		o.WhatsNew = checker
		o.Settings.ShowWhatsNew = true
	})
	require.Equal(t, ViewWhatsNew, m.currentView)
	assert.Contains(t, m.View(), "favorites view")

	m = press(t, m, runes("j"))
	assert.Equal(t, ViewExplore, m.currentView)
	assert.Equal(t, "0.3.0", env.prefs.LastSeen.Get())

	_, pending := checker.Pending()
	assert.False(t, pending)
}

func TestWhatsNew_RespectsSetting(t *testing.T) {
	m, _ := newTestModel(t, func(o *Options) {
		o.WhatsNew = whatsnew.New(testNotes, o.Prefs.LastSeen)
		o.Settings.ShowWhatsNew = false
	})
	assert.Equal(t, ViewExplore, m.currentView)
	assert.False(t, m.whatsNewPending)
}

func TestSettings_EditLocationAndDistance(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = press(t, m, runes("3"))

	next, _ := m.Update(keyEnter)
	m = next.(Model)
	require.True(t, m.settingsForm.editing)

	next, _ = m.Update(runes("Portland, OR"))
	m = next.(Model)
	assert.Equal(t, ViewSettings, m.currentView, "typing does not trigger view keys")
	m = press(t, m, keyEnter)
	assert.False(t, m.settingsForm.editing)
	assert.Equal(t, "Portland, OR", env.prefs.Location.Get().Location)
	assert.Equal(t, "Portland, OR", env.fetcher.lastQuery().Location, "search restarts after a change")

	m = press(t, m, runes("j"))
	next, _ = m.Update(keyEnter)
	m = next.(Model)
	m.settingsForm.input.SetValue("")
	next, _ = m.Update(runes("abc"))
	m = press(t, next.(Model), keyEnter)
	assert.NotEmpty(t, m.toast)
	assert.Equal(t, prefs.DefaultDistance, env.prefs.Location.Get().Distance)

	next, _ = m.Update(keyEnter)
	m = next.(Model)
	m.settingsForm.input.SetValue("40")
	press(t, m, keyEnter)
	assert.Equal(t, 40, env.prefs.Location.Get().Distance)
}

func TestSettings_EscCancelsEdit(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = press(t, m, runes("3"))
	next, _ := m.Update(keyEnter)
	m = next.(Model)
	next, _ = m.Update(runes("12345"))
	m = press(t, next.(Model), keyEsc)
	assert.False(t, m.settingsForm.editing)
	assert.False(t, env.prefs.Location.Get().IsSet())
}

func TestSettings_CycleSpeciesSortAndTheme(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = update(t, m, snapshotMsg(state.Snapshot{Types: []rescue.AnimalType{{Name: "Dog"}, {Name: "Cat"}}}))
	m = press(t, m, runes("3"))

	m.settingsForm.selected = rowSpecies
	m = press(t, m, keyRight)
	assert.Equal(t, "Dog", env.prefs.Species.Get())
	m = press(t, m, keyRight, keyRight)
	assert.Equal(t, "", env.prefs.Species.Get(), "wraps back to any species")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Cat", env.prefs.Species.Get())

	m.settingsForm.selected = rowSort
	m = press(t, m, keyRight)
	assert.Equal(t, prefs.SortOldest, env.prefs.Sort.Get())

	m.settingsForm.selected = rowTheme
	m = press(t, m, keyRight)
	assert.Equal(t, "Kanagawa", m.theme.Name)
	assert.Equal(t, "Kanagawa", prefs.LoadSettings(env.settingsPath).Theme)

	m.settingsForm.selected = rowWhatsNew
	m = press(t, m, keyEnter)
	assert.True(t, m.settings.ShowWhatsNew)
	assert.True(t, prefs.LoadSettings(env.settingsPath).ShowWhatsNew)
}

func TestSettings_ClearSearchNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t, nil)
	require.NoError(t, env.prefs.Species.Set(ctx, "Dog"))
	require.NoError(t, env.prefs.Favorites.Add(ctx, prefs.Favorite{ID: 7, Name: "Rex"}))

	m = press(t, m, runes("3"))
	m.settingsForm.selected = rowClear
	m = press(t, m, keyEnter)
	require.NotNil(t, m.modal)

	m = press(t, m, runes("n"))
	assert.Nil(t, m.modal)
	assert.Equal(t, "Dog", env.prefs.Species.Get())

	m = press(t, m, keyEnter, runes("y"))
	assert.Nil(t, m.modal)
	assert.Equal(t, "", env.prefs.Species.Get())
	assert.True(t, env.prefs.Favorites.Contains(7))
}

func TestFavorites_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	m, env := newTestModel(t, nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Biscuit", "Mochi", "Pepper"} {
		require.NoError(t, env.prefs.Favorites.Add(ctx, prefs.Favorite{ID: int64(i + 1), Name: name, AddedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	m = press(t, m, runes("2"))
	assert.Contains(t, m.View(), "Pepper")

	m = press(t, m, runes("x"))
	assert.False(t, env.prefs.Favorites.Contains(3), "newest is selected first")
	assert.Equal(t, 2, env.prefs.Favorites.Len())

	m = press(t, m, runes("G"), runes("x"))
	assert.False(t, env.prefs.Favorites.Contains(1))
	assert.Equal(t, 0, m.favSelected)

	m = press(t, m, runes("C"), keyEsc)
	assert.Equal(t, 1, env.prefs.Favorites.Len())
	press(t, m, runes("C"), runes("y"))
	assert.Equal(t, 0, env.prefs.Favorites.Len())
}

func TestCycleTheme_Persists(t *testing.T) {
	m, env := newTestModel(t, nil)
	m = press(t, m, runes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)
	assert.Equal(t, "Kanagawa", prefs.LoadSettings(env.settingsPath).Theme)
}

func TestView_RendersEveryView(t *testing.T) {
	for _, width := range []int{60, 120, 180} {
		m, _ := newTestModel(t, func(o *Options) {
			o.WhatsNew = whatsnew.New(testNotes, o.Prefs.LastSeen)
		})
		m = update(t, m, tea.WindowSizeMsg{Width: width, Height: 30})
		m = loaded(t, m)
		for v := range View(viewCount) {
			m.currentView = v
			assert.NotEmpty(t, m.View(), "view %s at width %d", viewTitles[v], width)
		}
	}
}

func TestCycle(t *testing.T) {
	opts := []string{"", "Dog", "Cat"}
	assert.Equal(t, "Dog", cycle(opts, "", 1))
	assert.Equal(t, "", cycle(opts, "Cat", 1))
	assert.Equal(t, "Cat", cycle(opts, "", -1))
	assert.Equal(t, "", cycle(opts, "Horse", 1), "unknown starts over")
	assert.Equal(t, "x", cycle([]string{}, "x", 1))
}
