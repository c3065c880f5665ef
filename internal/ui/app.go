package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawpal/internal/apierror"
	"github.com/five82/pawpal/internal/changelog"
	"github.com/five82/pawpal/internal/config"
	"github.com/five82/pawpal/internal/kv"
	"github.com/five82/pawpal/internal/logtail"
	"github.com/five82/pawpal/internal/notify"
	"github.com/five82/pawpal/internal/prefs"
	"github.com/five82/pawpal/internal/rescue"
	"github.com/five82/pawpal/internal/state"
	"github.com/five82/pawpal/internal/whatsnew"
)

// View represents the current active view.
type View int

const (
	ViewExplore View = iota
	ViewFavorites
	ViewSettings
	ViewStatus
	ViewWhatsNew
)

var viewTitles = map[View]string{
	ViewExplore:   "Explore",
	ViewFavorites: "Favorites",
	ViewSettings:  "Settings",
	ViewStatus:    "Status",
	ViewWhatsNew:  "What's New",
}

const viewCount = 5

// Options configures the UI.
type Options struct {
	Context       context.Context
	Client        rescue.Fetcher
	Store         *state.Store
	Prefs         *prefs.Set
	WhatsNew      *whatsnew.Checker
	Gate          *notify.Gate
	Config        *config.Config
	Backend       kv.Store
	StorageDriver string
	PollTick      time.Duration
	Settings      prefs.Settings
	SettingsPath  string
	Version       string
}

// exploreState holds the current search page.
type exploreState struct {
	animals    []rescue.Animal
	pagination rescue.Pagination
	page       int
	selected   int
	loading    bool
	loaded     bool
	seq        int // bumped per search so stale responses are dropped
	detail     bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	client        rescue.Fetcher
	store         *state.Store
	prefs         *prefs.Set
	whatsNew      *whatsnew.Checker
	gate          *notify.Gate
	config        *config.Config
	backend       kv.Store
	storageDriver string
	settingsPath  string
	version       string
	pollTick      time.Duration
	now           func() time.Time

	// UI state
	keys        keyMap
	settings    prefs.Settings
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal
	spinner     spinner.Model

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	explore       exploreState
	organizations map[string]*rescue.Organization
	favSelected   int
	settingsForm  settingsForm
	logLines      []logtail.Line
	logErr        error
	storedKeys    []string
	storedKeysErr error

	detailViewport   viewport.Model
	whatsNewViewport viewport.Model
	whatsNewEntry    *changelog.Entry
	whatsNewPending  bool

	toast   string
	toastAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	gate := opts.Gate
	if gate == nil {
		gate = &notify.Gate{}
	}

	settings := opts.Settings
	if settings.Theme == "" {
		settings.Theme = DefaultThemeName
	}

	m := Model{
		ctx:           ctx,
		client:        opts.Client,
		store:         opts.Store,
		prefs:         opts.Prefs,
		whatsNew:      opts.WhatsNew,
		gate:          gate,
		config:        opts.Config,
		backend:       opts.Backend,
		storageDriver: opts.StorageDriver,
		settingsPath:  opts.SettingsPath,
		version:       opts.Version,
		pollTick:      pollTick,
		now:           time.Now,
		keys:          DefaultKeyMap(),
		settings:      settings,
		theme:         GetTheme(settings.Theme),
		currentView:   ViewExplore,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		organizations: make(map[string]*rescue.Organization),
		explore:       exploreState{page: 1},
		settingsForm:  newSettingsForm(),
	}

	if m.canSearch() {
		m.explore.seq = 1
		m.explore.loading = true
	}

	if m.whatsNew != nil {
		m.whatsNewEntry = m.whatsNew.Latest()
		if entry, ok := m.whatsNew.Pending(); ok && settings.ShowWhatsNew {
			m.whatsNewEntry = entry
			m.whatsNewPending = true
			m.currentView = ViewWhatsNew
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.explore.loading {
		cmds = append(cmds, m.searchCmd(m.explore.seq, m.explore.page))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(m.width, m.contentHeight())
			m.whatsNewViewport = viewport.New(m.width, m.contentHeight())
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateWhatsNewViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		if warnings := m.warnings(); m.gate.ShouldShowWarnings(warnings) {
			m.toast = strings.Join(warnings, "; ")
			m.toastAt = m.now()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case organizationMsg:
		if msg.err != nil {
			m.showError(msg.err)
			return m, nil
		}
		m.organizations[msg.id] = msg.org
		m.updateDetailViewport()
		return m, nil

	case favoritesChangedMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		m.clampFavoriteSelection()
		m.updateDetailViewport()
		return m, nil

	case prefsChangedMsg:
		if msg.err != nil {
			m.showError(msg.err)
			return m, nil
		}
		// search preferences changed; restart from the first page
		cmd := m.startSearch(1)
		return m, cmd

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil

	case storedKeysMsg:
		m.storedKeys = msg.keys
		m.storedKeysErr = msg.err
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		return m, nil

	case whatsNewSeenMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	// A pending what's-new screen is dismissed by any key
	if m.whatsNewPending {
		m.whatsNewPending = false
		m.currentView = ViewExplore
		return m, m.markWhatsNewSeen()
	}

	// Text inputs swallow everything while editing
	if m.settingsForm.editing {
		return m.handleSettingsInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		cmd := m.cycleTheme()
		return m, cmd

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(View((int(m.currentView) + 1) % viewCount))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(View((int(m.currentView) + viewCount - 1) % viewCount))

	case key.Matches(msg, m.keys.ViewExplore):
		return m.switchView(ViewExplore)
	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(ViewFavorites)
	case key.Matches(msg, m.keys.ViewSettings):
		return m.switchView(ViewSettings)
	case key.Matches(msg, m.keys.ViewStatus):
		return m.switchView(ViewStatus)
	case key.Matches(msg, m.keys.ViewWhatsNew):
		return m.switchView(ViewWhatsNew)
	}

	// View-specific keys
	switch m.currentView {
	case ViewExplore:
		return m.handleExploreKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewStatus:
		return m.handleStatusKey(msg)
	case ViewWhatsNew:
		return m.handleWhatsNewKey(msg)
	}
	return m, nil
}

// switchView activates v and fetches whatever the view shows.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.explore.detail = false
	switch v {
	case ViewStatus:
		return m, m.refreshStatusCmd()
	case ViewFavorites:
		m.clampFavoriteSelection()
		m.updateDetailViewport()
	case ViewWhatsNew:
		m.updateWhatsNewViewport()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewStatus {
		if cmd := m.refreshStatusCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if m.toast != "" && m.now().Sub(m.toastAt) > ToastDuration {
		m.toast = ""
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// showError surfaces err as a toast unless the same error is already showing.
func (m *Model) showError(err error) {
	if err == nil {
		return
	}
	slog.Warn("ui action failed", "error", err)
	if m.gate.ShouldShowError(err) {
		m.toast = apierror.FormatMessage(err)
		m.toastAt = m.now()
		return
	}
	// keep a repeated error visible
	if m.toast != "" {
		m.toastAt = m.now()
	}
}

// warnings lists the standing conditions worth a toast.
func (m Model) warnings() []string {
	var out []string
	if m.storageDriver == "memory" {
		out = append(out, "preferences are not being saved")
	}
	if m.snapshot.IsOffline() {
		out = append(out, "rescue API unreachable")
	}
	return out
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.settings.Theme = m.theme.Name
	return m.saveSettingsCmd()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewExplore:
		return m.renderExplore()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewSettings:
		return m.renderSettings()
	case ViewStatus:
		return m.renderStatus()
	case ViewWhatsNew:
		return m.renderWhatsNew()
	default:
		return ""
	}
}

// contentHeight is the space left below header and command bar and above the footer.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

func (m *Model) resizeViewports() {
	h := m.contentHeight() - 2 // box borders
	m.detailViewport.Height = h
	m.whatsNewViewport.Height = h
	m.whatsNewViewport.Width = m.width - 2
	m.detailViewport.Width = m.detailWidth() - 2
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
