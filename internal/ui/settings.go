package ui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pawpal/internal/prefs"
)

type settingsRow int

const (
	rowLocation settingsRow = iota
	rowDistance
	rowSpecies
	rowSort
	rowTheme
	rowWhatsNew
	rowClear
	settingsRowCount
)

var settingsLabels = map[settingsRow]string{
	rowLocation: "Location",
	rowDistance: "Distance",
	rowSpecies:  "Species",
	rowSort:     "Sort",
	rowTheme:    "Theme",
	rowWhatsNew: "What's new on start",
	rowClear:    "Clear search preferences",
}

// settingsForm tracks the settings cursor and the inline text editor.
type settingsForm struct {
	selected settingsRow
	editing  bool
	input    textinput.Model
}

func newSettingsForm() settingsForm {
	in := textinput.New()
	in.CharLimit = 64
	in.Prompt = "› "
	return settingsForm{input: in}
}

// handleSettingsKey processes keyboard input for the settings view.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prefs == nil {
		return m, nil
	}
	row := m.settingsForm.selected

	switch {
	case key.Matches(msg, m.keys.Down):
		if row < settingsRowCount-1 {
			m.settingsForm.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if row > 0 {
			m.settingsForm.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.settingsForm.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.settingsForm.selected = settingsRowCount - 1

	case key.Matches(msg, m.keys.Open):
		switch row {
		case rowLocation, rowDistance:
			cmd := m.beginEdit(row)
			return m, cmd
		case rowClear:
			set := m.prefs
			m.modal = confirmModal{
				title:     "Clear search preferences",
				prompt:    "Reset location, distance, species and sort? Favorites are kept.",
				onConfirm: m.prefsCmd(set.ClearSearch),
			}
			return m, nil
		default:
			cmd := m.cycleSetting(row, 1)
			return m, cmd
		}

	case key.Matches(msg, m.keys.Next):
		cmd := m.cycleSetting(row, 1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.cycleSetting(row, -1)
		return m, cmd
	}
	return m, nil
}

// beginEdit opens the inline editor on a text row.
func (m *Model) beginEdit(row settingsRow) tea.Cmd {
	loc := m.prefs.Location.Get()
	value := loc.Location
	placeholder := "ZIP code or City, ST"
	if row == rowDistance {
		value = strconv.Itoa(loc.Distance)
		placeholder = fmt.Sprintf("miles (%d-%d)", prefs.MinDistance, prefs.MaxDistance)
	}
	m.settingsForm.editing = true
	m.settingsForm.input.Placeholder = placeholder
	m.settingsForm.input.SetValue(value)
	m.settingsForm.input.CursorEnd()
	return m.settingsForm.input.Focus()
}

// handleSettingsInput routes keys to the text input until enter or esc.
func (m Model) handleSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endEdit()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.settingsForm.input.Value())
		row := m.settingsForm.selected
		m.endEdit()
		return m.commitEdit(row, value)
	}
	var cmd tea.Cmd
	m.settingsForm.input, cmd = m.settingsForm.input.Update(msg)
	return m, cmd
}

func (m *Model) endEdit() {
	m.settingsForm.editing = false
	m.settingsForm.input.Blur()
}

func (m Model) commitEdit(row settingsRow, value string) (tea.Model, tea.Cmd) {
	location := m.prefs.Location
	loc := location.Get()
	switch row {
	case rowLocation:
		return m, m.prefsCmd(func(ctx context.Context) error {
			return location.SetLocation(ctx, value, loc.Distance)
		})
	case rowDistance:
		miles, err := strconv.Atoi(value)
		if err != nil {
			m.showError(fmt.Errorf("distance must be a whole number of miles"))
			return m, nil
		}
		return m, m.prefsCmd(func(ctx context.Context) error {
			return location.SetLocation(ctx, loc.Location, miles)
		})
	}
	return m, nil
}

// cycleSetting moves a choice row by step (1 or -1).
func (m *Model) cycleSetting(row settingsRow, step int) tea.Cmd {
	switch row {
	case rowSpecies:
		options := m.speciesOptions()
		next := cycle(options, m.prefs.Species.Get(), step)
		species := m.prefs.Species
		return m.prefsCmd(func(ctx context.Context) error { return species.Set(ctx, next) })

	case rowSort:
		next := cycle(prefs.SortOrders, m.prefs.Sort.Get(), step)
		sortStore := m.prefs.Sort
		return m.prefsCmd(func(ctx context.Context) error { return sortStore.Set(ctx, next) })

	case rowTheme:
		m.theme = GetTheme(cycle(ThemeNames(), m.theme.Name, step))
		m.settings.Theme = m.theme.Name
		m.updateDetailViewport()
		return m.saveSettingsCmd()

	case rowWhatsNew:
		m.settings.ShowWhatsNew = !m.settings.ShowWhatsNew
		return m.saveSettingsCmd()
	}
	return nil
}

// speciesOptions is "any" followed by the catalog. A stored species missing
// from the catalog is kept so it can still be cycled away from.
func (m Model) speciesOptions() []string {
	options := append([]string{""}, m.snapshot.TypeNames()...)
	if current := m.prefs.Species.Get(); !slices.Contains(options, current) {
		options = append(options, current)
	}
	return options
}

// cycle returns the element step positions away from current, wrapping.
// An unknown current starts from the first element.
func cycle[T comparable](options []T, current T, step int) T {
	if len(options) == 0 {
		return current
	}
	i := slices.Index(options, current)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+step)%n+n)%n]
}

// renderSettings renders the preference form.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	if m.prefs == nil {
		return m.renderTitledBox("Settings", styles.MutedText.Render("Preferences are unavailable"), m.width, height, true)
	}

	loc := m.prefs.Location.Get()
	sortOrder := m.prefs.Sort.Get()

	values := map[settingsRow]string{
		rowLocation: loc.Location,
		rowDistance: fmt.Sprintf("%d mi", loc.Distance),
		rowSpecies:  m.prefs.Species.Get(),
		rowSort:     sortOrder.Label(),
		rowTheme:    m.theme.Name,
		rowWhatsNew: "off",
	}
	if values[rowLocation] == "" {
		values[rowLocation] = "not set"
	}
	if values[rowSpecies] == "" {
		values[rowSpecies] = "any"
	}
	if sortOrder.NeedsLocation() && !loc.IsSet() {
		values[rowSort] += " (needs a location, using Newest)"
	}
	if m.settings.ShowWhatsNew {
		values[rowWhatsNew] = "on"
	}

	var b strings.Builder
	for row := range settingsRowCount {
		label := padRight(settingsLabels[row], 26)
		selected := row == m.settingsForm.selected

		var line string
		switch {
		case selected && m.settingsForm.editing:
			line = styles.AccentText.Render(label) + m.settingsForm.input.View()
		case row == rowClear:
			line = styles.DangerText.Render(settingsLabels[row])
		default:
			line = styles.MutedText.Render(label) + styles.Text.Render(values[row])
		}
		if selected && !m.settingsForm.editing {
			line = styles.Selected.Width(max(m.width-4, 10)).Render("› " + label + values[row])
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	hint := "enter edit/toggle · ←/→ cycle · j/k move"
	if m.settingsForm.editing {
		hint = "enter save · esc cancel"
	}
	b.WriteString(styles.FaintText.Render(hint))

	if !m.snapshot.LastUpdated.IsZero() && len(m.snapshot.Types) == 0 {
		b.WriteString("\n" + styles.FaintText.Render("Species list loads once the API is reachable"))
	}

	return m.renderTitledBox("Settings", b.String(), m.width, height, true)
}
