package ui

import (
	"fmt"
	"strings"
	"time"

	"daybook/internal/config"
	"daybook/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// CalendarPane shows the append-only log of printed notes, one day at a
// time with a week strip above, plus a search mode over all entries.
type CalendarPane struct {
	day     time.Time
	entries []storage.CalendarEntry
	week    [7][]storage.CalendarEntry
	cursor  int
	focused bool
	width   int
	height  int

	// Search mode
	searching   bool
	searchInput textinput.Model
	results     []storage.CalendarEntry
	resultsFor  string

	storage *storage.Storage
	styles  *Styles

	// Key bindings
	keys      CalendarKeyMap
	inputKeys InputKeyMap
}

// NewCalendarPane creates a new calendar pane showing today.
func NewCalendarPane(store *storage.Storage, styles *Styles) *CalendarPane {
	return NewCalendarPaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewCalendarPaneWithKeys creates a new calendar pane with custom key bindings.
func NewCalendarPaneWithKeys(store *storage.Storage, styles *Styles, keyCfg *config.KeysConfig) *CalendarPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	si := textinput.New()
	si.Placeholder = "Search entries"
	si.CharLimit = 80
	si.Width = 30

	return &CalendarPane{
		day:         store.Now(),
		searchInput: si,
		storage:     store,
		styles:      styles,
		keys:        NewCalendarKeyMap(keyCfg),
		inputKeys:   NewInputKeyMap(keyCfg),
	}
}

// LoadDayCmd returns a command that loads the shown day and its week strip.
func (p *CalendarPane) LoadDayCmd() tea.Cmd {
	return loadCalendarDayCmd(p.storage, p.day)
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.searchInput.Width = max(10, width-12)
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
	if !focused && p.searching {
		p.closeSearch()
	}
}

// IsFocused returns whether this pane is focused.
func (p *CalendarPane) IsFocused() bool {
	return p.focused
}

// IsSearching reports whether the search prompt is open.
func (p *CalendarPane) IsSearching() bool {
	return p.searching
}

// SelectedEntry returns the entry under the cursor, or nil.
func (p *CalendarPane) SelectedEntry() *storage.CalendarEntry {
	list := p.visibleEntries()
	if p.cursor < 0 || p.cursor >= len(list) {
		return nil
	}
	e := list[p.cursor].Clone()
	return &e
}

// visibleEntries returns search results when a search is active, the
// shown day's entries otherwise.
func (p *CalendarPane) visibleEntries() []storage.CalendarEntry {
	if p.resultsFor != "" {
		return p.results
	}
	return p.entries
}

// Update handles messages for the calendar pane.
func (p *CalendarPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Handle async messages first
	switch msg := msg.(type) {
	case calendarDayLoadedMsg:
		if msg.err == nil {
			p.day = msg.day
			p.entries = msg.entries
			p.week = msg.week
			if p.resultsFor == "" && p.cursor >= len(p.entries) {
				p.cursor = max(0, len(p.entries)-1)
			}
		}
		return nil

	case searchResultsMsg:
		if msg.err == nil {
			p.results = msg.entries
			p.resultsFor = msg.query
			p.cursor = 0
		}
		return nil

	case entryDeletedMsg, entryRestoredMsg:
		if p.resultsFor != "" {
			// Refresh both the results and the day underneath them.
			return tea.Batch(searchEntriesCmd(p.storage, p.resultsFor), p.LoadDayCmd())
		}
		return p.LoadDayCmd()
	}

	// Search prompt captures all keys while open.
	if p.searching {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				query := strings.TrimSpace(p.searchInput.Value())
				p.searching = false
				p.searchInput.Blur()
				if query == "" {
					p.clearResults()
					return nil
				}
				return searchEntriesCmd(p.storage, query)

			case key.Matches(msg, p.inputKeys.Cancel):
				p.closeSearch()
				return nil
			}
		}

		p.searchInput, cmd = p.searchInput.Update(msg)
		return cmd
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return nil
}

// handleKey processes normal-mode key presses.
func (p *CalendarPane) handleKey(msg tea.KeyMsg) tea.Cmd {
	list := p.visibleEntries()

	switch {
	case key.Matches(msg, p.keys.Down):
		if len(list) > 0 {
			p.cursor = min(p.cursor+1, len(list)-1)
		}

	case key.Matches(msg, p.keys.Up):
		if len(list) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}

	case key.Matches(msg, p.keys.Top):
		p.cursor = 0

	case key.Matches(msg, p.keys.Bottom):
		if len(list) > 0 {
			p.cursor = len(list) - 1
		}

	case key.Matches(msg, p.keys.Search):
		p.searching = true
		p.searchInput.Focus()
		return textinput.Blink

	case key.Matches(msg, p.inputKeys.Cancel):
		if p.resultsFor != "" {
			p.clearResults()
		}

	case key.Matches(msg, p.keys.Delete):
		if sel := p.SelectedEntry(); sel != nil {
			return deleteEntryCmd(p.storage, sel.ID)
		}

	case key.Matches(msg, p.keys.RestoreEntry):
		if sel := p.SelectedEntry(); sel != nil {
			return restoreEntryCmd(p.storage, sel.ID)
		}

	// Day navigation only makes sense outside a search.
	case key.Matches(msg, p.keys.PrevDay):
		if p.resultsFor == "" {
			return p.gotoDay(p.day.AddDate(0, 0, -1))
		}

	case key.Matches(msg, p.keys.NextDay):
		if p.resultsFor == "" {
			return p.gotoDay(p.day.AddDate(0, 0, 1))
		}

	case key.Matches(msg, p.keys.Today):
		if p.resultsFor == "" {
			return p.gotoDay(p.storage.Now())
		}
	}

	return nil
}

// gotoDay switches the shown day and reloads it.
func (p *CalendarPane) gotoDay(day time.Time) tea.Cmd {
	p.day = day
	p.cursor = 0
	return p.LoadDayCmd()
}

func (p *CalendarPane) closeSearch() {
	p.searching = false
	p.searchInput.Reset()
	p.searchInput.Blur()
}

func (p *CalendarPane) clearResults() {
	p.results = nil
	p.resultsFor = ""
	p.searchInput.Reset()
	p.cursor = 0
	if p.cursor >= len(p.entries) {
		p.cursor = max(0, len(p.entries)-1)
	}
}

// handleMouse processes mouse events for the calendar pane.
func (p *CalendarPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	list := p.visibleEntries()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if len(list) > 0 {
			p.cursor = max(p.cursor-1, 0)
		}
		return nil

	case tea.MouseButtonWheelDown:
		if len(list) > 0 {
			p.cursor = min(p.cursor+1, len(list)-1)
		}
		return nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		// Entries start after title (1) + separator (1) + week strip (2) +
		// date line (1) = row 5, two rows each.
		const headerRows = 5
		idx := (msg.Y - headerRows) / 2
		if idx >= 0 && idx < len(list) {
			p.cursor = idx
		}
	}

	return nil
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("CALENDAR"))
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if p.resultsFor != "" {
		p.renderResults(&b)
	} else {
		p.renderWeekStrip(&b)
		p.renderDay(&b)
	}

	if p.searching {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("Search: ") + p.searchInput.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderWeekStrip renders Mon..Sun with entry counts, shown day highlighted.
func (p *CalendarPane) renderWeekStrip(b *strings.Builder) {
	start := startOfWeek(p.day)

	var days, counts []string
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		label := d.Format("Mon")[:2]
		count := fmt.Sprintf("%2d", len(p.week[i]))

		if sameDay(d, p.day) {
			days = append(days, p.styles.NoteSelectedStyle.Render(label))
			counts = append(counts, p.styles.StatValueStyle.Render(count))
		} else {
			days = append(days, p.styles.StatLabelStyle.Render(label))
			counts = append(counts, p.styles.StatLabelStyle.Render(count))
		}
	}

	b.WriteString(" " + strings.Join(days, "  "))
	b.WriteString("\n")
	b.WriteString(" " + strings.Join(counts, "  "))
	b.WriteString("\n")
}

// renderDay renders the shown day's heading and entries.
func (p *CalendarPane) renderDay(b *strings.Builder) {
	heading := p.day.Format("Mon, Jan 2")
	if sameDay(p.day, p.storage.Now()) {
		heading += " (today)"
	}
	b.WriteString(" " + p.styles.DateStyle.Render(heading))
	b.WriteString("\n")

	if len(p.entries) == 0 {
		b.WriteString("  " + p.styles.StatLabelStyle.Render("No entries"))
		b.WriteString("\n")
		return
	}

	maxShown := max(1, (p.height-8)/2)
	start := 0
	if p.cursor >= maxShown {
		start = p.cursor - maxShown + 1
	}

	for i := start; i < len(p.entries) && i < start+maxShown; i++ {
		p.renderEntry(b, p.entries[i], i)
	}
}

// renderResults renders the search hit list across all days.
func (p *CalendarPane) renderResults(b *strings.Builder) {
	label := fmt.Sprintf("%d hits for %q", len(p.results), p.resultsFor)
	b.WriteString(" " + p.styles.StatValueStyle.Render(label) + " " + p.styles.StatLabelStyle.Render("(esc clears)"))
	b.WriteString("\n")

	if len(p.results) == 0 {
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Nothing found"))
		b.WriteString("\n")
		return
	}

	maxShown := max(1, (p.height-6)/2)
	start := 0
	if p.cursor >= maxShown {
		start = p.cursor - maxShown + 1
	}

	for i := start; i < len(p.results) && i < start+maxShown; i++ {
		p.renderEntry(b, p.results[i], i)
	}
}

// renderEntry renders one log entry as two rows: time + title, then badges.
func (p *CalendarPane) renderEntry(b *strings.Builder, e storage.CalendarEntry, idx int) {
	title := e.Todo.Text
	if title == "" {
		title = "Untitled Note"
	}
	maxTitle := p.width - 14
	if maxTitle < 5 {
		maxTitle = 5
	}
	title = runewidth.Truncate(title, maxTitle, "..")

	timeStr := p.styles.EntryTimeStyle.Render(e.PrintedAt.Format("15:04"))

	titleStyled := p.styles.NoteTitleStyle.Render(title)
	if idx == p.cursor && p.focused && !p.searching {
		titleStyled = p.styles.NoteSelectedStyle.Render(" " + title + " ")
	}

	b.WriteString(fmt.Sprintf(" %s %s %s\n", timeStr, p.styles.NoteMarker(e.Todo.Color), titleStyled))

	var badges []string
	if p.resultsFor != "" {
		badges = append(badges, p.styles.EntryTimeStyle.Render(e.PrintedAt.Format("Jan 2")))
	}
	if e.TimeSpent != nil {
		badges = append(badges, p.styles.EntryElapsedStyle.Render(fmt.Sprintf("%dm", e.TimeSpent.Elapsed)))
	}
	if e.TimerCompleted {
		badges = append(badges, p.styles.EntryCompletedStyle.Render("✓ done"))
	}

	if len(badges) > 0 {
		b.WriteString("       " + strings.Join(badges, " "))
	}
	b.WriteString("\n")
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
