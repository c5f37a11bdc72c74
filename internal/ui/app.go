// Package ui provides terminal user interface components for the daybook app.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"daybook/internal/config"
	"daybook/internal/storage"
	"daybook/internal/timer"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneNotes PaneID = iota
	PaneTimer
	PaneCalendar
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	NarrowLayoutThreshold int
}

// App is the main application model that coordinates all panes.
type App struct {
	storage      *storage.Storage
	styles       *Styles
	config       *AppConfig
	notesPane    *NotesPane
	timerPane    *TimerPane
	calendarPane *CalendarPane
	helpOverlay  *HelpOverlay
	confirmDel   *confirmDeleteState
	activePane   PaneID
	layoutMode   LayoutMode
	showHelp     bool
	width        int
	height       int
	status       string
	statusErr    bool
	statusUntil  time.Time
	quitting     bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap

	// Pane positions for mouse click detection (x coordinates)
	notesPaneStart    int
	notesPaneEnd      int
	timerPaneStart    int
	timerPaneEnd      int
	calendarPaneStart int
	calendarPaneEnd   int
	contentTop        int // Y coordinate where content starts
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, eng *timer.Engine, styles *Styles, cfg *AppConfig) *App {
	// Use default config if nil
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	// Create panes with config-aware key bindings
	notesPane := NewNotesPaneWithKeys(store, styles, cfg.Keys)
	timerPane := NewTimerPaneWithKeys(store, eng, styles, cfg.Keys)
	calendarPane := NewCalendarPaneWithKeys(store, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	// New countdowns bind to the selected note; the running display
	// resolves the bound id back to a title.
	timerPane.SetTodoSource(notesPane.SelectedTodo)
	timerPane.SetTitleLookup(func(id int64) string {
		for _, t := range notesPane.todos {
			if t.ID == id {
				if t.Text == "" {
					return "Untitled Note"
				}
				return t.Text
			}
		}
		return ""
	})

	app := &App{
		storage:      store,
		styles:       styles,
		config:       cfg,
		notesPane:    notesPane,
		timerPane:    timerPane,
		calendarPane: calendarPane,
		helpOverlay:  helpOverlay,
		activePane:   PaneNotes,
		keys:         NewGlobalKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}

	// Set initial focus
	notesPane.SetFocused(true)
	timerPane.SetFocused(false)
	calendarPane.SetFocused(false)

	return app
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the app and loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.notesPane.LoadTodosCmd(),
		a.timerPane.InitCmd(),
		a.calendarPane.LoadDayCmd(),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Route async messages to their panes first (before key handling).
	// This ensures storage operation results are processed regardless
	// of which pane is active.
	switch msg := msg.(type) {
	case todosLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Notes: "+msg.err.Error(), true)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todoAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add note: "+msg.err.Error(), true)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todoSavedMsg:
		if msg.err != nil {
			a.SetStatus("Save note: "+msg.err.Error(), true)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todoRemovedMsg:
		if msg.err != nil {
			a.SetStatus("Delete note: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Note deleted", false)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todoArchivedMsg:
		if msg.err != nil {
			a.SetStatus("Archive: "+msg.err.Error(), true)
		} else if msg.unarchived {
			a.SetStatus("Note restored from archive", false)
		} else {
			a.SetStatus("Note archived", false)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todosReorderedMsg:
		if msg.err != nil {
			a.SetStatus("Reorder: "+msg.err.Error(), true)
		}
		cmd := a.notesPane.Update(msg)
		return a, cmd

	case todoPrintedMsg:
		if msg.err != nil {
			a.SetStatus("Print: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Printed to calendar", false)
		return a, a.calendarPane.LoadDayCmd()

	case calendarDayLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Calendar: "+msg.err.Error(), true)
		}
		cmd := a.calendarPane.Update(msg)
		return a, cmd

	case entryDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete entry: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Entry deleted", false)
		}
		cmd := a.calendarPane.Update(msg)
		return a, cmd

	case entryRestoredMsg:
		switch {
		case msg.err != nil:
			a.SetStatus("Restore entry: "+msg.err.Error(), true)
		case msg.todo == nil:
			a.SetStatus("Note is already in the active list", false)
		default:
			a.SetStatus("Entry restored to notes", false)
		}
		cmd := a.calendarPane.Update(msg)
		return a, tea.Batch(cmd, a.notesPane.LoadTodosCmd())

	case searchResultsMsg:
		if msg.err != nil {
			a.SetStatus("Search: "+msg.err.Error(), true)
		}
		cmd := a.calendarPane.Update(msg)
		return a, cmd

	case timerStartedMsg:
		if msg.err != nil {
			a.SetStatus("Start timer: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Timer started", false)
		// The bound note now carries the running flag.
		return a, a.notesPane.LoadTodosCmd()

	case timerStoppedMsg:
		if msg.err != nil {
			a.SetStatus("Stop timer: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("Timer stopped", false)
		return a, tea.Batch(a.notesPane.LoadTodosCmd(), a.calendarPane.LoadDayCmd())

	case timerPolledMsg:
		if msg.err != nil {
			a.SetStatus("Timer: "+msg.err.Error(), true)
			return a, nil
		}
		if msg.completed {
			a.SetStatus("Timer finished", false)
			return a, tea.Batch(a.notesPane.LoadTodosCmd(), a.calendarPane.LoadDayCmd())
		}
		return a, nil

	case timerRestoredMsg:
		if msg.err != nil {
			a.SetStatus("Resume timer: "+msg.err.Error(), true)
		}
		return a, nil

	case presetLoadedMsg, presetSaveTickMsg:
		cmd := a.timerPane.Update(msg)
		return a, cmd

	case presetSavedMsg:
		if msg.err != nil {
			a.SetStatus("Save preset: "+msg.err.Error(), true)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmDel.cmd
				a.confirmDel = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Check if any pane is in input mode
		inInputMode := a.notesPane.IsEditing() || a.calendarPane.IsSearching()

		if !inInputMode {
			// Confirm deletions if enabled.
			if a.config.ConfirmDeletions && !a.notesPane.IsGrabbed() {
				if cmd, handled := a.interceptDelete(msg); handled {
					return a, cmd
				}
			}

			// Global keys only when not in input mode. Grab mode keeps
			// j/k and enter for itself but still honors these.
			switch {
			case key.Matches(msg, a.keys.Quit):
				if a.notesPane.IsGrabbed() {
					break
				}
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneNotes)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneTimer)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PaneCalendar)
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		// The completion check runs every tick while a countdown is live,
		// no matter which pane has focus.
		return a, tea.Batch(tickCmd(), a.timerPane.PollCmd())
	}

	// Forward to active pane (only if help is not shown)
	if !a.showHelp {
		switch a.activePane {
		case PaneNotes:
			cmd := a.notesPane.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneTimer:
			cmd := a.timerPane.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneCalendar:
			cmd := a.calendarPane.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// interceptDelete turns a delete key press into a confirmation modal for
// the active pane. Returns handled=false when the key is something else.
func (a *App) interceptDelete(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.activePane {
	case PaneNotes:
		if !key.Matches(msg, a.notesPane.keys.Delete) || a.notesPane.ShowingArchive() {
			return nil, false
		}
		sel := a.notesPane.selected()
		if sel == nil {
			a.SetStatus("No note selected", true)
			return nil, true
		}
		title := sel.Text
		if title == "" {
			title = "Untitled Note"
		}
		a.confirmDel = &confirmDeleteState{
			title: "Delete note?",
			body:  truncateText(title, 60),
			cmd:   removeTodoCmd(a.storage, sel.ID),
		}
		return nil, true

	case PaneCalendar:
		if !key.Matches(msg, a.calendarPane.keys.Delete) {
			return nil, false
		}
		sel := a.calendarPane.SelectedEntry()
		if sel == nil {
			a.SetStatus("No entry selected", true)
			return nil, true
		}
		title := sel.Todo.Text
		if title == "" {
			title = "Untitled Note"
		}
		a.confirmDel = &confirmDeleteState{
			title: "Delete calendar entry?",
			body:  truncateText(title, 60),
			cmd:   deleteEntryCmd(a.storage, sel.ID),
		}
		return nil, true
	}

	return nil, false
}

// handleMouse routes mouse events, including drag motion and release,
// which must reach the notes pane even between clicks.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.confirmDel != nil {
		if msg.Action == tea.MouseActionPress {
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
		}
		return a, nil
	}

	if a.showHelp {
		// Any click closes help
		if msg.Action == tea.MouseActionPress {
			a.showHelp = false
		}
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		// Wheel events scroll the active pane wherever the pointer is.
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			return a, a.forwardMouse(msg)
		}

		// In narrow mode, check for tab bar clicks
		if a.layoutMode == LayoutNarrow && msg.Y == a.contentTop-1 {
			tabWidth := a.width / 3
			if msg.X < tabWidth {
				a.setActivePane(PaneNotes)
			} else if msg.X < tabWidth*2 {
				a.setActivePane(PaneTimer)
			} else {
				a.setActivePane(PaneCalendar)
			}
			return a, nil
		}

		// Determine which pane was clicked (in wide mode)
		clickedPane := a.paneAtPosition(msg.X)
		if clickedPane >= 0 && clickedPane != a.activePane {
			a.setActivePane(clickedPane)
		}

		if msg.Y >= a.contentTop {
			return a, a.forwardMouse(msg)
		}

	case tea.MouseActionMotion, tea.MouseActionRelease:
		// Drags in progress need motion and release regardless of row.
		return a, a.forwardMouse(msg)
	}

	return a, nil
}

// forwardMouse hands a mouse event to the active pane with coordinates
// made local to that pane.
func (a *App) forwardMouse(msg tea.MouseMsg) tea.Cmd {
	localMsg := msg
	localMsg.Y = msg.Y - a.contentTop
	if a.layoutMode == LayoutWide {
		switch a.activePane {
		case PaneTimer:
			localMsg.X = msg.X - a.timerPaneStart
		case PaneCalendar:
			localMsg.X = msg.X - a.calendarPaneStart
		}
	}

	switch a.activePane {
	case PaneNotes:
		return a.notesPane.Update(localMsg)
	case PaneTimer:
		return a.timerPane.Update(localMsg)
	case PaneCalendar:
		return a.calendarPane.Update(localMsg)
	}
	return nil
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneNotes:
		a.setActivePane(PaneTimer)
	case PaneTimer:
		a.setActivePane(PaneCalendar)
	case PaneCalendar:
		a.setActivePane(PaneNotes)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.notesPane.SetFocused(pane == PaneNotes)
	a.timerPane.SetFocused(pane == PaneTimer)
	a.calendarPane.SetFocused(pane == PaneCalendar)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		// In narrow mode, return the active pane
		return a.activePane
	}

	if x >= a.notesPaneStart && x < a.notesPaneEnd {
		return PaneNotes
	}
	if x >= a.timerPaneStart && x < a.timerPaneEnd {
		return PaneTimer
	}
	if x >= a.calendarPaneStart && x < a.calendarPaneEnd {
		return PaneCalendar
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	// Content starts after title bar (1 line title + 1 line space)
	a.contentTop = 1

	// Update help overlay size
	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	// Determine layout mode based on configured threshold
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80 // Default threshold
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		// In narrow mode, leave room for tab bar (1 line)
		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		// Give full width to all panes (only focused one will be shown)
		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.notesPane.SetSize(paneWidth, narrowHeight)
		a.timerPane.SetSize(paneWidth, narrowHeight)
		a.calendarPane.SetSize(paneWidth, narrowHeight)

		// In narrow mode, all panes occupy the same space
		a.notesPaneStart = 0
		a.notesPaneEnd = a.width
		a.timerPaneStart = 0
		a.timerPaneEnd = a.width
		a.calendarPaneStart = 0
		a.calendarPaneEnd = a.width
		// Content starts after tab bar in narrow mode
		a.contentTop = 2
	} else {
		// Wide mode: three panes side-by-side
		a.layoutMode = LayoutWide

		var notesWidth, timerWidth, calendarWidth int
		if totalWidth < 120 {
			// Medium: balanced three-column
			notesWidth = (totalWidth * 38) / 100
			timerWidth = (totalWidth * 24) / 100
			calendarWidth = totalWidth - notesWidth - timerWidth - 2
		} else {
			// Wide: comfortable three-column with max widths
			notesWidth = min((totalWidth*40)/100, 56)
			timerWidth = min((totalWidth*24)/100, 36)
			calendarWidth = min(totalWidth-notesWidth-timerWidth-2, 55)
		}

		a.notesPane.SetSize(notesWidth, contentHeight)
		a.timerPane.SetSize(timerWidth, contentHeight)
		a.calendarPane.SetSize(calendarWidth, contentHeight)

		// Calculate pane positions (with 1 space gaps between panes)
		a.notesPaneStart = 0
		a.notesPaneEnd = notesWidth
		a.timerPaneStart = notesWidth + 1
		a.timerPaneEnd = a.timerPaneStart + timerWidth
		a.calendarPaneStart = a.timerPaneEnd + 1
		a.calendarPaneEnd = a.calendarPaneStart + calendarWidth
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	titleBar := a.renderTitleBar()
	b.WriteString(titleBar)
	b.WriteString("\n")

	// Main content - switch based on layout mode
	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	// Help bar
	helpBar := a.renderHelpBar()
	b.WriteString(helpBar)

	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	notesView := a.notesPane.View()
	timerView := a.timerPane.View()
	calendarView := a.calendarPane.View()

	return lipgloss.JoinHorizontal(lipgloss.Top, notesView, " ", timerView, " ", calendarView)
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	// Tab bar at top
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	// Only render the active pane
	switch a.activePane {
	case PaneNotes:
		b.WriteString(a.notesPane.View())
	case PaneTimer:
		b.WriteString(a.timerPane.View())
	case PaneCalendar:
		b.WriteString(a.calendarPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	// Tab labels
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneNotes, "Notes"},
		{PaneTimer, "Timer"},
		{PaneCalendar, "Calendar"},
	}

	// Create tab styles
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			// Active tab: highlighted with brackets
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			// Inactive tab: muted
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	// Center the tabs
	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with a small summary.
func (a *App) renderGoodbye() string {
	active, archived := a.notesPane.Counts()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if active > 0 || archived > 0 {
		b.WriteString(fmt.Sprintf("  %d notes on the board, %d archived.\n", active, archived))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with stats and timer status.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" daybook ")

	// Stats summary
	active, archived := a.notesPane.Counts()

	var statsItems []string
	if active > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Notes: %d", active))
	}
	if archived > 0 {
		statsItems = append(statsItems, fmt.Sprintf("Archived: %d", archived))
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))

	// Timer status indicator
	var timerStatus string
	if a.timerPane.IsRunning() {
		remaining := formatCountdown(a.timerPane.Remaining())
		timerStatus = a.styles.TimerRunningStyle.Render("▶ " + remaining)
	}

	// Current date/time
	now := a.storage.Now()
	dateStr := now.Format("Mon Jan 2 · 15:04")
	date := a.styles.DateStyle.Render(dateStr)

	// Calculate spacing
	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	timerWidth := lipgloss.Width(timerStatus)
	dateWidth := lipgloss.Width(date)

	usedWidth := titleWidth + statsWidth + timerWidth + dateWidth
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	// Build the title bar
	var parts []string
	parts = append(parts, title)

	if stats != "" {
		parts = append(parts, "  "+stats)
	}

	// Distribute spacing
	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	parts = append(parts, leftSpacer)

	if timerStatus != "" {
		parts = append(parts, timerStatus)
	}

	parts = append(parts, rightSpacer)
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.notesPane.IsEditing() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "done",
		)
	}

	if a.calendarPane.IsSearching() {
		return a.styles.RenderHelp(
			"enter", "search",
			"esc", "cancel",
		)
	}

	if a.notesPane.IsGrabbed() {
		return a.styles.RenderHelp(
			"j/k", "move",
			"enter", "drop",
			"esc", "cancel",
		)
	}

	// Normal mode help based on active pane
	switch a.activePane {
	case PaneNotes:
		if a.notesPane.ShowingArchive() {
			return a.styles.RenderHelp(
				"v", "unarchive",
				"V", "back",
				"j/k", "nav",
				"tab", "pane",
				"?", "help",
			)
		}
		return a.styles.RenderHelp(
			"a", "add",
			"e", "edit",
			"x", "del",
			"p", "print",
			"r", "reorder",
			"tab", "pane",
			"?", "help",
		)
	case PaneTimer:
		if a.timerPane.IsRunning() {
			return a.styles.RenderHelp(
				"space", "stop",
				"tab", "pane",
				"?", "help",
			)
		}
		return a.styles.RenderHelp(
			"space", "start",
			"j/k", "minutes",
			"J/K", "hours",
			"tab", "pane",
			"?", "help",
		)
	case PaneCalendar:
		return a.styles.RenderHelp(
			"h/l", "day",
			"t", "today",
			"x", "del",
			"u", "restore",
			"/", "search",
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens text to at most max runes for overlay bodies.
func truncateText(text string, max int) string {
	return runewidth.Truncate(text, max, "…")
}

// Run starts the Bubble Tea program with the given storage backend,
// timer engine, styles, and config.
func Run(store *storage.Storage, eng *timer.Engine, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, eng, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}
