package ui

import (
	"strings"
	"testing"
	"time"

	"daybook/internal/notify"
	"daybook/internal/storage"
	"daybook/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

// newTestApp builds an app over temp storage with a pinned clock.
func newTestApp(t *testing.T, cfg *AppConfig) (*App, *storage.Storage) {
	t.Helper()
	store := createTestStorage(t)
	setTestClock(t, store)

	eng := timer.New(store, notify.Noop())
	eng.SetNowFunc(store.Now)

	app := NewApp(store, eng, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 130, Height: 40})
	return app, store
}

// drainAppCmd feeds storage messages from a command back into the app.
func drainAppCmd(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drainAppCmd(t, a, c)
		}
		return
	}

	switch msg.(type) {
	case todosLoadedMsg, todoAddedMsg, todoSavedMsg, todoRemovedMsg,
		todoArchivedMsg, todosReorderedMsg, todoPrintedMsg,
		calendarDayLoadedMsg, entryDeletedMsg, entryRestoredMsg, searchResultsMsg,
		timerStartedMsg, timerStoppedMsg, timerPolledMsg, timerRestoredMsg,
		presetLoadedMsg, presetSavedMsg:
		_, next := a.Update(msg)
		drainAppCmd(t, a, next)
	}
}

func TestAppView_WideLayout(t *testing.T) {
	setupTest(t)
	app, store := newTestApp(t, nil)

	addTestNote(t, store, "Morning pages")
	drainAppCmd(t, app, app.notesPane.LoadTodosCmd())
	drainAppCmd(t, app, app.calendarPane.LoadDayCmd())

	output := app.View()
	for _, want := range []string{"daybook", "NOTES", "TIMER", "CALENDAR", "Morning pages", "Notes: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing %q:\n%s", want, output)
		}
	}
}

func TestAppView_NarrowLayout(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	if app.layoutMode != LayoutNarrow {
		t.Fatalf("layout = %v, want narrow", app.layoutMode)
	}

	output := app.View()
	if !strings.Contains(output, "[Notes]") {
		t.Errorf("narrow view missing active tab:\n%s", output)
	}
	// Only the focused pane renders.
	if strings.Contains(output, "CALENDAR") {
		t.Errorf("narrow view leaked inactive pane:\n%s", output)
	}
}

func TestApp_PaneSwitching(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	if app.activePane != PaneNotes {
		t.Fatalf("initial pane = %v, want notes", app.activePane)
	}

	app.Update(keyTab())
	if app.activePane != PaneTimer || !app.timerPane.IsFocused() {
		t.Errorf("pane after tab = %v", app.activePane)
	}

	app.Update(keyTab())
	if app.activePane != PaneCalendar {
		t.Errorf("pane after second tab = %v", app.activePane)
	}

	app.Update(keyTab())
	if app.activePane != PaneNotes {
		t.Errorf("pane after third tab = %v", app.activePane)
	}

	app.Update(keyRunes("3"))
	if app.activePane != PaneCalendar || !app.calendarPane.IsFocused() {
		t.Errorf("pane after 3 = %v", app.activePane)
	}
	if app.notesPane.IsFocused() {
		t.Error("notes pane still focused")
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.Update(keyRunes("?"))
	if !app.showHelp {
		t.Fatal("help not shown after ?")
	}
	output := app.View()
	if !strings.Contains(output, "Keyboard Shortcuts") {
		t.Errorf("help overlay missing title:\n%s", output)
	}

	app.Update(keyEsc())
	if app.showHelp {
		t.Error("help still shown after esc")
	}
}

func TestApp_ConfirmDelete(t *testing.T) {
	setupTest(t)
	app, store := newTestApp(t, &AppConfig{ConfirmDeletions: true, NarrowLayoutThreshold: 80})
	app.Update(tea.WindowSizeMsg{Width: 130, Height: 40})

	addTestNote(t, store, "Precious")
	drainAppCmd(t, app, app.notesPane.LoadTodosCmd())

	// x opens the modal instead of deleting.
	app.Update(keyRunes("x"))
	if app.confirmDel == nil {
		t.Fatal("no confirmation modal after x")
	}
	output := app.View()
	if !strings.Contains(output, "Delete note?") || !strings.Contains(output, "Precious") {
		t.Errorf("modal missing content:\n%s", output)
	}

	// n cancels without touching data.
	app.Update(keyRunes("n"))
	if app.confirmDel != nil {
		t.Fatal("modal still open after n")
	}
	bundle, _ := store.LoadTodos()
	if len(bundle.Todos) != 1 {
		t.Fatalf("note deleted despite cancel")
	}

	// y confirms and the note goes away.
	app.Update(keyRunes("x"))
	_, cmd := app.Update(keyRunes("y"))
	drainAppCmd(t, app, cmd)

	bundle, _ = store.LoadTodos()
	if len(bundle.Todos) != 0 {
		t.Errorf("note count after confirmed delete = %d, want 0", len(bundle.Todos))
	}
}

func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	app, store := newTestApp(t, &AppConfig{ConfirmDeletions: false, NarrowLayoutThreshold: 80})
	app.Update(tea.WindowSizeMsg{Width: 130, Height: 40})

	addTestNote(t, store, "Expendable")
	drainAppCmd(t, app, app.notesPane.LoadTodosCmd())

	_, cmd := app.Update(keyRunes("x"))
	if app.confirmDel != nil {
		t.Fatal("modal opened with confirmations disabled")
	}
	drainAppCmd(t, app, cmd)

	bundle, _ := store.LoadTodos()
	if len(bundle.Todos) != 0 {
		t.Errorf("note count = %d, want 0", len(bundle.Todos))
	}
}

func TestApp_ConfirmDeleteCalendarEntry(t *testing.T) {
	setupTest(t)
	app, store := newTestApp(t, &AppConfig{ConfirmDeletions: true, NarrowLayoutThreshold: 80})
	app.Update(tea.WindowSizeMsg{Width: 130, Height: 40})

	todo := addTestNote(t, store, "Logged")
	store.PrintToCalendar(todo.ID)
	drainAppCmd(t, app, app.calendarPane.LoadDayCmd())

	app.Update(keyRunes("3"))
	app.Update(keyRunes("x"))
	if app.confirmDel == nil {
		t.Fatal("no confirmation modal for calendar entry")
	}
	if !strings.Contains(app.View(), "Delete calendar entry?") {
		t.Error("modal missing calendar title")
	}

	_, cmd := app.Update(keyEnter())
	drainAppCmd(t, app, cmd)

	entries, _ := store.LoadCalendar()
	if len(entries) != 0 {
		t.Errorf("entries after confirmed delete = %d, want 0", len(entries))
	}
}

func TestApp_StatusLifecycle(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.SetStatus("saved", false)
	if !strings.Contains(app.View(), "saved") {
		t.Error("status not rendered")
	}

	// Still visible before the TTL.
	app.Update(tickMsg(time.Now()))
	if app.status == "" {
		t.Error("status cleared before TTL")
	}

	// Expired status clears on the next tick.
	app.statusUntil = time.Now().Add(-time.Second)
	app.Update(tickMsg(time.Now()))
	if app.status != "" {
		t.Error("status survived past TTL")
	}
}

func TestApp_QuitShowsGoodbye(t *testing.T) {
	setupTest(t)
	app, store := newTestApp(t, nil)

	addTestNote(t, store, "Tomorrow")
	drainAppCmd(t, app, app.notesPane.LoadTodosCmd())

	_, cmd := app.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
	output := app.View()
	if !strings.Contains(output, "See you later") {
		t.Errorf("goodbye missing:\n%s", output)
	}
	if !strings.Contains(output, "1 notes on the board") {
		t.Errorf("goodbye missing summary:\n%s", output)
	}
}

func TestApp_TitleBarShowsRunningTimer(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	app.timerPane.hourVal = 0
	app.timerPane.minVal = 15
	app.Update(keyRunes("2"))
	_, cmd := app.Update(keySpace())
	drainAppCmd(t, app, cmd)

	if !app.timerPane.IsRunning() {
		t.Fatal("timer not running")
	}
	output := app.View()
	if !strings.Contains(output, "00:15:00") {
		t.Errorf("title bar missing countdown:\n%s", output)
	}
}

func TestApp_GlobalKeysIgnoredWhileEditing(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t, nil)

	// Start adding a note; the title editor owns the keyboard.
	_, cmd := app.Update(keyRunes("a"))
	drainAppCmd(t, app, cmd)
	if !app.notesPane.IsEditing() {
		t.Fatal("notes pane not editing")
	}

	// q must type into the input, not quit.
	app.Update(keyRunes("q"))
	if app.quitting {
		t.Error("q quit the app while editing")
	}
	if got := app.notesPane.titleInput.Value(); got != "q" {
		t.Errorf("input value = %q, want q", got)
	}
}
