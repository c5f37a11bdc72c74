package ui

import (
	"testing"
	"time"

	"daybook/internal/config"
	"daybook/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// pane is the shared surface the test helpers drive.
type pane interface {
	Update(tea.Msg) tea.Cmd
}

// setupTest prepares the test environment for deterministic rendering.
// The ASCII profile strips all color codes so assertions can match plain
// substrings of the output.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// setTestClock pins the storage clock to a fixed instant and returns a
// function that advances it.
func setTestClock(t *testing.T, store *storage.Storage) func(time.Duration) {
	t.Helper()
	current := time.Date(2026, 8, 20, 10, 0, 0, 0, time.Local)
	store.SetNowFunc(func() time.Time { return current })
	return func(d time.Duration) { current = current.Add(d) }
}

// addTestNote creates a note with the given title, the way the UI does:
// a blank note first, then a title patch that clears the editing flag.
func addTestNote(t *testing.T, store *storage.Storage, title string) *storage.Todo {
	t.Helper()
	todo, err := store.AddTodo()
	if err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	editing := false
	if err := store.UpdateTodo(todo.ID, storage.TodoPatch{Text: &title, IsEditing: &editing}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	todo.Text = title
	todo.IsEditing = false
	return todo
}

// loadNotes pushes the current store contents into a notes pane.
func loadNotes(t *testing.T, p *NotesPane) {
	t.Helper()
	bundle, err := p.storage.LoadTodos()
	if err != nil {
		t.Fatalf("LoadTodos: %v", err)
	}
	p.setBundle(bundle)
}

// drainCmd executes a command and feeds the resulting storage messages
// back into the pane, following any chained reloads. Non-storage messages
// (cursor blinks, ticks) are dropped.
func drainCmd(t *testing.T, p pane, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drainCmd(t, p, c)
		}
		return
	}

	switch msg.(type) {
	case todosLoadedMsg, todoAddedMsg, todoSavedMsg, todoRemovedMsg,
		todoArchivedMsg, todosReorderedMsg, todoPrintedMsg,
		calendarDayLoadedMsg, entryDeletedMsg, entryRestoredMsg, searchResultsMsg,
		timerStartedMsg, timerStoppedMsg, timerPolledMsg, timerRestoredMsg,
		presetLoadedMsg, presetSavedMsg:
		drainCmd(t, p, p.Update(msg))
	}
}

// Key press constructors.

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyTab() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }

func keySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
}
