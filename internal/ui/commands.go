// Package ui provides terminal user interface components for the daybook app.
// This file contains tea.Cmd factories that wrap storage and timer operations.
// These commands run I/O asynchronously to keep the Bubble Tea event loop
// responsive. Each command returns a corresponding message type defined in
// messages.go.
package ui

import (
	"time"

	"daybook/internal/storage"
	"daybook/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Note Commands
// =============================================================================

// loadTodosCmd returns a command that loads both note lists from storage.
func loadTodosCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		bundle, err := store.LoadTodos()
		return todosLoadedMsg{bundle: bundle, err: err}
	}
}

// addTodoCmd returns a command that creates a new blank note.
func addTodoCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		todo, err := store.AddTodo()
		return todoAddedMsg{todo: todo, err: err}
	}
}

// updateTodoCmd returns a command that applies a patch to an active note.
func updateTodoCmd(store *storage.Storage, id int64, patch storage.TodoPatch) tea.Cmd {
	return func() tea.Msg {
		err := store.UpdateTodo(id, patch)
		return todoSavedMsg{id: id, err: err}
	}
}

// removeTodoCmd returns a command that deletes a note and reports which
// note should be selected next.
func removeTodoCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		next, hasNext, err := store.RemoveTodo(id)
		return todoRemovedMsg{next: next, hasNext: hasNext, err: err}
	}
}

// archiveTodoCmd returns a command that moves a note to the archive.
func archiveTodoCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		err := store.ArchiveTodo(id)
		return todoArchivedMsg{err: err}
	}
}

// unarchiveTodoCmd returns a command that moves an archived note back.
func unarchiveTodoCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		err := store.UnarchiveTodo(id)
		return todoArchivedMsg{unarchived: true, err: err}
	}
}

// reorderTodosCmd returns a command that commits a drag result.
func reorderTodosCmd(store *storage.Storage, order []int64) tea.Cmd {
	return func() tea.Msg {
		err := store.ReorderTodos(order)
		return todosReorderedMsg{err: err}
	}
}

// printTodoCmd returns a command that snapshots a note onto the calendar.
func printTodoCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.PrintToCalendar(id)
		return todoPrintedMsg{entry: entry, err: err}
	}
}

// =============================================================================
// Calendar Commands
// =============================================================================

// loadCalendarDayCmd returns a command that loads the entries for a day
// along with the week strip around it.
func loadCalendarDayCmd(store *storage.Storage, day time.Time) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.CalendarEntriesOn(day)
		if err != nil {
			return calendarDayLoadedMsg{day: day, err: err}
		}
		week, err := store.CalendarWeek(startOfWeek(day))
		return calendarDayLoadedMsg{day: day, entries: entries, week: week, err: err}
	}
}

// deleteEntryCmd returns a command that removes a calendar entry.
func deleteEntryCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		err := store.DeleteCalendarEntry(id)
		return entryDeletedMsg{err: err}
	}
}

// restoreEntryCmd returns a command that recreates a calendar entry's
// note in the active list.
func restoreEntryCmd(store *storage.Storage, id int64) tea.Cmd {
	return func() tea.Msg {
		todo, err := store.RestoreEntryToActive(id)
		return entryRestoredMsg{todo: todo, err: err}
	}
}

// searchEntriesCmd returns a command that searches all calendar entries.
func searchEntriesCmd(store *storage.Storage, query string) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.SearchCalendarEntries(query)
		return searchResultsMsg{query: query, entries: entries, err: err}
	}
}

// startOfWeek returns the Monday that begins the week containing t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// =============================================================================
// Timer Commands
// =============================================================================

// startTimerCmd returns a command that starts a countdown, optionally
// bound to a note.
func startTimerCmd(eng *timer.Engine, todo *storage.Todo, hours, minutes string) tea.Cmd {
	return func() tea.Msg {
		err := eng.Start(todo, hours, minutes)
		return timerStartedMsg{err: err}
	}
}

// stopTimerCmd returns a command that stops the running countdown.
func stopTimerCmd(eng *timer.Engine) tea.Cmd {
	return func() tea.Msg {
		err := eng.Stop()
		return timerStoppedMsg{err: err}
	}
}

// pollTimerCmd returns a command that checks for countdown completion.
func pollTimerCmd(eng *timer.Engine) tea.Cmd {
	return func() tea.Msg {
		completed, err := eng.Poll()
		return timerPolledMsg{completed: completed, err: err}
	}
}

// restoreTimerCmd returns a command that resumes a persisted countdown.
func restoreTimerCmd(eng *timer.Engine) tea.Cmd {
	return func() tea.Msg {
		err := eng.Restore()
		return timerRestoredMsg{err: err}
	}
}

// loadPresetCmd returns a command that loads the duration preset.
func loadPresetCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		preset, err := store.LoadTimerPreset()
		return presetLoadedMsg{preset: preset, err: err}
	}
}

// savePresetCmd returns a command that persists the duration preset.
func savePresetCmd(store *storage.Storage, hours, minutes string) tea.Cmd {
	return func() tea.Msg {
		err := store.SaveTimerPreset(&storage.TimerPreset{Hours: hours, Minutes: minutes})
		return presetSavedMsg{err: err}
	}
}

// debouncePresetCmd returns a command that fires the debounce tick for a
// preset save. The pane drops ticks whose sequence number is stale.
func debouncePresetCmd(seq int) tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return presetSaveTickMsg{seq: seq}
	})
}
