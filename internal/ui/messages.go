// Package ui provides terminal user interface components for the daybook app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All storage operations should return these messages to keep
// the event loop non-blocking.
package ui

import (
	"time"

	"daybook/internal/storage"
)

// =============================================================================
// Note Messages
// =============================================================================

// todosLoadedMsg is sent when the active and archived lists are loaded.
type todosLoadedMsg struct {
	bundle *storage.TodoBundle
	err    error
}

// todoAddedMsg is sent when a new note is created.
type todoAddedMsg struct {
	todo *storage.Todo
	err  error
}

// todoSavedMsg is sent when a note patch has been persisted.
type todoSavedMsg struct {
	id  int64
	err error
}

// todoRemovedMsg is sent when a note is deleted.
type todoRemovedMsg struct {
	next    int64 // id to select next
	hasNext bool
	err     error
}

// todoArchivedMsg is sent when a note moves between the active and
// archived lists, in either direction.
type todoArchivedMsg struct {
	unarchived bool
	err        error
}

// todosReorderedMsg is sent when a drag result has been committed.
type todosReorderedMsg struct {
	err error
}

// todoPrintedMsg is sent when a note snapshot is appended to the calendar.
type todoPrintedMsg struct {
	entry *storage.CalendarEntry
	err   error
}

// =============================================================================
// Calendar Messages
// =============================================================================

// calendarDayLoadedMsg is sent when a day's entries and the surrounding
// week buckets are loaded.
type calendarDayLoadedMsg struct {
	day     time.Time
	entries []storage.CalendarEntry
	week    [7][]storage.CalendarEntry
	err     error
}

// entryDeletedMsg is sent when a calendar entry is removed.
type entryDeletedMsg struct {
	err error
}

// entryRestoredMsg is sent when a calendar entry is restored to the
// active list. todo is nil when the duplicate guard suppressed it.
type entryRestoredMsg struct {
	todo *storage.Todo
	err  error
}

// searchResultsMsg is sent when a calendar search completes.
type searchResultsMsg struct {
	query   string
	entries []storage.CalendarEntry
	err     error
}

// =============================================================================
// Timer Messages
// =============================================================================

// timerStartedMsg is sent when a countdown starts.
type timerStartedMsg struct {
	err error
}

// timerStoppedMsg is sent when a countdown is stopped manually.
type timerStoppedMsg struct {
	err error
}

// timerPolledMsg is sent after each completion check.
type timerPolledMsg struct {
	completed bool
	err       error
}

// timerRestoredMsg is sent when persisted timer state has been examined
// at startup.
type timerRestoredMsg struct {
	err error
}

// presetLoadedMsg is sent when the duration preset is loaded.
type presetLoadedMsg struct {
	preset *storage.TimerPreset
	err    error
}

// presetSavedMsg is sent when the duration preset has been persisted.
type presetSavedMsg struct {
	err error
}

// presetSaveTickMsg fires after the debounce window for preset saves.
// Stale sequence numbers are ignored.
type presetSaveTickMsg struct {
	seq int
}
