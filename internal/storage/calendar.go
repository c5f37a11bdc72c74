package storage

import (
	"strings"
	"time"
)

// LoadCalendar reads the calendar log from disk. The file is a bare JSON
// array; entries keep insertion order, which is also display order.
func (s *Storage) LoadCalendar() ([]CalendarEntry, error) {
	entries := []CalendarEntry{}
	err := s.loadJSONWithRecovery(calendarFile, &entries)
	if entries == nil {
		entries = []CalendarEntry{}
	}
	return entries, err
}

// SaveCalendar writes the calendar log to disk.
func (s *Storage) SaveCalendar(entries []CalendarEntry) error {
	if entries == nil {
		entries = []CalendarEntry{}
	}
	return s.writeJSONAtomic(calendarFile, entries)
}

// AppendCalendarEntry adds an entry to the end of the log. The embedded todo
// is deep-copied so later edits to a live todo never alter history.
func (s *Storage) AppendCalendarEntry(entry CalendarEntry) (*CalendarEntry, error) {
	entries, err := s.LoadCalendar()
	if err != nil {
		return nil, err
	}

	entry = entry.Clone()
	if entry.ID == 0 {
		entry.ID = s.Now().UnixMilli()
	}
	if entry.PrintedAt.IsZero() {
		entry.PrintedAt = s.Now()
	}

	entries = append(entries, entry)
	if err := s.SaveCalendar(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// PrintToCalendar snapshots an active todo onto today's calendar. A missing
// id is a no-op.
func (s *Storage) PrintToCalendar(todoID int64) (*CalendarEntry, error) {
	todo, err := s.FindActiveTodo(todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, nil
	}

	return s.AppendCalendarEntry(CalendarEntry{
		ID:        s.Now().UnixMilli(),
		Todo:      *todo,
		PrintedAt: s.Now(),
	})
}

// CalendarEntriesOn returns entries whose PrintedAt falls on the given local
// calendar day, in insertion order.
func (s *Storage) CalendarEntriesOn(date time.Time) ([]CalendarEntry, error) {
	entries, err := s.LoadCalendar()
	if err != nil {
		return nil, err
	}

	day := []CalendarEntry{}
	for _, e := range entries {
		if sameDay(e.PrintedAt, date) {
			day = append(day, e)
		}
	}
	return day, nil
}

// CalendarWeek buckets entries into 7 days starting at start's calendar day.
func (s *Storage) CalendarWeek(start time.Time) ([7][]CalendarEntry, error) {
	var week [7][]CalendarEntry
	entries, err := s.LoadCalendar()
	if err != nil {
		return week, err
	}

	dayStart := startOfDay(start)
	for _, e := range entries {
		offset := int(startOfDay(e.PrintedAt).Sub(dayStart).Hours() / 24)
		if offset >= 0 && offset < 7 {
			week[offset] = append(week[offset], e)
		}
	}
	return week, nil
}

// UpdateCalendarEntry patches the todo embedded in an entry. PrintedAt and
// the timer fields are history and stay untouched.
func (s *Storage) UpdateCalendarEntry(id int64, patch TodoPatch) error {
	entries, err := s.LoadCalendar()
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ID == id {
			patch.apply(&entries[i].Todo)
			return s.SaveCalendar(entries)
		}
	}
	return nil
}

// DeleteCalendarEntry removes an entry from the log.
func (s *Storage) DeleteCalendarEntry(id int64) error {
	entries, err := s.LoadCalendar()
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return s.SaveCalendar(entries)
		}
	}
	return nil
}

// RestoreEntryToActive recreates a calendar entry's todo in the active list.
// A matching active todo (same text and note, created within a second of the
// snapshot) means it was already restored, so nothing happens. The entry
// itself is removed only when it belongs to today or a future day; past days
// keep their history.
func (s *Storage) RestoreEntryToActive(entryID int64) (*Todo, error) {
	entries, err := s.LoadCalendar()
	if err != nil {
		return nil, err
	}

	var entry *CalendarEntry
	for i := range entries {
		if entries[i].ID == entryID {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil, nil
	}

	bundle, err := s.LoadTodos()
	if err != nil {
		return nil, err
	}

	for _, t := range bundle.Todos {
		if t.Text == entry.Todo.Text && t.Note == entry.Todo.Note &&
			t.CreatedAt != nil && entry.Todo.CreatedAt != nil &&
			sameSecond(*t.CreatedAt, *entry.Todo.CreatedAt) {
			return nil, nil
		}
	}

	now := s.Now()
	restored := entry.Todo.Clone()
	restored.ID = s.uniqueTodoID(bundle)
	restored.IsEditing = false
	restored.RestoredFrom = &RestoredFrom{
		Type:       "calendar",
		OriginalID: entry.ID,
		Timestamp:  now,
	}

	bundle.Todos = append(bundle.Todos, restored)
	if err := s.SaveTodos(bundle); err != nil {
		return nil, err
	}

	if !startOfDay(entry.PrintedAt).Before(startOfDay(now)) {
		if err := s.DeleteCalendarEntry(entryID); err != nil {
			return &restored, err
		}
	}

	return &restored, nil
}

// SearchCalendarEntries returns entries whose text or note contains the
// query, case-insensitively, across all days. An empty query matches nothing.
func (s *Storage) SearchCalendarEntries(query string) ([]CalendarEntry, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []CalendarEntry{}, nil
	}

	entries, err := s.LoadCalendar()
	if err != nil {
		return nil, err
	}

	matches := []CalendarEntry{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Todo.Text), query) ||
			strings.Contains(strings.ToLower(e.Todo.Note), query) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
