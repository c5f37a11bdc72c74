package ui

import (
	"strings"
	"testing"
	"time"
)

// loadDay pushes the pane's current day from storage into the pane.
func loadDay(t *testing.T, p *CalendarPane) {
	t.Helper()
	drainCmd(t, p, p.LoadDayCmd())
}

func TestCalendarPaneView_Empty(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	setTestClock(t, store)

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	output := pane.View()
	for _, want := range []string{"CALENDAR", "(today)", "No entries"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing %q:\n%s", want, output)
		}
	}
}

func TestCalendarPaneView_WithEntries(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	setTestClock(t, store)

	todo := addTestNote(t, store, "Shipped the thing")
	if _, err := store.PrintToCalendar(todo.ID); err != nil {
		t.Fatalf("PrintToCalendar: %v", err)
	}

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	output := pane.View()
	if !strings.Contains(output, "Shipped the thing") {
		t.Errorf("view missing entry title:\n%s", output)
	}
	// The 10:00 print time shows next to the entry.
	if !strings.Contains(output, "10:00") {
		t.Errorf("view missing print time:\n%s", output)
	}
}

func TestCalendarPane_DayNavigation(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	setTestClock(t, store)

	todo := addTestNote(t, store, "Today only")
	store.PrintToCalendar(todo.ID)

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	today := pane.day

	// Previous day is empty.
	drainCmd(t, pane, pane.Update(keyRunes("h")))
	if !pane.day.Before(today) {
		t.Fatalf("day after h = %v, not before %v", pane.day, today)
	}
	if len(pane.entries) != 0 {
		t.Errorf("previous day entries = %d, want 0", len(pane.entries))
	}

	// Forward again.
	drainCmd(t, pane, pane.Update(keyRunes("l")))
	if len(pane.entries) != 1 {
		t.Errorf("today entries = %d, want 1", len(pane.entries))
	}

	// Jump far back, then t returns home.
	for i := 0; i < 5; i++ {
		drainCmd(t, pane, pane.Update(keyRunes("h")))
	}
	drainCmd(t, pane, pane.Update(keyRunes("t")))
	if !sameDay(pane.day, today) {
		t.Errorf("day after t = %v, want %v", pane.day, today)
	}
}

func TestCalendarPane_WeekStripCounts(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	advance := setTestClock(t, store)

	first := addTestNote(t, store, "Early")
	store.PrintToCalendar(first.ID)
	advance(24 * time.Hour)
	second := addTestNote(t, store, "Late")
	store.PrintToCalendar(second.ID)

	pane := NewCalendarPane(store, createTestStyles())
	pane.day = store.Now()
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	total := 0
	for _, bucket := range pane.week {
		total += len(bucket)
	}
	if total != 2 {
		t.Errorf("week strip total = %d, want 2", total)
	}
}

func TestCalendarPane_DeleteEntry(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	setTestClock(t, store)

	todo := addTestNote(t, store, "Oops")
	store.PrintToCalendar(todo.ID)

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	drainCmd(t, pane, pane.Update(keyRunes("x")))
	if len(pane.entries) != 0 {
		t.Errorf("entries after delete = %d, want 0", len(pane.entries))
	}
	entries, _ := store.LoadCalendar()
	if len(entries) != 0 {
		t.Errorf("stored entries after delete = %d, want 0", len(entries))
	}
}

func TestCalendarPane_RestoreEntry(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	advance := setTestClock(t, store)

	todo := addTestNote(t, store, "Resurrect me")
	store.PrintToCalendar(todo.ID)
	if _, _, err := store.RemoveTodo(todo.ID); err != nil {
		t.Fatalf("RemoveTodo: %v", err)
	}
	advance(time.Minute)

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)
	loadDay(t, pane)

	drainCmd(t, pane, pane.Update(keyRunes("u")))

	bundle, _ := store.LoadTodos()
	if len(bundle.Todos) != 1 || bundle.Todos[0].Text != "Resurrect me" {
		t.Errorf("active notes after restore = %+v", bundle.Todos)
	}
	// The log entry itself stays.
	entries, _ := store.LoadCalendar()
	if len(entries) != 1 {
		t.Errorf("calendar entries after restore = %d, want 1", len(entries))
	}
}

func TestCalendarPane_Search(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	advance := setTestClock(t, store)

	first := addTestNote(t, store, "Fix the build")
	store.PrintToCalendar(first.ID)
	advance(48 * time.Hour)
	second := addTestNote(t, store, "Fix the tests")
	store.PrintToCalendar(second.ID)
	third := addTestNote(t, store, "Water plants")
	store.PrintToCalendar(third.ID)

	pane := NewCalendarPane(store, createTestStyles())
	pane.day = store.Now()
	pane.SetSize(44, 24)
	pane.SetFocused(true)
	loadDay(t, pane)

	// Open the prompt, type a query, confirm.
	pane.Update(keyRunes("/"))
	if !pane.IsSearching() {
		t.Fatal("search prompt not open after /")
	}
	pane.Update(keyRunes("fix"))
	drainCmd(t, pane, pane.Update(keyEnter()))

	if pane.resultsFor != "fix" {
		t.Fatalf("resultsFor = %q, want fix", pane.resultsFor)
	}
	if len(pane.results) != 2 {
		t.Fatalf("results = %d, want 2 (across days)", len(pane.results))
	}

	output := pane.View()
	if !strings.Contains(output, `2 hits for "fix"`) {
		t.Errorf("results view missing header:\n%s", output)
	}

	// Esc drops back to the day view.
	pane.Update(keyEsc())
	if pane.resultsFor != "" {
		t.Error("results still active after esc")
	}
}

func TestCalendarPane_SearchEmptyQueryClears(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	setTestClock(t, store)

	pane := NewCalendarPane(store, createTestStyles())
	pane.SetSize(44, 20)
	pane.SetFocused(true)

	pane.Update(keyRunes("/"))
	drainCmd(t, pane, pane.Update(keyEnter()))
	if pane.IsSearching() || pane.resultsFor != "" {
		t.Error("empty query left search state behind")
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday",
			in:   time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday is its own start",
			in:   time.Date(2026, 8, 17, 0, 0, 1, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to preceding monday",
			in:   time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("startOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 8, 20, 0, 0, 1, 0, time.Local)
	b := time.Date(2026, 8, 20, 23, 59, 59, 0, time.Local)
	if !sameDay(a, b) {
		t.Error("same calendar day reported different")
	}
	if sameDay(a, b.Add(time.Second)) {
		t.Error("midnight rollover reported same")
	}
}
