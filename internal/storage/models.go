package storage

import "time"

// SchemaVersion is the current on-disk (and export) schema version.
const SchemaVersion = 1

// NoteType governs how the lines of a note are rendered and toggled.
// The stored note is always a single string with embedded newlines; the
// type only changes presentation (plain lines, "• " bullets, "[ ]" boxes).
type NoteType string

const (
	NoteText     NoteType = "text"
	NoteBullet   NoteType = "bullet"
	NoteCheckbox NoteType = "checkbox"
)

// Color is one of the fixed palette colors used for visual grouping.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
)

// Palette lists the selectable note colors in cycling order.
var Palette = []Color{ColorBlue, ColorRed, ColorYellow, ColorGreen}

// TodoTimer is a countdown configuration attached to a specific todo.
type TodoTimer struct {
	Hours    string `json:"hours"`
	Minutes  string `json:"minutes"`
	IsActive bool   `json:"isActive"`
}

// RestoredFrom records where a recreated todo came from.
type RestoredFrom struct {
	Type       string    `json:"type"` // "calendar" or "archive"
	OriginalID int64     `json:"originalId"`
	Timestamp  time.Time `json:"timestamp"`
}

// Todo is a single note/task item.
type Todo struct {
	ID           int64         `json:"id"`
	Text         string        `json:"text"`
	Note         string        `json:"note"`
	Color        Color         `json:"color"`
	IsEditing    bool          `json:"isEditing"`
	NoteType     NoteType      `json:"noteType"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"` // optional for older saved data
	RestoredFrom *RestoredFrom `json:"restoredFrom,omitempty"`
	Timer        *TodoTimer    `json:"timer,omitempty"`
}

// Clone returns a deep copy. Calendar entries embed snapshots, so later
// edits to the live todo must never leak into them.
func (t Todo) Clone() Todo {
	c := t
	if t.CreatedAt != nil {
		at := *t.CreatedAt
		c.CreatedAt = &at
	}
	if t.RestoredFrom != nil {
		rf := *t.RestoredFrom
		c.RestoredFrom = &rf
	}
	if t.Timer != nil {
		tm := *t.Timer
		c.Timer = &tm
	}
	return c
}

// TodoPatch is a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Text      *string
	Note      *string
	Color     *Color
	IsEditing *bool
	NoteType  *NoteType
	Timer     *TodoTimer
	// ClearTimer removes the embedded timer config when true.
	ClearTimer bool
}

func (p TodoPatch) apply(t *Todo) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.IsEditing != nil {
		t.IsEditing = *p.IsEditing
	}
	if p.NoteType != nil {
		t.NoteType = *p.NoteType
	}
	if p.Timer != nil {
		tm := *p.Timer
		t.Timer = &tm
	}
	if p.ClearTimer {
		t.Timer = nil
	}
}

// TodoBundle is the versioned on-disk form of the active and archived lists.
type TodoBundle struct {
	Version  int    `json:"version"`
	Todos    []Todo `json:"todos"`
	Archived []Todo `json:"archivedTodos"`
}

// TimeSpent records how long a timer ran, in whole minutes.
type TimeSpent struct {
	Elapsed int `json:"elapsed"`
}

// CalendarEntry is an append-only log record: a todo snapshot plus the
// moment it was printed to the calendar.
type CalendarEntry struct {
	ID             int64      `json:"id"`
	Todo           Todo       `json:"todo"`
	PrintedAt      time.Time  `json:"printedAt"`
	TimeSpent      *TimeSpent `json:"timeSpent,omitempty"`
	TimerCompleted bool       `json:"timerCompleted,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e CalendarEntry) Clone() CalendarEntry {
	c := e
	c.Todo = e.Todo.Clone()
	if e.TimeSpent != nil {
		ts := *e.TimeSpent
		c.TimeSpent = &ts
	}
	return c
}

// TimerState is the persisted countdown state. It outlives the process so
// a restart can pick the countdown back up from the stored end time.
type TimerState struct {
	EndTime  time.Time `json:"endTime"`
	Hours    string    `json:"hours"`
	Minutes  string    `json:"minutes"`
	IsActive bool      `json:"isActive"`
}

// TimerPreset is the last configured duration, independent of any todo.
type TimerPreset struct {
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
}

// Snapshot is the export/import bundle. It must round-trip exactly.
type Snapshot struct {
	Version         int             `json:"version"`
	Todos           []Todo          `json:"todos"`
	Archived        []Todo          `json:"archivedTodos"`
	CalendarEntries []CalendarEntry `json:"calendarEntries"`
}
