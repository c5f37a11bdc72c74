// Package timer implements the countdown engine: a single running timer,
// optionally bound to a todo, whose state survives restarts through the
// storage layer. Completion is decided purely by comparing the clock against
// the persisted end time, so a countdown that elapses while the process is
// down still completes (late) on the next poll.
package timer

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"daybook/internal/notify"
	"daybook/internal/storage"
)

// Engine owns the countdown state. All dependencies are injected; there is
// no package-level singleton.
type Engine struct {
	store      *storage.Storage
	notifier   notify.Notifier
	now        func() time.Time
	onComplete func(storage.CalendarEntry)

	running  bool
	endTime  time.Time
	duration time.Duration
	hours    string
	minutes  string
	todoID   int64 // 0 when the countdown is not bound to a todo
}

// New creates an engine backed by the given storage. A nil notifier gets the
// no-op implementation.
func New(store *storage.Storage, notifier notify.Notifier) *Engine {
	if notifier == nil {
		notifier = notify.Noop()
	}
	return &Engine{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetNowFunc overrides the engine clock. Passing nil resets it to time.Now.
func (e *Engine) SetNowFunc(now func() time.Time) {
	if now == nil {
		e.now = time.Now
		return
	}
	e.now = now
}

// SetOnComplete registers a callback fired whenever a run appends a calendar
// entry, on both natural completion and manual stop.
func (e *Engine) SetOnComplete(fn func(storage.CalendarEntry)) {
	e.onComplete = fn
}

// Running reports whether a countdown is in progress.
func (e *Engine) Running() bool {
	return e.running
}

// Remaining returns the time left on the countdown, floored at zero.
func (e *Engine) Remaining() time.Duration {
	if !e.running {
		return 0
	}
	left := e.endTime.Sub(e.now())
	if left < 0 {
		return 0
	}
	return left
}

// BoundTodoID returns the id of the todo the countdown was started for,
// or 0 for a free-standing countdown.
func (e *Engine) BoundTodoID() int64 {
	if !e.running {
		return 0
	}
	return e.todoID
}

// ParseDuration converts picker strings like "01"/"30" into a duration.
// Unparseable fields count as zero.
func ParseDuration(hours, minutes string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	if h < 0 {
		h = 0
	}
	if m < 0 {
		m = 0
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

// Start begins a countdown of hours:minutes, optionally bound to a todo.
// A zero duration is a no-op. Starting while another countdown runs
// replaces it without logging the abandoned run.
func (e *Engine) Start(todo *storage.Todo, hours, minutes string) error {
	d := ParseDuration(hours, minutes)
	if d <= 0 {
		return nil
	}

	now := e.now()
	e.running = true
	e.endTime = now.Add(d)
	e.duration = d
	e.hours = hours
	e.minutes = minutes
	e.todoID = 0
	if todo != nil {
		e.todoID = todo.ID
	}

	if err := e.store.SaveTimerState(&storage.TimerState{
		EndTime:  e.endTime,
		Hours:    hours,
		Minutes:  minutes,
		IsActive: true,
	}); err != nil {
		return err
	}

	if todo != nil {
		if err := e.store.UpdateTodo(todo.ID, storage.TodoPatch{
			Timer: &storage.TodoTimer{Hours: hours, Minutes: minutes, IsActive: true},
		}); err != nil {
			return err
		}
	}

	_ = e.notifier.Send("Timer started", fmt.Sprintf("Counting down %s", formatDuration(d)))
	return nil
}

// Stop ends the countdown early and logs the partial run to the calendar.
// Time spent rounds to whole minutes with a one-minute floor, so even an
// immediately abandoned run leaves a visible trace.
func (e *Engine) Stop() error {
	if !e.running {
		return nil
	}

	now := e.now()
	started := e.endTime.Add(-e.duration)
	elapsed := int(math.Round(now.Sub(started).Minutes()))
	if elapsed < 1 {
		elapsed = 1
	}

	entry := storage.CalendarEntry{
		Todo:           e.snapshotTodo(),
		PrintedAt:      now,
		TimeSpent:      &storage.TimeSpent{Elapsed: elapsed},
		TimerCompleted: false,
	}

	if err := e.finish(entry); err != nil {
		return err
	}
	return nil
}

// Poll checks the clock against the end time and completes the run when it
// has passed. It reports whether completion happened on this call; repeated
// polls after completion stay false because the state is already cleared.
func (e *Engine) Poll() (bool, error) {
	if !e.running || e.now().Before(e.endTime) {
		return false, nil
	}

	entry := storage.CalendarEntry{
		Todo:           e.snapshotTodo(),
		PrintedAt:      e.now(),
		TimeSpent:      &storage.TimeSpent{Elapsed: int(e.duration.Minutes())},
		TimerCompleted: true,
	}

	if err := e.finish(entry); err != nil {
		return true, err
	}
	_ = e.notifier.SendWithSound("Timer complete", fmt.Sprintf("%s is done", entryTitle(entry)))
	return true, nil
}

// Restore re-enters the running state from persisted data. Only a state that
// is both active and not yet expired comes back; anything else is discarded
// so stale files cannot resurrect dead countdowns.
func (e *Engine) Restore() error {
	state, err := e.store.LoadTimerState()
	if err != nil {
		return err
	}

	if !state.IsActive || !state.EndTime.After(e.now()) {
		if state.IsActive {
			if err := e.store.ClearTimerState(); err != nil {
				return err
			}
		}
		return nil
	}

	e.running = true
	e.endTime = state.EndTime
	e.duration = ParseDuration(state.Hours, state.Minutes)
	e.hours = state.Hours
	e.minutes = state.Minutes
	e.todoID = e.findBoundTodo()
	return nil
}

// finish clears all running state, persists the cleared state, deactivates
// the bound todo's embedded timer and appends the calendar entry.
func (e *Engine) finish(entry storage.CalendarEntry) error {
	todoID := e.todoID
	hours, minutes := e.hours, e.minutes

	e.running = false
	e.endTime = time.Time{}
	e.duration = 0
	e.todoID = 0

	if err := e.store.ClearTimerState(); err != nil {
		return err
	}
	if todoID != 0 {
		if err := e.store.UpdateTodo(todoID, storage.TodoPatch{
			Timer: &storage.TodoTimer{Hours: hours, Minutes: minutes, IsActive: false},
		}); err != nil {
			return err
		}
	}

	appended, err := e.store.AppendCalendarEntry(entry)
	if err != nil {
		return err
	}
	if e.onComplete != nil {
		e.onComplete(*appended)
	}
	return nil
}

// snapshotTodo captures the bound todo for the calendar entry. A missing or
// unbound todo yields a minimal snapshot that renders as an untitled note.
func (e *Engine) snapshotTodo() storage.Todo {
	if e.todoID != 0 {
		todo, err := e.store.FindActiveTodo(e.todoID)
		if err == nil && todo != nil {
			return *todo
		}
	}
	now := e.now()
	return storage.Todo{
		ID:        now.UnixMilli(),
		Color:     storage.ColorBlue,
		NoteType:  storage.NoteText,
		CreatedAt: &now,
	}
}

// findBoundTodo scans the active list for the todo whose embedded timer is
// marked active. That flag is the only persisted link between the countdown
// and its item.
func (e *Engine) findBoundTodo() int64 {
	bundle, err := e.store.LoadTodos()
	if err != nil {
		return 0
	}
	for _, t := range bundle.Todos {
		if t.Timer != nil && t.Timer.IsActive {
			return t.ID
		}
	}
	return 0
}

func entryTitle(entry storage.CalendarEntry) string {
	if entry.Todo.Text == "" {
		return "Untitled Note"
	}
	return entry.Todo.Text
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
