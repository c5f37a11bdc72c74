package ui

import (
	"strings"
	"testing"
	"time"

	"daybook/internal/notify"
	"daybook/internal/storage"
	"daybook/internal/timer"
)

// newTestTimerPane builds a pane with an engine whose clock is pinned.
// The returned advance function moves both the storage and engine clocks.
func newTestTimerPane(t *testing.T) (*TimerPane, *storage.Storage, func(time.Duration)) {
	t.Helper()
	store := createTestStorage(t)
	advance := setTestClock(t, store)

	eng := timer.New(store, notify.Noop())
	eng.SetNowFunc(store.Now)

	pane := NewTimerPane(store, eng, createTestStyles())
	pane.SetSize(36, 18)
	pane.SetFocused(true)
	return pane, store, advance
}

func TestTimerPaneView_Idle(t *testing.T) {
	setupTest(t)
	pane, _, _ := newTestTimerPane(t)

	output := pane.View()
	for _, want := range []string{"TIMER", "Not running", "00", "25", "Press space to start"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing %q:\n%s", want, output)
		}
	}
}

func TestTimerPane_Steppers(t *testing.T) {
	setupTest(t)
	pane, _, _ := newTestTimerPane(t)

	pane.Update(keyRunes("k"))
	if pane.minVal != 26 {
		t.Errorf("minutes after k = %d, want 26", pane.minVal)
	}

	pane.Update(keyRunes("j"))
	pane.Update(keyRunes("j"))
	if pane.minVal != 24 {
		t.Errorf("minutes after jj = %d, want 24", pane.minVal)
	}

	pane.Update(keyRunes("K"))
	if pane.hourVal != 1 {
		t.Errorf("hours after K = %d, want 1", pane.hourVal)
	}
	pane.Update(keyRunes("J"))
	if pane.hourVal != 0 {
		t.Errorf("hours after J = %d, want 0", pane.hourVal)
	}
}

func TestTimerPane_StepperWrap(t *testing.T) {
	setupTest(t)
	pane, _, _ := newTestTimerPane(t)

	pane.minVal = 0
	pane.Update(keyRunes("j"))
	if pane.minVal != 59 {
		t.Errorf("minutes wrapped to %d, want 59", pane.minVal)
	}
	pane.Update(keyRunes("k"))
	if pane.minVal != 0 {
		t.Errorf("minutes wrapped back to %d, want 0", pane.minVal)
	}

	pane.hourVal = 23
	pane.Update(keyRunes("K"))
	if pane.hourVal != 0 {
		t.Errorf("hours wrapped to %d, want 0", pane.hourVal)
	}
}

func TestTimerPane_PresetDebounce(t *testing.T) {
	setupTest(t)
	pane, store, _ := newTestTimerPane(t)

	pane.Update(keyRunes("k"))
	pane.Update(keyRunes("k"))

	// A stale tick does nothing.
	if cmd := pane.Update(presetSaveTickMsg{seq: pane.presetSeq - 1}); cmd != nil {
		t.Error("stale debounce tick produced a save")
	}

	// The newest tick persists the preset.
	cmd := pane.Update(presetSaveTickMsg{seq: pane.presetSeq})
	if cmd == nil {
		t.Fatal("fresh debounce tick produced no save")
	}
	if msg, ok := cmd().(presetSavedMsg); !ok || msg.err != nil {
		t.Fatalf("save result = %#v", msg)
	}

	preset, err := store.LoadTimerPreset()
	if err != nil {
		t.Fatalf("LoadTimerPreset: %v", err)
	}
	if preset.Hours != "0" || preset.Minutes != "27" {
		t.Errorf("preset = %s:%s, want 0:27", preset.Hours, preset.Minutes)
	}
}

func TestTimerPane_PresetLoaded(t *testing.T) {
	setupTest(t)
	pane, _, _ := newTestTimerPane(t)

	pane.Update(presetLoadedMsg{preset: &storage.TimerPreset{Hours: "2", Minutes: "05"}})
	if pane.hourVal != 2 || pane.minVal != 5 {
		t.Errorf("loaded preset = %d:%d, want 2:5", pane.hourVal, pane.minVal)
	}

	// Garbage clamps to the low bound.
	pane.Update(presetLoadedMsg{preset: &storage.TimerPreset{Hours: "nope", Minutes: "99"}})
	if pane.hourVal != 0 || pane.minVal != 59 {
		t.Errorf("clamped preset = %d:%d, want 0:59", pane.hourVal, pane.minVal)
	}
}

func TestTimerPane_StartStop(t *testing.T) {
	setupTest(t)
	pane, store, advance := newTestTimerPane(t)

	pane.hourVal = 0
	pane.minVal = 10

	drainCmd(t, pane, pane.Update(keySpace()))
	if !pane.IsRunning() {
		t.Fatal("engine not running after start")
	}

	output := pane.View()
	if !strings.Contains(output, "Counting down") || !strings.Contains(output, "00:10:00") {
		t.Errorf("running view missing countdown:\n%s", output)
	}

	// Steppers are frozen while running.
	if cmd := pane.Update(keyRunes("k")); cmd != nil || pane.minVal != 10 {
		t.Error("stepper moved while countdown running")
	}

	// Stop after three minutes; the partial run lands on the calendar.
	advance(3 * time.Minute)
	drainCmd(t, pane, pane.Update(keySpace()))
	if pane.IsRunning() {
		t.Fatal("engine still running after stop")
	}

	entries, err := store.LoadCalendar()
	if err != nil {
		t.Fatalf("LoadCalendar: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("calendar entries = %d, want 1", len(entries))
	}
	if entries[0].TimerCompleted {
		t.Error("manual stop marked as completed")
	}
	if entries[0].TimeSpent == nil || entries[0].TimeSpent.Elapsed != 3 {
		t.Errorf("elapsed = %+v, want 3 minutes", entries[0].TimeSpent)
	}
}

func TestTimerPane_ZeroDurationDoesNotStart(t *testing.T) {
	setupTest(t)
	pane, _, _ := newTestTimerPane(t)

	pane.hourVal = 0
	pane.minVal = 0
	if cmd := pane.Update(keySpace()); cmd != nil {
		t.Error("zero duration produced a start command")
	}
	if pane.IsRunning() {
		t.Error("engine running after zero-duration start")
	}
}

func TestTimerPane_PollCompletes(t *testing.T) {
	setupTest(t)
	pane, store, advance := newTestTimerPane(t)

	pane.hourVal = 0
	pane.minVal = 5
	drainCmd(t, pane, pane.Update(keySpace()))

	// Not yet due: poll reports nothing.
	if cmd := pane.PollCmd(); cmd != nil {
		if msg := cmd().(timerPolledMsg); msg.completed {
			t.Fatal("poll completed early")
		}
	}

	advance(6 * time.Minute)
	cmd := pane.PollCmd()
	if cmd == nil {
		t.Fatal("no poll command while running")
	}
	msg := cmd().(timerPolledMsg)
	if !msg.completed || msg.err != nil {
		t.Fatalf("poll = %+v, want completed", msg)
	}
	if pane.IsRunning() {
		t.Error("engine still running after completion")
	}

	// Once idle, PollCmd stops issuing work.
	if pane.PollCmd() != nil {
		t.Error("PollCmd still active after completion")
	}

	entries, _ := store.LoadCalendar()
	if len(entries) != 1 || !entries[0].TimerCompleted {
		t.Errorf("completion entry = %+v", entries)
	}
	if entries[0].TimeSpent == nil || entries[0].TimeSpent.Elapsed != 5 {
		t.Errorf("elapsed = %+v, want configured 5 minutes", entries[0].TimeSpent)
	}
}

func TestTimerPane_BindsSelectedNote(t *testing.T) {
	setupTest(t)
	pane, store, _ := newTestTimerPane(t)

	todo := addTestNote(t, store, "Deep work")
	pane.SetTodoSource(func() *storage.Todo { c := *todo; return &c })
	pane.SetTitleLookup(func(id int64) string {
		if id == todo.ID {
			return todo.Text
		}
		return ""
	})

	pane.hourVal = 0
	pane.minVal = 30
	drainCmd(t, pane, pane.Update(keySpace()))

	output := pane.View()
	if !strings.Contains(output, "Deep work") {
		t.Errorf("running view missing bound note title:\n%s", output)
	}

	// The bound note carries the running flag in storage.
	bundle, _ := store.LoadTodos()
	if bundle.Todos[0].Timer == nil || !bundle.Todos[0].Timer.IsActive {
		t.Error("bound note timer flag not set")
	}
}

func TestTimerPane_RestoreResumesCountdown(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	advance := setTestClock(t, store)

	eng := timer.New(store, notify.Noop())
	eng.SetNowFunc(store.Now)

	// A previous process left an unexpired countdown behind.
	if err := store.SaveTimerState(&storage.TimerState{
		EndTime:  store.Now().Add(20 * time.Minute),
		Hours:    "0",
		Minutes:  "25",
		IsActive: true,
	}); err != nil {
		t.Fatalf("SaveTimerState: %v", err)
	}

	pane := NewTimerPane(store, eng, createTestStyles())
	pane.SetSize(36, 18)
	drainCmd(t, pane, pane.InitCmd())

	if !pane.IsRunning() {
		t.Fatal("countdown not resumed")
	}
	if got := pane.Remaining(); got != 20*time.Minute {
		t.Errorf("remaining = %v, want 20m", got)
	}

	advance(21 * time.Minute)
	if got := pane.Remaining(); got != 0 {
		t.Errorf("remaining after expiry = %v, want 0", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "01:30:00"},
		{61 * time.Second, "00:01:01"},
		{0, "00:00:00"},
		{-5 * time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	if got := wrap(-1, 60); got != 59 {
		t.Errorf("wrap(-1, 60) = %d, want 59", got)
	}
	if got := wrap(60, 60); got != 0 {
		t.Errorf("wrap(60, 60) = %d, want 0", got)
	}
	if got := wrap(30, 60); got != 30 {
		t.Errorf("wrap(30, 60) = %d, want 30", got)
	}
}
