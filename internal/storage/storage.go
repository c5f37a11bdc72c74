// Package storage owns the daybook data files: the active and archived todo
// lists, the calendar log, and the persisted timer state. Each collection
// lives in its own JSON file under the data directory so unrelated features
// never race on a shared key.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"daybook/internal/fsutil"
)

const (
	todosFile    = "todos.json"
	calendarFile = "calendar.json"
	timerFile    = "timer.json"
	presetFile   = "timer_preset.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Storage handles all file I/O for the app.
type Storage struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Storage rooted at dataDir, creating the directory and
// default files as needed.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir, now: time.Now}

	if err := s.initFiles(); err != nil {
		return nil, err
	}

	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// initFiles creates default JSON files if they don't exist.
func (s *Storage) initFiles() error {
	if !fileExists(s.path(todosFile)) {
		if err := s.SaveTodos(&TodoBundle{Version: SchemaVersion, Todos: []Todo{}, Archived: []Todo{}}); err != nil {
			return err
		}
	}

	if !fileExists(s.path(calendarFile)) {
		if err := s.SaveCalendar([]CalendarEntry{}); err != nil {
			return err
		}
	}

	if !fileExists(s.path(presetFile)) {
		if err := s.SaveTimerPreset(DefaultTimerPreset()); err != nil {
			return err
		}
	}

	return nil
}

func (s *Storage) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// newTodoID derives an id from the clock with a random offset so two
// creations within the same millisecond don't collide.
func (s *Storage) newTodoID() int64 {
	return s.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

func (s *Storage) writeJSONAtomic(filename string, v any) error {
	path := s.path(filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}

	return nil
}

func (s *Storage) loadJSONWithRecovery(filename string, v any) error {
	path := s.path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.writeJSONAtomic(filename, v); err != nil {
				return err
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorruptJSON(filename, v, fmt.Errorf("%s is empty", filename))
	}

	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	return s.recoverCorruptJSON(filename, v, fmt.Errorf("parse %s: %w", filename, err))
}

func (s *Storage) recoverCorruptJSON(filename string, v any, cause error) error {
	path := s.path(filename)

	// Try backup first.
	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if err := json.Unmarshal(bakData, v); err == nil {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.writeJSONAtomic(filename, v)
			return fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), filename)
		}
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	_ = s.writeJSONAtomic(filename, v)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), corruptPath)
}

// ============================================================================
// Timer state + preset
// ============================================================================

// LoadTimerState reads the persisted countdown state. A missing file means
// no timer has ever run; callers get an inactive zero state, never an error
// for that case.
func (s *Storage) LoadTimerState() (*TimerState, error) {
	if !fileExists(s.path(timerFile)) {
		return &TimerState{}, nil
	}
	state := TimerState{}
	err := s.loadJSONWithRecovery(timerFile, &state)
	return &state, err
}

// SaveTimerState persists the countdown state.
func (s *Storage) SaveTimerState(state *TimerState) error {
	return s.writeJSONAtomic(timerFile, state)
}

// ClearTimerState marks the persisted countdown inactive.
func (s *Storage) ClearTimerState() error {
	return s.SaveTimerState(&TimerState{})
}

// DefaultTimerPreset is the duration offered before the user ever picks one.
func DefaultTimerPreset() *TimerPreset {
	return &TimerPreset{Hours: "00", Minutes: "25"}
}

// LoadTimerPreset reads the last configured duration.
func (s *Storage) LoadTimerPreset() (*TimerPreset, error) {
	preset := TimerPreset{}
	if err := s.loadJSONWithRecovery(presetFile, &preset); err != nil {
		return DefaultTimerPreset(), err
	}
	if preset.Hours == "" && preset.Minutes == "" {
		return DefaultTimerPreset(), nil
	}
	return &preset, nil
}

// SaveTimerPreset persists the last configured duration.
func (s *Storage) SaveTimerPreset(preset *TimerPreset) error {
	return s.writeJSONAtomic(presetFile, preset)
}
