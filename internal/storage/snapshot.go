package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrIncompatibleFormat is returned when an import file's version does not
// match the current schema. The import is rejected outright rather than
// partially applied.
var ErrIncompatibleFormat = errors.New("incompatible data format")

// ExportSnapshot gathers all collections into a single portable bundle.
func (s *Storage) ExportSnapshot() (*Snapshot, error) {
	bundle, err := s.LoadTodos()
	if err != nil {
		return nil, err
	}
	entries, err := s.LoadCalendar()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Version:         SchemaVersion,
		Todos:           bundle.Todos,
		Archived:        bundle.Archived,
		CalendarEntries: entries,
	}, nil
}

// WriteExportFile writes the full snapshot as indented JSON to path.
func (s *Storage) WriteExportFile(path string) error {
	snap, err := s.ExportSnapshot()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ReadExportFile parses a snapshot file, rejecting version mismatches.
func ReadExportFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes snapshot bytes, rejecting version mismatches.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	snap := Snapshot{}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse export file: %w", err)
	}
	if snap.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: version %d (expected %d)", ErrIncompatibleFormat, snap.Version, SchemaVersion)
	}
	if snap.Todos == nil {
		snap.Todos = []Todo{}
	}
	if snap.Archived == nil {
		snap.Archived = []Todo{}
	}
	if snap.CalendarEntries == nil {
		snap.CalendarEntries = []CalendarEntry{}
	}
	return &snap, nil
}

// ImportSnapshot replaces all collections wholesale with the snapshot's
// contents. There is no merging; exporting then importing reproduces the
// exact same state.
func (s *Storage) ImportSnapshot(snap *Snapshot) error {
	if snap.Version != SchemaVersion {
		return fmt.Errorf("%w: version %d (expected %d)", ErrIncompatibleFormat, snap.Version, SchemaVersion)
	}

	bundle := &TodoBundle{
		Version:  SchemaVersion,
		Todos:    snap.Todos,
		Archived: snap.Archived,
	}
	if bundle.Todos == nil {
		bundle.Todos = []Todo{}
	}
	if bundle.Archived == nil {
		bundle.Archived = []Todo{}
	}

	if err := s.SaveTodos(bundle); err != nil {
		return err
	}
	return s.SaveCalendar(snap.CalendarEntries)
}
